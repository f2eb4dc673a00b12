package kubeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const kubeconfigWithToken = `apiVersion: v1
kind: Config
current-context: dev
clusters:
- name: dev
  cluster:
    server: https://dev.example.com
contexts:
- name: dev
  context:
    cluster: dev
    user: alice
users:
- name: alice
  user:
    token: abc123
`

const kubeconfigUserWithoutToken = `apiVersion: v1
kind: Config
current-context: dev
clusters:
- name: dev
  cluster:
    server: https://dev.example.com
contexts:
- name: dev
  context:
    cluster: dev
    user: bob
users:
- name: bob
  user:
    client-certificate-data: Zm9v
`

const kubeconfigWithoutCurrentContext = `apiVersion: v1
kind: Config
clusters:
- name: dev
  cluster:
    server: https://dev.example.com
contexts:
- name: dev
  context:
    cluster: dev
    user: alice
users:
- name: alice
  user:
    token: abc123
`

const kubeconfigDanglingUser = `apiVersion: v1
kind: Config
current-context: dev
contexts:
- name: dev
  context:
    cluster: dev
    user: ghost
users:
- name: alice
  user:
    token: abc123
`

const kubeconfigMalformed = "apiVersion: v1\nkind: Config\nusers: {not-closed\n"

func writeKubeconfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
