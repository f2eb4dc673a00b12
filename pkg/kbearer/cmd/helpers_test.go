package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t          *testing.T
	configPath string
	kubeconfig string
}

func newTestEnv(t *testing.T, token string) *testEnv {
	t.Helper()
	for _, env := range []string{"KBEARER_CONFIG", "KBEARER_TARGET", "KBEARER_SERVER", "KBEARER_OUTPUT", "KBEARER_VERBOSE"} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	return &testEnv{
		t:          t,
		configPath: filepath.Join(dir, "kbearer", "config.yaml"),
		kubeconfig: writeKubeconfig(t, dir, token),
	}
}

// run executes the root command with --kubeconfig pointing at the fixture.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	return e.runWithoutKubeconfigFlag(append([]string{"--kubeconfig", e.kubeconfig}, args...)...)
}

func (e *testEnv) runWithoutKubeconfigFlag(args ...string) (string, error) {
	e.t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{ConfigPath: e.configPath, OutputWriter: buf})
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeKubeconfig(t *testing.T, dir, token string) string {
	t.Helper()
	user := "    client-certificate-data: Zm9v\n"
	if token != "" {
		user = "    token: " + token + "\n"
	}
	content := "apiVersion: v1\nkind: Config\ncurrent-context: dev\n" +
		"contexts:\n- name: dev\n  context:\n    cluster: dev\n    user: alice\n" +
		"users:\n- name: alice\n  user:\n" + user
	path := filepath.Join(dir, "kubeconfig")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// createTestToken signs claims with a throwaway key; kbearer never verifies signatures.
func createTestToken(claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte("test-secret"))
	return signed
}
