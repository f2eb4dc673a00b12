package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.CurrentTarget = "prod"
	cfg.Kubeconfig = "/home/alice/.kube/prod"
	cfg.Targets = []Target{
		{Name: "prod", Server: "https://api.example.com", CAFile: "/etc/ca.pem"},
	}

	require.NoError(t, Save(path, &cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.CurrentTarget, loaded.CurrentTarget)
	require.Equal(t, cfg.Kubeconfig, loaded.Kubeconfig)
	require.Len(t, loaded.Targets, 1)
	require.Equal(t, cfg.Targets[0], loaded.Targets[0])
	require.Equal(t, "30s", loaded.Settings.Timeout)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "config path is required")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: [yaml: content"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("targets: {"), 0o600))
	_, err = LoadOrDefault(bad)
	require.Error(t, err)
}

func TestSaveNilConfig(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "config.yaml"), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config is nil")
}

func TestSaveDefaultsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(path, &Config{}))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, VersionV1, loaded.Version)
}

func TestFindTarget(t *testing.T) {
	cfg := &Config{Targets: []Target{{Name: "a", Server: "https://a"}, {Name: "b", Server: "https://b"}}}

	target, err := cfg.FindTarget("b")
	require.NoError(t, err)
	assert.Equal(t, "https://b", target.Server)

	_, err = cfg.FindTarget("c")
	require.EqualError(t, err, "target not found: c")
}

func TestCurrentTargetOrDefault(t *testing.T) {
	assert.Equal(t, "", (&Config{}).CurrentTargetOrDefault())
	assert.Equal(t, "a", (&Config{Targets: []Target{{Name: "a"}, {Name: "b"}}}).CurrentTargetOrDefault())
	assert.Equal(t, "b", (&Config{CurrentTarget: "b", Targets: []Target{{Name: "a"}, {Name: "b"}}}).CurrentTargetOrDefault())
}

func TestTimeoutDuration(t *testing.T) {
	cfg := &Config{Settings: Settings{Timeout: "5s"}}
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	d, err = (&Config{}).TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = (&Config{Settings: Settings{Timeout: "soon"}}).TimeoutDuration()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "missing version", cfg: Config{}, wantErr: "config version missing"},
		{name: "unknown version", cfg: Config{Version: "v9"}, wantErr: "unsupported config version"},
		{
			name:    "empty target name",
			cfg:     Config{Version: VersionV1, Targets: []Target{{Server: "https://a"}}},
			wantErr: "target name cannot be empty",
		},
		{
			name:    "duplicate target",
			cfg:     Config{Version: VersionV1, Targets: []Target{{Name: "a", Server: "https://a"}, {Name: "a", Server: "https://b"}}},
			wantErr: "duplicate target: a",
		},
		{
			name:    "missing server",
			cfg:     Config{Version: VersionV1, Targets: []Target{{Name: "a"}}},
			wantErr: "target a server is required",
		},
		{
			name:    "unknown current target",
			cfg:     Config{Version: VersionV1, CurrentTarget: "x", Targets: []Target{{Name: "a", Server: "https://a"}}},
			wantErr: "current-target: target not found: x",
		},
		{
			name:    "bad timeout",
			cfg:     Config{Version: VersionV1, Settings: Settings{Timeout: "later"}},
			wantErr: "invalid timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
