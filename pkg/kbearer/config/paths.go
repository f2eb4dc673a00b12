package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = "kbearer"
	defaultConfigFile    = "config.yaml"
	configEnvVar         = "KBEARER_CONFIG"
)

func DefaultConfigPath() string {
	if env := os.Getenv(configEnvVar); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kbearer", defaultConfigFile)
}
