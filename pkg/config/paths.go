package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultSettingsDir is where radchat keeps its settings and logs.
const DefaultSettingsDir = ".radchat"

// SettingsDir returns the directory holding the active settings file.
func SettingsDir() string {
	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		return filepath.Dir(cfgFile)
	}
	return DefaultSettingsDir
}

// BuildSettingsPath resolves filename relative to the settings directory.
func BuildSettingsPath(filename string) string {
	return filepath.Join(SettingsDir(), filename)
}
