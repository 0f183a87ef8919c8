// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// DefaultWordListName is the word list file expected next to the executable.
const DefaultWordListName = "words.txt"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// InstallDir returns the directory holding the running executable, with
// symlinks resolved.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// ResolveWordListPath resolves a configured word list path. Empty means
// DefaultWordListName; relative paths are taken from installDir rather
// than the working directory.
func ResolveWordListPath(configured, installDir string) string {
	if configured == "" {
		configured = DefaultWordListName
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(installDir, configured)
}

// DefaultDBPath returns the default path for the journal database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "spellbee", "spellbee.db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), "spellbee", "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "spellbee", "config.toml")
}
