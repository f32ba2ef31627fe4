// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the kartpick configuration directory, ~/.kartpick by
// default. KARTPICK_HOME overrides it.
func Dir() string {
	if custom := os.Getenv("KARTPICK_HOME"); custom != "" {
		return ExpandPath(custom)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kartpick"
	}
	return filepath.Join(home, ".kartpick")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	return filepath.Join(Dir(), "kartpick.db")
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}
