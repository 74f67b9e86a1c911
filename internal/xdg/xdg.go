// Package xdg resolves the XDG Base Directory location used by supacheck for
// its non-secret preferences file.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name created under the XDG config root.
const AppName = "supacheck"

// ConfigDir returns the XDG config directory for supacheck.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/supacheck when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
