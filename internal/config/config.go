// Package config loads supacheck configuration.
//
// Secrets (the service URL and anon key) come from the environment, a local
// KEY=VALUE env file, or the OS keychain. Non-secret preferences are kept in
// a JSON file in the XDG config dir.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"supacheck/cli/internal/xdg"
)

// Preference defaults.
const (
	DefaultUsersTable     = "users"
	DefaultTimeoutSeconds = 10
)

// Preferences holds non-sensitive CLI settings.
type Preferences struct {
	UsersTable     string `json:"users_table"`
	MatchEmail     string `json:"match_email"`
	ProbeTable     string `json:"probe_table"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Defaults returns the preferences used when no file exists.
func Defaults() Preferences {
	return Preferences{
		UsersTable:     DefaultUsersTable,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the per-request timeout.
func (p Preferences) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// path returns the path to the preferences file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads preferences; missing file returns defaults.
// Fields left empty in the file fall back to their defaults.
func Load() (Preferences, error) {
	p := Defaults()
	fp, err := path()
	if err != nil {
		return p, err
	}
	data, err := os.ReadFile(fp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults(), err
	}
	if p.UsersTable == "" {
		p.UsersTable = DefaultUsersTable
	}
	if p.TimeoutSeconds <= 0 {
		p.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return p, nil
}

// Save writes preferences with 0600 permissions.
func Save(p Preferences) error {
	fp, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fp, b, 0o600)
}

// Path returns the preferences file location for display.
func Path() (string, error) { return path() }

// Set updates one preference by its JSON name.
func (p *Preferences) Set(name, value string) error {
	value = strings.TrimSpace(value)
	switch name {
	case "users_table":
		if value == "" {
			return fmt.Errorf("users_table cannot be empty")
		}
		p.UsersTable = value
	case "match_email":
		p.MatchEmail = value
	case "probe_table":
		p.ProbeTable = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer, got %q", value)
		}
		p.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown preference %q (expected users_table, match_email, probe_table or timeout_seconds)", name)
	}
	return nil
}
