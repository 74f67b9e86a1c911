// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"supacheck/cli/internal/errors"
)

// Env file keys.
const (
	KeyURL     = "VITE_SUPABASE_URL"
	KeyAnonKey = "VITE_SUPABASE_ANON_KEY"
)

// Environment variables that override the env file.
const (
	EnvURL     = "SUPACHECK_URL"
	EnvAnonKey = "SUPACHECK_ANON_KEY"
)

// Required lists the env file keys that must resolve to a value.
var Required = []string{KeyURL, KeyAnonKey}

// Source records where a resolved value came from.
type Source string

const (
	SourceNone     Source = ""
	SourceEnv      Source = "environment"
	SourceFile     Source = "env file"
	SourceKeychain Source = "keychain"
)

// Settings is the validated configuration every remote command runs with.
type Settings struct {
	URL         string
	AnonKey     string
	URLFrom     Source
	AnonKeyFrom Source
	EnvFile     string
}

// SecretStore supplies the anon key when neither the environment nor the env
// file has one. *keychain.Manager satisfies it.
type SecretStore interface {
	LoadAnonKey() (string, error)
}

// Options controls Resolve.
type Options struct {
	// EnvFile is the path to the KEY=VALUE file; DefaultEnvFile when empty.
	EnvFile string
	// Secrets is consulted for the anon key last. May be nil.
	Secrets SecretStore
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Resolve builds Settings from the environment, the env file and the secret
// store, in that order of precedence. It fails with an errors.ConfigMissing
// error naming every required key that is still empty, and with
// errors.ConfigInvalid when the URL is not an absolute http(s) URL.
func Resolve(opts Options) (Settings, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	path := opts.EnvFile
	if path == "" {
		path = DefaultEnvFile
	}

	s := Settings{EnvFile: path}

	values, fileErr := LoadEnvFile(path)
	if fileErr != nil && !stderrors.Is(fileErr, os.ErrNotExist) {
		return s, errors.Wrap(errors.ConfigInvalid, fmt.Sprintf("cannot read %s", path), fileErr)
	}

	s.URL, s.URLFrom = pick(getenv(EnvURL), values[KeyURL])
	s.AnonKey, s.AnonKeyFrom = pick(getenv(EnvAnonKey), values[KeyAnonKey])

	if s.AnonKey == "" && opts.Secrets != nil {
		if k, err := opts.Secrets.LoadAnonKey(); err == nil && strings.TrimSpace(k) != "" {
			s.AnonKey = strings.TrimSpace(k)
			s.AnonKeyFrom = SourceKeychain
		}
	}

	missing := MissingKeys(map[string]string{KeyURL: s.URL, KeyAnonKey: s.AnonKey})
	if len(missing) > 0 {
		msg := fmt.Sprintf("missing required configuration: %s", strings.Join(missing, ", "))
		if fileErr != nil {
			return s, errors.Wrap(errors.ConfigMissing, msg, fileErr)
		}
		return s, errors.New(errors.ConfigMissing, msg)
	}

	if err := validateURL(s.URL); err != nil {
		return s, err
	}
	s.URL = strings.TrimRight(s.URL, "/")
	return s, nil
}

func pick(env, file string) (string, Source) {
	if v := strings.TrimSpace(env); v != "" {
		return v, SourceEnv
	}
	if file != "" {
		return file, SourceFile
	}
	return "", SourceNone
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid, fmt.Sprintf("%s is not a valid URL", KeyURL), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ConfigInvalid, fmt.Sprintf("%s must start with https:// (got %q)", KeyURL, raw))
	}
	if u.Host == "" {
		return errors.New(errors.ConfigInvalid, fmt.Sprintf("%s has no host", KeyURL))
	}
	return nil
}

// MissingKeys returns the required keys absent from values, in Required order.
func MissingKeys(values map[string]string) []string {
	var out []string
	for _, k := range Required {
		if values[k] == "" {
			out = append(out, k)
		}
	}
	return out
}
