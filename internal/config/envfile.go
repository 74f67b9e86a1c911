// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"io"
	"os"
	"strings"
)

// DefaultEnvFile is the env file read from the working directory when no
// other path is given.
const DefaultEnvFile = ".env"

// ParseEnv reads KEY=VALUE lines from r.
// Each line is split on its first '=' and both sides are trimmed. Lines with
// no '=' or with an empty key or value are skipped, and a repeated key keeps
// the last value. Quoting, escaping, comments and multi-line values are not
// recognised: the raw text after the first '=' is the value.
func ParseEnv(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseEnvBytes(data), nil
}

// LoadEnvFile reads path and parses it with ParseEnv.
// A missing or unreadable file is returned as an error.
func LoadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseEnvBytes(data), nil
}

func parseEnvBytes(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(strings.TrimPrefix(string(data), "\ufeff"), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
