// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package report prints human-readable results, warnings and remediation
// guidance. Nothing here fails a run: output is best effort.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"supacheck/cli/internal/check"
	"supacheck/cli/internal/config"
	"supacheck/cli/internal/errors"
	"supacheck/cli/internal/logging"

	"github.com/pterm/pterm"
)

// FormatJSON renders v as two-space indented JSON.
func FormatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// Rows prints a record list as JSON after a count line.
func Rows(table string, rows any, n int) {
	pterm.Printf("📋 %d row(s) in %s\n", n, table)
	pterm.Println(FormatJSON(rows))
	if n == 0 {
		pterm.Println()
		pterm.Warning.Printf("%s returned no rows.\n", table)
		pterm.Println("   An empty result usually means row level security hides the rows from this key,")
		pterm.Println("   or the table really is empty.")
	}
}

// Match prints the outcome of an email lookup.
func Match(table string, res check.MatchResult) {
	pterm.Printf("🔎 Scanned %d user(s) in %s for %q\n", res.Scanned, table, res.Target)
	if res.Found {
		pterm.Success.Printf("Found user with email %s\n", res.Target)
		pterm.Println(FormatJSON(res.User))
		return
	}
	pterm.Warning.Printf("No user with email %s\n", res.Target)
	pterm.Println("   To fix this:")
	pterm.Println("   • Check the address for typos; the comparison is exact and case-sensitive")
	pterm.Println("   • Make sure the account was created in this project (sign up or insert the row)")
	pterm.Println("   • Check that row level security lets this key read the row")
}

// Verdict prints the outcome of a verify probe.
func Verdict(s config.Settings, v check.Verdict) {
	switch v.Status {
	case check.Authenticated:
		if v.TableExists {
			pterm.Success.Printf("Connected to %s; the key was accepted\n", s.URL)
			pterm.Warning.Printf("Probe table %s exists; pick a name that does not.\n", v.Table)
			return
		}
		pterm.Success.Printf("Connected to %s; the key was accepted\n", s.URL)
		pterm.Printf("   (probe table %s does not exist, as expected)\n", v.Table)
	case check.Rejected:
		pterm.Error.Println("CRITICAL: the service rejected the anon key")
		pterm.Println("   " + logging.Mask(v.Err.Error()))
		pterm.Println()
		pterm.Println("   To fix this:")
		pterm.Printf("   • Copy the anon key again from the project's API settings into %s\n", config.KeyAnonKey)
		pterm.Printf("   • Make sure %s and the key belong to the same project\n", config.KeyURL)
		pterm.Println("   • Run 'supacheck config' to inspect the key's role and expiry")
	default:
		pterm.Error.Println("Could not verify the connection")
		if v.Err != nil {
			pterm.Println("   " + logging.Mask(v.Err.Error()))
		}
	}
}

// ConfigError prints guidance for a configuration failure.
func ConfigError(err error) {
	pterm.Error.Println(logging.Mask(err.Error()))
	if errors.KindOf(err) != errors.ConfigMissing {
		return
	}
	pterm.Println()
	pterm.Println("Create an env file in the working directory (or pass --env-file) containing:")
	pterm.Println()
	pterm.Println("   " + config.KeyURL + "=https://<project-ref>.supabase.co")
	pterm.Println("   " + config.KeyAnonKey + "=<anon key>")
	pterm.Println()
	pterm.Printf("Environment variables %s and %s override the file.\n", config.EnvURL, config.EnvAnonKey)
	pterm.Println("The anon key can also be stored in the OS keychain with 'supacheck key set'.")
}

// Settings prints resolved settings with the key masked.
func Settings(s config.Settings) {
	lines := []string{
		fmt.Sprintf("URL:      %s  (%s)", s.URL, s.URLFrom),
		fmt.Sprintf("Anon key: %s  (%s)", logging.MaskKey(s.AnonKey), s.AnonKeyFrom),
		fmt.Sprintf("Env file: %s", s.EnvFile),
	}
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Connection")).
		WithPadding(1).
		Println(strings.Join(lines, "\n"))
}
