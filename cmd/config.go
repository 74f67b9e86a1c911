// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"time"

	"supacheck/cli/internal/config"
	"supacheck/cli/internal/keyinfo"
	"supacheck/cli/internal/report"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// configCmd shows the resolved configuration without contacting the service.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration and preferences",
	Long: `The config command shows where the project URL and anon key were found, with
the key masked, decodes the anon key's claims (role, project, expiry) and
lists the stored preferences. No network request is made.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Resolve(config.Options{EnvFile: envFile, Secrets: keychainSecrets{}})
		if err != nil {
			report.ConfigError(err)
			return reported(err)
		}
		report.Settings(s)
		pterm.Println()

		claims, err := keyinfo.Inspect(s.AnonKey)
		switch {
		case errors.Is(err, keyinfo.ErrNotJWT):
			pterm.Info.Println("Anon key is not a JWT; claims cannot be shown.")
		case err == nil:
			pterm.Printf("Key role:    %s\n", orDash(claims.Role))
			pterm.Printf("Key project: %s\n", orDash(claims.Ref))
			if !claims.ExpiresAt.IsZero() {
				pterm.Printf("Key expires: %s\n", claims.ExpiresAt.Format(time.DateOnly))
			}
			for _, w := range claims.Warnings(s.URL, time.Now()) {
				pterm.Warning.Println(w)
			}
		default:
			pterm.Warning.Printf("Cannot read the anon key's claims: %v\n", err)
		}
		pterm.Println()

		prefs, err := config.Load()
		if err != nil {
			pterm.Warning.Printf("Ignoring unreadable preferences: %v\n", err)
		}
		path, _ := config.Path()
		pterm.Printf("Preferences (%s):\n", path)
		pterm.Printf("  users_table     %s\n", prefs.UsersTable)
		pterm.Printf("  match_email     %s\n", orDash(prefs.MatchEmail))
		pterm.Printf("  probe_table     %s\n", orDash(prefs.ProbeTable))
		pterm.Printf("  timeout_seconds %d\n", prefs.TimeoutSeconds)
		return nil
	},
}

// configSetCmd updates one stored preference.
var configSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change a stored preference",
	Long: `Preferences: users_table, match_email, probe_table, timeout_seconds.
Secrets are never stored here; use the env file or 'supacheck key set'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := config.Load()
		if err != nil {
			return err
		}
		if err := prefs.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(prefs); err != nil {
			return err
		}
		pterm.Success.Printf("%s updated\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
