// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"supacheck/cli/internal/config"
	"supacheck/cli/internal/dbprobe"
	"supacheck/cli/internal/dsn"
	"supacheck/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Environment variables consulted by ping-db.
const (
	EnvDSN        = "SUPACHECK_DSN"
	EnvDBPassword = "SUPACHECK_DB_PASSWORD"
)

var (
	pingDSN   string
	pingTable string
)

// pingDBCmd checks a direct Postgres connection, bypassing the REST gateway.
var pingDBCmd = &cobra.Command{
	Use:   "ping-db",
	Short: "Check a direct Postgres connection to the project database",
	Long: `The ping-db command connects straight to the project's Postgres database,
bypassing the REST gateway, and reports the server version and the columns of
the user table. Use it to tell gateway or key problems apart from database
problems.

The DSN is taken from --dsn, then SUPACHECK_DSN, then DATABASE_URL. Without
one, it is derived from the project URL and SUPACHECK_DB_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, source := resolveDSN()
		if raw == "" {
			pterm.Error.Println("No database connection string.")
			pterm.Printf("   Pass --dsn, set %s, or set %s for a hosted project.\n", EnvDSN, EnvDBPassword)
			return reported(fmt.Errorf("no DSN"))
		}
		logging.Debugf("dsn from %s: %s", source, raw)

		normalized, err := dsn.Normalize(raw)
		if err != nil {
			pterm.Error.Println(err.Error())
			return reported(err)
		}

		prefs, err := config.Load()
		if err != nil {
			pterm.Warning.Printf("Ignoring unreadable preferences: %v\n", err)
		}
		table := firstNonEmpty(pingTable, prefs.UsersTable)

		ctx, cancel := context.WithTimeout(cmd.Context(), prefs.Timeout())
		defer cancel()

		stop := startInlineSpinner(os.Stderr, "connecting to database", spinnerFrames, 100*time.Millisecond)
		p, err := dbprobe.Open(ctx, normalized)
		if err != nil {
			stop()
			pterm.Error.Println("Connection failed. Please check your database credentials and network connection.")
			pterm.Println("   " + logging.Mask(err.Error()))
			return reported(err)
		}
		defer p.Close()

		r, err := p.Run(ctx, table)
		stop()
		if err != nil {
			pterm.Error.Println(logging.PresentError("inspecting the database", err))
			return reported(err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Server:  PostgreSQL %s\n", r.ServerVersion)
		fmt.Fprintf(&b, "DSN:     %s (%s)", logging.Mask(normalized), source)
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(b.String())

		if !r.TableExists {
			pterm.Warning.Printf("Table %s does not exist in this database\n", table)
			return nil
		}
		pterm.Success.Printf("Table %s exists (about %d rows)\n", table, max(r.RowEstimate, 0))
		items := make([]pterm.BulletListItem, 0, len(r.Columns))
		for _, c := range r.Columns {
			text := c.Name + " " + c.DataType
			if c.Nullable {
				text += " (nullable)"
			}
			items = append(items, pterm.BulletListItem{Level: 0, Text: text})
		}
		_ = pterm.DefaultBulletList.WithItems(items).Render()
		return nil
	},
}

// resolveDSN picks the DSN and names where it came from.
func resolveDSN() (string, string) {
	if v := strings.TrimSpace(pingDSN); v != "" {
		return v, "--dsn"
	}
	for _, k := range []string{EnvDSN, "DATABASE_URL"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v, k
		}
	}
	pass := strings.TrimSpace(os.Getenv(EnvDBPassword))
	if pass == "" {
		return "", ""
	}
	s, err := config.Resolve(config.Options{EnvFile: envFile})
	if err != nil && s.URL == "" {
		return "", ""
	}
	if derived, ok := dsn.FromProjectURL(s.URL, pass); ok {
		return derived, "project URL"
	}
	return "", ""
}

func init() {
	rootCmd.AddCommand(pingDBCmd)
	pingDBCmd.Flags().StringVar(&pingDSN, "dsn", "", "Postgres connection string")
	pingDBCmd.Flags().StringVar(&pingTable, "table", "", "Table to inspect (default from preferences, usually \"users\")")
}
