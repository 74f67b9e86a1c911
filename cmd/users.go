// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"supacheck/cli/internal/check"
	"supacheck/cli/internal/report"

	"github.com/spf13/cobra"
)

var usersTable string

// usersCmd lists every row of the user table.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all rows of the user table",
	Long: `The users command selects every column of every row in the user table and
prints the result as JSON. Rows hidden by row level security do not appear.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		table := firstNonEmpty(usersTable, sess.prefs.UsersTable)

		ctx, cancel := sess.withTimeout(cmd.Context())
		defer cancel()

		stop := startInlineSpinner(os.Stderr, "fetching "+table, spinnerFrames, 100*time.Millisecond)
		rows, err := check.ListUsers(ctx, sess.api, table)
		stop()
		if err != nil {
			return sess.queryFailed("listing "+table, err)
		}

		report.Rows(table, rows, len(rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().StringVar(&usersTable, "table", "", "User table name (default from preferences, usually \"users\")")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
