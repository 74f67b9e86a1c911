// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"supacheck/cli/internal/check"
	"supacheck/cli/internal/errors"
	"supacheck/cli/internal/report"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	matchEmail string
	matchTable string
)

// matchCmd checks whether one email exists in the user table.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Check whether an email exists in the user table",
	Long: `The match command selects id, username, email and role from the user table
and looks for the first row whose email equals the target exactly. The
comparison is case-sensitive.

Finding no match is reported with remediation steps but is not a failure:
the command exits 0 whenever the query itself succeeded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		target := firstNonEmpty(matchEmail, sess.prefs.MatchEmail)
		if target == "" {
			err := errors.New(errors.ConfigMissing, "no target email")
			pterm.Error.Println("No email to look for.")
			pterm.Println("   Pass --email or run: supacheck config set match_email <address>")
			return reported(err)
		}
		table := firstNonEmpty(matchTable, sess.prefs.UsersTable)

		ctx, cancel := sess.withTimeout(cmd.Context())
		defer cancel()

		stop := startInlineSpinner(os.Stderr, "searching "+table, spinnerFrames, 100*time.Millisecond)
		res, err := check.MatchEmail(ctx, sess.api, table, target)
		stop()
		if err != nil {
			return sess.queryFailed("searching "+table, err)
		}

		report.Match(table, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVarP(&matchEmail, "email", "e", "", "Email to look for (default from preferences)")
	matchCmd.Flags().StringVar(&matchTable, "table", "", "User table name (default from preferences, usually \"users\")")
}
