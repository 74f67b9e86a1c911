// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"time"

	"supacheck/cli/internal/check"
	"supacheck/cli/internal/httperrors"
	"supacheck/cli/internal/keyinfo"
	"supacheck/cli/internal/report"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var probeTable string

// verifyCmd checks that the configured URL/key pair authenticates.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that the configured URL and anon key authenticate",
	Long: `The verify command queries one row of a probe table that should not exist.
The service only reports a missing table to callers whose key it accepted, so
"table not found" proves authentication works, while a rejected key is a
critical failure.

Exit codes: 0 when the key is accepted, 1 for a rejected key, a network
failure, or any answer that cannot be classified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		if claims, err := keyinfo.Inspect(sess.settings.AnonKey); err == nil {
			for _, w := range claims.Warnings(sess.settings.URL, time.Now()) {
				pterm.Warning.Println(w)
			}
		}

		table := firstNonEmpty(probeTable, sess.prefs.ProbeTable, check.ProbeTableName())

		ctx, cancel := sess.withTimeout(cmd.Context())
		defer cancel()

		stop := startInlineSpinner(os.Stderr, "verifying connection", spinnerFrames, 100*time.Millisecond)
		v := check.Verify(ctx, sess.api, table)
		stop()

		if v.Status == check.Failed && httperrors.Applies(v.Err) {
			httperrors.Print(v.Err, "verifying the connection", httperrors.ExtractHostFromURL(sess.settings.URL))
		} else {
			report.Verdict(sess.settings, v)
		}

		if code := v.Status.ExitCode(); code != 0 {
			return reported(fmt.Errorf("verify: %s: %w", v.Status, v.Err))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&probeTable, "probe-table", "", "Table to probe (default: a generated name that cannot exist)")
}
