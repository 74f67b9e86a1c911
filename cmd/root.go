// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for supacheck.
// It implements the diagnostic subcommands (users, match, verify) and the
// supporting ones (config, key, ping-db) using the Cobra CLI framework.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"supacheck/cli/internal/config"
	"supacheck/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	envFile     string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "supacheck",
	Short: "Inspect and verify connectivity to a hosted Supabase project",
	Long: `supacheck reads the project URL and anon key from a local env file and runs
read-only diagnostic queries against the project's REST table API.

Every command exits 0 on success and 1 on any detected failure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetVerbose(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("supacheck %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// reportedError marks a failure whose explanation has already been printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported wraps err so Execute exits 1 without printing it again.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Execute runs the CLI application and exits 1 on any error.
func Execute() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command with args and returns the exit code.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var rep *reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		} else {
			logging.Debugf("exit 1: %v", rep.err)
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Path to the KEY=VALUE env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
}
