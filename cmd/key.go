// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"os"

	"supacheck/cli/internal/keychain"
	"supacheck/cli/internal/keyinfo"
	"supacheck/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// keyCmd groups the keychain subcommands.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the anon key stored in the OS keychain",
	Long: `The anon key can be kept in the OS keychain instead of the env file. It is
used only when neither the environment nor the env file provides one.`,
}

// keySetCmd prompts for the anon key and saves it.
var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the anon key in the OS keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := terminal.ReadSecret("Enter anon key: ", os.Stdin)
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("anon key is required")
		}
		if _, err := keyinfo.Inspect(key); err != nil {
			pterm.Warning.Println("The key is not a JWT; storing it anyway.")
		}

		km, err := keychain.GetManager()
		if err != nil {
			pterm.Error.Println("Secure storage is not available on this system.")
			pterm.Println("   Keep the key in your env file instead.")
			return reported(err)
		}
		if err := km.SaveAnonKey(key); err != nil {
			pterm.Error.Println("Failed to save the key securely.")
			return reported(err)
		}

		pterm.Success.Println("Anon key saved to the OS keychain")
		return nil
	},
}

// keyClearCmd removes the stored anon key.
var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the anon key from the OS keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Error.Println("Secure storage is not available on this system.")
			return reported(err)
		}
		if err := km.ClearAnonKey(); err != nil {
			return err
		}
		pterm.Success.Println("Anon key removed from the OS keychain")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd, keyClearCmd)
}
