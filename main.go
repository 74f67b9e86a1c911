// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the supacheck CLI.
package main

import (
	"supacheck/cli/cmd"
)

func main() {
	cmd.Execute()
}
