// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pterm/pterm"
)

var verbose atomic.Bool

// VerboseEnv enables debug output when set to "1".
const VerboseEnv = "SUPACHECK_VERBOSE"

func init() {
	if os.Getenv(VerboseEnv) == "1" {
		verbose.Store(true)
	}
}

// SetVerbose toggles debug output.
func SetVerbose(on bool) { verbose.Store(on) }

// Verbose reports whether debug output is enabled.
func Verbose() bool { return verbose.Load() }

// Debugf prints a masked [DEBUG] line when verbose mode is on.
func Debugf(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	pterm.Println(pterm.Gray("[DEBUG] " + Mask(fmt.Sprintf(format, args...))))
}

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}
