// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"supacheck/cli/internal/backend"
	"supacheck/cli/internal/config"
	"supacheck/cli/internal/errors"
	"supacheck/cli/internal/httperrors"
	"supacheck/cli/internal/keychain"
	"supacheck/cli/internal/logging"
	"supacheck/cli/internal/report"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var spinnerFrames = []string{"-", "\\", "|", "/"}

// startInlineSpinner draws frames followed by text on one line of w until the
// returned stop function is called. Nothing is drawn when w is not a terminal.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
		})
	}
}

// keychainSecrets opens the OS keychain only when the anon key is not found
// elsewhere.
type keychainSecrets struct{}

func (keychainSecrets) LoadAnonKey() (string, error) {
	km, err := keychain.GetManager()
	if err != nil {
		logging.Debugf("keychain unavailable: %v", err)
		return "", err
	}
	return km.LoadAnonKey()
}

// session is everything a remote command needs.
type session struct {
	settings config.Settings
	prefs    config.Preferences
	api      backend.API
}

// openSession resolves configuration and builds the REST client.
// Configuration failures are printed here and returned as reported errors.
func openSession() (*session, error) {
	prefs, err := config.Load()
	if err != nil {
		pterm.Warning.Printf("Ignoring unreadable preferences: %v\n", err)
	}

	s, err := config.Resolve(config.Options{EnvFile: envFile, Secrets: keychainSecrets{}})
	if err != nil {
		report.ConfigError(err)
		return nil, reported(err)
	}
	logging.Debugf("url %s from %s, key %s from %s", s.URL, s.URLFrom, logging.MaskKey(s.AnonKey), s.AnonKeyFrom)

	return &session{
		settings: s,
		prefs:    prefs,
		api:      backend.New(s.URL, s.AnonKey, prefs.Timeout()),
	}, nil
}

// withTimeout returns a context bounded by the preference timeout.
func (s *session) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.prefs.Timeout())
}

// queryFailed prints guidance for a failed query and returns a reported error.
func (s *session) queryFailed(action string, err error) error {
	if httperrors.Applies(err) {
		httperrors.Print(err, action, httperrors.ExtractHostFromURL(s.settings.URL))
		return reported(err)
	}
	switch errors.KindOf(err) {
	case errors.Unauthorized:
		pterm.Error.Printf("The service rejected the anon key while %s\n", action)
		pterm.Println("   " + logging.Mask(err.Error()))
		pterm.Println("   Run 'supacheck verify' for details.")
	case errors.NotFound:
		pterm.Error.Printf("Table not found while %s\n", action)
		pterm.Println("   " + logging.Mask(err.Error()))
		pterm.Println("   Set the table with --table or 'supacheck config set users_table <name>'.")
	default:
		pterm.Error.Println(logging.PresentError(action, err))
	}
	return reported(err)
}
