// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains failed requests to the hosted service: the ones
// that never got an answer and the ones the service answered with a 5xx.
package httperrors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"syscall"

	"supacheck/cli/internal/errors"

	"github.com/pterm/pterm"
)

// Cause is the broad reason a request failed.
type Cause int

const (
	CauseOther Cause = iota
	CauseTimeout
	CauseDNS
	CauseRefused
	CauseTLS
	CauseServer
)

func (c Cause) String() string {
	switch c {
	case CauseTimeout:
		return "timeout"
	case CauseDNS:
		return "dns"
	case CauseRefused:
		return "refused"
	case CauseTLS:
		return "tls"
	case CauseServer:
		return "server"
	default:
		return "other"
	}
}

// Applies reports whether err is a failure this package explains: a
// transport error or a 5xx answer.
func Applies(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, errors.Transport) || serverStatus(err)
}

func serverStatus(err error) bool {
	var e *errors.E
	return stderrors.As(err, &e) && e.Status >= 500
}

// Diagnose walks err's chain for a typed cause.
func Diagnose(err error) Cause {
	if err == nil {
		return CauseOther
	}
	if serverStatus(err) {
		return CauseServer
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return CauseDNS
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return CauseTimeout
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return CauseTimeout
	}
	if stderrors.Is(err, syscall.ECONNREFUSED) {
		return CauseRefused
	}
	if isTLS(err) {
		return CauseTLS
	}
	return CauseOther
}

func isTLS(err error) bool {
	var (
		verifyErr *tls.CertificateVerificationError
		headerErr tls.RecordHeaderError
		authErr   x509.UnknownAuthorityError
		hostErr   x509.HostnameError
		invalid   x509.CertificateInvalidError
	)
	return stderrors.As(err, &verifyErr) ||
		stderrors.As(err, &headerErr) ||
		stderrors.As(err, &authErr) ||
		stderrors.As(err, &hostErr) ||
		stderrors.As(err, &invalid)
}

// Guidance is what the user is told about a failure.
type Guidance struct {
	Cause Cause
	Title string
	Hints []string
}

// Explain builds guidance for a failure while doing action against host.
func Explain(err error, action, host string) Guidance {
	g := Guidance{Cause: Diagnose(err)}
	switch g.Cause {
	case CauseTimeout:
		g.Title = fmt.Sprintf("⏱️  %s did not answer in time while %s", host, action)
		g.Hints = []string{
			"Raise the limit: supacheck config set timeout_seconds <n>",
			"A paused project takes a while to wake up; try again shortly",
			"Check for a firewall or proxy holding the connection",
		}
	case CauseDNS:
		g.Title = fmt.Sprintf("🌐 Cannot resolve %s while %s", host, action)
		g.Hints = []string{
			"Check the spelling of the project URL in your env file",
			"Check that the project has not been deleted",
			"Check your internet connection",
		}
	case CauseRefused:
		g.Title = fmt.Sprintf("🚫 %s refused the connection while %s", host, action)
		g.Hints = []string{
			"A local stack at this address is not running",
			"Or the port in the project URL is wrong",
		}
	case CauseTLS:
		g.Title = fmt.Sprintf("🔒 Secure connection to %s failed while %s", host, action)
		g.Hints = []string{
			"Check the system clock",
			"A proxy may be replacing the server certificate",
			"Use http:// only for a local stack",
		}
	case CauseServer:
		g.Title = fmt.Sprintf("⚠️  Server error from %s while %s", host, action)
		g.Hints = []string{
			"The project is restarting, paused or overloaded",
			"Check the project status in the provider dashboard",
			"Try again in a few minutes",
		}
	default:
		g.Title = fmt.Sprintf("❌ Cannot reach %s while %s", host, action)
		g.Hints = []string{
			"Check your internet connection",
			fmt.Sprintf("Check that %s is reachable from this network", host),
		}
	}
	return g
}

// Print writes the guidance for err to the console.
func Print(err error, action, host string) {
	g := Explain(err, action, host)
	pterm.Println(g.Title)
	pterm.Println()
	for _, h := range g.Hints {
		pterm.Println("  • " + h)
	}
	pterm.Println()
	pterm.Debug.Printf("Technical details: %v\n", err)
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
