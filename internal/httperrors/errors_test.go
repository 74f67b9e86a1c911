package httperrors

import (
	"context"
	"crypto/x509"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"supacheck/cli/internal/errors"
)

func transport(inner error) error {
	return errors.Wrap(errors.Transport, "request failed",
		&url.Error{Op: "Get", URL: "https://abc.supabase.co/rest/v1/users", Err: inner})
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Cause
	}{
		{"deadline", transport(context.DeadlineExceeded), CauseTimeout},
		{"dns", transport(&net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "abc.supabase.co", IsNotFound: true}}), CauseDNS},
		{"refused", transport(&net.OpError{Op: "dial", Net: "tcp", Err: &net.OpError{Err: syscall.ECONNREFUSED}}), CauseRefused},
		{"unknown authority", transport(x509.UnknownAuthorityError{}), CauseTLS},
		{"hostname mismatch", transport(x509.HostnameError{Host: "abc.supabase.co"}), CauseTLS},
		{"service unavailable", &errors.E{Kind: errors.Unknown, Status: http.StatusServiceUnavailable, Message: "upstream"}, CauseServer},
		{"port in text is not a status", transport(stderrors.New("dial tcp 127.0.0.1:5000: i/o error")), CauseOther},
		{"nil", nil, CauseOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diagnose(tt.err); got != tt.want {
				t.Errorf("Diagnose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplies(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{transport(stderrors.New("eof")), true},
		{&errors.E{Kind: errors.Unknown, Status: http.StatusBadGateway}, true},
		{fmt.Errorf("list users: %w", &errors.E{Kind: errors.Unknown, Status: http.StatusServiceUnavailable}), true},
		{&errors.E{Kind: errors.Unknown, Status: http.StatusBadRequest}, false},
		{&errors.E{Kind: errors.Unauthorized, Status: http.StatusUnauthorized}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := Applies(tt.err); got != tt.want {
			t.Errorf("Applies(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExplain_ServerError(t *testing.T) {
	err := fmt.Errorf("verify: %w", &errors.E{Kind: errors.Unknown, Status: http.StatusServiceUnavailable, Message: "no healthy upstream"})
	g := Explain(err, "verifying the connection", "abc.supabase.co")
	if g.Cause != CauseServer {
		t.Fatalf("Cause = %v, want server", g.Cause)
	}
	if !strings.Contains(g.Title, "Server error from abc.supabase.co") {
		t.Errorf("Title = %q", g.Title)
	}
	if len(g.Hints) == 0 {
		t.Error("no hints for server error")
	}
}

func TestExtractHostFromURL(t *testing.T) {
	tests := map[string]string{
		"https://abc.supabase.co":     "abc.supabase.co",
		"http://127.0.0.1:54321/rest": "127.0.0.1:54321",
		"not a url":                   "server",
	}
	for in, want := range tests {
		if got := ExtractHostFromURL(in); got != want {
			t.Errorf("ExtractHostFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
