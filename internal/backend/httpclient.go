// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
	"time"
)

// RestPath is the mount point of the table API below the project URL.
const RestPath = "/rest/v1"

// UserAgent is sent with every request.
var UserAgent = "supacheck"

// HTTP implements API over the REST table endpoint.
type HTTP struct {
	// baseURL is the project URL without trailing slash (e.g., "https://abc.supabase.co")
	baseURL string
	// key is sent both as the apikey header and as a bearer token
	key string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client with the given base URL and key.
// A non-positive timeout falls back to 10 seconds.
func newHTTP(baseURL, key string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  &http.Client{Timeout: timeout},
	}
}

// setStandardHeaders applies the auth and content negotiation headers.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("apikey", h.key)
	req.Header.Set("Authorization", "Bearer "+h.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
}
