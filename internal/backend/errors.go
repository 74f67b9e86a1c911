// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"supacheck/cli/internal/errors"
)

// Error codes returned by the REST layer and by Postgres underneath it.
const (
	CodeJWTInvalid     = "PGRST301"
	CodeJWTMissing     = "PGRST302"
	CodeJWTClaims      = "PGRST303"
	CodeUndefinedTable = "42P01"
	CodeSchemaCache    = "PGRST205"
)

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 64 << 10

// decodeError reads an error response and classifies it.
func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	code, message := parseErrorBody(b)
	if message == "" {
		message = strings.TrimSpace(string(b))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &errors.E{
		Kind:    Classify(resp.StatusCode, code, message),
		Message: message,
		Code:    code,
		Status:  resp.StatusCode,
	}
}

// parseErrorBody extracts the code and message from an error payload.
// Be liberal in what we accept: the REST layer, the API gateway and the auth
// service all use slightly different shapes.
func parseErrorBody(b []byte) (code, message string) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return "", ""
	}
	for _, k := range []string{"code", "error_code", "status_code"} {
		switch v := raw[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				code = strings.TrimSpace(v)
			}
		case float64:
			code = fmt.Sprintf("%.0f", v)
		}
		if code != "" {
			break
		}
	}
	for _, k := range []string{"message", "msg", "error_description", "error"} {
		if v, ok := raw[k].(string); ok && strings.TrimSpace(v) != "" {
			message = strings.TrimSpace(v)
			break
		}
	}
	return code, message
}

// Classify maps a failed response to an error Kind.
// Known codes win over the HTTP status; the status wins over the message.
// Only the table codes yield NotFound: a bare 404 may come from any web
// server at a mistyped URL, so it stays Unknown. The message is consulted
// last, for gateway answers without a known code, where a rejected key is
// reported as text mentioning the JWT or API key.
func Classify(status int, code, message string) errors.Kind {
	switch code {
	case CodeJWTInvalid, CodeJWTMissing, CodeJWTClaims:
		return errors.Unauthorized
	case CodeUndefinedTable, CodeSchemaCache:
		return errors.NotFound
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return errors.Unauthorized
	}

	lower := strings.ToLower(message)
	if strings.Contains(lower, "jwt") || strings.Contains(lower, "api key") || strings.Contains(lower, "apikey") {
		return errors.Unauthorized
	}
	return errors.Unknown
}
