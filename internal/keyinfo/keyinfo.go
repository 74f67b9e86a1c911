// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keyinfo decodes the claims of an anon key without verifying its
// signature. The signing secret lives on the server; the claims are only
// used to warn about keys that cannot work before a request is made.
package keyinfo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for keys that are not JWTs (e.g. opaque publishable keys).
var ErrNotJWT = errors.New("key is not a JWT")

// Roles carried by hosted-project keys.
const (
	RoleAnon        = "anon"
	RoleServiceRole = "service_role"
)

// Claims is the subset of anon key claims supacheck reports on.
type Claims struct {
	Role      string
	Ref       string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type keyClaims struct {
	Role string `json:"role"`
	Ref  string `json:"ref"`
	jwt.RegisteredClaims
}

// Inspect decodes key's claims.
func Inspect(key string) (Claims, error) {
	key = strings.TrimSpace(key)
	if strings.Count(key, ".") != 2 {
		return Claims{}, ErrNotJWT
	}

	var kc keyClaims
	if _, _, err := jwt.NewParser().ParseUnverified(key, &kc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	c := Claims{Role: kc.Role, Ref: kc.Ref, Issuer: kc.Issuer}
	if kc.IssuedAt != nil {
		c.IssuedAt = kc.IssuedAt.Time
	}
	if kc.ExpiresAt != nil {
		c.ExpiresAt = kc.ExpiresAt.Time
	}
	return c, nil
}

// Warnings lists problems with c for a project at projectURL, checked at now.
func (c Claims) Warnings(projectURL string, now time.Time) []string {
	var out []string
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		out = append(out, fmt.Sprintf("key expired on %s", c.ExpiresAt.Format(time.DateOnly)))
	}
	if c.Role == RoleServiceRole {
		out = append(out, "key has the service_role role; it bypasses row level security and must not be used client-side")
	}
	if c.Role != "" && c.Role != RoleAnon && c.Role != RoleServiceRole {
		out = append(out, fmt.Sprintf("unexpected key role %q", c.Role))
	}
	if c.Ref != "" {
		if host := hostOf(projectURL); host != "" && strings.HasSuffix(host, ".supabase.co") && !strings.HasPrefix(host, c.Ref+".") {
			out = append(out, fmt.Sprintf("key belongs to project %q but the URL points at %s", c.Ref, host))
		}
	}
	return out
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
