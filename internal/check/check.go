// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package check runs the three diagnostic queries: listing the user table,
// looking up one email among its rows, and probing whether a URL/key pair is
// accepted by the service.
package check

import (
	"context"
	"fmt"
	"strings"

	"supacheck/cli/internal/backend"
	"supacheck/cli/internal/errors"
	"supacheck/cli/internal/users"

	"github.com/google/uuid"
)

// ProbePrefix starts every generated probe table name.
const ProbePrefix = "supacheck_probe_"

// ListUsers selects every column of every row in table.
func ListUsers(ctx context.Context, api backend.API, table string) ([]backend.Record, error) {
	rows, err := api.Select(ctx, table, backend.Query{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}

// MatchResult is the outcome of MatchEmail.
type MatchResult struct {
	Target  string
	Scanned int
	User    users.User
	Found   bool
}

// MatchEmail selects the identity columns of table and looks for target.
func MatchEmail(ctx context.Context, api backend.API, table, target string) (MatchResult, error) {
	res := MatchResult{Target: target}
	var list []users.User
	if err := api.SelectInto(ctx, table, backend.Query{Columns: users.Columns}, &list); err != nil {
		return res, fmt.Errorf("match in %s: %w", table, err)
	}
	res.Scanned = len(list)
	res.User, res.Found = users.FindByEmail(list, target)
	return res, nil
}

// Status is the classified outcome of a Verify probe.
type Status int

const (
	// Authenticated means the service accepted the key.
	Authenticated Status = iota
	// Rejected means the service refused the key.
	Rejected
	// Failed means the probe could not tell (network trouble or an unexpected answer).
	Failed
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return "failed"
	}
}

// ExitCode maps the status to the process exit code: 0 only when authenticated.
func (s Status) ExitCode() int {
	if s == Authenticated {
		return 0
	}
	return 1
}

// Verdict is the result of Verify.
type Verdict struct {
	Status Status
	Table  string
	// TableExists is true when the probe table unexpectedly returned rows or an empty set.
	TableExists bool
	Err         error
}

// Verify queries one row of probeTable. A missing table still proves the key
// was accepted, since the service only reports missing tables to
// authenticated callers.
func Verify(ctx context.Context, api backend.API, probeTable string) Verdict {
	v := Verdict{Table: probeTable}
	_, err := api.Select(ctx, probeTable, backend.Query{Limit: 1})
	if err == nil {
		v.Status = Authenticated
		v.TableExists = true
		return v
	}
	v.Err = err

	switch errors.KindOf(err) {
	case errors.NotFound:
		v.Status = Authenticated
	case errors.Unauthorized:
		v.Status = Rejected
	default:
		v.Status = Failed
	}
	return v
}

// ProbeTableName returns a table name that will not exist in any project.
func ProbeTableName() string {
	return ProbePrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
