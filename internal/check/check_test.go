// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package check

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"supacheck/cli/internal/backend"
	"supacheck/cli/internal/errors"
)

// mockAPI answers every query with body or err and records the last query.
type mockAPI struct {
	body      string
	err       error
	lastTable string
	lastQuery backend.Query
}

func (m *mockAPI) Select(ctx context.Context, table string, q backend.Query) ([]backend.Record, error) {
	var rows []backend.Record
	if err := m.SelectInto(ctx, table, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *mockAPI) SelectInto(_ context.Context, table string, q backend.Query, dst any) error {
	m.lastTable, m.lastQuery = table, q
	if m.err != nil {
		return m.err
	}
	return json.Unmarshal([]byte(m.body), dst)
}

func TestListUsers(t *testing.T) {
	api := &mockAPI{body: `[{"id":1,"email":"a@x.com","created_at":"2024-01-01"}]`}
	rows, err := ListUsers(context.Background(), api, "users")
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(rows) != 1 || rows[0]["created_at"] != "2024-01-01" {
		t.Errorf("rows = %v", rows)
	}
	if api.lastTable != "users" || len(api.lastQuery.Columns) != 0 || api.lastQuery.Limit != 0 {
		t.Errorf("query = %s %+v, want all columns and no limit", api.lastTable, api.lastQuery)
	}

	api = &mockAPI{err: &errors.E{Kind: errors.Unauthorized, Message: "Invalid API key"}}
	if _, err := ListUsers(context.Background(), api, "users"); !errors.Is(err, errors.Unauthorized) {
		t.Errorf("ListUsers() error = %v, want Unauthorized", err)
	}
}

func TestMatchEmail(t *testing.T) {
	body := `[{"id":1,"username":"a","email":"a@x.com","role":"user"},{"id":2,"username":"b","email":"b@x.com","role":"admin"}]`

	tests := []struct {
		name      string
		target    string
		wantFound bool
	}{
		{name: "found", target: "b@x.com", wantFound: true},
		{name: "not found", target: "c@x.com", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{body: body}
			res, err := MatchEmail(context.Background(), api, "users", tt.target)
			if err != nil {
				t.Fatalf("MatchEmail() error = %v", err)
			}
			if res.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", res.Found, tt.wantFound)
			}
			if res.Scanned != 2 {
				t.Errorf("Scanned = %d, want 2", res.Scanned)
			}
			if strings.Join(api.lastQuery.Columns, ",") != "id,username,email,role" {
				t.Errorf("columns = %v", api.lastQuery.Columns)
			}
			if tt.wantFound && res.User.Role != "admin" {
				t.Errorf("User = %+v", res.User)
			}
		})
	}
}

func TestMatchEmail_NonStringColumns(t *testing.T) {
	api := &mockAPI{body: `[{"id":1,"username":false,"email":3,"role":2},{"id":2,"username":"a","email":"a@x.com","role":2}]`}
	res, err := MatchEmail(context.Background(), api, "users", "a@x.com")
	if err != nil {
		t.Fatalf("MatchEmail() error = %v", err)
	}
	if !res.Found || res.Scanned != 2 {
		t.Errorf("Found = %v, Scanned = %d", res.Found, res.Scanned)
	}
	if res.User.Role != float64(2) {
		t.Errorf("Role = %#v, want 2 as decoded", res.User.Role)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus Status
		wantExists bool
		wantExit   int
	}{
		{
			name:       "missing table means authenticated",
			err:        &errors.E{Kind: errors.NotFound, Code: "42P01", Message: "relation does not exist"},
			wantStatus: Authenticated,
		},
		{
			name:       "jwt rejected",
			err:        &errors.E{Kind: errors.Unauthorized, Message: "JWT expired"},
			wantStatus: Rejected,
			wantExit:   1,
		},
		{
			name:       "network failure",
			err:        errors.Wrap(errors.Transport, "select", stderrors.New("connection refused")),
			wantStatus: Failed,
			wantExit:   1,
		},
		{
			name:       "unrecognized error no longer falls through",
			err:        &errors.E{Kind: errors.Unknown, Message: "bad gateway", Status: 502},
			wantStatus: Failed,
			wantExit:   1,
		},
		{
			name:       "untyped error",
			err:        stderrors.New("boom"),
			wantStatus: Failed,
			wantExit:   1,
		},
		{
			name:       "table exists",
			body:       `[]`,
			wantStatus: Authenticated,
			wantExists: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{body: tt.body, err: tt.err}
			v := Verify(context.Background(), api, "probe")
			if v.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", v.Status, tt.wantStatus)
			}
			if v.TableExists != tt.wantExists {
				t.Errorf("TableExists = %v, want %v", v.TableExists, tt.wantExists)
			}
			if v.Status.ExitCode() != tt.wantExit {
				t.Errorf("ExitCode() = %d, want %d", v.Status.ExitCode(), tt.wantExit)
			}
			if api.lastQuery.Limit != 1 || len(api.lastQuery.Columns) != 0 {
				t.Errorf("query = %+v, want all columns limited to 1", api.lastQuery)
			}
		})
	}
}

func TestProbeTableName(t *testing.T) {
	a, b := ProbeTableName(), ProbeTableName()
	if a == b {
		t.Error("probe names should differ between calls")
	}
	if !strings.HasPrefix(a, ProbePrefix) || strings.Contains(a, "-") {
		t.Errorf("ProbeTableName() = %q", a)
	}
}
