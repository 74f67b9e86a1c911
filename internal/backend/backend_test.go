// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supacheck/cli/internal/errors"
)

func TestQuery_Values(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{name: "all columns", q: Query{}, want: "select=%2A"},
		{name: "projected", q: Query{Columns: []string{"id", " username", "email", "role"}}, want: "select=id%2Cusername%2Cemail%2Crole"},
		{name: "limited", q: Query{Limit: 1}, want: "limit=1&select=%2A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Values().Encode(); got != tt.want {
				t.Errorf("Values() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTP_Select(t *testing.T) {
	var gotPath, gotSelect, gotLimit, gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSelect = r.URL.Query().Get("select")
		gotLimit = r.URL.Query().Get("limit")
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"email":"a@x.com"},{"id":2,"email":"b@x.com","extra":null}]`))
	}))
	defer srv.Close()

	be := New(srv.URL+"/", "abc.def.ghi", time.Second)
	rows, err := be.Select(context.Background(), "users", Query{Columns: []string{"id", "email"}})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if gotPath != "/rest/v1/users" {
		t.Errorf("path = %q", gotPath)
	}
	if gotSelect != "id,email" || gotLimit != "" {
		t.Errorf("select = %q, limit = %q", gotSelect, gotLimit)
	}
	if gotKey != "abc.def.ghi" || gotAuth != "Bearer abc.def.ghi" {
		t.Errorf("apikey = %q, authorization = %q", gotKey, gotAuth)
	}
	if len(rows) != 2 || rows[1]["email"] != "b@x.com" {
		t.Errorf("rows = %v", rows)
	}
	if _, ok := rows[1]["extra"]; !ok {
		t.Error("null column dropped from record")
	}
}

func TestHTTP_SelectErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind errors.Kind
		wantCode string
	}{
		{
			name:     "undefined table",
			status:   http.StatusNotFound,
			body:     `{"code":"42P01","details":null,"hint":null,"message":"relation \"public.probe\" does not exist"}`,
			wantKind: errors.NotFound,
			wantCode: "42P01",
		},
		{
			name:     "schema cache miss",
			status:   http.StatusNotFound,
			body:     `{"code":"PGRST205","message":"Could not find the table 'public.probe' in the schema cache"}`,
			wantKind: errors.NotFound,
			wantCode: "PGRST205",
		},
		{
			name:     "expired jwt",
			status:   http.StatusUnauthorized,
			body:     `{"code":"PGRST301","message":"JWT expired"}`,
			wantKind: errors.Unauthorized,
			wantCode: "PGRST301",
		},
		{
			name:     "gateway invalid key",
			status:   http.StatusUnauthorized,
			body:     `{"message":"Invalid API key","hint":"Double check your Supabase anon or service_role API key."}`,
			wantKind: errors.Unauthorized,
		},
		{
			name:     "jwt message without code",
			status:   http.StatusBadRequest,
			body:     `{"message":"invalid JWT: unable to parse or verify signature"}`,
			wantKind: errors.Unauthorized,
		},
		{
			name:     "html 404 from a plain web server",
			status:   http.StatusNotFound,
			body:     `<html>404 page not found</html>`,
			wantKind: errors.Unknown,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `upstream connect error`,
			wantKind: errors.Unknown,
		},
		{
			name:     "empty body",
			status:   http.StatusTeapot,
			body:     ``,
			wantKind: errors.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "k", time.Second).Select(context.Background(), "probe", Query{Limit: 1})
			if err == nil {
				t.Fatal("expected error")
			}
			e, ok := err.(*errors.E)
			if !ok {
				t.Fatalf("error type = %T, want *errors.E", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", e.Code, tt.wantCode)
			}
			if e.Status != tt.status {
				t.Errorf("Status = %d, want %d", e.Status, tt.status)
			}
			if e.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestHTTP_SelectTransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	_, err = New("http://"+addr, "k", time.Second).Select(context.Background(), "users", Query{})
	if !errors.Is(err, errors.Transport) {
		t.Fatalf("expected Transport error, got %v", err)
	}
}

func TestHTTP_SelectEmptyTable(t *testing.T) {
	_, err := New("http://127.0.0.1:1", "k", time.Second).Select(context.Background(), " ", Query{})
	if !errors.Is(err, errors.ConfigInvalid) {
		t.Fatalf("expected ConfigInvalid, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status  int
		code    string
		message string
		want    errors.Kind
	}{
		{http.StatusBadRequest, CodeUndefinedTable, "relation does not exist", errors.NotFound},
		{http.StatusOK, CodeJWTMissing, "", errors.Unauthorized},
		{http.StatusForbidden, "42501", "permission denied for table users", errors.Unauthorized},
		{http.StatusBadRequest, "22P02", "invalid input syntax", errors.Unknown},
		{http.StatusBadRequest, "", "JWT could not be decoded", errors.Unauthorized},
		{http.StatusBadGateway, "", "bad gateway", errors.Unknown},
		{http.StatusNotFound, "", "<html>404 page not found</html>", errors.Unknown},
		{http.StatusNotFound, "", "Not Found", errors.Unknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.status, tt.code, tt.message); got != tt.want {
			t.Errorf("Classify(%d, %q, %q) = %v, want %v", tt.status, tt.code, tt.message, got, tt.want)
		}
	}
}
