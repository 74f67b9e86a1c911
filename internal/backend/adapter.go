// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend talks to the hosted service's REST table interface.
// It issues read-only select queries and turns every failure into a typed
// *errors.E whose Kind tells callers whether the key was rejected, the table
// is missing, the network failed, or something else went wrong.
package backend

import "context"

// Record is one row as returned by the service. Values are left exactly as
// decoded from JSON.
type Record map[string]any

// API defines the backend operations the CLI depends on.
// Implementations may call the real REST endpoint or provide mocks for tests.
type API interface {
	// Select returns the rows of table matching q.
	Select(ctx context.Context, table string, q Query) ([]Record, error)
	// SelectInto decodes the rows of table matching q into dst, which must be
	// a pointer to a slice.
	SelectInto(ctx context.Context, table string, q Query, dst any) error
}
