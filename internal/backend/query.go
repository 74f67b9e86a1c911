// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/url"
	"strconv"
	"strings"
)

// Query describes a column-projected select with an optional row limit.
type Query struct {
	// Columns to return; all columns when empty.
	Columns []string
	// Limit caps the number of rows; no cap when zero.
	Limit int
}

// Values renders q as REST query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	cols := make([]string, 0, len(q.Columns))
	for _, c := range q.Columns {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		v.Set("select", "*")
	} else {
		v.Set("select", strings.Join(cols, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
