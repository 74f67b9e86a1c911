// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"supacheck/cli/internal/errors"
	"supacheck/cli/internal/logging"
)

// Select calls GET /rest/v1/{table} and returns the decoded rows.
func (h *HTTP) Select(ctx context.Context, table string, q Query) ([]Record, error) {
	var rows []Record
	if err := h.SelectInto(ctx, table, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SelectInto calls GET /rest/v1/{table} and decodes the JSON array into dst.
// Any non-2xx answer is returned as a classified *errors.E.
func (h *HTTP) SelectInto(ctx context.Context, table string, q Query, dst any) error {
	table = strings.TrimSpace(table)
	if table == "" {
		return errors.New(errors.ConfigInvalid, "table name is empty")
	}

	endpoint := h.baseURL + RestPath + "/" + url.PathEscape(table) + "?" + q.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid, "cannot build request", err)
	}
	h.setStandardHeaders(req)

	logging.Debugf("GET %s", endpoint)
	resp, err := h.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.Transport, fmt.Sprintf("select from %s", table), err)
	}
	defer resp.Body.Close()
	logging.Debugf("%s -> %d", table, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.Wrap(errors.Unknown, fmt.Sprintf("unexpected response from %s", table), err)
	}
	return nil
}
