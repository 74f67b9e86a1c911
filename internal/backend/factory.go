// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "time"

// New creates a backend API for the project at baseURL authenticated with key.
// No network activity happens until the first query.
func New(baseURL, key string, timeout time.Duration) API {
	return newHTTP(baseURL, key, timeout)
}
