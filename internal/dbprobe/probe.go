// Copyright (c) 2025 Supacheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dbprobe checks a direct Postgres connection to the project's
// database, bypassing the REST gateway, and inspects the user table there.
package dbprobe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Column describes one column of an inspected table.
type Column struct {
	Name     string
	DataType string
	Nullable bool
}

// Report is what Run found.
type Report struct {
	ServerVersion string
	Table         string
	TableExists   bool
	Columns       []Column
	RowEstimate   int64
}

// Prober runs read-only inspection queries over a connection pool.
type Prober struct {
	pool *pgxpool.Pool
}

// Open creates a pool for dsn and pings it.
func Open(ctx context.Context, dsn string) (*Prober, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Prober{pool: pool}, nil
}

// Close releases the pool.
func (p *Prober) Close() {
	p.pool.Close()
}

// Run reports the server version and the shape of tableName.
// The tableName can be either "table" or "schema.table".
func (p *Prober) Run(ctx context.Context, tableName string) (*Report, error) {
	r := &Report{Table: tableName}

	if err := p.pool.QueryRow(ctx, "SHOW server_version").Scan(&r.ServerVersion); err != nil {
		return nil, fmt.Errorf("server version: %w", err)
	}

	schema, table := parseTableName(tableName)
	cols, err := p.columns(ctx, schema, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return r, nil
	}
	r.TableExists = true
	r.Columns = cols

	// reltuples is an estimate; -1 means never analyzed.
	err = p.pool.QueryRow(ctx, `
		SELECT c.reltuples::bigint
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2
	`, schema, table).Scan(&r.RowEstimate)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("row estimate: %w", err)
	}
	return r, nil
}

func (p *Prober) columns(ctx context.Context, schema, table string) ([]Column, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable = 'YES'
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("columns of %s.%s: %w", schema, table, err)
	}

	cols, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Column, error) {
		var c Column
		err := row.Scan(&c.Name, &c.DataType, &c.Nullable)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("columns of %s.%s: %w", schema, table, err)
	}
	return cols, nil
}

// parseTableName splits a table name into schema and table components.
// If no schema is specified, it defaults to "public".
func parseTableName(tableName string) (schema string, table string) {
	parts := strings.SplitN(strings.TrimSpace(tableName), ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "public", parts[0]
}
