// Package db provides PostgreSQL storage for generation request logs.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/outreach-composer/internal/generation"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// RequestLog is one stored generation request
type RequestLog struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Status    string     `json:"status"`
	ModelName string     `json:"model_name"`
	LatencyMS int64      `json:"latency_ms"`
	Record    any        `json:"record,omitempty"`
}

// Append stores a generation audit record. DB implements
// generation.AuditSink so it can sit alongside the NDJSON file sink.
func (db *DB) Append(ctx context.Context, record generation.AuditRecord) error {
	id, err := uuid.Parse(record.RequestID)
	if err != nil {
		id = uuid.New()
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal request log: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO outreach_requests (id, status, model_name, latency_ms, record)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET status = $2, latency_ms = $4, record = $5`,
		id, record.Status, record.ModelName, record.LatencyMS, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save request log: %w", err)
	}
	return nil
}

// Get retrieves a stored request by ID
func (db *DB) Get(ctx context.Context, id uuid.UUID) (*RequestLog, error) {
	var entry RequestLog
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, created_at, status, model_name, latency_ms, record
		 FROM outreach_requests WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.Status, &entry.ModelName, &entry.LatencyMS, &payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get request log: %w", err)
	}
	if len(payload) > 0 {
		var record any
		if err := json.Unmarshal(payload, &record); err == nil {
			entry.Record = record
		}
	}
	return &entry, nil
}

// Recent retrieves the latest stored requests without their full records
func (db *DB) Recent(ctx context.Context, limit int) ([]RequestLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, status, model_name, latency_ms
		 FROM outreach_requests ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list request logs: %w", err)
	}
	defer rows.Close()

	var entries []RequestLog
	for rows.Next() {
		var entry RequestLog
		if err := rows.Scan(&entry.ID, &entry.CreatedAt, &entry.Status, &entry.ModelName, &entry.LatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan request log: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
