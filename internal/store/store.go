// Package store provides optional Postgres-backed persistence of the last
// successful solution per session token, grounded on the teacher's
// board-record persistence in go/db.go. It exists purely as a restart and
// multi-instance convenience cache: the engine's own correctness never
// depends on it being configured.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Snapshot is the durable shape of a session: the rendered board cells and
// the cumulative hand string that produced them, serialized as JSON in a
// single column (the board's shape varies run to run, so there is no
// benefit to a normalized schema the way the teacher's fixed 15x15 Scrabble
// board has one).
type Snapshot struct {
	SessionToken string   `json:"session_token"`
	Board        [][]string `json:"board"`
	Hand         string   `json:"hand"`
}

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to connStr and verifies the connection with a ping,
// exactly as the teacher's NewDB does.
func Open(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("store: failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates the sessions table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			session_token TEXT PRIMARY KEY,
			board_data    JSONB NOT NULL,
			hand          TEXT NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("store: migrate failed: %w", err)
	}
	return nil
}

// Save upserts the snapshot for a session token.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	boardJSON, err := json.Marshal(snap.Board)
	if err != nil {
		return fmt.Errorf("store: failed to marshal board: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO sessions (session_token, board_data, hand, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_token) DO UPDATE
		SET board_data = EXCLUDED.board_data, hand = EXCLUDED.hand, updated_at = now()
	`, snap.SessionToken, boardJSON, snap.Hand)
	if err != nil {
		return fmt.Errorf("store: save failed: %w", err)
	}
	return nil
}

// Load fetches a session's snapshot, returning (nil, nil) if none exists.
func (s *Store) Load(ctx context.Context, sessionToken string) (*Snapshot, error) {
	var boardJSON []byte
	var hand string
	err := s.pool.QueryRow(ctx, `
		SELECT board_data, hand FROM sessions WHERE session_token = $1
	`, sessionToken).Scan(&boardJSON, &hand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: load failed: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(boardJSON, &snap.Board); err != nil {
		return nil, fmt.Errorf("store: failed to unmarshal board: %w", err)
	}
	snap.SessionToken = sessionToken
	snap.Hand = hand
	return &snap, nil
}

// Delete removes a session's snapshot.
func (s *Store) Delete(ctx context.Context, sessionToken string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE session_token = $1`, sessionToken)
	if err != nil {
		return fmt.Errorf("store: delete failed: %w", err)
	}
	return nil
}
