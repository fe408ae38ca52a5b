package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fortuna/dugout/internal/store"
)

// ErrNoSnapshot is returned when nothing was archived for a key
var ErrNoSnapshot = errors.New("no snapshot archived")

// SnapshotRepository archives stats service responses
type SnapshotRepository struct {
	db *store.Database
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *store.Database) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores body as the latest snapshot of key. The body is sent as text;
// pq would encode a []byte as bytea, which jsonb rejects.
func (r *SnapshotRepository) Save(ctx context.Context, key string, body []byte) error {
	query := `
		INSERT INTO api_snapshots (key, body, fetched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			body = EXCLUDED.body,
			fetched_at = EXCLUDED.fetched_at
	`

	if _, err := r.db.DB().ExecContext(ctx, query, key, string(body)); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", key, err)
	}
	return nil
}

// Latest returns the archived body of key
func (r *SnapshotRepository) Latest(ctx context.Context, key string) ([]byte, error) {
	snap, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return snap.Body, nil
}

// Get returns the archived snapshot of key with its fetch time
func (r *SnapshotRepository) Get(ctx context.Context, key string) (*store.Snapshot, error) {
	query := `
		SELECT key, body, fetched_at
		FROM api_snapshots
		WHERE key = $1
	`

	snap := &store.Snapshot{}
	var body []byte
	err := r.db.DB().QueryRowContext(ctx, query, key).Scan(&snap.Key, &body, &snap.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot %s: %w", key, err)
	}
	snap.Body = body
	return snap, nil
}
