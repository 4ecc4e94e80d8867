package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SessionBlobVersion tags the persisted session JSON. Bump with a
// migration when the session shape changes.
const SessionBlobVersion = 1

// SessionRepo persists the single-learner session blob.
type SessionRepo struct {
	db *sql.DB
}

// Save upserts the session blob.
func (r *SessionRepo) Save(ctx context.Context, data json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, version, data, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET version = excluded.version, data = excluded.data, updated_at = excluded.updated_at`,
		SessionBlobVersion, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored session blob, or nil when none exists. A blob
// written with an unknown version is reported as an error so callers
// can decide between reset and upgrade.
func (r *SessionRepo) Load(ctx context.Context) (json.RawMessage, error) {
	var version int
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT version, data FROM sessions WHERE id = 1`).Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if version != SessionBlobVersion {
		return nil, fmt.Errorf("unsupported session blob version %d", version)
	}
	return json.RawMessage(data), nil
}

// Reset deletes the stored session.
func (r *SessionRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
