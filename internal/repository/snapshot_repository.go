package repository // repository defines data access for tenant snapshots

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SnapshotMeta describes one archived snapshot without its payload.
type SnapshotMeta struct {
	ID        uint64    // primary key
	Namespace string    // tenant namespace the snapshot belongs to
	TakenAt   time.Time // when the snapshot was archived
	Size      int       // payload size in bytes
}

// SnapshotRepo archives serialized tenant datasets. Each row is one full
// dataset for one namespace; restores read the most recent row.
type SnapshotRepo struct {
	db *sql.DB
}

// NewSnapshotRepo constructs a SnapshotRepo with the given DB handle.
func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS tenant_snapshots (
	             id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	             namespace VARCHAR(64) NOT NULL,
	             taken_at DATETIME NOT NULL,
	             payload MEDIUMBLOB NOT NULL,
	             KEY idx_snapshots_ns_taken (namespace, taken_at)
	           )`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Save archives one snapshot payload for a namespace.
func (r *SnapshotRepo) Save(ctx context.Context, namespace string, takenAt time.Time, payload []byte) error {
	const q = `INSERT INTO tenant_snapshots (namespace, taken_at, payload) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, namespace, takenAt.UTC(), payload)
	return err
}

// Latest returns the most recent snapshot payload for a namespace.
func (r *SnapshotRepo) Latest(ctx context.Context, namespace string) ([]byte, time.Time, error) {
	const q = `SELECT payload, taken_at FROM tenant_snapshots
	           WHERE namespace = ?
	           ORDER BY taken_at DESC, id DESC
	           LIMIT 1`
	var payload []byte
	var takenAt time.Time
	err := r.db.QueryRowContext(ctx, q, namespace).Scan(&payload, &takenAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrSnapshotNotFound
		}
		return nil, time.Time{}, err
	}
	return payload, takenAt, nil
}

// History lists snapshot metadata for a namespace, newest first.
func (r *SnapshotRepo) History(ctx context.Context, namespace string, limit int) ([]SnapshotMeta, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const q = `SELECT id, namespace, taken_at, OCTET_LENGTH(payload)
	           FROM tenant_snapshots
	           WHERE namespace = ?
	           ORDER BY taken_at DESC, id DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, namespace, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SnapshotMeta
	for rows.Next() {
		var m SnapshotMeta
		if err := rows.Scan(&m.ID, &m.Namespace, &m.TakenAt, &m.Size); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Prune deletes snapshots for a namespace older than keep, returning the
// number of rows removed.
func (r *SnapshotRepo) Prune(ctx context.Context, namespace string, keep time.Duration) (int64, error) {
	const q = `DELETE FROM tenant_snapshots WHERE namespace = ? AND taken_at < ?`
	res, err := r.db.ExecContext(ctx, q, namespace, time.Now().UTC().Add(-keep))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
