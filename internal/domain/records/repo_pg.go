package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errPoolNotConfigured = errors.New("database pool not configured")

type recordRepoPG struct{ pool *pgxpool.Pool }

// NewRecordRepoPG returns a Store backed by the health_records table.
// A nil pool is accepted so the server can come up without a database;
// every operation then reports ErrStorageUnavailable.
func NewRecordRepoPG(pool *pgxpool.Pool) Store {
	return &recordRepoPG{pool: pool}
}

const recordCols = `id, recorded_at, payload, created_at`

func scanRecord(row pgx.Row) (*StoredRecord, error) {
	var rec StoredRecord
	err := row.Scan(&rec.ID, &rec.RecordedAt, &rec.Payload, &rec.CreatedAt)
	return &rec, err
}

func (r *recordRepoPG) Insert(ctx context.Context, collection string, rec *StoredRecord) error {
	if r.pool == nil {
		return newStorageError("insert", errPoolNotConfigured)
	}
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO health_records (id, collection, recorded_at, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, collection, rec.RecordedAt, rec.Payload, rec.CreatedAt)
	if err != nil {
		return newStorageError("insert", err)
	}
	return nil
}

func (r *recordRepoPG) ListRecent(ctx context.Context, collection string, opts ListOptions) ([]*StoredRecord, error) {
	if r.pool == nil {
		return nil, newStorageError("list", errPoolNotConfigured)
	}

	query := `SELECT ` + recordCols + ` FROM health_records WHERE collection = $1`
	args := []interface{}{collection}
	idx := 2

	if opts.Since != nil {
		query += fmt.Sprintf(` AND recorded_at >= $%d`, idx)
		args = append(args, *opts.Since)
		idx++
	}

	// seq breaks timestamp ties in insertion order and orders the
	// timestamp-less variants by themselves.
	query += fmt.Sprintf(` ORDER BY recorded_at DESC NULLS LAST, seq DESC LIMIT $%d`, idx)
	args = append(args, opts.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, newStorageError("list", err)
	}
	defer rows.Close()

	items := make([]*StoredRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, newStorageError("list", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("list", err)
	}
	return items, nil
}
