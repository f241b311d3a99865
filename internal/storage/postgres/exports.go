package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (p *PostgresStorage) CreateExport(ctx context.Context, meta *storage.ExportMeta) error {
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	meta.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO grocery_exports (id, owner_user_id, from_date, to_date, format,
		                             object_key, data, size_bytes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := p.pool.Exec(ctx, query,
		meta.ID, meta.OwnerUserID, meta.FromDate, meta.ToDate, meta.Format,
		meta.ObjectKey, meta.Data, meta.SizeBytes, meta.Status, meta.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}

	return nil
}

func (p *PostgresStorage) GetExport(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ExportMeta, error) {
	query := `
		SELECT id, owner_user_id, from_date, to_date, format, object_key, data, size_bytes, status, created_at
		FROM grocery_exports
		WHERE owner_user_id = $1 AND id = $2
	`

	var meta storage.ExportMeta
	err := p.pool.QueryRow(ctx, query, ownerUserID, id).Scan(
		&meta.ID,
		&meta.OwnerUserID,
		&meta.FromDate,
		&meta.ToDate,
		&meta.Format,
		&meta.ObjectKey,
		&meta.Data,
		&meta.SizeBytes,
		&meta.Status,
		&meta.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	return &meta, nil
}

func (p *PostgresStorage) ListExports(ctx context.Context, ownerUserID string, limit int) ([]storage.ExportMeta, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, owner_user_id, from_date, to_date, format, object_key, size_bytes, status, created_at
		FROM grocery_exports
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var result []storage.ExportMeta
	for rows.Next() {
		var meta storage.ExportMeta
		err := rows.Scan(
			&meta.ID,
			&meta.OwnerUserID,
			&meta.FromDate,
			&meta.ToDate,
			&meta.Format,
			&meta.ObjectKey,
			&meta.SizeBytes,
			&meta.Status,
			&meta.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		result = append(result, meta)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating exports: %w", rows.Err())
	}

	return result, nil
}
