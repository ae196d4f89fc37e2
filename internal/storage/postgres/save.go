package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/storage"
)

// SaveRepository keeps one JSONB row per save name.
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the saves
// table migrated.
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Save inserts or replaces the document stored under name.
//
// Precondition: name passes storage.ValidateSaveName and data is a JSON
// document; no query runs otherwise.
// Postcondition: The row keeps its ID across overwrites; updated_at moves.
func (r *SaveRepository) Save(ctx context.Context, name string, data []byte) error {
	if err := storage.ValidateSaveName(name); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO saves (id, name, data, version)
		VALUES ($1, $2, $3::jsonb, COALESCE(($3::jsonb ->> 'version')::int, 0))
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data, version = EXCLUDED.version, updated_at = NOW()`,
		uuid.New(), name, string(data),
	)
	if err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("upserting save %q", name))
	}
	return nil
}

// Load returns the document stored under name.
//
// Postcondition: Returns a not-found error when no row matches.
func (r *SaveRepository) Load(ctx context.Context, name string) ([]byte, error) {
	if err := storage.ValidateSaveName(name); err != nil {
		return nil, err
	}
	var data string
	err := r.db.QueryRow(ctx, `SELECT data::text FROM saves WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, gameerr.Newf(gameerr.KindNotFound, "no save named %q", name)
	}
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("querying save %q", name))
	}
	return []byte(data), nil
}

// List returns every save ordered by name.
func (r *SaveRepository) List(ctx context.Context) ([]storage.SaveInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, octet_length(data::text), updated_at
		FROM saves ORDER BY name ASC`)
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "listing saves")
	}
	defer rows.Close()

	var out []storage.SaveInfo
	for rows.Next() {
		var info storage.SaveInfo
		if err := rows.Scan(&info.Name, &info.Size, &info.UpdatedAt); err != nil {
			return nil, gameerr.Wrap(gameerr.KindPersistence, err, "scanning save row")
		}
		info.UpdatedAt = info.UpdatedAt.UTC()
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "listing saves")
	}
	return out, nil
}

// Delete removes the save under name.
func (r *SaveRepository) Delete(ctx context.Context, name string) error {
	if err := storage.ValidateSaveName(name); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM saves WHERE name = $1`, name)
	if err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("deleting save %q", name))
	}
	if tag.RowsAffected() == 0 {
		return gameerr.Newf(gameerr.KindNotFound, "no save named %q", name)
	}
	return nil
}
