package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/ports"
)

// SQLSongRepository implements SongRepository on postgres or sqlite3.
// Insertion order is kept by the seq column.
type SQLSongRepository struct {
	db *sqlx.DB
}

// NewSQLSongRepository creates a new SQL song repository
func NewSQLSongRepository(db *sqlx.DB) *SQLSongRepository {
	return &SQLSongRepository{db: db}
}

var _ ports.SongRepository = (*SQLSongRepository)(nil)

func (r *SQLSongRepository) List(ctx context.Context) ([]*entities.Song, error) {
	query := `SELECT id, cancion, artista, tono FROM canciones ORDER BY seq`

	songs := []*entities.Song{}
	if err := r.db.SelectContext(ctx, &songs, query); err != nil {
		return nil, entities.NewStorageError("list", err)
	}

	return songs, nil
}

func (r *SQLSongRepository) GetByID(ctx context.Context, id string) (*entities.Song, error) {
	query := r.db.Rebind(`SELECT id, cancion, artista, tono FROM canciones WHERE id = ?`)

	var song entities.Song
	err := r.db.GetContext(ctx, &song, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSongNotFound
		}
		return nil, entities.NewStorageError("get", err)
	}

	return &song, nil
}

func (r *SQLSongRepository) Create(ctx context.Context, song *entities.Song) error {
	query := r.db.Rebind(`
		INSERT INTO canciones (id, cancion, artista, tono)
		VALUES (?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, song.ID, song.Cancion, song.Artista, song.Tono); err != nil {
		return entities.NewStorageError("create", err)
	}

	return nil
}

func (r *SQLSongRepository) Update(ctx context.Context, id string, patch entities.SongPatch) (*entities.Song, error) {
	query := r.db.Rebind(`
		UPDATE canciones SET
			cancion = COALESCE(?, cancion),
			artista = COALESCE(?, artista),
			tono = COALESCE(?, tono)
		WHERE id = ?
		RETURNING id, cancion, artista, tono`)

	var song entities.Song
	err := r.db.GetContext(ctx, &song, query,
		nullString(patch.Cancion), nullString(patch.Artista), nullString(patch.Tono), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSongNotFound
		}
		return nil, entities.NewStorageError("update", err)
	}

	return &song, nil
}

func (r *SQLSongRepository) Delete(ctx context.Context, id string) (*entities.Song, error) {
	query := r.db.Rebind(`DELETE FROM canciones WHERE id = ? RETURNING id, cancion, artista, tono`)

	var song entities.Song
	err := r.db.GetContext(ctx, &song, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSongNotFound
		}
		return nil, entities.NewStorageError("delete", err)
	}

	return &song, nil
}

func (r *SQLSongRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM canciones`); err != nil {
		return 0, entities.NewStorageError("count", err)
	}
	return count, nil
}

func (r *SQLSongRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return entities.NewStorageError("ping", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
