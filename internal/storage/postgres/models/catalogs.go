package models

import (
	"context"
	"errors"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogModel serves the genre and MPA reference tables. They are seeded
// out of band and read-only from the application's perspective.
type CatalogModel struct {
	DB *pgxpool.Pool
}

func (m *CatalogModel) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.Genre])
}

func (m *CatalogModel) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres WHERE id = $1", id)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.Genre])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (m *CatalogModel) GetGenresByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY id", unique)
	genres, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Genre])
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, storage.ErrNotFound
	}
	return genres, nil
}

func (m *CatalogModel) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM mpa ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.Mpa])
}

func (m *CatalogModel) GetMpa(ctx context.Context, id int64) (*models.Mpa, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM mpa WHERE id = $1", id)
	mpa, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.Mpa])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &mpa, nil
}
