package memory

import (
	"context"
	"sort"
	"sync"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

// Catalogs is the in-memory reference data variant. The catalogs are
// read-only once constructed; the lock only guards map iteration order.
type Catalogs struct {
	mu     sync.RWMutex
	genres map[int64]models.Genre
	mpa    map[int64]models.Mpa
}

func NewCatalogs(genres []models.Genre, mpa []models.Mpa) *Catalogs {
	c := &Catalogs{
		genres: make(map[int64]models.Genre, len(genres)),
		mpa:    make(map[int64]models.Mpa, len(mpa)),
	}
	for _, g := range genres {
		c.genres[g.ID] = g
	}
	for _, m := range mpa {
		c.mpa[m.ID] = m
	}
	return c
}

// NewSeededCatalogs returns catalogs pre-loaded with the canonical
// genre and MPA reference rows.
func NewSeededCatalogs() *Catalogs {
	return NewCatalogs(
		[]models.Genre{
			{ID: 1, Name: "Комедия"},
			{ID: 2, Name: "Драма"},
			{ID: 3, Name: "Мультфильм"},
			{ID: 4, Name: "Триллер"},
			{ID: 5, Name: "Документальный"},
			{ID: 6, Name: "Боевик"},
		},
		[]models.Mpa{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		},
	)
}

func (c *Catalogs) ListGenres(ctx context.Context) ([]models.Genre, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	genres := make([]models.Genre, 0, len(c.genres))
	for _, g := range c.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (c *Catalogs) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.genres[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &g, nil
}

func (c *Catalogs) GetGenresByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[int64]struct{}, len(ids))
	genres := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		g, ok := c.genres[id]
		if !ok {
			return nil, storage.ErrNotFound
		}
		genres = append(genres, g)
	}
	return genres, nil
}

func (c *Catalogs) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mpa := make([]models.Mpa, 0, len(c.mpa))
	for _, m := range c.mpa {
		mpa = append(mpa, m)
	}
	sort.Slice(mpa, func(i, j int) bool { return mpa[i].ID < mpa[j].ID })
	return mpa, nil
}

func (c *Catalogs) GetMpa(ctx context.Context, id int64) (*models.Mpa, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.mpa[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}
