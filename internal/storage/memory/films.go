package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

type filmRecord struct {
	film  models.Film
	likes map[int64]struct{}
}

// Films is the in-memory film storage variant. Ids are allocated from a
// counter scoped to the instance, so independent storages never collide.
type Films struct {
	mu     sync.RWMutex
	films  map[int64]*filmRecord
	nextID int64
}

func NewFilms() *Films {
	return &Films{
		films:  make(map[int64]*filmRecord),
		nextID: 1,
	}
}

func (s *Films) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	film.ID = s.nextID
	s.nextID++
	rec := &filmRecord{
		film:  cloneFilm(film),
		likes: make(map[int64]struct{}),
	}
	s.films[film.ID] = rec
	return s.materialize(rec), nil
}

func (s *Films) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.films[film.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	// full replace of scalar fields and the genre set; likes survive
	updated := cloneFilm(film)
	rec.film = updated
	return s.materialize(rec), nil
}

func (s *Films) Get(ctx context.Context, id int64) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.films[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.materialize(rec), nil
}

func (s *Films) List(ctx context.Context) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	films := make([]models.Film, 0, len(s.films))
	for _, rec := range s.films {
		films = append(films, *s.materialize(rec))
	}
	return films, nil
}

func (s *Films) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.films[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.films, id)
	return nil
}

func (s *Films) AddLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.films[filmID]
	if !ok {
		return storage.ErrNotFound
	}
	// idempotent: liking twice is a no-op
	rec.likes[userID] = struct{}{}
	return nil
}

func (s *Films) RemoveLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.films[filmID]
	if !ok {
		return storage.ErrNotFound
	}
	delete(rec.likes, userID)
	return nil
}

func (s *Films) ListPopular(ctx context.Context, count int) ([]models.PopularFilm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	popular := make([]models.PopularFilm, 0, len(s.films))
	for _, rec := range s.films {
		popular = append(popular, models.PopularFilm{
			Film:       *s.materialize(rec),
			LikesCount: int64(len(rec.likes)),
		})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].LikesCount != popular[j].LikesCount {
			return popular[i].LikesCount > popular[j].LikesCount
		}
		return popular[i].ID < popular[j].ID
	})
	if count < len(popular) {
		popular = popular[:count]
	}
	return popular, nil
}

func (s *Films) materialize(rec *filmRecord) *models.Film {
	film := cloneFilm(&rec.film)
	film.Likes = make([]int64, 0, len(rec.likes))
	for userID := range rec.likes {
		film.Likes = append(film.Likes, userID)
	}
	slices.Sort(film.Likes)
	return &film
}

func cloneFilm(film *models.Film) models.Film {
	clone := *film
	clone.Genres = slices.Clone(film.Genres)
	clone.Likes = nil
	return clone
}
