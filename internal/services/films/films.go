package films

import (
	"context"
	"errors"
	"log/slog"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/services/catalogs"
	"filmorate/proj/internal/services/users"
	"filmorate/proj/internal/storage"
)

type FilmsStorage interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
	Update(ctx context.Context, film *models.Film) (*models.Film, error)
	Get(ctx context.Context, id int64) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id int64) error
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	ListPopular(ctx context.Context, count int) ([]models.PopularFilm, error)
}

type FilmService struct {
	log      *slog.Logger
	storage  FilmsStorage
	catalogs *catalogs.CatalogService
	users    *users.UserService
}

func New(log *slog.Logger, storage FilmsStorage, catalogService *catalogs.CatalogService, userService *users.UserService) *FilmService {
	return &FilmService{
		log:      log,
		storage:  storage,
		catalogs: catalogService,
		users:    userService,
	}
}

// resolveReferences validates the film's MPA and genre ids against the
// catalogs and fills in the catalog names.
func (s *FilmService) resolveReferences(ctx context.Context, film *models.Film) error {
	mpa, err := s.catalogs.GetMpa(ctx, film.Mpa.ID)
	if err != nil {
		return err
	}
	film.Mpa = *mpa
	genreIDs := make([]int64, 0, len(film.Genres))
	for _, genre := range film.Genres {
		genreIDs = append(genreIDs, genre.ID)
	}
	genres, err := s.catalogs.GetGenresByIDs(ctx, genreIDs)
	if err != nil {
		return err
	}
	film.Genres = genres
	return nil
}

func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	const op = "films.FilmService.Create"
	log := s.log.With("op", op, "name", film.Name)
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}
	created, err := s.storage.Create(ctx, film)
	if err != nil {
		if errors.Is(err, storage.ErrReferenceNotFound) {
			// the catalogs moved between the pre-check and the insert
			log.Info("reference disappeared during create")
			return nil, catalogs.ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("film created", "id", created.ID)
	return created, nil
}

func (s *FilmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	const op = "films.FilmService.Update"
	log := s.log.With("op", op, "id", film.ID)
	if _, err := s.Get(ctx, film.ID); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}
	updated, err := s.storage.Update(ctx, film)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("film not found")
			return nil, ErrFilmNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *FilmService) Get(ctx context.Context, id int64) (*models.Film, error) {
	const op = "films.FilmService.Get"
	log := s.log.With("op", op, "id", id)
	film, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("film not found")
			return nil, ErrFilmNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return film, nil
}

func (s *FilmService) List(ctx context.Context) ([]models.Film, error) {
	const op = "films.FilmService.List"
	films, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return films, nil
}

func (s *FilmService) Delete(ctx context.Context, id int64) error {
	const op = "films.FilmService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("film not found")
			return ErrFilmNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("film deleted")
	return nil
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	const op = "films.FilmService.AddLike"
	log := s.log.With("op", op, "film_id", filmID, "user_id", userID)
	if _, err := s.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.AddLike(ctx, filmID, userID); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("like added")
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	const op = "films.FilmService.RemoveLike"
	log := s.log.With("op", op, "film_id", filmID, "user_id", userID)
	if _, err := s.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.RemoveLike(ctx, filmID, userID); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("like removed")
	return nil
}

func (s *FilmService) GetPopular(ctx context.Context, count int) ([]models.PopularFilm, error) {
	const op = "films.FilmService.GetPopular"
	popular, err := s.storage.ListPopular(ctx, count)
	if err != nil {
		s.log.With("op", op, "count", count).Error(err.Error())
		return nil, err
	}
	return popular, nil
}
