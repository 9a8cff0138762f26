package catalogs

import (
	"context"
	"errors"
	"log/slog"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

type CatalogsStorage interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id int64) (*models.Genre, error)
	GetGenresByIDs(ctx context.Context, ids []int64) ([]models.Genre, error)
	ListMpa(ctx context.Context) ([]models.Mpa, error)
	GetMpa(ctx context.Context, id int64) (*models.Mpa, error)
}

// CatalogService serves the genre and MPA reference catalogs. The film
// service consults it before accepting a create or update.
type CatalogService struct {
	log     *slog.Logger
	storage CatalogsStorage
}

func New(log *slog.Logger, storage CatalogsStorage) *CatalogService {
	return &CatalogService{
		log:     log,
		storage: storage,
	}
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	const op = "catalogs.CatalogService.ListGenres"
	genres, err := s.storage.ListGenres(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *CatalogService) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	const op = "catalogs.CatalogService.GetGenre"
	log := s.log.With("op", op, "id", id)
	genre, err := s.storage.GetGenre(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *CatalogService) GetGenresByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	const op = "catalogs.CatalogService.GetGenresByIDs"
	log := s.log.With("op", op, "ids", ids)
	genres, err := s.storage.GetGenresByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("one or more genres not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *CatalogService) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	const op = "catalogs.CatalogService.ListMpa"
	mpa, err := s.storage.ListMpa(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return mpa, nil
}

func (s *CatalogService) GetMpa(ctx context.Context, id int64) (*models.Mpa, error) {
	const op = "catalogs.CatalogService.GetMpa"
	log := s.log.With("op", op, "id", id)
	mpa, err := s.storage.GetMpa(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("mpa rating not found")
			return nil, ErrMpaNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return mpa, nil
}
