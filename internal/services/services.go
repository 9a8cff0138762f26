package services

import (
	"log/slog"

	"filmorate/proj/internal/services/catalogs"
	"filmorate/proj/internal/services/films"
	"filmorate/proj/internal/services/users"
)

// Storages is the set of storage implementations the services run on.
// Both the postgres and the in-memory variants satisfy it.
type Storages struct {
	Films    films.FilmsStorage
	Users    users.UsersStorage
	Catalogs catalogs.CatalogsStorage
}

type Services struct {
	Films    *films.FilmService
	Users    *users.UserService
	Catalogs *catalogs.CatalogService
}

func New(log *slog.Logger, st Storages) *Services {
	catalogService := catalogs.New(log, st.Catalogs)
	userService := users.New(log, st.Users)
	filmService := films.New(log, st.Films, catalogService, userService)
	return &Services{
		Films:    filmService,
		Users:    userService,
		Catalogs: catalogService,
	}
}
