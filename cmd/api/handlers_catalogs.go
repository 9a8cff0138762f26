package main

import (
	"errors"
	"net/http"

	"filmorate/proj/internal/services/catalogs"

	"github.com/go-chi/render"
)

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, struct {
		Status  string `json:"status"`
		Debug   bool   `json:"debug"`
		Storage string `json:"storage"`
		Version string `json:"version"`
	}{
		Status:  "available",
		Debug:   app.cfg.Debug,
		Storage: app.cfg.Storage,
		Version: version,
	})
}

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := app.services.Catalogs.ListGenres(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genres}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	genre, err := app.services.Catalogs.GetGenre(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogs.ErrGenreNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) getMpaList(w http.ResponseWriter, r *http.Request) {
	mpa, err := app.services.Catalogs.ListMpa(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"mpa": mpa}, "")
}

func (app *Application) getMpa(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	mpa, err := app.services.Catalogs.GetMpa(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogs.ErrMpaNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"mpa": mpa}, "")
}
