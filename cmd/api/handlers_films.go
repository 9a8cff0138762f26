package main

import (
	"errors"
	"net/http"
	"strconv"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/lib/validator"
	"filmorate/proj/internal/services/catalogs"
	"filmorate/proj/internal/services/films"
	"filmorate/proj/internal/services/users"
)

const defaultPopularCount = 10

type genreRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type mpaRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type filmInput struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name" validate:"required" errorMsg:"Film name must not be blank"`
	Description string      `json:"description" validate:"max=200"`
	ReleaseDate fields.Date `json:"releaseDate" validate:"required,releasedate"`
	Duration    int32       `json:"duration" validate:"required,gt=0" errorMsg:"Duration must be a positive number of minutes"`
	Mpa         mpaRef      `json:"mpa"`
	Genres      []genreRef  `json:"genres" validate:"dive"`
}

func (in *filmInput) toModel() *models.Film {
	genres := make([]models.Genre, 0, len(in.Genres))
	for _, g := range in.Genres {
		genres = append(genres, models.Genre{ID: g.ID})
	}
	return &models.Film{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		ReleaseDate: in.ReleaseDate,
		Duration:    in.Duration,
		Mpa:         models.Mpa{ID: in.Mpa.ID},
		Genres:      genres,
	}
}

func (app *Application) handleFilmError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, films.ErrFilmNotFound), errors.Is(err, users.ErrUserNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, catalogs.ErrGenreNotFound), errors.Is(err, catalogs.ErrMpaNotFound):
		// a film referencing an unknown catalog row is a bad request,
		// not a missing resource
		app.Http.BadRequest(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) createFilm(w http.ResponseWriter, r *http.Request) {
	var input filmInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	film, err := app.services.Films.Create(r.Context(), input.toModel())
	if err != nil {
		app.handleFilmError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"film": film}, "Film successfully created")
}

func (app *Application) updateFilm(w http.ResponseWriter, r *http.Request) {
	var input filmInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if input.ID < 1 {
		app.Http.BadRequest(w, r, "id must be greater than zero")
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	film, err := app.services.Films.Update(r.Context(), input.toModel())
	if err != nil {
		app.handleFilmError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"film": film}, "Film successfully updated")
}

func (app *Application) getFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	film, err := app.services.Films.Get(r.Context(), id)
	if err != nil {
		app.handleFilmError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"film": film}, "")
}

func (app *Application) getFilms(w http.ResponseWriter, r *http.Request) {
	filmsList, err := app.services.Films.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"films": filmsList}, "")
}

func (app *Application) deleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Films.Delete(r.Context(), id); err != nil {
		app.handleFilmError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Film successfully deleted")
}

func (app *Application) addLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if err := app.services.Films.AddLike(r.Context(), filmID, userID); err != nil {
		app.handleFilmError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Like added")
}

func (app *Application) removeLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if err := app.services.Films.RemoveLike(r.Context(), filmID, userID); err != nil {
		app.handleFilmError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Like removed")
}

func (app *Application) getPopularFilms(w http.ResponseWriter, r *http.Request) {
	count := defaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.Http.BadRequest(w, r, "count must be a positive integer")
			return
		}
		count = parsed
	}
	popular, err := app.services.Films.GetPopular(r.Context(), count)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"films": popular}, "")
}
