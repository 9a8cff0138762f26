package main

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/films", func(r chi.Router) {
			r.Get("/", app.getFilms)
			r.Post("/", app.createFilm)
			r.Put("/", app.updateFilm)
			r.Get("/popular", app.getPopularFilms)
			r.Get("/{id}", app.getFilm)
			r.Delete("/{id}", app.deleteFilm)
			r.Put("/{id}/like/{userId}", app.addLike)
			r.Delete("/{id}/like/{userId}", app.removeLike)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", app.getUsers)
			r.Post("/", app.createUser)
			r.Put("/", app.updateUser)
			r.Get("/login", app.login)
			r.Get("/{id}", app.getUser)
			r.Delete("/{id}", app.deleteUser)
			r.Route("/{id}/friends", func(r chi.Router) {
				r.Get("/", app.getFriends)
				r.Get("/common/{otherId}", app.getCommonFriends)
				r.Put("/{friendId}", app.addFriend)
				r.Put("/{friendId}/confirm", app.confirmFriend)
				r.Delete("/{friendId}", app.deleteFriend)
			})
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.getGenres)
			r.Get("/{id}", app.getGenre)
		})
		r.Route("/mpa", func(r chi.Router) {
			r.Get("/", app.getMpaList)
			r.Get("/{id}", app.getMpa)
		})
	})
	return router
}
