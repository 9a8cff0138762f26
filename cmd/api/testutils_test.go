package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"filmorate/proj/internal/config"
	"filmorate/proj/internal/services"
	"filmorate/proj/internal/storage/memory"

	"github.com/stretchr/testify/require"
)

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		Storage: config.StorageMemory,
		Limiter: config.Limiter{Enabled: false},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApplication(cfg, log, services.Storages{
		Films:    memory.NewFilms(),
		Users:    memory.NewUsers(),
		Catalogs: memory.NewSeededCatalogs(),
	})
}

func doRequest(t *testing.T, app *Application, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	request.RemoteAddr = "127.0.0.1:12345"
	recorder := httptest.NewRecorder()
	app.routes().ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func validFilmBody() map[string]any {
	return map[string]any{
		"name":        "The Matrix",
		"description": "A hacker learns the truth",
		"releaseDate": "1999-03-31",
		"duration":    136,
		"mpa":         map[string]any{"id": 4},
		"genres":      []map[string]any{{"id": 6}},
	}
}

func validUserBody(login string) map[string]any {
	return map[string]any{
		"email":    login + "@example.com",
		"login":    login,
		"name":     login,
		"birthday": "1990-06-15",
	}
}

func createFilmForTest(t *testing.T, app *Application) int64 {
	t.Helper()
	recorder := doRequest(t, app, http.MethodPost, "/api/v1/films", validFilmBody())
	require.Equal(t, http.StatusCreated, recorder.Code)
	resp := decodeResponse(t, recorder)
	film, ok := resp.Data["film"].(map[string]any)
	require.True(t, ok)
	return int64(film["id"].(float64))
}

func createUserForTest(t *testing.T, app *Application, login string) int64 {
	t.Helper()
	recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", validUserBody(login))
	require.Equal(t, http.StatusCreated, recorder.Code)
	resp := decodeResponse(t, recorder)
	user, ok := resp.Data["user"].(map[string]any)
	require.True(t, ok)
	return int64(user["id"].(float64))
}
