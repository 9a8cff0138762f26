package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	app := NewTestApplication(t)
	t.Run("valid", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", validUserBody("neo"))
		require.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeResponse(t, recorder)
		user := resp.Data["user"].(map[string]any)
		assert.Equal(t, "neo", user["login"])
	})
	t.Run("blank name defaults to login", func(t *testing.T) {
		body := validUserBody("trinity")
		body["name"] = ""
		recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", body)
		require.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeResponse(t, recorder)
		user := resp.Data["user"].(map[string]any)
		assert.Equal(t, "trinity", user["name"])
	})
	t.Run("duplicate email", func(t *testing.T) {
		body := validUserBody("neo")
		body["login"] = "agent"
		recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
	t.Run("invalid email", func(t *testing.T) {
		body := validUserBody("smith")
		body["email"] = "not-an-email"
		recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
	t.Run("login with whitespace", func(t *testing.T) {
		body := validUserBody("smith")
		body["login"] = "agent smith"
		recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
	t.Run("birthday in the future", func(t *testing.T) {
		body := validUserBody("smith")
		body["birthday"] = "2100-01-01"
		recorder := doRequest(t, app, http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	app := NewTestApplication(t)
	userID := createUserForTest(t, app, "neo")

	t.Run("valid", func(t *testing.T) {
		body := validUserBody("neo")
		body["id"] = userID
		body["name"] = "Thomas Anderson"
		recorder := doRequest(t, app, http.MethodPut, "/api/v1/users", body)
		require.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		user := resp.Data["user"].(map[string]any)
		assert.Equal(t, "Thomas Anderson", user["name"])
	})
	t.Run("missing id", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodPut, "/api/v1/users", validUserBody("neo"))
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("unknown id", func(t *testing.T) {
		body := validUserBody("neo")
		body["id"] = 99
		recorder := doRequest(t, app, http.MethodPut, "/api/v1/users", body)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestGetUser(t *testing.T) {
	app := NewTestApplication(t)
	userID := createUserForTest(t, app, "neo")

	recorder := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	user := resp.Data["user"].(map[string]any)
	assert.Equal(t, "neo@example.com", user["email"])
	assert.Equal(t, "1990-06-15", user["birthday"])

	recorder = doRequest(t, app, http.MethodGet, "/api/v1/users/99", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestLogin(t *testing.T) {
	app := NewTestApplication(t)
	createUserForTest(t, app, "neo")

	t.Run("found", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodGet, "/api/v1/users/login?email=neo@example.com", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		user := resp.Data["user"].(map[string]any)
		assert.Equal(t, "neo", user["login"])
	})
	t.Run("missing email param", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodGet, "/api/v1/users/login", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("unknown email", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodGet, "/api/v1/users/login?email=ghost@example.com", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestFriendshipFlow(t *testing.T) {
	app := NewTestApplication(t)
	neo := createUserForTest(t, app, "neo")
	trinity := createUserForTest(t, app, "trinity")

	t.Run("self friending rejected", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d", neo, neo), nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("unknown friend", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/99", neo), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d", neo, trinity), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	t.Run("one-sided confirm fails", func(t *testing.T) {
		recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d/confirm", neo, trinity), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	recorder = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d", trinity, neo), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d/confirm", neo, trinity), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", neo), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	user := resp.Data["user"].(map[string]any)
	friends := user["friends"].(map[string]any)
	assert.Equal(t, "confirmed", friends[fmt.Sprint(trinity)])

	recorder = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/friends/%d", neo, trinity), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	// deleting again is still a success
	recorder = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/friends/%d", neo, trinity), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetFriends(t *testing.T) {
	app := NewTestApplication(t)
	neo := createUserForTest(t, app, "neo")
	trinity := createUserForTest(t, app, "trinity")
	morpheus := createUserForTest(t, app, "morpheus")

	for _, friendID := range []int64{trinity, morpheus} {
		recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d", neo, friendID), nil)
		require.Equal(t, http.StatusOK, recorder.Code)
	}
	recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d", trinity, morpheus), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/friends", neo), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	friends := resp.Data["friends"].([]any)
	require.Len(t, friends, 2)
	first := friends[0].(map[string]any)
	assert.Equal(t, float64(trinity), first["id"])

	recorder = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/friends/common/%d", neo, trinity), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	resp = decodeResponse(t, recorder)
	common := resp.Data["friends"].([]any)
	require.Len(t, common, 1)
	assert.Equal(t, float64(morpheus), common[0].(map[string]any)["id"])

	recorder = doRequest(t, app, http.MethodGet, "/api/v1/users/99/friends", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteUser(t *testing.T) {
	app := NewTestApplication(t)
	neo := createUserForTest(t, app, "neo")
	trinity := createUserForTest(t, app, "trinity")

	recorder := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/friends/%d", neo, trinity), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", trinity), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/friends", neo), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.Empty(t, resp.Data["friends"])
}
