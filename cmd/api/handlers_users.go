package main

import (
	"errors"
	"net/http"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/lib/validator"
	"filmorate/proj/internal/services/users"
)

type userInput struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email" validate:"required,email"`
	Login    string      `json:"login" validate:"required,nowhitespace" errorMsg:"Login must not be blank or contain whitespace"`
	Name     string      `json:"name"`
	Birthday fields.Date `json:"birthday" validate:"required,pastdate" errorMsg:"Birthday must not be in the future"`
}

func (in *userInput) toModel() *models.User {
	return &models.User{
		ID:       in.ID,
		Email:    in.Email,
		Login:    in.Login,
		Name:     in.Name,
		Birthday: in.Birthday,
	}
}

func (app *Application) handleUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound), errors.Is(err, users.ErrNoPendingRequest):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, users.ErrEmailAlreadyTaken):
		app.Http.Conflict(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) createUser(w http.ResponseWriter, r *http.Request) {
	var input userInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, err := app.services.Users.Create(r.Context(), input.toModel())
	if err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "User successfully created")
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	var input userInput
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
	user, err := app.services.Users.Update(r.Context(), input.toModel())
	if err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "User successfully updated")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	user, err := app.services.Users.Get(r.Context(), id)
	if err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) getUsers(w http.ResponseWriter, r *http.Request) {
	usersList, err := app.services.Users.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"users": usersList}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Users.Delete(r.Context(), id); err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "User successfully deleted")
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		app.Http.BadRequest(w, r, "email query parameter is required")
		return
	}
	user, err := app.services.Users.GetByEmail(r.Context(), email)
	if err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) addFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := app.extractIDParam(w, r, "friendId")
	if !ok {
		return
	}
	if userID == friendID {
		app.Http.BadRequest(w, r, "a user can not befriend themselves")
		return
	}
	if err := app.services.Users.AddFriend(r.Context(), userID, friendID); err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Friend request sent")
}

func (app *Application) confirmFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := app.extractIDParam(w, r, "friendId")
	if !ok {
		return
	}
	if err := app.services.Users.ConfirmFriend(r.Context(), userID, friendID); err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Friendship confirmed")
}

func (app *Application) deleteFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := app.extractIDParam(w, r, "friendId")
	if !ok {
		return
	}
	if err := app.services.Users.DeleteFriend(r.Context(), userID, friendID); err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Friendship deleted")
}

func (app *Application) getFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friends, err := app.services.Users.GetFriends(r.Context(), userID)
	if err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"friends": friends}, "")
}

func (app *Application) getCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	otherID, ok := app.extractIDParam(w, r, "otherId")
	if !ok {
		return
	}
	common, err := app.services.Users.GetCommonFriends(r.Context(), userID, otherID)
	if err != nil {
		app.handleUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"friends": common}, "")
}
