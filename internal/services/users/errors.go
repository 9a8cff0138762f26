package users

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("user with that email already exists")
	ErrNoPendingRequest  = errors.New("no pending friend request between these users")
)
