package storage

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrReferenceNotFound = errors.New("referenced entity not found")
	ErrIntegrity         = errors.New("integrity violation")
	ErrInternal          = errors.New("internal storage failure")
)
