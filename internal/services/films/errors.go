package films

import "errors"

var ErrFilmNotFound = errors.New("film not found")
