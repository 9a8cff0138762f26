package models

import (
	"filmorate/proj/internal/domain/fields"
)

// EarliestReleaseDate is the date of the first public film screening.
// No film may be released before it.
var EarliestReleaseDate = fields.NewDate(1895, 12, 28)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Mpa struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Film struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ReleaseDate fields.Date `json:"releaseDate"`
	Duration    int32       `json:"duration"` // minutes
	Mpa         Mpa         `json:"mpa"`
	Genres      []Genre     `json:"genres"`
	Likes       []int64     `json:"likes"` // ids of users who liked the film, ascending
}

// PopularFilm carries the like count explicitly so that ranking output
// stays correct even when the like id set comes back empty from a join.
type PopularFilm struct {
	Film
	LikesCount int64 `json:"likesCount"`
}

// FriendStatus is the state of a single directed friendship edge.
type FriendStatus string

const (
	FriendStatusRequested FriendStatus = "requested"
	FriendStatusConfirmed FriendStatus = "confirmed"
)

type User struct {
	ID       int64                  `json:"id"`
	Email    string                 `json:"email"`
	Login    string                 `json:"login"`
	Name     string                 `json:"name"`
	Birthday fields.Date            `json:"birthday"`
	Friends  map[int64]FriendStatus `json:"friends"` // outgoing edges only
}

// FriendInfo is the summary projection returned by friend listings.
type FriendInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Login string `json:"login"`
	Name  string `json:"name"`
}
