package movie

import (
	"time"

	"moviesearch/errs"
)

var ErrNoSearchCriteria = errs.Errorf(
	errs.EINVALID,
	"at least one search criterion (title, genre, or actorName) must be provided",
)

// Movie is a catalog entry. ID is assigned by the store.
type Movie struct {
	ID          int
	Title       string
	Description string
	ReleaseYear int
	Genre       string
}

type Actor struct {
	ID          int
	Name        string
	DateOfBirth time.Time
}

// MovieActorLink associates one movie with one actor. A (MovieID, ActorID)
// pair is unique within the catalog.
type MovieActorLink struct {
	MovieID int
	ActorID int
}
