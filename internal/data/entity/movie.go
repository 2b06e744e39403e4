package entity

import (
	"time"
)

// Movie is the single record fetched from the upstream API.
type Movie struct {
	Title       string
	PosterURL   string
	Overview    string
	ReleaseDate string // as sent upstream
	ReleasedAt  *time.Time
	VoteAverage float64
	VoteCount   int
}
