package model

import "time"

// Film is a row of the films table together with its linked actors.
//
// Optional columns are pointers; nil is stored as NULL.
type Film struct {
	Base
	Title         string
	ReleaseDate   *time.Time
	DistributedBy *string
	Description   *string
	Length        *int
	Rating        *float64

	// Actors is populated only when the film was loaded with its actors.
	Actors []Actor
}

// FilmQuery customises how films are fetched.
type FilmQuery struct {
	// WithActors eager-loads the linked actors in the same query.
	WithActors bool
}

// FilmStats summarises the films table.
type FilmStats struct {
	Count       int64
	MaxRating   *float64
	MinRating   *float64
	AvgRating   *float64
	TotalLength int64
}
