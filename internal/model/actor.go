package model

import "time"

// Actor is a row of the actors table together with its linked films.
type Actor struct {
	Base
	Name     string
	Birthday *time.Time
	IsActive bool

	// Films is populated only when the actor was loaded with its films.
	Films []Film
}
