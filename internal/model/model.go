// Package model defines the persisted entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the columns shared by every table.
type Base struct {
	ID        int64
	UUID      uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
