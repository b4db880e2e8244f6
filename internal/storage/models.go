package storage

import (
	"time"

	"github.com/google/uuid"
)

// Game is a board created through this frontend.
type Game struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardSize    *int
	StonesPerPit *int
	Finished     bool `gorm:"index"`
	Winner       string
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Moves        []Move
}

// Move is one pit targeted through this frontend.
type Move struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GameID        uuid.UUID `gorm:"type:uuid;index"`
	Pit           int
	CurrentPlayer string
	CreatedAt     time.Time
}
