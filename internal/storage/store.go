package storage

import (
	"context"
	"fmt"
	"time"

	"mancalaweb/internal/board"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store journals games and moves issued through this frontend. Game state
// itself stays with the backend. A nil *Store is valid and does nothing.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// ErrNotFound is returned when a record is not found.
var ErrNotFound = gorm.ErrRecordNotFound

// RecordGame inserts a game created from the landing page.
func (s *Store) RecordGame(ctx context.Context, b board.Board, req board.CreateRequest) error {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return fmt.Errorf("record game: %w", err)
	}
	game := Game{
		ID:           id,
		BoardSize:    req.BoardSize,
		StonesPerPit: req.StonesPerPit,
		LastSeen:     time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&game).Error
}

// RecordMove stores a targeted pit and the board it produced.
func (s *Store) RecordMove(ctx context.Context, pit int, after board.Board) error {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(after.ID)
	if err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game := Game{ID: id, LastSeen: time.Now()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&game).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"last_seen": time.Now(),
			"finished":  after.Finished(),
			"winner":    after.WinnerName(),
		}
		if err := tx.Model(&Game{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&Move{GameID: id, Pit: pit, CurrentPlayer: string(after.CurrentPlayer)}).Error
	})
}

// Recent is a game listed on the landing page.
type Recent struct {
	ID       string    `json:"id"`
	Moves    int64     `json:"moves"`
	Finished bool      `json:"finished"`
	Winner   string    `json:"winner,omitempty"`
	LastSeen time.Time `json:"lastSeen"`
}

// RecentGames returns the most recently active games.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]Recent, error) {
	if s == nil {
		return nil, nil
	}
	var games []Game
	if err := s.db.WithContext(ctx).Order("last_seen desc").Limit(limit).Find(&games).Error; err != nil {
		return nil, err
	}
	out := make([]Recent, 0, len(games))
	for _, g := range games {
		r := Recent{ID: g.ID.String(), Finished: g.Finished, Winner: g.Winner, LastSeen: g.LastSeen}
		if err := s.db.WithContext(ctx).Model(&Move{}).Where("game_id = ?", g.ID).Count(&r.Moves).Error; err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Stats represents aggregate counts for games.
type Stats struct {
	Started   int64 `json:"started"`
	Completed int64 `json:"completed"`
	Moves     int64 `json:"moves"`
}

// FetchStats aggregates counts for display on the home page.
func (s *Store) FetchStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, nil
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Count(&stats.Started).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("finished = ?", true).Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Move{}).Count(&stats.Moves).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
