package board

import "errors"

// PlayerKind mirrors the backend's player enum.
type PlayerKind string

const (
	Player1 PlayerKind = "PLAYER_1"
	Player2 PlayerKind = "PLAYER_2"
)

// Name returns a display name for the player.
func (p PlayerKind) Name() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	return string(p)
}

// Board is a snapshot of a game as returned by the backend.
// Stones holds both players' pits and both collectors in one flat slice.
type Board struct {
	ID                 string      `json:"id"`
	CurrentPlayer      PlayerKind  `json:"currentPlayer"`
	BoardSizePerPlayer int         `json:"boardSizePerPlayer"`
	IsOpen             bool        `json:"isOpen"`
	Winner             *PlayerKind `json:"winner,omitempty"`
	Stones             []int       `json:"board"`
}

// Finished reports whether the backend closed the game.
func (b Board) Finished() bool {
	return !b.IsOpen
}

// WinnerName returns the winner's display name, or "" while the game is running.
func (b Board) WinnerName() string {
	if b.Winner == nil {
		return ""
	}
	return b.Winner.Name()
}

// CreateRequest is the body of a create-game request. Unset fields are
// omitted so the backend applies its defaults.
type CreateRequest struct {
	BoardSize    *int `json:"boardSize,omitempty"`
	StonesPerPit *int `json:"stonesPerPit,omitempty"`
}

// Stone is a pit's stone count paired with its index in the flat board.
type Stone struct {
	Index  int `json:"index"`
	Stones int `json:"stones"`
}

// PitUpdate is broadcast to pit views after a move.
type PitUpdate struct {
	Index  int `json:"index"`
	Stones int `json:"stones"`
}

// Layout is a board split into each player's collector and pits.
type Layout struct {
	CollectorPlayer1 Stone   `json:"collectorPlayer1"`
	BoardPlayer1     []Stone `json:"boardPlayer1"`
	CollectorPlayer2 Stone   `json:"collectorPlayer2"`
	BoardPlayer2     []Stone `json:"boardPlayer2"`
}

// ErrMalformedBoard is returned when a snapshot breaks the length invariant.
var ErrMalformedBoard = errors.New("malformed board")
