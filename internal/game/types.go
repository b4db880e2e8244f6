package game

import (
	"errors"
	"sync"
	"time"

	"mancalaweb/internal/board"
	"mancalaweb/internal/events"
	"mancalaweb/internal/ui"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownPit is returned when a move names a pit the session has not mounted.
	ErrUnknownPit = errors.New("unknown pit")
	// ErrSessionClosed is returned by a session the hub already dropped.
	ErrSessionClosed = errors.New("session closed")
)

// Hub manages the sessions of every board being viewed
type Hub struct {
	Mu       sync.Mutex
	Sessions map[string]*Session
	IdleTTL  time.Duration

	backend ui.Backend
	log     logrus.FieldLogger
}

// Session holds the views of one board and the watchers streaming it
type Session struct {
	ID string

	Mu       sync.Mutex
	Channels ui.Channels
	View     *ui.BoardView
	Pits     []*ui.PitView
	Watchers map[chan []byte]struct{}
	LastSeen time.Time

	closed  bool
	moveMu  sync.Mutex
	backend ui.Backend
	log     logrus.FieldLogger
	feed    *events.Subscription
}

// State is what pages and live streams render
type State struct {
	Kind     string       `json:"kind"`
	Loaded   bool         `json:"loaded"`
	Board    board.Board  `json:"board"`
	Layout   board.Layout `json:"layout"`
	Finished bool         `json:"finished"`
	Winner   string       `json:"winner,omitempty"`
	Turn     string       `json:"turn"`
	Watchers int          `json:"watchers"`
}
