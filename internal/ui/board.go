package ui

import (
	"context"
	"fmt"
	"sync"

	"mancalaweb/internal/board"
	"mancalaweb/internal/events"

	"github.com/sirupsen/logrus"
)

// BoardView shows one board split per player. It fetches on Enter and then
// follows the whole-board broadcaster.
type BoardView struct {
	backend Backend
	log     logrus.FieldLogger
	sub     *events.Subscription

	mu      sync.RWMutex
	board   board.Board
	layout  board.Layout
	loaded  bool
	fetches int
}

// NewBoardView creates a board view subscribed to boards.
func NewBoardView(backend Backend, boards *events.Emitter[board.Board], log logrus.FieldLogger) *BoardView {
	v := &BoardView{backend: backend, log: log}
	v.sub = boards.Subscribe(func(b board.Board) { v.apply(b) })
	return v
}

// Enter fetches the board named by the route's id parameter. Without an id
// nothing is fetched and the view stays as it is.
func (v *BoardView) Enter(ctx context.Context, route Route) error {
	id, ok := route.Param("id")
	if !ok || id == "" {
		return nil
	}

	v.mu.Lock()
	v.fetches++
	v.mu.Unlock()

	b, err := v.backend.Get(ctx, id)
	if err != nil {
		v.log.WithError(err).WithField("board", id).Warn("fetch board failed")
		return fmt.Errorf("fetch board %s: %w", id, err)
	}
	if !v.apply(b) {
		return fmt.Errorf("fetch board %s: %w", id, board.ErrMalformedBoard)
	}
	return nil
}

// apply replaces the snapshot. A malformed snapshot is logged and dropped.
func (v *BoardView) apply(b board.Board) bool {
	l, err := board.Partition(b)
	if err != nil {
		v.log.WithError(err).WithField("board", b.ID).Warn("ignoring board snapshot")
		return false
	}
	v.mu.Lock()
	v.board, v.layout, v.loaded = b, l, true
	v.mu.Unlock()
	return true
}

// Snapshot returns the current board and its layout. ok is false until a
// board was loaded.
func (v *BoardView) Snapshot() (b board.Board, l board.Layout, ok bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.board, v.layout, v.loaded
}

// Fetches returns how many backend fetches Enter issued.
func (v *BoardView) Fetches() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fetches
}

// Close stops following broadcasts.
func (v *BoardView) Close() {
	v.sub.Close()
}
