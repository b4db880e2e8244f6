package ui

import (
	"context"
	"fmt"
	"sync"

	"mancalaweb/internal/board"
	"mancalaweb/internal/events"

	"github.com/sirupsen/logrus"
)

// PitView displays one pit and lets the player sow from it.
type PitView struct {
	BoardID string
	Index   int

	backend  Backend
	channels Channels
	log      logrus.FieldLogger
	sub      *events.Subscription

	mu      sync.RWMutex
	stones  int
	updates int
}

// NewPitView creates a pit view and subscribes it to updates for its index.
func NewPitView(boardID string, index, stones int, backend Backend, ch Channels, log logrus.FieldLogger) *PitView {
	p := &PitView{
		BoardID:  boardID,
		Index:    index,
		backend:  backend,
		channels: ch,
		log:      log.WithFields(logrus.Fields{"board": boardID, "pit": index}),
		stones:   stones,
	}
	p.sub = ch.Pits.Subscribe(events.Filter(
		func(u board.PitUpdate) bool { return u.Index == p.Index },
		p.receive,
	))
	return p
}

// receive drops an update that repeats the displayed count.
func (p *PitView) receive(u board.PitUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u.Stones == p.stones {
		return
	}
	p.stones = u.Stones
	p.updates++
}

// Show sets the count handed down by the board, as on a re-render.
func (p *PitView) Show(stones int) {
	p.mu.Lock()
	p.stones = stones
	p.mu.Unlock()
}

// Target sows from this pit. The resulting board is rebroadcast as one
// per-pit update for every index, then once as a whole board.
func (p *PitView) Target(ctx context.Context) (board.Board, error) {
	b, err := p.backend.Target(ctx, p.BoardID, p.Index)
	if err != nil {
		p.log.WithError(err).Warn("target pit failed")
		return board.Board{}, fmt.Errorf("target pit %d: %w", p.Index, err)
	}
	p.log.WithField("player", b.CurrentPlayer).Debug("pit targeted")

	for i, stones := range b.Stones {
		p.channels.Pits.Emit(board.PitUpdate{Index: i, Stones: stones})
	}
	p.channels.Boards.Emit(b)
	return b, nil
}

// Stones returns the displayed stone count.
func (p *PitView) Stones() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stones
}

// Updates returns how many broadcasts changed this view.
func (p *PitView) Updates() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updates
}

// Close detaches the view from the broadcaster.
func (p *PitView) Close() {
	p.sub.Close()
}
