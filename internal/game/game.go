package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mancalaweb/internal/board"
	"mancalaweb/internal/ui"

	"github.com/sirupsen/logrus"
)

func newSession(id string, backend ui.Backend, log logrus.FieldLogger) *Session {
	s := &Session{
		ID:       id,
		Channels: ui.NewChannels(),
		Watchers: make(map[chan []byte]struct{}),
		LastSeen: time.Now(),
		backend:  backend,
		log:      log,
	}
	s.View = ui.NewBoardView(backend, s.Channels.Boards, log)
	s.feed = s.Channels.Boards.Subscribe(s.onBoard)
	return s
}

// Touch updates the last seen timestamp
func (s *Session) Touch() {
	s.Mu.Lock()
	s.LastSeen = time.Now()
	s.Mu.Unlock()
}

// Open fetches the board and mounts one pit view per pit
func (s *Session) Open(ctx context.Context) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	s.Touch()
	if err := s.View.Enter(ctx, ui.BoardRoute(s.ID)); err != nil {
		return err
	}
	if b, _, ok := s.View.Snapshot(); ok {
		s.mount(b)
	}
	return nil
}

// mount creates pit views for b. When the pit count is unchanged the current
// views are kept and handed the new counts.
func (s *Session) mount(b board.Board) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.closed {
		return
	}
	if len(s.Pits) == len(b.Stones) {
		for i, p := range s.Pits {
			p.Show(b.Stones[i])
		}
		return
	}
	for _, p := range s.Pits {
		p.Close()
	}
	s.Pits = make([]*ui.PitView, len(b.Stones))
	for i, stones := range b.Stones {
		s.Pits[i] = ui.NewPitView(s.ID, i, stones, s.backend, s.Channels, s.log)
	}
}

// Target sows from pit. Moves on one session run one at a time.
func (s *Session) Target(ctx context.Context, pit int) (board.Board, error) {
	s.moveMu.Lock()
	defer s.moveMu.Unlock()

	s.Mu.Lock()
	if s.closed {
		s.Mu.Unlock()
		return board.Board{}, ErrSessionClosed
	}
	var p *ui.PitView
	if pit >= 0 && pit < len(s.Pits) {
		p = s.Pits[pit]
	}
	s.Mu.Unlock()
	if p == nil {
		return board.Board{}, fmt.Errorf("pit %d: %w", pit, ErrUnknownPit)
	}

	s.Touch()
	return p.Target(ctx)
}

// onBoard remounts pits if needed and fans the new state out to watchers.
func (s *Session) onBoard(b board.Board) {
	s.mount(b)
	s.Broadcast()
}

// State returns the current board with the counts shown by the pit views
func (s *Session) State() State {
	b, l, ok := s.View.Snapshot()

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if ok {
		l = s.overlayLocked(l)
	}
	st := State{
		Kind:     "state",
		Loaded:   ok,
		Board:    b,
		Layout:   l,
		Finished: ok && b.Finished(),
		Winner:   b.WinnerName(),
		Turn:     b.CurrentPlayer.Name(),
		Watchers: len(s.Watchers),
	}
	return st
}

func (s *Session) overlayLocked(l board.Layout) board.Layout {
	count := func(st board.Stone) board.Stone {
		if st.Index < len(s.Pits) {
			st.Stones = s.Pits[st.Index].Stones()
		}
		return st
	}
	out := board.Layout{
		CollectorPlayer1: count(l.CollectorPlayer1),
		CollectorPlayer2: count(l.CollectorPlayer2),
		BoardPlayer1:     make([]board.Stone, len(l.BoardPlayer1)),
		BoardPlayer2:     make([]board.Stone, len(l.BoardPlayer2)),
	}
	for i, st := range l.BoardPlayer1 {
		out.BoardPlayer1[i] = count(st)
	}
	for i, st := range l.BoardPlayer2 {
		out.BoardPlayer2[i] = count(st)
	}
	return out
}

// Broadcast sends the current state to all watchers
func (s *Session) Broadcast() {
	data, err := json.Marshal(s.State())
	if err != nil {
		s.log.WithError(err).Error("marshal state")
		return
	}
	s.Mu.Lock()
	for ch := range s.Watchers {
		select {
		case ch <- data:
		default:
		}
	}
	s.Mu.Unlock()
}

// AddWatcher adds a new watcher channel. A closed session never broadcasts
// again, so it refuses new watchers.
func (s *Session) AddWatcher(ch chan []byte) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.Watchers[ch] = struct{}{}
	return nil
}

// RemoveWatcher removes a watcher channel
func (s *Session) RemoveWatcher(ch chan []byte) {
	s.Mu.Lock()
	delete(s.Watchers, ch)
	s.LastSeen = time.Now()
	s.Mu.Unlock()
}

// Loaded reports whether a board snapshot is held
func (s *Session) Loaded() bool {
	_, _, ok := s.View.Snapshot()
	return ok
}

// Closed reports whether the session was dropped by the hub
func (s *Session) Closed() bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.closed
}

func (s *Session) watched() bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return len(s.Watchers) > 0
}

// Close detaches every view from the session's broadcasters
func (s *Session) Close() {
	s.feed.Close()
	s.View.Close()
	s.Mu.Lock()
	s.closed = true
	for _, p := range s.Pits {
		p.Close()
	}
	s.Pits = nil
	s.Mu.Unlock()
}
