package game

import (
	"context"
	"errors"
	"time"

	"mancalaweb/internal/backend"
	"mancalaweb/internal/board"
	"mancalaweb/internal/ui"

	"github.com/sirupsen/logrus"
)

// DefaultIdleTTL is how long an unwatched session is kept.
const DefaultIdleTTL = 2 * time.Hour

// attempts bounds retries against sessions swept between Get and use.
const attempts = 3

// NewHub creates a hub whose sessions talk to backend
func NewHub(backend ui.Backend, idleTTL time.Duration, log logrus.FieldLogger) *Hub {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Hub{
		Sessions: make(map[string]*Session),
		IdleTTL:  idleTTL,
		backend:  backend,
		log:      log,
	}
}

// Run sweeps idle sessions until ctx is done
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Sweep(time.Now())
		}
	}
}

// Sweep closes sessions idle for longer than IdleTTL with nobody watching
func (h *Hub) Sweep(now time.Time) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	removed := 0
	for id, s := range h.Sessions {
		s.Mu.Lock()
		idle := now.Sub(s.LastSeen) > h.IdleTTL && len(s.Watchers) == 0
		s.Mu.Unlock()
		if idle {
			s.Close()
			delete(h.Sessions, id)
			removed++
		}
	}
	if removed > 0 {
		h.log.WithField("removed", removed).Debug("swept idle sessions")
	}
	return removed
}

// Get retrieves an existing session or creates a new one
func (h *Hub) Get(id string) *Session {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if s, ok := h.Sessions[id]; ok {
		return s
	}
	s := newSession(id, h.backend, h.log.WithField("board", id))
	h.Sessions[id] = s
	return s
}

// Open fetches the board id and returns its session. A session that never
// loaded a board is dropped again when the fetch fails.
func (h *Hub) Open(ctx context.Context, id string) (*Session, error) {
	return h.open(ctx, id, true)
}

// Ensure is Open without the fetch when the session already holds a board.
func (h *Hub) Ensure(ctx context.Context, id string) (*Session, error) {
	return h.open(ctx, id, false)
}

func (h *Hub) open(ctx context.Context, id string, force bool) (*Session, error) {
	var (
		s   *Session
		err error
	)
	for i := 0; i < attempts; i++ {
		s = h.Get(id)
		if !force && s.Loaded() {
			return s, nil
		}
		err = s.Open(ctx)
		if errors.Is(err, ErrSessionClosed) {
			continue
		}
		if err != nil && !s.Loaded() {
			h.forget(s)
			if errors.Is(err, backend.ErrNotFound) {
				h.log.WithField("board", id).Debug("unknown board")
			}
		}
		return s, err
	}
	return s, err
}

// Target sows from pit on board id, loading the board first if needed.
func (h *Hub) Target(ctx context.Context, id string, pit int) (*Session, board.Board, error) {
	var (
		s   *Session
		err error
	)
	for i := 0; i < attempts; i++ {
		if s, err = h.Ensure(ctx, id); err != nil {
			return s, board.Board{}, err
		}
		var b board.Board
		b, err = s.Target(ctx, pit)
		if errors.Is(err, ErrSessionClosed) {
			continue
		}
		return s, b, err
	}
	return s, board.Board{}, err
}

// Watch registers ch on the live session of id. Holding the hub lock keeps
// Sweep from closing the session in between.
func (h *Hub) Watch(id string, ch chan []byte) *Session {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.Sessions[id]
	if !ok || s.AddWatcher(ch) != nil {
		s = newSession(id, h.backend, h.log.WithField("board", id))
		h.Sessions[id] = s
		_ = s.AddWatcher(ch)
	}
	return s
}

// Unwatch removes ch from s. A session left without a board and without
// watchers is dropped.
func (h *Hub) Unwatch(s *Session, ch chan []byte) {
	s.RemoveWatcher(ch)
	if !s.Loaded() {
		h.forget(s)
	}
}

// forget drops s unless it was replaced or somebody watches it.
func (h *Hub) forget(s *Session) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if h.Sessions[s.ID] != s || s.watched() {
		return
	}
	delete(h.Sessions, s.ID)
	s.Close()
}

// Len returns the number of live sessions
func (h *Hub) Len() int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return len(h.Sessions)
}
