// Package uitest provides an in-memory game service for view and handler tests.
package uitest

import (
	"context"
	"fmt"
	"sync"

	"mancalaweb/internal/board"
)

// Call records one request made to the fake.
type Call struct {
	Method string
	Path   string
	Create board.CreateRequest
}

// Backend answers every request with the configured board or error.
type Backend struct {
	mu    sync.Mutex
	Board board.Board
	Err   error
	calls []Call
}

// NewBackend returns a fake that serves b.
func NewBackend(b board.Board) *Backend {
	return &Backend{Board: b}
}

func (f *Backend) record(c Call) (board.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.Err != nil {
		return board.Board{}, f.Err
	}
	b := f.Board
	b.Stones = append([]int(nil), f.Board.Stones...)
	return b, nil
}

// Create implements ui.Backend.
func (f *Backend) Create(_ context.Context, req board.CreateRequest) (board.Board, error) {
	return f.record(Call{Method: "POST", Path: "/board", Create: req})
}

// Get implements ui.Backend.
func (f *Backend) Get(_ context.Context, id string) (board.Board, error) {
	return f.record(Call{Method: "GET", Path: "/board/" + id})
}

// Target implements ui.Backend.
func (f *Backend) Target(_ context.Context, id string, pit int) (board.Board, error) {
	return f.record(Call{Method: "PUT", Path: fmt.Sprintf("/board/%s/target/%d", id, pit)})
}

// Set swaps the served board.
func (f *Backend) Set(b board.Board) {
	f.mu.Lock()
	f.Board = b
	f.mu.Unlock()
}

// Fail makes every later call return err.
func (f *Backend) Fail(err error) {
	f.mu.Lock()
	f.Err = err
	f.mu.Unlock()
}

// Calls returns the recorded requests.
func (f *Backend) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Starting returns a fresh six-pit board with four stones per pit.
func Starting(id string) board.Board {
	return board.Board{
		ID:                 id,
		CurrentPlayer:      board.Player1,
		BoardSizePerPlayer: 7,
		IsOpen:             true,
		Stones:             []int{0, 4, 4, 4, 4, 4, 4, 0, 4, 4, 4, 4, 4, 4},
	}
}
