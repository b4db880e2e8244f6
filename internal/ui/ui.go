// Package ui holds the view models behind the pages: the landing form, the
// board, and one view per pit. Views of one board share two broadcasters so
// a move made through any pit reaches all of them.
package ui

import (
	"context"

	"mancalaweb/internal/board"
	"mancalaweb/internal/events"
)

// Backend is the remote game service.
type Backend interface {
	Create(ctx context.Context, req board.CreateRequest) (board.Board, error)
	Get(ctx context.Context, id string) (board.Board, error)
	Target(ctx context.Context, id string, pit int) (board.Board, error)
}

// Channels are the broadcasters shared by the views of one board.
type Channels struct {
	Pits   *events.Emitter[board.PitUpdate]
	Boards *events.Emitter[board.Board]
}

// NewChannels creates both broadcasters.
func NewChannels() Channels {
	return Channels{
		Pits:   events.NewEmitter[board.PitUpdate](),
		Boards: events.NewEmitter[board.Board](),
	}
}

// Route is a resolved navigation path with its parameters.
type Route struct {
	Name   string
	Params map[string]string
}

// Route names.
const (
	RouteHome  = "home"
	RouteBoard = "board"
)

// Param returns a route parameter.
func (r Route) Param(key string) (string, bool) {
	v, ok := r.Params[key]
	return v, ok
}

// BoardRoute builds the route for a board page.
func BoardRoute(id string) Route {
	return Route{Name: RouteBoard, Params: map[string]string{"id": id}}
}
