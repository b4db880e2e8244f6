package ui

import (
	"context"
	"fmt"

	"mancalaweb/internal/board"

	"github.com/sirupsen/logrus"
)

// CreateForm is the landing page form. Both fields are required in the page;
// a missing value is left out of the request so the backend default applies.
type CreateForm struct {
	BoardSize    *int `form:"boardSize" json:"boardSize"`
	StonesPerPit *int `form:"stonesPerPit" json:"stonesPerPit"`
}

// HomeView creates new games.
type HomeView struct {
	backend Backend
	log     logrus.FieldLogger
}

// NewHomeView creates the landing view.
func NewHomeView(backend Backend, log logrus.FieldLogger) *HomeView {
	return &HomeView{backend: backend, log: log}
}

// Submit creates a game and returns the navigation target of its board.
func (v *HomeView) Submit(ctx context.Context, form CreateForm) (string, board.Board, error) {
	req := board.CreateRequest{BoardSize: form.BoardSize, StonesPerPit: form.StonesPerPit}
	b, err := v.backend.Create(ctx, req)
	if err != nil {
		v.log.WithError(err).Warn("create game failed")
		return "", board.Board{}, fmt.Errorf("create game: %w", err)
	}
	v.log.WithField("board", b.ID).Info("game created")
	return "board/" + b.ID, b, nil
}
