package storage

import (
	"context"
	"testing"

	"mancalaweb/internal/board"

	"github.com/stretchr/testify/assert"
)

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	ctx := context.Background()

	assert.Nil(t, NewStore(nil))
	assert.NoError(t, s.RecordGame(ctx, board.Board{ID: "not-a-uuid"}, board.CreateRequest{}))
	assert.NoError(t, s.RecordMove(ctx, 3, board.Board{ID: "not-a-uuid"}))

	recent, err := s.RecentGames(ctx, 5)
	assert.NoError(t, err)
	assert.Empty(t, recent)

	stats, err := s.FetchStats(ctx)
	assert.NoError(t, err)
	assert.Zero(t, stats)
}

func TestRecordRejectsNonUUID(t *testing.T) {
	s := &Store{}
	assert.Error(t, s.RecordGame(context.Background(), board.Board{ID: "abc"}, board.CreateRequest{}))
	assert.Error(t, s.RecordMove(context.Background(), 1, board.Board{ID: "abc"}))
}
