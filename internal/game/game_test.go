package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"mancalaweb/internal/ui/uitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMountsOnePitViewPerPit(t *testing.T) {
	h, fake := newTestHub()
	s := h.Get("test")

	require.NoError(t, s.Open(context.Background()))

	assert.Len(t, s.Pits, 14)
	for i, p := range s.Pits {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, "test", p.BoardID)
	}
	st := s.State()
	assert.True(t, st.Loaded)
	assert.Equal(t, "Player 1", st.Turn)
	assert.Len(t, fake.Calls(), 1)
}

func TestOpenFailureLeavesSessionEmpty(t *testing.T) {
	h, fake := newTestHub()
	fake.Fail(errors.New("down"))
	s := h.Get("test")

	assert.Error(t, s.Open(context.Background()))
	assert.Empty(t, s.Pits)
	assert.False(t, s.State().Loaded)
}

func TestTargetUnknownPit(t *testing.T) {
	h, fake := newTestHub()
	s := h.Get("test")
	require.NoError(t, s.Open(context.Background()))

	_, err := s.Target(context.Background(), 14)
	assert.ErrorIs(t, err, ErrUnknownPit)
	_, err = s.Target(context.Background(), -1)
	assert.ErrorIs(t, err, ErrUnknownPit)
	assert.Len(t, fake.Calls(), 1)
}

func TestTargetUpdatesStateAndWatchers(t *testing.T) {
	h, fake := newTestHub()
	s := h.Get("test")
	require.NoError(t, s.Open(context.Background()))

	ch := make(chan []byte, 4)
	s.AddWatcher(ch)
	defer s.RemoveWatcher(ch)

	after := uitest.Starting("test")
	after.Stones = []int{0, 4, 4, 0, 5, 5, 5, 1, 4, 4, 4, 4, 4, 4}
	fake.Set(after)

	_, err := s.Target(context.Background(), 3)
	require.NoError(t, err)

	st := s.State()
	assert.Equal(t, 0, st.Layout.BoardPlayer1[2].Stones)
	assert.Equal(t, 1, st.Layout.CollectorPlayer2.Stones)
	assert.Equal(t, 1, s.Pits[3].Updates())

	require.Len(t, ch, 1)
	var pushed State
	require.NoError(t, json.Unmarshal(<-ch, &pushed))
	assert.Equal(t, "state", pushed.Kind)
	assert.Equal(t, after.Stones, pushed.Board.Stones)
	assert.Equal(t, 1, pushed.Watchers)
}

func TestReopenRefreshesPitCounts(t *testing.T) {
	h, fake := newTestHub()
	s := h.Get("test")
	require.NoError(t, s.Open(context.Background()))

	moved := uitest.Starting("test")
	moved.Stones = []int{2, 0, 5, 5, 5, 5, 4, 0, 4, 4, 4, 4, 4, 4}
	fake.Set(moved)
	require.NoError(t, s.Open(context.Background()))

	assert.Equal(t, 2, s.State().Layout.CollectorPlayer1.Stones)
	assert.Equal(t, 0, s.Pits[1].Stones())
}

func TestConcurrentTargetsAreSerialised(t *testing.T) {
	h, fake := newTestHub()
	s := h.Get("test")
	require.NoError(t, s.Open(context.Background()))

	var wg sync.WaitGroup
	for i := 1; i <= 6; i++ {
		wg.Add(1)
		go func(pit int) {
			defer wg.Done()
			_, _ = s.Target(context.Background(), pit)
		}(i)
	}
	wg.Wait()

	assert.Len(t, fake.Calls(), 7)
	assert.True(t, s.State().Loaded)
}
