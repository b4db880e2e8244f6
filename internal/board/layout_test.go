package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startingBoard() Board {
	return Board{
		ID:                 "abc",
		CurrentPlayer:      Player1,
		BoardSizePerPlayer: 7,
		IsOpen:             true,
		Stones:             []int{0, 4, 4, 4, 4, 4, 4, 0, 4, 4, 4, 4, 4, 4},
	}
}

func TestPartitionStartingBoard(t *testing.T) {
	l, err := Partition(startingBoard())
	require.NoError(t, err)

	assert.Equal(t, Stone{Index: 0, Stones: 0}, l.CollectorPlayer1)
	assert.Equal(t, Stone{Index: 7, Stones: 0}, l.CollectorPlayer2)
	assert.Equal(t, []Stone{{1, 4}, {2, 4}, {3, 4}, {4, 4}, {5, 4}, {6, 4}}, l.BoardPlayer1)
	assert.Equal(t, []Stone{{13, 4}, {12, 4}, {11, 4}, {10, 4}, {9, 4}, {8, 4}}, l.BoardPlayer2)
}

func TestPartitionSizes(t *testing.T) {
	for size := 2; size <= 8; size++ {
		stones := make([]int, 2*size)
		for i := range stones {
			stones[i] = i * 3
		}
		b := Board{BoardSizePerPlayer: size, Stones: stones}

		l, err := Partition(b)
		require.NoError(t, err, "size %d", size)

		half := (len(stones) - 2) / 2
		assert.Len(t, l.BoardPlayer1, half)
		assert.Len(t, l.BoardPlayer2, half)
		assert.Equal(t, stones[0], l.CollectorPlayer1.Stones)
		assert.Equal(t, stones[size], l.CollectorPlayer2.Stones)
		assert.Equal(t, size, l.CollectorPlayer2.Index)
	}
}

func TestPartitionPlayer2Reversed(t *testing.T) {
	b := Board{BoardSizePerPlayer: 4, Stones: []int{9, 1, 2, 3, 8, 5, 6, 7}}
	l, err := Partition(b)
	require.NoError(t, err)

	assert.Equal(t, []Stone{{7, 7}, {6, 6}, {5, 5}}, l.BoardPlayer2)
	assert.Equal(t, []Stone{{5, 5}, {6, 6}, {7, 7}}, Reverse(l.BoardPlayer2))
	assert.Equal(t, l.BoardPlayer2, Reverse(Reverse(l.BoardPlayer2)))
}

func TestPartitionDoesNotAliasInput(t *testing.T) {
	b := startingBoard()
	l, err := Partition(b)
	require.NoError(t, err)

	b.Stones[1] = 99
	assert.Equal(t, 4, l.BoardPlayer1[0].Stones)
}

func TestPartitionMalformed(t *testing.T) {
	cases := map[string]Board{
		"odd length":      {BoardSizePerPlayer: 3, Stones: []int{0, 1, 1, 0, 1}},
		"size mismatch":   {BoardSizePerPlayer: 6, Stones: startingBoard().Stones},
		"empty":           {},
		"single per side": {BoardSizePerPlayer: 1, Stones: []int{0, 0}},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Partition(b)
			assert.ErrorIs(t, err, ErrMalformedBoard)
		})
	}
}

func TestLayoutPitsRestoresBoardOrder(t *testing.T) {
	b := startingBoard()
	b.Stones = []int{3, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	l, err := Partition(b)
	require.NoError(t, err)

	pits := l.Pits()
	require.Len(t, pits, len(b.Stones))
	for i, p := range pits {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, b.Stones[i], p.Stones)
	}
}

func TestWinnerName(t *testing.T) {
	b := startingBoard()
	assert.False(t, b.Finished())
	assert.Empty(t, b.WinnerName())

	w := Player2
	b.IsOpen = false
	b.Winner = &w
	assert.True(t, b.Finished())
	assert.Equal(t, "Player 2", b.WinnerName())
}
