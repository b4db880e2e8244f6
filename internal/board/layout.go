package board

import "fmt"

// Partition splits a snapshot into collectors and per-player pits.
//
// Collectors sit at index 0 and at index BoardSizePerPlayer. Player 1's pits
// follow the first collector in board order; player 2's pits follow the
// second collector and are reversed, so both rows run away from their own
// collector in the same direction around the ring.
func Partition(b Board) (Layout, error) {
	size := b.BoardSizePerPlayer
	if size < 2 || len(b.Stones) != 2*size {
		return Layout{}, fmt.Errorf("%w: %d stones for %d per player", ErrMalformedBoard, len(b.Stones), size)
	}

	indexed := make([]Stone, len(b.Stones))
	for i, s := range b.Stones {
		indexed[i] = Stone{Index: i, Stones: s}
	}

	l := Layout{
		CollectorPlayer1: indexed[0],
		BoardPlayer1:     append([]Stone(nil), indexed[1:size]...),
		CollectorPlayer2: indexed[size],
		BoardPlayer2:     Reverse(indexed[size+1:]),
	}
	return l, nil
}

// Reverse returns a reversed copy of s.
func Reverse(s []Stone) []Stone {
	out := make([]Stone, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Pits returns every pit of the layout, collectors included, in board order.
func (l Layout) Pits() []Stone {
	out := make([]Stone, 0, len(l.BoardPlayer1)+len(l.BoardPlayer2)+2)
	out = append(out, l.CollectorPlayer1)
	out = append(out, l.BoardPlayer1...)
	out = append(out, l.CollectorPlayer2)
	out = append(out, Reverse(l.BoardPlayer2)...)
	return out
}
