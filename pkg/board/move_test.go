package board_test

import (
	"testing"

	"github.com/herohde/randochess/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, board.E2, m.From)
	assert.Equal(t, board.E4, m.To)
	assert.False(t, m.Promotion.IsValid())

	m, err = board.ParseMove("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, board.Queen, m.Promotion)

	_, err = board.ParseMove("a7a8k")
	assert.Error(t, err)

	_, err = board.ParseMove("a7")
	assert.Error(t, err)
}

func TestMoveEquals(t *testing.T) {
	a, _ := board.ParseMove("e2e4")
	b, _ := board.ParseMove("e2e4")
	c, _ := board.ParseMove("e2e3")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestMoveIsDeadMove(t *testing.T) {
	pawn := board.Move{Piece: board.Pawn, Type: board.Normal}
	assert.False(t, pawn.IsDeadMove())

	capture := board.Move{Piece: board.Knight, Type: board.Capture, Capture: board.Pawn}
	assert.False(t, capture.IsDeadMove())

	quiet := board.Move{Piece: board.Knight, Type: board.Normal}
	assert.True(t, quiet.IsDeadMove())
}

func TestMoveCastlingRookMove(t *testing.T) {
	ks := board.Move{Type: board.KingSideCastle, From: board.E1, To: board.G1, Piece: board.King}
	from, to, ok := ks.CastlingRookMove()
	assert.True(t, ok)
	assert.Equal(t, board.H1, from)
	assert.Equal(t, board.F1, to)

	qs := board.Move{Type: board.QueenSideCastle, From: board.E8, To: board.C8, Piece: board.King}
	from, to, ok = qs.CastlingRookMove()
	assert.True(t, ok)
	assert.Equal(t, board.A8, from)
	assert.Equal(t, board.D8, to)

	_, _, ok = board.Move{Type: board.Normal}.CastlingRookMove()
	assert.False(t, ok)
}

func TestMoveString(t *testing.T) {
	m, _ := board.ParseMove("e2e4")
	assert.Equal(t, "e2e4", m.String())

	m, _ = board.ParseMove("a7a8q")
	assert.Equal(t, "a7a8q", m.String())
}
