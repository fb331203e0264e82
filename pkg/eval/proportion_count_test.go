package eval_test

import (
	"testing"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportionCountMaterialAdvantage(t *testing.T) {
	pieces := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.D1, Color: board.White, Piece: board.Queen},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	require.NoError(t, err)

	zt := board.NewZobristTable(2)
	b := board.NewBoard(zt, pos, board.White)

	var pc eval.ProportionCount
	got := pc.Evaluate(&b)

	// white: king(1) + queen(9) = 10, black: king(1) = 1 -> 10/11
	assert.InDelta(t, 10.0/11.0, got.Float64(), 1e-6)
}
