package eval_test

import (
	"testing"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/herohde/randochess/pkg/score"
	"github.com/stretchr/testify/assert"
)

func newTestZobrist() *board.ZobristTable {
	return board.NewZobristTable(1)
}

func TestProportionCountInitialBoardIsEven(t *testing.T) {
	zt := newTestZobrist()
	b := board.InitialBoard(zt)

	var pc eval.ProportionCount
	assert.Equal(t, score.FromFloat64(0.5), pc.Evaluate(&b))
}

func TestProportionCountTerminalWhiteWin(t *testing.T) {
	var pc eval.ProportionCount

	pieces := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	assert.NoError(t, err)

	zt := newTestZobrist()
	b := board.NewBoard(zt, pos, board.White)

	mv := board.Move{Type: board.Capture, From: board.E1, To: board.E8, Piece: board.King, Capture: board.King}
	b.ApplyMoveUnchecked(zt, mv)

	assert.Equal(t, board.WhiteWins, b.Status())
	assert.Equal(t, score.ONE, pc.Evaluate(&b))
}
