package eval_test

import (
	"testing"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/herohde/randochess/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturesFromBoardPawnAdvancement(t *testing.T) {
	pieces := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.E4, Color: board.White, Piece: board.Pawn},
		{Square: board.E5, Color: board.Black, Piece: board.Pawn},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	require.NoError(t, err)

	zt := board.NewZobristTable(3)
	b := board.NewBoard(zt, pos, board.White)

	f := eval.FeaturesFromBoard(&b)

	assert.Equal(t, float64(1), f.Pieces[board.White][board.Pawn])
	assert.Equal(t, float64(1), f.Pieces[board.Black][board.Pawn])

	// e4 is rank index 3 (0-based): white advancement = 3 - 1 = 2
	assert.InDelta(t, 2.0, f.PawnAdvancement[board.White], 1e-9)
	// e5 is rank index 4 (0-based): black advancement = 6 - 4 = 2
	assert.InDelta(t, 2.0, f.PawnAdvancement[board.Black], 1e-9)

	assert.Equal(t, float64(1), f.SideToMove)
}

func TestFeatureEvalInitialBoardIsBalanced(t *testing.T) {
	zt := board.NewZobristTable(4)
	b := board.InitialBoard(zt)

	e := eval.NewFeatureEval(eval.DefaultWeights())
	got := e.Evaluate(&b)

	// Symmetric starting position with symmetric (sign-flipped) weights scores exactly 0.5.
	assert.InDelta(t, 0.5, got.Float64(), 1e-6)
}

func TestFeatureEvalTerminalShortCircuits(t *testing.T) {
	pieces := []board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.H8, Color: board.Black, Piece: board.King},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	require.NoError(t, err)

	zt := board.NewZobristTable(5)
	b := board.NewBoard(zt, pos, board.White)
	b.ApplyMoveUnchecked(zt, board.Move{Type: board.Capture, From: board.A1, To: board.H8, Piece: board.King, Capture: board.King})
	require.Equal(t, board.WhiteWins, b.Status())

	e := eval.NewFeatureEval(eval.DefaultWeights())
	assert.Equal(t, score.ONE, e.Evaluate(&b))
}
