package search_test

import (
	"testing"
	"time"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/herohde/randochess/pkg/score"
	"github.com/herohde/randochess/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(maxLookahead int, opts ...search.Option) (*search.AlphaBeta, *board.ZobristTable) {
	zt := board.NewZobristTable(7)
	tt := search.NewTable(1 << 20)
	ab := search.New(zt, eval.ProportionCount{}, tt, maxLookahead, opts...)
	return ab, zt
}

func TestNewPanicsOnNonPositiveLookahead(t *testing.T) {
	assert.Panics(t, func() {
		newEngine(0)
	})
}

func TestNewPanicsOnFocussedTooShallow(t *testing.T) {
	assert.Panics(t, func() {
		newEngine(1, search.WithFocussed(true))
	})
}

func TestGetMoveReturnsLegalMoveFromInitialBoard(t *testing.T) {
	ab, zt := newEngine(3)
	b := board.InitialBoard(zt)

	mv := ab.GetMove(&b, 2*time.Second)

	var legal bool
	for _, m := range b.AllMoves() {
		if m.Equals(mv) {
			legal = true
			break
		}
	}
	assert.True(t, legal, "GetMove must return one of the board's legal moves")
}

func TestGetMoveFindsFreeQueenCapture(t *testing.T) {
	// White to move, queen takes queen for free.
	pieces := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.A1, Color: board.White, Piece: board.Queen},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.Queen},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	require.NoError(t, err)

	ab, zt := newEngine(2)
	b := board.NewBoard(zt, pos, board.White)

	mv := ab.GetMove(&b, 2*time.Second)
	assert.Equal(t, board.A1, mv.From)
	assert.Equal(t, board.A8, mv.To)
	assert.True(t, mv.IsCapture())
}

func TestEvaluateMaterialProportion(t *testing.T) {
	pieces := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.D1, Color: board.White, Piece: board.Queen},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	require.NoError(t, err)

	ab, zt := newEngine(4)
	b := board.NewBoard(zt, pos, board.White)

	got := ab.Evaluate(&b, 1, time.Second)
	assert.InDelta(t, 10.0/11.0, got.Float64(), 1e-6)
}

func TestSearchWithBoundsMatchesWidestBaseline(t *testing.T) {
	pieces := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.D1, Color: board.White, Piece: board.Queen},
		{Square: board.D7, Color: board.White, Piece: board.Pawn},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.A7, Color: board.Black, Piece: board.Pawn},
	}
	pos, err := board.NewPosition(pieces, board.NoCastling)
	require.NoError(t, err)

	ab, zt := newEngine(4)
	b := board.NewBoard(zt, pos, board.White)

	baseline := ab.SearchWithBounds(&b, score.Widest(), 3, time.Second)
	require.Equal(t, search.Result, baseline.Kind)
	s := baseline.Score

	const eps = score.Score(1 << 20)

	tight := ab.SearchWithBounds(&b, score.Bounds{Min: s - eps, HasMin: true, Max: s + eps, HasMax: true}, 3, time.Second)
	assert.Equal(t, search.Result, tight.Kind)
	assert.Equal(t, s, tight.Score)

	// Bounds shifted entirely above the true score: the search fails low.
	shiftedUp := ab.SearchWithBounds(&b, score.Bounds{Min: s + eps, HasMin: true}, 3, time.Second)
	assert.Equal(t, search.Low, shiftedUp.Kind)

	// Bounds shifted entirely below the true score: the search fails high.
	shiftedDown := ab.SearchWithBounds(&b, score.Bounds{Max: s - eps, HasMax: true}, 3, time.Second)
	assert.Equal(t, search.High, shiftedDown.Kind)
}

func TestGetMoveHonorsDeadline(t *testing.T) {
	ab, zt := newEngine(12)
	b := board.InitialBoard(zt)

	start := time.Now()
	mv := ab.GetMove(&b, 100*time.Millisecond)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 500*time.Millisecond)

	var legal bool
	for _, m := range b.AllMoves() {
		if m.Equals(mv) {
			legal = true
			break
		}
	}
	assert.True(t, legal)
}
