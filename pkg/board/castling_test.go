package board_test

import (
	"testing"

	"github.com/herohde/randochess/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestCastlingIsAllowed(t *testing.T) {
	c := board.WhiteKingSideCastle | board.BlackQueenSideCastle

	assert.True(t, c.IsAllowed(board.WhiteKingSideCastle))
	assert.True(t, c.IsAllowed(board.BlackQueenSideCastle))
	assert.False(t, c.IsAllowed(board.WhiteQueenSideCastle))
	assert.False(t, c.IsAllowed(board.Both(board.White)))
}

func TestCastlingRemove(t *testing.T) {
	c := board.FullCastling
	c = c.Remove(board.WhiteKingSideCastle)

	assert.False(t, c.IsAllowed(board.WhiteKingSideCastle))
	assert.True(t, c.IsAllowed(board.WhiteQueenSideCastle))
	assert.True(t, c.IsAllowed(board.Both(board.Black)))
}

func TestCastlingString(t *testing.T) {
	assert.Equal(t, "-", board.NoCastling.String())
	assert.Equal(t, "KQkq", board.FullCastling.String())
	assert.Equal(t, "Kq", (board.WhiteKingSideCastle | board.BlackQueenSideCastle).String())
}

func TestKingQueenSide(t *testing.T) {
	assert.Equal(t, board.WhiteKingSideCastle, board.KingSide(board.White))
	assert.Equal(t, board.BlackKingSideCastle, board.KingSide(board.Black))
	assert.Equal(t, board.WhiteQueenSideCastle, board.QueenSide(board.White))
	assert.Equal(t, board.BlackQueenSideCastle, board.QueenSide(board.Black))
}
