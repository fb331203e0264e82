package board_test

import (
	"testing"

	"github.com/herohde/randochess/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestColorOpponent(t *testing.T) {
	assert.Equal(t, board.Black, board.White.Opponent())
	assert.Equal(t, board.White, board.Black.Opponent())
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "white", board.White.String())
	assert.Equal(t, "black", board.Black.String())
}
