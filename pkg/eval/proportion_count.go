package eval

import (
	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/score"
)

// pieceValues holds the nominal value of each piece, indexed by board.Piece.
var pieceValues = map[board.Piece]uint64{
	board.Pawn:   1,
	board.Bishop: 3,
	board.Knight: 3,
	board.Rook:   5,
	board.Queen:  9,
	board.King:   1,
}

// ProportionCount is the simplest evaluator: the proportion of total material value held by
// White, ignoring position entirely. A terminal position short-circuits to its decided outcome.
type ProportionCount struct{}

func (ProportionCount) Evaluate(b *board.Board) score.Score {
	if s, ok := evaluateTerminal(b); ok {
		return s
	}

	var white, black uint64
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		c, p, occupied := b.Square(sq)
		if !occupied {
			continue
		}
		if c == board.White {
			white += pieceValues[p]
		} else {
			black += pieceValues[p]
		}
	}
	return score.FromRatio(white, white+black)
}
