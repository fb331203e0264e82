// Package eval contains static evaluators: functions from a board position to an expected
// outcome for White, used as the leaf evaluation in search.
package eval

import (
	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/score"
)

// Evaluator evaluates a board position, returning a Score in [0, 1]: the expected value for
// White, where 0 is a certain loss, 1 a certain win and 0.5 a draw.
type Evaluator interface {
	Evaluate(b *board.Board) score.Score
}

// evaluateTerminal returns the score for a decided game, or false if the game is still in
// progress. Shared by every evaluator, since a terminal position's value does not depend on
// material or features.
func evaluateTerminal(b *board.Board) (score.Score, bool) {
	switch b.Status() {
	case board.WhiteWins:
		return score.ONE, true
	case board.BlackWins:
		return score.ZERO, true
	case board.Draw:
		return score.FromFloat64(0.5), true
	default:
		return 0, false
	}
}
