package search

import (
	"fmt"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/score"
)

// Kind tags the four possible outcomes of a search call.
type Kind uint8

const (
	// Result carries an exact score (within the caller's bounds) and, for internal nodes, the
	// move that achieved it.
	Result Kind = iota
	// Low means the true score is at or below the caller's Bounds.Min: a fail-soft lower
	// cutoff. Score carries the attained bound.
	Low
	// High means the true score is at or above the caller's Bounds.Max: a fail-soft upper
	// cutoff. Score carries the attained bound.
	High
	// Timeout means the deadline expired during this call or a descendant; the caller must
	// propagate it unchanged and must not write to the table.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case Result:
		return "Result"
	case Low:
		return "Low"
	case High:
		return "High"
	case Timeout:
		return "Timeout"
	default:
		return "?"
	}
}

// Outcome is the tagged result of a search call: exactly one of Result(score, move),
// Low(bound), High(bound) or Timeout.
type Outcome struct {
	Kind    Kind
	Score   score.Score
	Move    board.Move
	HasMove bool
}

func ResultOf(s score.Score, m board.Move) Outcome {
	return Outcome{Kind: Result, Score: s, Move: m, HasMove: true}
}

func ResultNoMove(s score.Score) Outcome {
	return Outcome{Kind: Result, Score: s}
}

func LowOf(bound score.Score) Outcome {
	return Outcome{Kind: Low, Score: bound}
}

func HighOf(bound score.Score) Outcome {
	return Outcome{Kind: High, Score: bound}
}

func TimeoutOutcome() Outcome {
	return Outcome{Kind: Timeout}
}

func (o Outcome) String() string {
	switch o.Kind {
	case Result:
		if o.HasMove {
			return fmt.Sprintf("Result(%v, %v)", o.Score, o.Move)
		}
		return fmt.Sprintf("Result(%v)", o.Score)
	case Low, High:
		return fmt.Sprintf("%v(%v)", o.Kind, o.Score)
	default:
		return o.Kind.String()
	}
}
