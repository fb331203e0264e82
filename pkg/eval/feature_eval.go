package eval

import (
	"math"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/score"
)

// Weights parameterizes FeatureEval. Pieces and KingDanger are indexed by board.Color then
// board.Piece/plain index.
type Weights struct {
	Pieces          [board.NumColors][board.NumPieces]float64
	KingDanger      [board.NumColors]float64
	PawnAdvancement [board.NumColors]float64
	SideToMove      float64
	ScaleDown       float64
}

// DefaultWeights returns a reasonable starting set of weights, favoring material heavily over
// the positional terms.
func DefaultWeights() Weights {
	var w Weights
	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1.0
		if c == board.Black {
			sign = -1.0
		}
		w.Pieces[c][board.Pawn] = sign * 1
		w.Pieces[c][board.Knight] = sign * 3
		w.Pieces[c][board.Bishop] = sign * 3
		w.Pieces[c][board.Rook] = sign * 5
		w.Pieces[c][board.Queen] = sign * 9
		w.Pieces[c][board.King] = 0
		w.KingDanger[c] = sign * -0.05
		w.PawnAdvancement[c] = sign * 0.1
	}
	w.SideToMove = 0.1
	w.ScaleDown = 10
	return w
}

// Features holds the raw, color-indexed feature values extracted from a board, before weighting.
type Features struct {
	Pieces          [board.NumColors][board.NumPieces]float64
	KingDanger      [board.NumColors]float64
	PawnAdvancement [board.NumColors]float64
	SideToMove      float64
}

// FeaturesFromBoard extracts Features from the given board.
func FeaturesFromBoard(b *board.Board) Features {
	var f Features

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		c, p, occupied := b.Square(sq)
		if !occupied {
			continue
		}
		f.Pieces[c][p]++

		if p == board.Pawn {
			rank := float64(sq.Rank())
			if c == board.White {
				f.PawnAdvancement[c] += rank - 1.0
			} else {
				f.PawnAdvancement[c] += 6.0 - rank
			}
		}
	}

	for _, c := range []board.Color{board.White, board.Black} {
		if n := f.Pieces[c][board.Pawn]; n > 0 {
			f.PawnAdvancement[c] /= n
		}

		if kingSq, ok := b.KingSquare(c); ok {
			own := b.Occupied(c)
			reach := board.KnightAttacksFrom(kingSq) |
				board.BishopAttacksFrom(kingSq, own) |
				board.RookAttacksFrom(kingSq, own)
			f.KingDanger[c] = float64((reach &^ own).Count())
		}
	}

	f.SideToMove = 1
	if b.Turn() == board.Black {
		f.SideToMove = -1
	}
	return f
}

// FeatureEval is a weighted linear combination of material and positional features, squashed
// through a sigmoid into [0, 1]. A terminal position short-circuits to its decided outcome.
type FeatureEval struct {
	Weights Weights
}

func NewFeatureEval(w Weights) FeatureEval {
	return FeatureEval{Weights: w}
}

func (e FeatureEval) Evaluate(b *board.Board) score.Score {
	if s, ok := evaluateTerminal(b); ok {
		return s
	}

	f := FeaturesFromBoard(b)
	w := e.Weights

	var sum float64
	for _, c := range []board.Color{board.White, board.Black} {
		for p := board.ZeroPiece; p < board.NumPieces; p++ {
			sum += w.Pieces[c][p] * f.Pieces[c][p]
		}
		sum += w.KingDanger[c] * f.KingDanger[c]
		sum += w.PawnAdvancement[c] * f.PawnAdvancement[c]
	}
	// Note: w.SideToMove and f.SideToMove are intentionally not folded into sum here.

	scale := w.ScaleDown
	if scale == 0 {
		scale = 1
	}
	return score.FromFloat64(sigmoid(sum / scale))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
