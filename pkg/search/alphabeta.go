package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/herohde/randochess/pkg/score"
)

// roundingTolerance bounds how far a combined chance-node score may land outside the caller's
// bounds before it is treated as a genuine bug rather than fixed-point rounding noise.
const roundingTolerance = score.Score(1 << 12)

// AlphaBeta is an expectiminimax search engine with alpha-beta-style interval pruning adapted
// to the bonus/no-bonus chance node. It owns the transposition table and Zobrist table for the
// lifetime of a game: the table is warmed across successive GetMove calls.
//
// The search is strictly single-threaded and synchronous. An AlphaBeta value must not be used
// concurrently from more than one goroutine; run independent matches with independent
// instances.
type AlphaBeta struct {
	Zobrist   *board.ZobristTable
	Evaluator eval.Evaluator
	TT        *Table

	MaxLookahead  int
	IsPessimistic bool
	IsFocussed    bool
}

// Option configures an AlphaBeta at construction.
type Option func(*AlphaBeta)

// WithPessimistic toggles the probability-skew mode: the mover discounts its own chance of a
// bonus, biasing the search towards caution rather than expected-value optimism.
func WithPessimistic(v bool) Option {
	return func(ab *AlphaBeta) {
		ab.IsPessimistic = v
	}
}

// WithFocussed toggles focussed mode: the bonus branch is charged two plies of depth instead
// of one, and leaf evaluation happens one ply earlier, trading bonus-branch resolution for
// extra no-bonus-branch lookahead.
func WithFocussed(v bool) Option {
	return func(ab *AlphaBeta) {
		ab.IsFocussed = v
	}
}

// New constructs an AlphaBeta engine. Panics if maxLookahead is not positive, or if focussed
// mode is requested with a lookahead under 2 -- both are configuration errors, fatal at
// construction per design.
func New(zt *board.ZobristTable, evaluator eval.Evaluator, tt *Table, maxLookahead int, opts ...Option) *AlphaBeta {
	ab := &AlphaBeta{
		Zobrist:      zt,
		Evaluator:    evaluator,
		TT:           tt,
		MaxLookahead: maxLookahead,
	}
	for _, opt := range opts {
		opt(ab)
	}

	if ab.MaxLookahead <= 0 {
		panic("search: max lookahead must be positive")
	}
	if ab.IsFocussed && ab.MaxLookahead < 2 {
		panic("search: focussed search requires max lookahead of at least 2")
	}
	return ab
}

func (ab *AlphaBeta) finishDepth() int {
	if ab.IsFocussed {
		return 1
	}
	return 0
}

func (ab *AlphaBeta) bonusDepthDelta() int {
	if ab.IsFocussed {
		return 2
	}
	return 1
}

// GetMove runs iterative deepening from depth 2 up to MaxLookahead, under the given wall-clock
// budget, and returns the best move found at the deepest depth completed before the deadline.
// Panics if depth 2 itself does not complete -- the lookahead or time budget is misconfigured.
func (ab *AlphaBeta) GetMove(b *board.Board, maxTime time.Duration) board.Move {
	dl := NewDeadline(maxTime)

	var best board.Move
	haveBest := false

	for depth := 2; depth <= ab.MaxLookahead; depth++ {
		out := ab.search(b, score.Widest(), depth, true, dl)
		switch out.Kind {
		case Result:
			if !out.HasMove {
				panic("search: root search returned no move")
			}
			best = out.Move
			haveBest = true
		case Timeout:
			if !haveBest {
				panic("search: deadline expired before depth 2 completed")
			}
			return best
		default:
			panic(fmt.Sprintf("search: unexpected root outcome %v", out))
		}
	}
	if !haveBest {
		panic("search: no depth completed")
	}
	return best
}

// Evaluate runs a full-depth search and returns the score only, for tests and tools.
func (ab *AlphaBeta) Evaluate(b *board.Board, depth int, maxTime time.Duration) score.Score {
	dl := NewDeadline(maxTime)
	out := ab.search(b, score.Widest(), depth, false, dl)
	switch out.Kind {
	case Result:
		return out.Score
	case Low:
		return out.Score
	case High:
		return out.Score
	default:
		panic(fmt.Sprintf("search: unexpected evaluate outcome %v", out))
	}
}

// SearchWithBounds exposes the internal recursion with an arbitrary search window, for tests
// and tools verifying pruning soundness against a widest-bounds baseline.
func (ab *AlphaBeta) SearchWithBounds(b *board.Board, bounds score.Bounds, depth int, maxTime time.Duration) Outcome {
	dl := NewDeadline(maxTime)
	return ab.search(b, bounds, depth, false, dl)
}

// search is the expectiminimax recursion. bounds must be Valid(); requireMove forces full
// expansion even when the table holds an exact score (the root call of GetMove always sets
// this, since it needs an actual move).
func (ab *AlphaBeta) search(b *board.Board, bounds score.Bounds, depth int, requireMove bool, dl Deadline) Outcome {
	if !bounds.Valid() {
		panic("search: invalid bounds")
	}
	if dl.Expired() {
		return TimeoutOutcome()
	}

	params := Parameters{Depth: depth, DeadMoves: b.DeadMoves()}

	if info, ok := ab.TT.Get(b.Hash(), params); ok {
		if bounds.InfoTooLow(info) {
			return LowOf(bounds.Min)
		}
		if bounds.InfoTooHigh(info) {
			return HighOf(bounds.Max)
		}
		if !requireMove {
			if s, ok := info.ActualScore(); ok {
				return ResultNoMove(s)
			}
		}
	}

	finish := ab.finishDepth()
	if depth <= finish || b.Status() != board.InProgress {
		return ab.searchLeaf(b, bounds, depth)
	}
	return ab.searchInternal(b, bounds, depth, dl)
}

// searchLeaf evaluates a terminal or depth-exhausted node, writes the exact score to the
// table, and categorizes it against the caller's bounds. Unlike an internal node's combined
// child score, a leaf value is unconstrained by the bounds algebra, so it legitimately may
// fall far outside bounds: that is an ordinary prune, not a bug.
func (ab *AlphaBeta) searchLeaf(b *board.Board, bounds score.Bounds, depth int) Outcome {
	s := ab.Evaluator.Evaluate(b)

	params := Parameters{Depth: depth, DeadMoves: b.DeadMoves()}
	ab.TT.Insert(b.Hash(), params, score.FromScore(s))

	switch {
	case bounds.ScoreTooLow(s):
		return LowOf(bounds.Min)
	case bounds.ScoreTooHigh(s):
		return HighOf(bounds.Max)
	default:
		return ResultNoMove(s)
	}
}

func (ab *AlphaBeta) searchInternal(b *board.Board, bounds score.Bounds, depth int, dl Deadline) Outcome {
	isMaxing := b.Turn() == board.White
	finish := ab.finishDepth()
	checked := depth > finish+1

	moves := ab.orderedMoves(b, depth, isMaxing, checked)

	var best Outcome
	haveBest := false

	for _, m := range moves {
		bonusBoard, noBonusBoard := ab.nextBoards(b, m, checked)

		bonusChance, noBonusChance := ab.chances(&bonusBoard)

		nbBounds := bounds.MinDecreasedBy(bonusChance).Expanded(noBonusChance)
		nbOutcome := ab.search(&noBonusBoard, nbBounds, depth-1, false, dl)
		if nbOutcome.Kind == Timeout {
			return nbOutcome
		}
		if nbOutcome.Kind == Low || nbOutcome.Kind == High {
			if (nbOutcome.Kind == Low && isMaxing) || (nbOutcome.Kind == High && !isMaxing) {
				continue // this move cannot improve the bound; try the next sibling
			}
			cutoff := ab.nodeCutoff(isMaxing, bounds)
			ab.updateTableForResult(b, Parameters{Depth: depth, DeadMoves: b.DeadMoves()}, cutoff)
			return cutoff
		}
		nbScore := nbOutcome.Score

		bBounds := bounds.BothDecreasedBy(nbScore.Mul(noBonusChance)).Expanded(bonusChance)
		bOutcome := ab.search(&bonusBoard, bBounds, depth-ab.bonusDepthDelta(), false, dl)
		if bOutcome.Kind == Timeout {
			return bOutcome
		}
		if bOutcome.Kind == Low || bOutcome.Kind == High {
			if (bOutcome.Kind == Low && isMaxing) || (bOutcome.Kind == High && !isMaxing) {
				continue
			}
			cutoff := ab.nodeCutoff(isMaxing, bounds)
			ab.updateTableForResult(b, Parameters{Depth: depth, DeadMoves: b.DeadMoves()}, cutoff)
			return cutoff
		}
		bScore := bOutcome.Score

		combined, ok := bScore.Mul(bonusChance).CheckedAdd(nbScore.Mul(noBonusChance))
		if !ok {
			panic("search: combined score overflowed")
		}

		outcome := ab.clampCombined(combined, bounds, m)
		if outcome.Kind == Low || outcome.Kind == High {
			ab.updateTableForResult(b, Parameters{Depth: depth, DeadMoves: b.DeadMoves()}, outcome)
			return outcome
		}

		if isMaxing {
			bounds.UpdateMin(combined)
		} else {
			bounds.UpdateMax(combined)
		}
		best = outcome
		haveBest = true
	}

	var out Outcome
	if haveBest {
		out = best
	} else if isMaxing {
		out = LowOf(bounds.Min)
	} else {
		out = HighOf(bounds.Max)
	}
	ab.updateTableForResult(b, Parameters{Depth: depth, DeadMoves: b.DeadMoves()}, out)
	return out
}

// clampCombined categorizes a chance node's combined child score against bounds. The bounds
// algebra guarantees containment up to fixed-point rounding; a deviation beyond
// roundingTolerance indicates a bug in that algebra, not legitimate pruning, and panics.
func (ab *AlphaBeta) clampCombined(combined score.Score, bounds score.Bounds, m board.Move) Outcome {
	if bounds.Contains(combined) {
		return ResultOf(combined, m)
	}
	if bounds.ScoreTooLow(combined) {
		if bounds.Min-combined > roundingTolerance {
			panic("search: combined score fell distinctly below bounds")
		}
		return LowOf(bounds.Min)
	}
	// bounds.ScoreTooHigh(combined): combined >= bounds.Max.
	if combined-bounds.Max > roundingTolerance {
		panic("search: combined score fell distinctly above bounds")
	}
	return HighOf(bounds.Max)
}

// nodeCutoff builds the cutoff Outcome for this node's own (loop-tightened) bounds, not the
// child's: a child's Low/High is scoped to its own expanded window, and propagating it unchanged
// would store an over-claiming bound in the table (SPEC_FULL/spec §4.4.5, original_source/src/
// engine/alphabeta.rs:287-309's update_table_for_result takes the node's bounds).
func (ab *AlphaBeta) nodeCutoff(isMaxing bool, bounds score.Bounds) Outcome {
	if isMaxing {
		return HighOf(bounds.Max)
	}
	return LowOf(bounds.Min)
}

func (ab *AlphaBeta) updateTableForResult(b *board.Board, params Parameters, out Outcome) {
	switch out.Kind {
	case Result:
		ab.TT.Insert(b.Hash(), params, score.FromScore(out.Score))
	case Low:
		ab.TT.Insert(b.Hash(), params, score.FromMaxScore(out.Score))
	case High:
		ab.TT.Insert(b.Hash(), params, score.FromMinScore(out.Score))
	}
}

// chances returns the bonus/no-bonus probabilities for the move under consideration, applying
// the pessimistic skew if enabled: the mover discounts its own chance of a bonus, biasing the
// search towards assuming the worse outcome for whichever side is about to move. bonusBoard is
// the bonus grandchild of the move under consideration (post-move, bonus resolved true); the
// piece count driving the skew is read from it rather than from the parent, since it must
// reflect what this particular move captures.
func (ab *AlphaBeta) chances(bonusBoard *board.Board) (score.Score, score.Score) {
	bonusChance, noBonusChance := score.BonusChance(), score.NoBonusChance()
	if !ab.IsPessimistic {
		return bonusChance, noBonusChance
	}

	pieces := bonusBoard.Occupied(board.White).Count() + bonusBoard.Occupied(board.Black).Count()
	adjustment := score.FromRatio(uint64(pieces), 200)

	if v, ok := bonusChance.CheckedSub(adjustment); ok {
		bonusChance = v
	}
	if v, ok := noBonusChance.CheckedAdd(adjustment); ok {
		noBonusChance = v
	}
	return bonusChance, noBonusChance
}

// nextBoards applies m to b and returns the bonus and no-bonus grandchildren. When checked is
// true, draw-by-no-legal-moves is adjudicated immediately (more expensive, used at every depth
// above finish-depth+1 and during move ordering); when false the cheaper unchecked variant is
// used, which happens only at depth finish-depth+1, whose children are leaves: a side left with
// no moves there keeps status InProgress and is scored by static evaluation, not as a draw.
func (ab *AlphaBeta) nextBoards(b *board.Board, m board.Move, checked bool) (bonus, noBonus board.Board) {
	child := *b
	child.ApplyMoveUnchecked(ab.Zobrist, m)

	bonus, noBonus = child, child
	if checked {
		bonus.ApplyBonus(ab.Zobrist, true)
		noBonus.ApplyBonus(ab.Zobrist, false)
	} else {
		bonus.ApplyBonusUnchecked(ab.Zobrist, true)
		noBonus.ApplyBonusUnchecked(ab.Zobrist, false)
	}
	return bonus, noBonus
}

// orderedMoves returns b's legal moves, sorted best-for-the-mover first when depth exceeds
// finish-depth+1. The sort key is each move's no-bonus grandchild score from a lenient table
// lookup (falling back to static evaluation), since that lookup is the cheap proxy iterative
// deepening relies on for move ordering.
func (ab *AlphaBeta) orderedMoves(b *board.Board, depth int, isMaxing, checked bool) []board.Move {
	moves := b.AllMoves()
	if depth <= ab.finishDepth()+1 {
		return moves
	}

	type candidate struct {
		move board.Move
		key  score.Score
	}
	ordered := make([]candidate, len(moves))
	for i, m := range moves {
		_, noBonusBoard := ab.nextBoards(b, m, checked)

		var s score.Score
		if info, ok := ab.TT.GetLenient(noBonusBoard.Hash()); ok {
			if exact, ok2 := info.ActualScore(); ok2 {
				s = exact
			} else {
				s = ab.Evaluator.Evaluate(&noBonusBoard)
				ab.TT.Insert(noBonusBoard.Hash(), Parameters{Depth: ab.finishDepth(), DeadMoves: noBonusBoard.DeadMoves()}, score.FromScore(s))
			}
		} else {
			s = ab.Evaluator.Evaluate(&noBonusBoard)
			ab.TT.Insert(noBonusBoard.Hash(), Parameters{Depth: ab.finishDepth(), DeadMoves: noBonusBoard.DeadMoves()}, score.FromScore(s))
		}

		key := s
		if isMaxing {
			key = score.ONE - s
		}
		ordered[i] = candidate{move: m, key: key}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].key < ordered[j].key
	})

	out := make([]board.Move, len(ordered))
	for i, c := range ordered {
		out[i] = c.move
	}
	return out
}
