// Package engine wires the core expectiminimax search (pkg/search) to the ambient concerns
// spec.md leaves to its driver: construction options, a Zobrist-seeded transposition table, and
// the current board state a CLI or harness mutates move by move.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/board/fen"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/herohde/randochess/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine construction/runtime options. MaxLookahead, IsPessimistic, IsFocussed,
// LogLevel and MaxTimeMS are the five runtime parameters enumerated in spec.md's "Engine
// construction parameters" (the sixth, evaluator, is set via WithEvaluator since it is not a
// plain value type); HashMB additionally sizes the transposition table, mirroring teacher's
// Options.Hash.
type Options struct {
	MaxLookahead  int
	IsPessimistic bool
	IsFocussed    bool
	LogLevel      uint
	MaxTimeMS     uint
	HashMB        uint
}

// DefaultOptions returns reasonable defaults: depth 6, a 5 second budget, a 64MB table.
func DefaultOptions() Options {
	return Options{
		MaxLookahead: 6,
		MaxTimeMS:    5000,
		HashMB:       64,
	}
}

func (o Options) String() string {
	return fmt.Sprintf("{lookahead=%v, pessimistic=%v, focussed=%v, logLevel=%v, maxTime=%vms, hash=%vMB}",
		o.MaxLookahead, o.IsPessimistic, o.IsFocussed, o.LogLevel, o.MaxTimeMS, o.HashMB)
}

// Engine plays Random Chess: it owns the current board, the transposition table, and the core
// search, and exposes the synchronous operations spec.md's driver needs.
type Engine struct {
	name, author string

	evaluator eval.Evaluator
	opts      Options
	seed      int64

	zt              *board.ZobristTable
	tt              *search.Table
	ab              *search.AlphaBeta
	initialPosition lang.Optional[string]

	b     board.Board
	plies int
	mu    sync.Mutex
}

// Option is an engine construction option.
type Option func(*Engine)

// WithOptions sets the runtime options, overriding DefaultOptions.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithEvaluator sets the static evaluator. Defaults to eval.ProportionCount{}.
func WithEvaluator(evaluator eval.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithZobristSeed configures the engine to use the given random seed instead of the default
// seed of zero, mirroring teacher's WithZobrist.
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithInitialPosition starts the engine from the given FEN-like position (pkg/board/fen)
// instead of the Random Chess starting position. Absent (the zero lang.Optional) means the
// default initial position.
func WithInitialPosition(pos lang.Optional[string]) Option {
	return func(e *Engine) {
		e.initialPosition = pos
	}
}

// New constructs an engine at the initial position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:      name,
		author:    author,
		opts:      DefaultOptions(),
		evaluator: eval.ProportionCount{},
	}
	for _, fn := range opts {
		fn(e)
	}

	e.zt = board.NewZobristTable(e.seed)
	e.tt = search.NewTable(uint64(e.opts.HashMB) << 20)
	e.ab = search.New(e.zt, e.evaluator, e.tt, e.opts.MaxLookahead,
		search.WithPessimistic(e.opts.IsPessimistic),
		search.WithFocussed(e.opts.IsFocussed))

	if fenStr, ok := e.initialPosition.V(); ok {
		pos, turn, _, plies, err := fen.Decode(fenStr)
		if err != nil {
			panic(fmt.Sprintf("engine: invalid initial position %q: %v", fenStr, err))
		}
		e.b = board.NewBoard(e.zt, pos, turn)
		e.plies = plies
	} else {
		e.b = board.InitialBoard(e.zt)
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Reset returns the engine to the initial position.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.b = board.InitialBoard(e.zt)
	e.plies = 0
	logw.Infof(ctx, "Reset: %v", e.positionLocked())
}

// Position returns the current position in FEN-like notation (pkg/board/fen), for logging and
// tests. Random Chess's bonus move means a side can move twice in a row, so the usual
// full-move-pair counter does not cleanly apply here; the sixth field is simply the count of
// moves applied so far, starting from 0 (or, for an engine started via WithInitialPosition,
// from that FEN's sixth field).
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.positionLocked()
}

func (e *Engine) positionLocked() string {
	return fen.Encode(e.b.Position, e.b.Turn(), e.b.DeadMoves(), e.plies)
}

// Board returns the current board.
func (e *Engine) Board() board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b
}

// SetBoard replaces the current board outright. There is no persisted state to reconcile (the
// table stays warm, keyed by hash, and simply goes unused for hashes it has never seen): used by
// tests and harnesses that need to start a match from an arbitrary position.
func (e *Engine) SetBoard(b board.Board) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.b = b
	e.plies = 0
}

// ApplyMove applies m, which must be legal for the current position, and leaves the board
// awaiting its bonus-coin resolution.
func (e *Engine) ApplyMove(ctx context.Context, m board.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, legal := range e.b.AllMoves() {
		if legal.Equals(m) {
			e.b.ApplyMoveUnchecked(e.zt, legal)
			e.plies++
			logw.Infof(ctx, "Move %v: %v", legal, e.positionLocked())
			return nil
		}
	}
	return fmt.Errorf("illegal move: %v", m)
}

// ApplyBonus resolves the bonus coin pending from the last ApplyMove.
func (e *Engine) ApplyBonus(ctx context.Context, isBonus bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.b.ApplyBonus(e.zt, isBonus)
	logw.Infof(ctx, "Bonus %v: %v", isBonus, e.positionLocked())
}

// Status returns the current game status.
func (e *Engine) Status() board.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Status()
}

// GetMove selects a move for the side to move. Precondition: the board status is in-progress.
func (e *Engine) GetMove(ctx context.Context) board.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.b.Status() != board.InProgress {
		panic(fmt.Sprintf("engine: GetMove called with status %v", e.b.Status()))
	}

	maxTime := time.Duration(e.opts.MaxTimeMS) * time.Millisecond
	mv := e.ab.GetMove(&e.b, maxTime)
	logw.Infof(ctx, "GetMove: %v", mv)

	if e.opts.LogLevel >= 5 {
		logw.Debugf(ctx, "Table %v, stats=%+v", e.tt, e.tt.StatsSnapshot())
	}
	return mv
}
