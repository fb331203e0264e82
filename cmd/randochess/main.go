package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/engine"
	"github.com/herohde/randochess/pkg/engine/console"
	"github.com/herohde/randochess/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	lookahead       = flag.Int("lookahead", 6, "Maximum search lookahead in plies")
	hash            = flag.Uint("hash", 64, "Transposition table size in MB")
	maxTimeMS       = flag.Uint("time", 5000, "Wall-clock budget per move, in milliseconds")
	pessimistic     = flag.Bool("pessimistic", false, "Skew bonus/no-bonus chances against the mover")
	focussed        = flag.Bool("focussed", false, "Spend two plies of depth on the bonus branch instead of one")
	logLevel        = flag.Uint("log-level", 0, "Diagnostic verbosity, 0-10 (never affects search results)")
	seed            = flag.Int64("seed", 0, "Zobrist table random seed")
	humanIsBlack    = flag.Bool("black", false, "Play black instead of white")
	featureWeighted = flag.Bool("feature-eval", false, "Use the weighted feature evaluator instead of material proportion")
	fenFlag         = flag.String("fen", "", "Start from this FEN-like position instead of the initial one")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: randochess [options]

RANDOCHESS plays Random Chess against a human over stdin/stdout: each human
ply is five integers (from-file from-rank to-file to-rank promotion-code,
0-7 and 0-4 respectively), followed by a 'bonus' or 'no_bonus' line; the
match ends with 'white wins', 'black wins' or 'draw'.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	evaluator := eval.Evaluator(eval.ProportionCount{})
	if *featureWeighted {
		evaluator = eval.NewFeatureEval(eval.DefaultWeights())
	}

	var startPosition lang.Optional[string]
	if *fenFlag != "" {
		startPosition = lang.Some(*fenFlag)
	}

	e := engine.New(ctx, "randochess", "herohde", engine.WithEvaluator(evaluator),
		engine.WithZobristSeed(*seed),
		engine.WithInitialPosition(startPosition),
		engine.WithOptions(engine.Options{
			MaxLookahead:  *lookahead,
			IsPessimistic: *pessimistic,
			IsFocussed:    *focussed,
			LogLevel:      *logLevel,
			MaxTimeMS:     *maxTimeMS,
			HashMB:        *hash,
		}))

	humanColor := board.White
	if *humanIsBlack {
		humanColor = board.Black
	}

	in := engine.ReadStdinLines(ctx)
	out := make(chan string, 1)
	go engine.WriteStdoutLines(ctx, out)

	d := console.NewDriver(e, humanColor, in, out)
	if err := d.Run(ctx); err != nil {
		close(out)
		logw.Exitf(ctx, "Match aborted: %v", err)
	}
	close(out)
}
