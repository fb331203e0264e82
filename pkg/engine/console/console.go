// Package console implements spec.md's CLI contract: a single-match human-vs-engine loop over
// line-oriented stdin/stdout. Grounded on the teacher's pkg/engine/console driver shape (a
// struct wrapping the engine, reading a <-chan string, writing a chan<- string) but with the
// UCI-adjacent command set replaced by the much narrower protocol spec.md §6 actually asks for:
// five integers per human ply, a bonus/no_bonus line after every ply, and a single terminal
// status line.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/engine"
	"github.com/seekerror/logw"
)

// Driver runs one match to completion, alternating between reading the human's move off in and
// invoking the engine for the other side, resolving the bonus coin for every ply from in, and
// writing the final white wins/black wins/draw line to out.
type Driver struct {
	e          *engine.Engine
	humanColor board.Color
	in         <-chan string
	out        chan<- string
}

// NewDriver constructs a Driver. humanColor selects which side the human plays; the engine plays
// the other.
func NewDriver(e *engine.Engine, humanColor board.Color, in <-chan string, out chan<- string) *Driver {
	return &Driver{e: e, humanColor: humanColor, in: in, out: out}
}

// Run drives the match to completion, writing the terminal status line to out before returning.
// Returns an error only if stdin closed mid-match, since that leaves the protocol unresolvable.
func (d *Driver) Run(ctx context.Context) error {
	for {
		b := d.e.Board()
		if status := b.Status(); status != board.InProgress {
			d.out <- statusLine(status)
			return nil
		}

		var mv board.Move
		if b.Turn() == d.humanColor {
			m, err := d.readMove(ctx)
			if err != nil {
				return err
			}
			mv = m
		} else {
			mv = d.e.GetMove(ctx)
		}

		if err := d.e.ApplyMove(ctx, mv); err != nil {
			// Not reachable for an engine move; a malformed human move is retried by readMove
			// before ever reaching ApplyMove.
			return err
		}

		isBonus, err := d.readBonus(ctx)
		if err != nil {
			return err
		}
		d.e.ApplyBonus(ctx, isBonus)
	}
}

// readMove reads lines until a well-formed, legal move arrives. Malformed lines are reported via
// logw and do not end the match: parse errors are a CLI concern, not the core's.
func (d *Driver) readMove(ctx context.Context) (board.Move, error) {
	for {
		line, ok := <-d.in
		if !ok {
			return board.Move{}, fmt.Errorf("console: input closed awaiting move")
		}

		mv, err := parseMoveLine(line)
		if err != nil {
			logw.Errorf(ctx, "invalid move %q: %v", line, err)
			continue
		}

		legal := false
		b := d.e.Board()
		for _, m := range b.AllMoves() {
			if m.Equals(mv) {
				legal = true
				break
			}
		}
		if !legal {
			logw.Errorf(ctx, "illegal move: %v", mv)
			continue
		}
		return mv, nil
	}
}

// parseMoveLine parses "from-file from-rank to-file to-rank promotion-code", all 0-indexed
// integers per spec.md §6.
func parseMoveLine(line string) (board.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return board.Move{}, fmt.Errorf("want 5 integers, got %v", len(fields))
	}

	n := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return board.Move{}, fmt.Errorf("invalid integer %q: %w", f, err)
		}
		n[i] = v
	}

	fromFile, fromRank := board.File(n[0]), board.Rank(n[1])
	toFile, toRank := board.File(n[2]), board.Rank(n[3])
	promoCode := n[4]

	if !fromFile.IsValid() || !fromRank.IsValid() || !toFile.IsValid() || !toRank.IsValid() {
		return board.Move{}, fmt.Errorf("file/rank out of range 0-7")
	}

	promo, err := promotionPiece(promoCode)
	if err != nil {
		return board.Move{}, err
	}

	return board.Move{
		From:      board.NewSquare(fromFile, fromRank),
		To:        board.NewSquare(toFile, toRank),
		Promotion: promo,
	}, nil
}

// promotionPiece maps spec.md §6's promotion code (0=none, 1=knight, 2=bishop, 3=rook, 4=queen)
// to a board.Piece.
func promotionPiece(code int) (board.Piece, error) {
	switch code {
	case 0:
		return board.NoPiece, nil
	case 1:
		return board.Knight, nil
	case 2:
		return board.Bishop, nil
	case 3:
		return board.Rook, nil
	case 4:
		return board.Queen, nil
	default:
		return board.NoPiece, fmt.Errorf("invalid promotion code %v, want 0-4", code)
	}
}

// readBonus reads the bonus/no_bonus line following a ply.
func (d *Driver) readBonus(ctx context.Context) (bool, error) {
	for {
		line, ok := <-d.in
		if !ok {
			return false, fmt.Errorf("console: input closed awaiting bonus outcome")
		}
		switch strings.TrimSpace(line) {
		case "bonus":
			return true, nil
		case "no_bonus":
			return false, nil
		default:
			logw.Errorf(ctx, "invalid bonus line %q, want 'bonus' or 'no_bonus'", line)
		}
	}
}

func statusLine(status board.Status) string {
	switch status {
	case board.WhiteWins:
		return "white wins"
	case board.BlackWins:
		return "black wins"
	default:
		return "draw"
	}
}
