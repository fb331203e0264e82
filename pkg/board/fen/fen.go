// Package fen contains utilities for reading and writing board positions in FEN-like notation.
//
// Random Chess has no en passant, so the fourth field is always "-"; it is retained only so the
// overall record stays recognizable to anything expecting standard FEN's six fields.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/randochess/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode returns a new position, side to move, dead-move count and full-move number from a FEN
// description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (board.Position, board.Color, int, int, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: '%v'", fen)
	}

	// (1) Piece placement, from rank 8 down to rank 1, files a through h within each rank.

	var pieces []board.Placement

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != int(board.NumRanks) {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of ranks in FEN: '%v'", fen)
	}

	for i, row := range ranks {
		r := board.Rank(int(board.NumRanks) - 1 - i)
		f := board.ZeroFile

		for _, ch := range []rune(row) {
			switch {
			case unicode.IsDigit(ch):
				f += board.File(ch - '0')

			case unicode.IsLetter(ch):
				if int(f) >= int(board.NumFiles) {
					return board.Position{}, 0, 0, 0, fmt.Errorf("too many squares in rank: '%v'", fen)
				}
				color, piece, ok := parsePiece(ch)
				if !ok {
					return board.Position{}, 0, 0, 0, fmt.Errorf("invalid piece '%v' in FEN: '%v'", ch, fen)
				}
				pieces = append(pieces, board.Placement{Square: board.NewSquare(f, r), Color: color, Piece: piece})
				f++

			default:
				return board.Position{}, 0, 0, 0, fmt.Errorf("invalid character in FEN: '%v'", fen)
			}
		}
		if int(f) != int(board.NumFiles) {
			return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of squares in rank: '%v'", fen)
		}
	}

	// (2) Active color.

	active, ok := parseColor(parts[1])
	if !ok {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid active color in FEN: '%v'", fen)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid castling in FEN: '%v'", fen)
	}

	// (4) En passant target: always ignored. Random Chess has no en passant.

	// (5) Dead-move count: moves since the last pawn move or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid dead-move count in FEN: '%v'", fen)
	}

	// (6) Full-move number.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid full moves in FEN: '%v'", fen)
	}

	pos, err := board.NewPosition(pieces, castling)
	if err != nil {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid position in FEN: '%v': %w", fen, err)
	}
	return pos, active, np, fm, nil
}

// Encode encodes the position and game data in FEN-like notation.
func Encode(pos board.Position, c board.Color, deadMoves, fullMoves int) string {
	var sb strings.Builder
	for i := 0; i < int(board.NumRanks); i++ {
		r := board.Rank(int(board.NumRanks) - 1 - i)

		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < int(board.NumRanks)-1 {
			sb.WriteString("/")
		}
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(c), printCastling(pos.Castling()), "-", deadMoves, fullMoves)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	str := c.String()
	return str
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return p.String()
}
