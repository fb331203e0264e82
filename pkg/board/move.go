package board

import "fmt"

// MoveType indicates the kind of move. Random Chess has no en passant and no check-legality
// restriction: a move that leaves or walks into check is as legal as any other.
type MoveType uint8

const (
	Normal MoveType = iota
	Capture
	Promotion
	CapturePromotion
	KingSideCastle
	QueenSideCastle
)

// Move represents a move, not necessarily legal, along with contextual metadata sufficient to
// apply and unapply it without consulting the board it was generated from.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // piece being moved
	Promotion Piece // desired piece for promotion, if any
	Capture   Piece // captured piece, if any
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries no contextual information; callers must reconcile it against a board
// to fill in Type, Piece and Capture.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}

	return Move{From: from, To: to}, nil
}

// IsCastle returns true iff the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	return m.Type == KingSideCastle || m.Type == QueenSideCastle
}

// IsCapture returns true iff the move captures a piece.
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion
}

// IsPromotion returns true iff the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

// IsDeadMove returns true iff the move does not reset the dead-move counter, i.e., it is
// neither a pawn move nor a capture.
func (m Move) IsDeadMove() bool {
	return m.Piece != Pawn && !m.IsCapture()
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// CastlingRookMove returns the rook's from/to squares for a castling move.
func (m Move) CastlingRookMove() (from, to Square, ok bool) {
	switch m.Type {
	case KingSideCastle:
		if m.From.Rank() == Rank1 {
			return H1, F1, true
		}
		return H8, F8, true
	case QueenSideCastle:
		if m.From.Rank() == Rank1 {
			return A1, D1, true
		}
		return A8, D8, true
	default:
		return 0, 0, false
	}
}
