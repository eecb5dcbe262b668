package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/nardengine/internal/positionid"
)

// Board contract violations. Operations wrap these with the offending values.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidDie      = errors.New("invalid die value")
	ErrEmptySource     = errors.New("no checker to move")
	ErrBlockedTarget   = errors.New("target occupied by opponent")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidCell     = errors.New("invalid cell")
)

// Board is the 24-cell ring. It is a plain value: assignment copies it,
// so search branches never share state.
type Board [NumCells]Cell

// InitialBoard returns the starting position: 15 light checkers on cell 0
// and 15 dark checkers on cell 12.
func InitialBoard() Board {
	var b Board
	b[Light.HeadSlot()] = Cell{Count: TotalPieces, Occupant: Light}
	b[Dark.HeadSlot()] = Cell{Count: TotalPieces, Occupant: Dark}
	return b
}

// BoardFromCells builds a board from sparse cell entries; positions not
// listed are empty.
func BoardFromCells(entries map[int]Cell) (Board, error) {
	var b Board
	for pos, c := range entries {
		if err := checkPosition(pos); err != nil {
			return Board{}, err
		}
		b[pos] = c
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks that every cell is either empty or holds 1..15 checkers
// of one color, and that neither side has more than 15 checkers in total.
func (b *Board) Validate() error {
	var totals [3]int
	for pos, c := range b {
		if c.Count < 0 || c.Count > TotalPieces || (c.Count == 0) != (c.Occupant == NoColor) || c.Occupant > Dark {
			return fmt.Errorf("%w: position %d has %d checkers of %s", ErrInvalidCell, pos, c.Count, c.Occupant)
		}
		totals[c.Occupant] += c.Count
	}
	if totals[Light] > TotalPieces || totals[Dark] > TotalPieces {
		return fmt.Errorf("%w: light %d, dark %d checkers", ErrInvalidCell, totals[Light], totals[Dark])
	}
	return nil
}

func checkPosition(pos int) error {
	if pos < 0 || pos >= NumCells {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	return nil
}

func checkDie(die int) error {
	if die < 1 || die > MaxDie {
		return fmt.Errorf("%w: %d", ErrInvalidDie, die)
	}
	return nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

// PieceAt returns the piece on position, if any.
func (b *Board) PieceAt(position int) (Piece, bool, error) {
	if err := checkPosition(position); err != nil {
		return Piece{}, false, err
	}
	c := b[position]
	if c.Count == 0 {
		return Piece{}, false, nil
	}
	return Piece{Color: c.Occupant, Position: position}, true, nil
}

// target returns the destination of moving p by die and whether the
// move stays on p's track. Light never wraps past 23; Dark's path
// crosses the 23->0 boundary.
func target(p Piece, die int) (int, bool) {
	t := (p.Position + die) % NumCells
	if p.Color == Light && t <= p.Position {
		return t, false
	}
	return t, true
}

// checkSource validates the die and that the source holds a checker of p's color.
func (b *Board) checkSource(p Piece, die int) error {
	if err := checkDie(die); err != nil {
		return err
	}
	if err := checkPosition(p.Position); err != nil {
		return err
	}
	if !p.Color.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, p.Color)
	}
	src := b[p.Position]
	if src.Count == 0 || src.Occupant != p.Color {
		return fmt.Errorf("%w: no %s checker at %d", ErrEmptySource, p.Color, p.Position)
	}
	return nil
}

// CanMove reports whether p can legally move by die.
func (b *Board) CanMove(p Piece, die int) (bool, error) {
	if err := b.checkSource(p, die); err != nil {
		return false, err
	}
	return b.canMove(p, die), nil
}

// canMove assumes the source has been validated.
func (b *Board) canMove(p Piece, die int) bool {
	t, ok := target(p, die)
	if !ok {
		return false
	}
	return b[t].Occupant != p.Color.Opposite()
}

// MovablePieces returns one piece per occupied cell of color that can move by die,
// in increasing raw position order.
func (b *Board) MovablePieces(color Color, die int) ([]Piece, error) {
	if err := checkDie(die); err != nil {
		return nil, err
	}
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}

	var pieces []Piece
	for pos, c := range b {
		if c.Occupant != color {
			continue
		}
		p := Piece{Color: color, Position: pos}
		if b.canMove(p, die) {
			pieces = append(pieces, p)
		}
	}
	return pieces, nil
}

// MovePiece moves one checker of p by die. The board is left unchanged on error.
func (b *Board) MovePiece(p Piece, die int) error {
	if err := b.checkSource(p, die); err != nil {
		return err
	}
	t, ok := target(p, die)
	if !ok {
		return fmt.Errorf("%w: %s checker at %d cannot move %d past the end of its track", ErrBlockedTarget, p.Color, p.Position, die)
	}
	if b[t].Occupant == p.Color.Opposite() {
		return fmt.Errorf("%w: %d -> %d", ErrBlockedTarget, p.Position, t)
	}

	src := &b[p.Position]
	src.Count--
	if src.Count == 0 {
		src.Occupant = NoColor
	}

	dst := &b[t]
	dst.Count++
	dst.Occupant = p.Color
	return nil
}

// LastPiece returns the least advanced checker of color by track distance.
func (b *Board) LastPiece(color Color) (Piece, bool) {
	best, found := -1, false
	for pos, c := range b {
		if c.Occupant != color {
			continue
		}
		if !found || color.Dist(pos) < color.Dist(best) {
			best, found = pos, true
		}
	}
	if !found {
		return Piece{}, false
	}
	return Piece{Color: color, Position: best}, true
}

// PieceCount returns the number of checkers of color on the board.
func (b *Board) PieceCount(color Color) int {
	n := 0
	for _, c := range b {
		if c.Occupant == color {
			n += c.Count
		}
	}
	return n
}

// Equal returns true if two boards are identical
func (b *Board) Equal(other Board) bool {
	return *b == other
}

// String renders occupied cells as "pos:count<L|D>", e.g. "0:15L 12:15D".
func (b *Board) String() string {
	var parts []string
	for pos, c := range b {
		if c.Count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d%c", pos, c.Count, strings.ToUpper(c.Occupant.String())[0]))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

// toPositionID converts to the transport form.
func (b *Board) toPositionID() positionid.Board {
	var pb positionid.Board
	for i, c := range b {
		pb[i] = positionid.Cell{Owner: uint8(c.Occupant), Count: uint8(c.Count)}
	}
	return pb
}

// PositionID returns the board's 24-character position ID. Like Key, it
// requires a board that passes Validate.
func (b *Board) PositionID() string {
	return positionid.PositionID(b.toPositionID())
}

// Key returns the compact hashing key of the board. The board must pass
// Validate; cells outside 0..15 checkers do not round-trip.
func (b *Board) Key() positionid.Key {
	return positionid.MakeKey(b.toPositionID())
}

// BoardFromPositionID decodes a position ID into a Board.
func BoardFromPositionID(id string) (Board, error) {
	pb, err := positionid.BoardFromPositionID(id)
	if err != nil {
		return Board{}, err
	}
	var b Board
	for i, c := range pb {
		b[i] = Cell{Count: int(c.Count), Occupant: Color(c.Owner)}
	}
	return b, nil
}
