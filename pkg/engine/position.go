// Package engine provides the public API for the nardy move engine.
package engine

import (
	"fmt"
	"strings"
)

// Board geometry
const (
	NumCells    = 24 // Cells on the ring
	TotalPieces = 15 // Checkers per side
	MaxDie      = 6
	HomeStart   = 18 // First track distance of the home zone
)

// Color identifies a side. The zero value is no color (an empty cell).
type Color uint8

const (
	NoColor Color = iota
	Light
	Dark
)

// Opposite returns the other side. NoColor maps to itself.
func (c Color) Opposite() Color {
	switch c {
	case Light:
		return Dark
	case Dark:
		return Light
	}
	return NoColor
}

// HeadSlot returns the cell where the side's checkers start (its head).
func (c Color) HeadSlot() int {
	if c == Dark {
		return 12
	}
	return 0
}

// Dist returns the track distance of a raw position along this side's path.
// Light runs 0..23 directly; Dark starts at 12 and wraps through 23 to 11.
func (c Color) Dist(position int) int {
	return ((position-c.HeadSlot())%NumCells + NumCells) % NumCells
}

// Valid reports whether c is Light or Dark.
func (c Color) Valid() bool {
	return c == Light || c == Dark
}

// String returns the lower-case name of the color.
func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return "none"
}

// ParseColor parses "light"/"dark" (case-insensitive, "l"/"d" accepted).
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "l", "white", "w":
		return Light, nil
	case "dark", "d", "black", "b":
		return Dark, nil
	}
	return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MarshalText implements encoding.TextMarshaler so colors read as names in JSON.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	if len(b) == 0 || string(b) == "none" {
		*c = NoColor
		return nil
	}
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Cell is one ring slot. Count == 0 iff Occupant == NoColor.
type Cell struct {
	Count    int   // Number of checkers stacked here
	Occupant Color // Owner of the stack, NoColor when empty
}

// Piece refers to one checker taken from the stack at Position.
// Checkers on the same cell are interchangeable.
type Piece struct {
	Color    Color `json:"color"`
	Position int   `json:"position"`
}

// IsHead reports whether the piece sits on its side's starting stack.
func (p Piece) IsHead() bool {
	return p.Position == p.Color.HeadSlot()
}

// Step moves one checker by Die track units.
type Step struct {
	Piece Piece `json:"piece"`
	Die   int   `json:"die"`
}

// Target returns the raw destination cell of the step.
func (s Step) Target() int {
	return (s.Piece.Position + s.Die) % NumCells
}

// Move is an ordered sequence of steps, one per die played.
type Move []Step

// String formats a move as "from/to" pairs in play order, e.g. "0/5 5/8".
func (m Move) String() string {
	parts := make([]string, len(m))
	for i, s := range m {
		parts[i] = fmt.Sprintf("%d/%d", s.Piece.Position, s.Target())
	}
	return strings.Join(parts, " ")
}

// FormatMove renders m as slash notation with 0-based raw positions,
// e.g. "0/5 5/8". An empty move renders as "".
func FormatMove(m Move) string {
	return m.String()
}
