// Package positionid implements position encoding/decoding for nardy boards.
//
// A position ID is a 24-character string, one base64 character per cell.
// Each character carries six bits: the owner in the high two bits
// (0 empty, 1 light, 2 dark) and the checker count in the low four.
package positionid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PositionIDLength is the length of a position ID string
	PositionIDLength = 24
	// NumCells is the number of cells on the ring
	NumCells = 24
	// MaxPerSide is the number of checkers each side owns
	MaxPerSide = 15
)

// Owner codes stored in the high bits of each cell character
const (
	OwnerNone  = 0
	OwnerLight = 1
	OwnerDark  = 2
)

// Base64 alphabet used for position ID encoding
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrInvalidPositionID is returned for any malformed position ID.
var ErrInvalidPositionID = errors.New("invalid position ID")

// Cell is the transport form of one board cell.
type Cell struct {
	Owner uint8
	Count uint8
}

// Board is the transport form of a full board.
type Board [NumCells]Cell

// Key is a compact binary representation of a board position.
// Five cells are packed into each word, 6 bits per cell.
type Key struct {
	Data [5]uint32
}

func (c Cell) code() uint8 {
	return c.Owner<<4 | c.Count
}

func (c Cell) valid() bool {
	switch {
	case c.Owner > OwnerDark || c.Count > MaxPerSide:
		return false
	case c.Owner == OwnerNone:
		return c.Count == 0
	default:
		return c.Count > 0
	}
}

// PositionID encodes a board into its 24-character ID.
// The board is assumed valid; use Validate first for untrusted input.
func PositionID(board Board) string {
	var sb strings.Builder
	sb.Grow(PositionIDLength)
	for _, c := range board {
		sb.WriteByte(base64Chars[c.code()&0x3f])
	}
	return sb.String()
}

// BoardFromPositionID decodes a position ID.
func BoardFromPositionID(id string) (Board, error) {
	var board Board

	if len(id) != PositionIDLength {
		return board, fmt.Errorf("%w: length %d, want %d", ErrInvalidPositionID, len(id), PositionIDLength)
	}

	for i := 0; i < PositionIDLength; i++ {
		v := strings.IndexByte(base64Chars, id[i])
		if v < 0 {
			return board, fmt.Errorf("%w: bad character %q at %d", ErrInvalidPositionID, id[i], i)
		}
		board[i] = Cell{Owner: uint8(v >> 4), Count: uint8(v & 0x0f)}
	}

	if err := Validate(board); err != nil {
		return Board{}, err
	}
	return board, nil
}

// Validate checks per-cell owner/count consistency and per-side totals.
func Validate(board Board) error {
	var totals [3]int
	for i, c := range board {
		if !c.valid() {
			return fmt.Errorf("%w: cell %d has owner %d with %d checkers", ErrInvalidPositionID, i, c.Owner, c.Count)
		}
		totals[c.Owner] += int(c.Count)
	}
	if totals[OwnerLight] > MaxPerSide || totals[OwnerDark] > MaxPerSide {
		return fmt.Errorf("%w: too many checkers (light %d, dark %d)", ErrInvalidPositionID, totals[OwnerLight], totals[OwnerDark])
	}
	return nil
}

// MakeKey packs a board into a Key.
func MakeKey(board Board) Key {
	var key Key
	for i, c := range board {
		key.Data[i/5] |= uint32(c.code()) << (6 * uint(i%5))
	}
	return key
}

// BoardFromKey reconstructs a board from a Key.
func BoardFromKey(key Key) Board {
	var board Board
	for i := range board {
		v := uint8((key.Data[i/5] >> (6 * uint(i%5))) & 0x3f)
		board[i] = Cell{Owner: v >> 4, Count: v & 0x0f}
	}
	return board
}

// EqualKeys returns true if two position keys are identical
func EqualKeys(k1, k2 Key) bool {
	return k1 == k2
}
