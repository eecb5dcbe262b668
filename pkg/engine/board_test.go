package engine

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

// mustBoard builds a board from sparse cells or fails the test.
func mustBoard(t *testing.T, cells map[int]Cell) Board {
	t.Helper()
	b, err := BoardFromCells(cells)
	if err != nil {
		t.Fatalf("BoardFromCells(%v): %v", cells, err)
	}
	return b
}

func light(n int) Cell { return Cell{Count: n, Occupant: Light} }
func dark(n int) Cell  { return Cell{Count: n, Occupant: Dark} }

func TestColorGeometry(t *testing.T) {
	is := is.New(t)

	is.Equal(Light.Opposite(), Dark)
	is.Equal(Dark.Opposite(), Light)
	is.Equal(Light.HeadSlot(), 0)
	is.Equal(Dark.HeadSlot(), 12)

	is.Equal(Light.Dist(0), 0)
	is.Equal(Light.Dist(23), 23)
	is.Equal(Dark.Dist(12), 0)
	is.Equal(Dark.Dist(23), 11)
	is.Equal(Dark.Dist(0), 12)
	is.Equal(Dark.Dist(11), 23)

	c, err := ParseColor("Dark")
	is.NoErr(err)
	is.Equal(c, Dark)
	_, err = ParseColor("green")
	is.True(errors.Is(err, ErrInvalidColor))
}

func TestInitialBoard(t *testing.T) {
	is := is.New(t)
	b := InitialBoard()

	is.Equal(b[0], light(15))
	is.Equal(b[12], dark(15))
	is.Equal(b.PieceCount(Light), TotalPieces)
	is.Equal(b.PieceCount(Dark), TotalPieces)
	is.Equal(b.String(), "0:15L 12:15D")
	is.Equal(b.PositionID(), "fAAAAAAAAAAAvAAAAAAAAAAA")
}

func TestBoardFromCellsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		cells map[int]Cell
		want  error
	}{
		{"position too high", map[int]Cell{24: light(1)}, ErrInvalidPosition},
		{"negative position", map[int]Cell{-1: light(1)}, ErrInvalidPosition},
		{"occupant without checkers", map[int]Cell{3: {Occupant: Dark}}, ErrInvalidCell},
		{"checkers without occupant", map[int]Cell{3: {Count: 2}}, ErrInvalidCell},
		{"too many checkers", map[int]Cell{0: light(15), 5: light(1)}, ErrInvalidCell},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := BoardFromCells(tc.cells)
			is.True(errors.Is(err, tc.want))
		})
	}
}

func TestPieceAt(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, map[int]Cell{4: dark(2)})

	p, ok, err := b.PieceAt(4)
	is.NoErr(err)
	is.True(ok)
	is.Equal(p, Piece{Color: Dark, Position: 4})

	_, ok, err = b.PieceAt(5)
	is.NoErr(err)
	is.True(!ok)

	_, _, err = b.PieceAt(24)
	is.True(errors.Is(err, ErrInvalidPosition))
}

func TestCanMove(t *testing.T) {
	b := mustBoard(t, map[int]Cell{
		0:  light(1),
		2:  light(1),
		5:  dark(1),
		21: light(1),
		22: dark(1),
	})

	tests := []struct {
		name  string
		piece Piece
		die   int
		want  bool
	}{
		{"empty target", Piece{Light, 0}, 3, true},
		{"own color target", Piece{Light, 0}, 2, true},
		{"blocked by opponent", Piece{Light, 2}, 3, false},
		{"light cannot wrap", Piece{Light, 21}, 3, false},
		{"light to last cell", Piece{Light, 21}, 2, true},
		{"dark wraps", Piece{Dark, 22}, 3, true},
		{"dark wraps onto light", Piece{Dark, 22}, 2, false},
		{"dark ahead clear", Piece{Dark, 5}, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			got, err := b.CanMove(tc.piece, tc.die)
			is.NoErr(err)
			is.Equal(got, tc.want)
		})
	}
}

func TestCanMoveErrors(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, map[int]Cell{0: light(1)})

	_, err := b.CanMove(Piece{Light, 0}, 0)
	is.True(errors.Is(err, ErrInvalidDie))

	_, err = b.CanMove(Piece{Light, 1}, 3)
	is.True(errors.Is(err, ErrEmptySource))

	// cell 0 holds light, not dark
	_, err = b.CanMove(Piece{Dark, 0}, 3)
	is.True(errors.Is(err, ErrEmptySource))
}

func TestMovablePieces(t *testing.T) {
	tests := []struct {
		name  string
		cells map[int]Cell
		color Color
		die   int
		want  []int
	}{
		{
			name:  "no blocking",
			cells: map[int]Cell{0: light(1), 2: light(1)},
			color: Light,
			die:   3,
			want:  []int{0, 2},
		},
		{
			name:  "blocking",
			cells: map[int]Cell{0: light(1), 2: light(1), 5: dark(1)},
			color: Light,
			die:   3,
			want:  []int{0},
		},
		{
			name:  "one entry per stack",
			cells: map[int]Cell{0: light(15)},
			color: Light,
			die:   1,
			want:  []int{0},
		},
		{
			name:  "dark across the boundary",
			cells: map[int]Cell{23: dark(1), 1: light(1)},
			color: Dark,
			die:   3,
			want:  []int{23},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := mustBoard(t, tc.cells)
			pieces, err := b.MovablePieces(tc.color, tc.die)
			is.NoErr(err)

			var got []int
			for _, p := range pieces {
				is.Equal(p.Color, tc.color)
				got = append(got, p.Position)
			}
			is.Equal(got, tc.want)
		})
	}
}

func TestMovePiece(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, map[int]Cell{0: light(2), 22: dark(1)})

	is.NoErr(b.MovePiece(Piece{Light, 0}, 5))
	is.Equal(b[0], light(1))
	is.Equal(b[5], light(1))

	is.NoErr(b.MovePiece(Piece{Light, 0}, 5))
	is.Equal(b[0], Cell{})
	is.Equal(b[5], light(2))

	// dark crosses 23 -> 0
	is.NoErr(b.MovePiece(Piece{Dark, 22}, 4))
	is.Equal(b[22], Cell{})
	is.Equal(b[2], dark(1))
}

func TestMovePieceErrors(t *testing.T) {
	base := mustBoard(t, map[int]Cell{0: light(1), 3: dark(1), 21: light(1)})

	tests := []struct {
		name  string
		piece Piece
		die   int
		want  error
	}{
		{"zero die", Piece{Light, 0}, 0, ErrInvalidDie},
		{"die too large", Piece{Light, 0}, 7, ErrInvalidDie},
		{"empty source", Piece{Light, 1}, 2, ErrEmptySource},
		{"bad position", Piece{Light, 30}, 2, ErrInvalidPosition},
		{"blocked", Piece{Light, 0}, 3, ErrBlockedTarget},
		{"light past the end", Piece{Light, 21}, 4, ErrBlockedTarget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := base
			err := b.MovePiece(tc.piece, tc.die)
			is.True(errors.Is(err, tc.want))
			is.Equal(b, base) // unchanged on error
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	is := is.New(t)
	b := InitialBoard()
	c := b.Clone()

	is.NoErr(c.MovePiece(Piece{Light, 0}, 6))
	is.Equal(b, InitialBoard())
	is.True(!c.Equal(b))
}

func TestLastPiece(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, map[int]Cell{3: dark(1), 13: dark(2), 9: light(1), 20: light(1)})

	p, ok := b.LastPiece(Dark)
	is.True(ok)
	is.Equal(p, Piece{Dark, 13})

	p, ok = b.LastPiece(Light)
	is.True(ok)
	is.Equal(p, Piece{Light, 9})

	empty := mustBoard(t, nil)
	_, ok = empty.LastPiece(Light)
	is.True(!ok)
}

// For every dark checker position and die, CanMove agrees with MovePiece,
// including moves that cross the 23 -> 0 boundary.
func TestDarkWrapConsistency(t *testing.T) {
	is := is.New(t)

	for pos := 0; pos < NumCells; pos++ {
		for die := 1; die <= MaxDie; die++ {
			blocker := (pos + die) % NumCells
			for _, blocked := range []bool{false, true} {
				cells := map[int]Cell{pos: dark(1)}
				if blocked {
					cells[blocker] = light(1)
				}
				b := mustBoard(t, cells)

				can, err := b.CanMove(Piece{Dark, pos}, die)
				is.NoErr(err)
				moveErr := b.MovePiece(Piece{Dark, pos}, die)
				is.Equal(can, moveErr == nil)
				is.Equal(can, !blocked)
			}
		}
	}
}

func TestPositionIDRoundTrip(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, map[int]Cell{0: light(13), 4: light(2), 12: dark(14), 1: dark(1)})

	got, err := BoardFromPositionID(b.PositionID())
	is.NoErr(err)
	is.Equal(got, b)

	_, err = BoardFromPositionID("nope")
	is.True(err != nil)
}
