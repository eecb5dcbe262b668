package positionid

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

// Starting position: 15 light checkers on cell 0, 15 dark on cell 12.
func startingBoard() Board {
	var board Board
	board[0] = Cell{Owner: OwnerLight, Count: 15}
	board[12] = Cell{Owner: OwnerDark, Count: 15}
	return board
}

const startingPositionID = "fAAAAAAAAAAAvAAAAAAAAAAA"

func TestPositionIDStartingPosition(t *testing.T) {
	is := is.New(t)
	is.Equal(PositionID(startingBoard()), startingPositionID)
}

func TestPositionIDRoundTrip(t *testing.T) {
	is := is.New(t)

	board := startingBoard()
	board[0].Count = 12
	board[3] = Cell{Owner: OwnerLight, Count: 2}
	board[23] = Cell{Owner: OwnerLight, Count: 1}
	board[12].Count = 14
	board[1] = Cell{Owner: OwnerDark, Count: 1}

	got, err := BoardFromPositionID(PositionID(board))
	is.NoErr(err)
	is.Equal(got, board)
}

func TestKeyRoundTrip(t *testing.T) {
	is := is.New(t)

	board := startingBoard()
	board[22] = Cell{Owner: OwnerDark, Count: 15}
	board[12] = Cell{}

	key := MakeKey(board)
	is.Equal(BoardFromKey(key), board)
	is.True(!EqualKeys(key, MakeKey(startingBoard())))
}

func TestBoardFromPositionIDInvalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too short", "fAAAAAAAAAAAvAAAAAAAAAA"},
		{"too long", "fAAAAAAAAAAAvAAAAAAAAAAAA"},
		{"bad character", "fAAAAAAAAAAAvAAAAAAAAAA!"},
		// 'Q' is owner 1 with zero checkers
		{"owner without checkers", "QAAAAAAAAAAAvAAAAAAAAAAA"},
		// 'B' is one checker with no owner
		{"checkers without owner", "BAAAAAAAAAAAvAAAAAAAAAAA"},
		// '0' is owner 3
		{"unknown owner", "0AAAAAAAAAAAvAAAAAAAAAAA"},
		// 15 + 1 light checkers
		{"too many checkers", "fRAAAAAAAAAAvAAAAAAAAAAA"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := BoardFromPositionID(tc.id)
			is.True(errors.Is(err, ErrInvalidPositionID))
		})
	}
}
