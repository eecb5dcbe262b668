package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// MoveList contains all legal moves for a position
type MoveList struct {
	Moves    []Move // Maximal-length moves, both dice orders concatenated
	MaxMoves int    // Number of dice used by every move in Moves
	Color    Color  // Side to move
	Dice     [2]int // Roll as given
}

// candidate is one branch of the search: the steps taken so far, the board
// after them and whether a head checker has already left.
type candidate struct {
	move     Move
	board    Board
	headUsed bool
}

// FindMoves returns every legal way for color to play dice on board,
// reduced to the sequences that use the most dice. An empty result means
// no legal move. The caller's board is never modified.
func FindMoves(board Board, color Color, dice [2]int) ([]Move, error) {
	ml, err := GenerateMoves(board, color, dice[0], dice[1])
	if err != nil {
		return nil, err
	}
	return ml.Moves, nil
}

// GenerateMoves generates all legal moves for a position given a dice roll.
// n0 and n1 are the two dice values (1-6). Equal dice still give two steps.
func GenerateMoves(board Board, color Color, n0, n1 int) (*MoveList, error) {
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}
	if err := checkDie(n0); err != nil {
		return nil, err
	}
	if err := checkDie(n1); err != nil {
		return nil, err
	}

	// Dice in original order, then swapped. Results are not deduplicated.
	forward, err := generateStepSequence(board, color, []int{n0, n1})
	if err != nil {
		return nil, err
	}
	swapped, err := generateStepSequence(board, color, []int{n1, n0})
	if err != nil {
		return nil, err
	}
	all := append(forward, swapped...)

	maxLen := lo.Max(lo.Map(all, func(m Move, _ int) int { return len(m) }))

	ml := &MoveList{
		Moves:    []Move{},
		MaxMoves: maxLen,
		Color:    color,
		Dice:     [2]int{n0, n1},
	}
	if maxLen > 0 {
		ml.Moves = lo.Filter(all, func(m Move, _ int) bool { return len(m) == maxLen })
	}

	log.Debug().
		Stringer("color", color).
		Ints("dice", ml.Dice[:]).
		Int("forward", len(forward)).
		Int("swapped", len(swapped)).
		Int("max_len", maxLen).
		Int("moves", len(ml.Moves)).
		Msg("generated moves")

	return ml, nil
}

// generateStepSequence plays dice in the given order, branching over every
// movable checker at each step. If no branch can play a die, the search stops
// and the branches from the previous step are kept, so a single playable die
// still yields one-step moves.
func generateStepSequence(board Board, color Color, dice []int) ([]Move, error) {
	candidates := []candidate{{move: Move{}, board: board}}

	for _, die := range dice {
		var extended []candidate

		for _, c := range candidates {
			pieces, err := c.board.MovablePieces(color, die)
			if err != nil {
				return nil, err
			}

			for _, p := range pieces {
				// Only one checker may leave the head per turn
				if c.headUsed && p.IsHead() {
					continue
				}

				next := c.board
				if err := next.MovePiece(p, die); err != nil {
					return nil, err
				}

				move := make(Move, len(c.move), len(c.move)+1)
				copy(move, c.move)
				move = append(move, Step{Piece: p, Die: die})

				extended = append(extended, candidate{
					move:     move,
					board:    next,
					headUsed: c.headUsed || p.IsHead(),
				})
			}
		}

		if len(extended) == 0 {
			break
		}
		candidates = extended
	}

	return lo.Map(candidates, func(c candidate, _ int) Move { return c.move }), nil
}

// ApplyMove replays a move on a copy of board and returns the result.
func ApplyMove(board Board, m Move) (Board, error) {
	result := board
	for i, s := range m {
		if err := result.MovePiece(s.Piece, s.Die); err != nil {
			return board, fmt.Errorf("step %d (%d/%d): %w", i+1, s.Piece.Position, s.Target(), err)
		}
	}
	return result, nil
}

// ContainsMove reports whether m is among moves, comparing steps in order.
func ContainsMove(moves []Move, m Move) bool {
	return lo.ContainsBy(moves, func(other Move) bool {
		if len(other) != len(m) {
			return false
		}
		for i := range m {
			if other[i] != m[i] {
				return false
			}
		}
		return true
	})
}
