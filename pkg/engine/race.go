package engine

import (
	"gonum.org/v1/gonum/floats"
)

// RaceInfo summarizes both sides' progress.
type RaceInfo struct {
	Pips   [2]int  // Pips left to travel, indexed [light, dark]
	Pieces [2]int  // Checkers on the board
	Home   [2]bool // IsHome for each side
}

// sideIndex maps Light to 0 and Dark to 1.
func sideIndex(c Color) int {
	if c == Dark {
		return 1
	}
	return 0
}

// PipCount returns the total track distance color's checkers still have to
// cover to reach the end of the track: the dot product of the per-cell
// checker counts with each cell's remaining distance.
func PipCount(b *Board, color Color) int {
	counts := make([]float64, NumCells)
	remaining := make([]float64, NumCells)
	for pos, c := range b {
		if c.Occupant == color {
			counts[pos] = float64(c.Count)
		}
		remaining[pos] = float64(NumCells - color.Dist(pos))
	}
	return int(floats.Dot(counts, remaining))
}

// Race computes pip counts, checker counts and home flags for both sides.
func Race(b *Board) RaceInfo {
	var info RaceInfo
	for _, c := range []Color{Light, Dark} {
		i := sideIndex(c)
		info.Pips[i] = PipCount(b, c)
		info.Pieces[i] = b.PieceCount(c)
		info.Home[i] = IsHome(b, c)
	}
	return info
}

// PipDifference returns color's pip count minus the opponent's; negative
// means color is ahead in the race.
func (r RaceInfo) PipDifference(color Color) int {
	i := sideIndex(color)
	return r.Pips[i] - r.Pips[1-i]
}
