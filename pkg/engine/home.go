package engine

// IsHome reports whether every checker of color is in its home zone,
// i.e. the least advanced one has reached track distance 18.
// A side with no checkers on the board is not home.
func IsHome(b *Board, color Color) bool {
	last, ok := b.LastPiece(color)
	if !ok {
		return false
	}
	return color.Dist(last.Position) >= HomeStart
}
