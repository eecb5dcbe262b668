package engine

import "fmt"

// Engine answers move queries, memoizing results in a MoveCache.
// It is safe for concurrent use.
type Engine struct {
	cache *MoveCache
}

// EngineOptions configures the engine
type EngineOptions struct {
	CacheSize int // Move cache size (0 = default, negative = disabled)
}

// NewEngine creates a new engine with the given options
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{}

	cacheSize := opts.CacheSize
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheSize > 0 {
		e.cache = NewMoveCache(uint32(cacheSize))
	}
	return e
}

// FindMoves is FindMoves with caching. Inputs are validated before the
// cache is consulted, since the cache key only holds valid values.
func (e *Engine) FindMoves(board Board, color Color, dice [2]int) ([]Move, error) {
	if err := checkQuery(&board, color, dice); err != nil {
		return nil, err
	}

	if e.cache != nil {
		if moves, ok := e.cache.Lookup(&board, color, dice); ok {
			return moves, nil
		}
	}

	moves, err := FindMoves(board, color, dice)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(&board, color, dice, moves)
	}
	return moves, nil
}

// IsHome reports whether color has all checkers in its home zone.
func (e *Engine) IsHome(board Board, color Color) bool {
	return IsHome(&board, color)
}

// Race returns the race summary for board.
func (e *Engine) Race(board Board) RaceInfo {
	return Race(&board)
}

// CacheStats returns the cache counters; ok is false when caching is disabled.
func (e *Engine) CacheStats() (stats CacheStats, ok bool) {
	if e.cache == nil {
		return CacheStats{}, false
	}
	return e.cache.Stats(), true
}

// checkQuery validates a FindMoves query.
func checkQuery(board *Board, color Color, dice [2]int) error {
	if !color.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}
	for _, d := range dice {
		if err := checkDie(d); err != nil {
			return err
		}
	}
	return board.Validate()
}
