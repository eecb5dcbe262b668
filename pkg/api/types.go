// Package api provides HTTP/JSON REST API for the nardy move engine.
package api

import "github.com/yourusername/nardengine/pkg/engine"

// ============================================================================
// Request Types
// ============================================================================

// MovesRequest is the request body for finding legal moves.
type MovesRequest struct {
	Position string       `json:"position,omitempty"` // Position ID (default: initial board)
	Color    engine.Color `json:"color"`              // Side to move: "light" or "dark"
	Dice     [2]int       `json:"dice"`               // Dice roll [die1, die2]
}

// HomeRequest is the request body for the home check.
type HomeRequest struct {
	Position string       `json:"position,omitempty"` // Position ID (default: initial board)
	Color    engine.Color `json:"color"`              // Side to check
}

// PositionRequest is the request body for position info.
type PositionRequest struct {
	Position string `json:"position,omitempty"` // Position ID (default: initial board)
}

// StepRequest is one step of a move to replay.
type StepRequest struct {
	From int `json:"from"` // Source cell (0-23)
	Die  int `json:"die"`  // Die value (1-6)
}

// ApplyRequest is the request body for replaying a move.
type ApplyRequest struct {
	Position string        `json:"position,omitempty"` // Position ID before the move
	Color    engine.Color  `json:"color"`              // Side moving
	Steps    []StepRequest `json:"steps"`              // Steps in play order
	Dice     *[2]int       `json:"dice,omitempty"`     // Roll; when set the move must be one FindMoves returns
}

// ============================================================================
// Response Types
// ============================================================================

// StepResponse is a single step in the response.
type StepResponse struct {
	From int `json:"from"`
	To   int `json:"to"`
	Die  int `json:"die"`
}

// MoveResponse is a single legal move.
type MoveResponse struct {
	Steps    []StepResponse `json:"steps"`    // Steps in play order
	Notation string         `json:"notation"` // e.g. "0/5 5/8"
}

// MovesResponse is the response for legal moves.
type MovesResponse struct {
	Moves    []MoveResponse `json:"moves"`    // Maximal-length moves
	Count    int            `json:"count"`    // Number of moves
	Dice     [2]int         `json:"dice"`     // Dice used
	Color    engine.Color   `json:"color"`    // Side to move
	Position string         `json:"position"` // Position evaluated
}

// HomeResponse is the response for the home check.
type HomeResponse struct {
	Color engine.Color `json:"color"`
	Home  bool         `json:"home"`
}

// SideInfo is one side's race summary.
type SideInfo struct {
	Color  engine.Color `json:"color"`
	Pips   int          `json:"pips"`   // Pips left to travel
	Pieces int          `json:"pieces"` // Checkers on the board
	Home   bool         `json:"home"`   // All checkers in the home zone
}

// PositionResponse is the response for position info.
type PositionResponse struct {
	Position string     `json:"position"` // Position ID
	Board    string     `json:"board"`    // Readable cell dump, e.g. "0:15L 12:15D"
	Sides    []SideInfo `json:"sides"`    // Light first, then dark
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error   string `json:"error"`             // Error message
	Code    string `json:"code,omitempty"`    // Error code
	Details string `json:"details,omitempty"` // Additional details
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string             `json:"status"`          // "ok" or "error"
	Version string             `json:"version"`         // Engine version
	Ready   bool               `json:"ready"`           // Whether the engine is set
	Pool    *PoolStats         `json:"pool,omitempty"`  // Worker pool statistics
	Cache   *engine.CacheStats `json:"cache,omitempty"` // Move cache statistics
}

// ============================================================================
// Helper Functions
// ============================================================================

// MovesToResponse converts engine moves to API responses.
func MovesToResponse(moves []engine.Move) []MoveResponse {
	out := make([]MoveResponse, len(moves))
	for i, m := range moves {
		steps := make([]StepResponse, len(m))
		for j, s := range m {
			steps[j] = StepResponse{From: s.Piece.Position, To: s.Target(), Die: s.Die}
		}
		out[i] = MoveResponse{Steps: steps, Notation: m.String()}
	}
	return out
}

// RaceToResponse converts a race summary to position info.
func RaceToResponse(board engine.Board, race engine.RaceInfo) *PositionResponse {
	resp := &PositionResponse{
		Position: board.PositionID(),
		Board:    board.String(),
	}
	for i, c := range []engine.Color{engine.Light, engine.Dark} {
		resp.Sides = append(resp.Sides, SideInfo{
			Color:  c,
			Pips:   race.Pips[i],
			Pieces: race.Pieces[i],
			Home:   race.Home[i],
		})
	}
	return resp
}
