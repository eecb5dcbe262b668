package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/yourusername/nardengine/internal/positionid"
	"github.com/yourusername/nardengine/pkg/engine"
)

// Handlers holds the HTTP handlers and engine reference.
type Handlers struct {
	engine  *engine.Engine
	version string
	pool    *WorkerPool
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(e *engine.Engine, version string) *Handlers {
	return &Handlers{
		engine:  e,
		version: version,
	}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(e *engine.Engine, version string, pool *WorkerPool) *Handlers {
	return &Handlers{
		engine:  e,
		version: version,
		pool:    pool,
	}
}

// apiError carries an HTTP status and a stable error code.
type apiError struct {
	status int
	code   string
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func badRequest(code string, err error) *apiError {
	return &apiError{status: http.StatusBadRequest, code: code, msg: err.Error()}
}

// errorCode maps engine and decoding errors to API error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, positionid.ErrInvalidPositionID), errors.Is(err, engine.ErrInvalidCell):
		return "INVALID_POSITION"
	case errors.Is(err, engine.ErrInvalidColor):
		return "INVALID_COLOR"
	case errors.Is(err, engine.ErrInvalidDie):
		return "INVALID_DICE"
	case errors.Is(err, engine.ErrInvalidPosition),
		errors.Is(err, engine.ErrEmptySource),
		errors.Is(err, engine.ErrBlockedTarget):
		return "ILLEGAL_STEP"
	}
	return "INVALID_JSON"
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

func writeAPIError(w http.ResponseWriter, err *apiError) {
	writeError(w, err.status, err.msg, err.code)
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v interface{}) *apiError {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(errorCode(err), fmt.Errorf("invalid request: %w", err))
	}
	return nil
}

// acquire takes a worker slot if a pool is configured. The returned
// function releases it.
func (h *Handlers) acquire(r *http.Request) (func(), *apiError) {
	if h.pool == nil {
		return func() {}, nil
	}
	if err := h.pool.Acquire(r.Context()); err != nil {
		return nil, &apiError{status: http.StatusServiceUnavailable, code: "SERVER_BUSY", msg: "server busy"}
	}
	return h.pool.Release, nil
}

// parseBoard decodes a position ID; an empty ID is the initial board.
func parseBoard(posID string) (engine.Board, *apiError) {
	if posID == "" {
		return engine.InitialBoard(), nil
	}
	board, err := engine.BoardFromPositionID(posID)
	if err != nil {
		return engine.Board{}, badRequest("INVALID_POSITION", err)
	}
	return board, nil
}

func checkColor(c engine.Color) *apiError {
	if !c.Valid() {
		return badRequest("INVALID_COLOR", fmt.Errorf("%w: color must be light or dark", engine.ErrInvalidColor))
	}
	return nil
}

// findMoves runs a moves query; shared by HTTP and websocket.
func (h *Handlers) findMoves(req *MovesRequest) (*MovesResponse, *apiError) {
	if err := checkColor(req.Color); err != nil {
		return nil, err
	}
	board, apiErr := parseBoard(req.Position)
	if apiErr != nil {
		return nil, apiErr
	}
	moves, err := h.engine.FindMoves(board, req.Color, req.Dice)
	if err != nil {
		return nil, badRequest(errorCode(err), err)
	}
	return &MovesResponse{
		Moves:    MovesToResponse(moves),
		Count:    len(moves),
		Dice:     req.Dice,
		Color:    req.Color,
		Position: board.PositionID(),
	}, nil
}

func (h *Handlers) home(req *HomeRequest) (*HomeResponse, *apiError) {
	if err := checkColor(req.Color); err != nil {
		return nil, err
	}
	board, apiErr := parseBoard(req.Position)
	if apiErr != nil {
		return nil, apiErr
	}
	return &HomeResponse{Color: req.Color, Home: h.engine.IsHome(board, req.Color)}, nil
}

func (h *Handlers) position(req *PositionRequest) (*PositionResponse, *apiError) {
	board, apiErr := parseBoard(req.Position)
	if apiErr != nil {
		return nil, apiErr
	}
	return RaceToResponse(board, h.engine.Race(board)), nil
}

func (h *Handlers) apply(req *ApplyRequest) (*PositionResponse, *apiError) {
	if err := checkColor(req.Color); err != nil {
		return nil, err
	}
	board, apiErr := parseBoard(req.Position)
	if apiErr != nil {
		return nil, apiErr
	}

	move := make(engine.Move, len(req.Steps))
	for i, s := range req.Steps {
		move[i] = engine.Step{Piece: engine.Piece{Color: req.Color, Position: s.From}, Die: s.Die}
	}
	result, err := engine.ApplyMove(board, move)
	if err != nil {
		return nil, badRequest(errorCode(err), err)
	}

	if req.Dice != nil {
		legal, err := h.engine.FindMoves(board, req.Color, *req.Dice)
		if err != nil {
			return nil, badRequest(errorCode(err), err)
		}
		if !engine.ContainsMove(legal, move) {
			return nil, badRequest("ILLEGAL_MOVE", fmt.Errorf("%s is not a legal play of %d-%d", move, req.Dice[0], req.Dice[1]))
		}
	}
	return RaceToResponse(result, h.engine.Race(result)), nil
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Ready:   h.engine != nil,
	}

	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}
	if h.engine != nil {
		if stats, ok := h.engine.CacheStats(); ok {
			resp.Cache = &stats
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Initial handles GET /api/initial
func (h *Handlers) Initial(w http.ResponseWriter, r *http.Request) {
	board := engine.InitialBoard()
	writeJSON(w, http.StatusOK, RaceToResponse(board, engine.Race(&board)))
}

// Moves handles POST /api/moves
func (h *Handlers) Moves(w http.ResponseWriter, r *http.Request) {
	var req MovesRequest
	serve(h, w, r, &req, h.findMoves)
}

// Home handles POST /api/home
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	var req HomeRequest
	serve(h, w, r, &req, h.home)
}

// Position handles POST /api/position
func (h *Handlers) Position(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	serve(h, w, r, &req, h.position)
}

// Apply handles POST /api/apply
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	serve(h, w, r, &req, h.apply)
}

// serve decodes req, runs fn under a worker slot and writes the result.
func serve[Req, Resp any](h *Handlers, w http.ResponseWriter, r *http.Request, req *Req, fn func(*Req) (*Resp, *apiError)) {
	release, apiErr := h.acquire(r)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}
	defer release()

	if apiErr := decode(r, req); apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	resp, apiErr := fn(req)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
