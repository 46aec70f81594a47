package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

const defaultResultsLimit = 20

type makeMoveRequest struct {
	Board *tictactoe.Board `json:"board"`
	Row   *int             `json:"row"`
	Col   *int             `json:"col"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type newGameRequest struct {
	AIFirst bool `json:"ai_first"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// handleMakeMove - stateless move: the client sends the whole board with its move.
func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, apperror.ErrInvalidBoard) {
			that.writeAppError(w, err)
			return
		}
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Board == nil || req.Row == nil || req.Col == nil {
		that.writeError(w, http.StatusBadRequest, "board, row and col are required")
		return
	}

	result, err := that.moves.Play(*req.Board, tictactoe.Move{Row: *req.Row, Col: *req.Col})
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	// the body is optional
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.games.NewGame(r.Context(), req.AIFirst)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), tictactoe.Move{Row: *req.Row, Col: *req.Col})
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.games.Stats(r.Context())
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			that.writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = parsed
	}

	results, err := that.games.Recent(r.Context(), limit)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, results)
}

// writeAppError - maps domain errors to HTTP statuses.
func (that *Server) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, usecase.ErrInvalidLimit):
		that.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameConflict):
		that.writeError(w, http.StatusConflict, err.Error())
	default:
		that.logger.Error("request failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
