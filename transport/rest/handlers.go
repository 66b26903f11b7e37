package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
)

const maxBodyBytes = 4 << 10

type gameManager interface {
	GetPreferences(ctx context.Context, profileID string) (entity.Preferences, error)
	SetPlayers(ctx context.Context, profileID, gameID string, players int) (*entity.Game, error)
	SetDifficulty(ctx context.Context, profileID, gameID string, difficulty entity.Difficulty) (entity.Preferences, error)

	StartGame(ctx context.Context, profileID, previousGameID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)

	SuggestMove(board entity.Board, difficulty entity.Difficulty) (int, error)
}

type playersRequest struct {
	Players int    `json:"players"`
	GameID  string `json:"game_id,omitempty"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
	GameID     string `json:"game_id,omitempty"`
}

type startGameRequest struct {
	ProfileID      string `json:"profile_id"`
	PreviousGameID string `json:"previous_game_id,omitempty"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

// moveRequest - board is a slice so that a wrong cell count is rejected instead of padded or cut.
type moveRequest struct {
	Board      []string `json:"board"`
	Difficulty string   `json:"difficulty"`
}

type moveResponse struct {
	Cell int `json:"cell"`
}

type gameResponse struct {
	*entity.Game
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger      *slog.Logger
	gameManager gameManager
}

func NewHandlers(logger *slog.Logger, gameManager gameManager) *Handlers {
	return &Handlers{
		logger:      logger.With("component", "rest"),
		gameManager: gameManager,
	}
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := that.gameManager.GetPreferences(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, prefs)
}

func (that *Handlers) SetPlayers(w http.ResponseWriter, r *http.Request) {
	var req playersRequest
	if !that.decodeJSON(w, r, &req) {
		return
	}

	game, err := that.gameManager.SetPlayers(r.Context(), chi.URLParam(r, "profileID"), req.GameID, req.Players)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeGame(w, r, http.StatusCreated, game)
}

func (that *Handlers) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if !that.decodeJSON(w, r, &req) {
		return
	}

	difficulty, err := entity.ParseDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	prefs, err := that.gameManager.SetDifficulty(r.Context(), chi.URLParam(r, "profileID"), req.GameID, difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, prefs)
}

func (that *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if !that.decodeJSON(w, r, &req) {
		return
	}

	if req.ProfileID == "" {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "profile_id is required"})
		return
	}

	game, err := that.gameManager.StartGame(r.Context(), req.ProfileID, req.PreviousGameID)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeGame(w, r, http.StatusCreated, game)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameManager.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeGame(w, r, http.StatusOK, game)
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !that.decodeJSON(w, r, &req) {
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	game, err := that.gameManager.MakeTurn(r.Context(), chi.URLParam(r, "gameID"), *req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeGame(w, r, http.StatusOK, game)
}

func (that *Handlers) SuggestMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decodeJSON(w, r, &req) {
		return
	}

	difficulty, err := entity.ParseDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	var board entity.Board
	if len(req.Board) != len(board) {
		that.writeError(w, r, fmt.Errorf("board must have %d cells, got %d: %w", len(board), len(req.Board), apperror.ErrInvalidBoard))
		return
	}
	copy(board[:], req.Board)

	cell, err := that.gameManager.SuggestMove(board, difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Cell: cell})
}

// decodeJSON - reads a bounded body with no unknown fields into v, answering 400 or 413 itself on failure.
func (that *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(v)
	if err == nil {
		return true
	}

	that.logger.Debug("bad request body", "path", r.URL.Path, "error", err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		that.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return false
	}

	that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})

	return false
}

func (that *Handlers) writeGame(w http.ResponseWriter, r *http.Request, status int, game *entity.Game) {
	msg, err := game.Message()
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, status, gameResponse{Game: game, Message: msg})
}

func (that *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	that.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidPlayers),
		errors.Is(err, apperror.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNoAvailableMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
