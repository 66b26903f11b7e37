package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

type gameBody struct {
	entity.Game
	Message string `json:"message"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(
		logger,
		repository.NewMemoryPreferencesRepository(),
		repository.NewMemoryGameRepository(),
		service.NewBotService(),
	)

	srv := httptest.NewServer(NewRouter(logger, manager))
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/ping", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestPreferencesEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Defaults for a new profile", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences/alice", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, entity.DefaultPreferences(), decode[entity.Preferences](t, resp))
	})

	t.Run("Players switch starts a new game", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/api/preferences/alice/players", playersRequest{Players: 1})

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		game := decode[gameBody](t, resp)
		assert.Equal(t, 1, game.Players)
		assert.Equal(t, "X to move", game.Message)

		resp = doJSON(t, http.MethodGet, srv.URL+"/api/preferences/alice", nil)
		assert.Equal(t, 1, decode[entity.Preferences](t, resp).Players)
	})

	t.Run("Invalid player count", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/api/preferences/alice/players", playersRequest{Players: 4})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decode[errorResponse](t, resp).Error, "1 or 2")
	})

	t.Run("Difficulty", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/api/preferences/alice/difficulty", difficultyRequest{Difficulty: "hard"})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, entity.DifficultyHard, decode[entity.Preferences](t, resp).Difficulty)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/api/preferences/alice/difficulty", difficultyRequest{Difficulty: "godlike"})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGameEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Two-player game to a win", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/games", startGameRequest{ProfileID: "bob"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		game := decode[gameBody](t, resp)

		// X: 0, 1, 2 and O: 3, 4
		for _, cell := range []int{0, 3, 1, 4, 2} {
			resp = doJSON(t, http.MethodPost, srv.URL+"/api/games/"+game.ID+"/turns", map[string]int{"cell": cell})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			game = decode[gameBody](t, resp)
		}

		assert.Equal(t, entity.PlayerX, game.Winner)
		assert.Equal(t, "X wins!", game.Message)

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/games/"+game.ID+"/turns", map[string]int{"cell": 8})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp = doJSON(t, http.MethodGet, srv.URL+"/api/games/"+game.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, entity.StatusFinished, decode[gameBody](t, resp).Status)
	})

	t.Run("Computer answers a single-player move", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/api/preferences/carol/players", playersRequest{Players: 1})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		game := decode[gameBody](t, resp)

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/games/"+game.ID+"/turns", map[string]int{"cell": 4})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		game = decode[gameBody](t, resp)

		assert.Len(t, game.Board.EmptyCells(), 7)
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Missing profile", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/games", startGameRequest{})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing cell", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/games/whatever/turns", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown game", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/games/missing", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Cell out of range", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/games", startGameRequest{ProfileID: "dave"})
		game := decode[gameBody](t, resp)

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/games/"+game.ID+"/turns", map[string]int{"cell": 9})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSuggestMoveEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Hard blocks", func(t *testing.T) {
		board := entity.Board{"", "", "", "", entity.PlayerO, "", entity.PlayerX, entity.PlayerX, ""}

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/moves", moveRequest{Board: board[:], Difficulty: "hard"})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 8, decode[moveResponse](t, resp).Cell)
	})

	t.Run("Invalid board", func(t *testing.T) {
		board := entity.Board{"Q"}

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/moves", moveRequest{Board: board[:], Difficulty: "easy"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Wrong cell count", func(t *testing.T) {
		boards := map[string][]string{
			"empty": {},
			"short": {entity.PlayerX},
			"long":  {"", "", "", "", entity.PlayerO, "", entity.PlayerX, entity.PlayerX, "", ""},
		}

		for name, board := range boards {
			t.Run(name, func(t *testing.T) {
				resp := doJSON(t, http.MethodPost, srv.URL+"/api/moves", moveRequest{Board: board, Difficulty: "hard"})

				require.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.Contains(t, decode[errorResponse](t, resp).Error, "board must have 9 cells")
			})
		}
	})

	t.Run("Missing board", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/moves", map[string]string{"difficulty": "easy"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Finished board", func(t *testing.T) {
		board := entity.Board{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO, "", "", "", ""}

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/moves", moveRequest{Board: board[:], Difficulty: "easy"})

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestRequestBodies(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Unknown fields are rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/games", map[string]string{"profile_id": "erin", "profile": "erin"})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid request body", decode[errorResponse](t, resp).Error)
	})

	t.Run("Oversized body", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/games", startGameRequest{ProfileID: strings.Repeat("a", maxBodyBytes)})

		require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "request body too large", decode[errorResponse](t, resp).Error)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/moves", strings.NewReader(`{"board":`))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
