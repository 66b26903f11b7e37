package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - routes of the game API.
func NewRouter(logger *slog.Logger, gameManager gameManager) http.Handler {
	h := NewHandlers(logger, gameManager)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/ping", h.PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/preferences/{profileID}", h.GetPreferences)
		r.Put("/preferences/{profileID}/players", h.SetPlayers)
		r.Put("/preferences/{profileID}/difficulty", h.SetDifficulty)

		r.Post("/games", h.StartGame)
		r.Get("/games/{gameID}", h.GetGame)
		r.Post("/games/{gameID}/turns", h.MakeTurn)

		r.Post("/moves", h.SuggestMove)
	})

	return r
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

