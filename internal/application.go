package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/terminal"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	prefsRepo, gameRepo, closeStorage, err := openStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}
	}()

	gameManager := usecase.NewGameManager(logger, prefsRepo, gameRepo, service.NewBotService())

	switch conf.Mode {
	case config.ModeTerminal:
		log.Info("Starting terminal game", "profile", conf.ProfileID)
		client := terminal.New(logger, gameManager, conf.ProfileID, os.Stdin, termenv.NewOutput(os.Stdout))

		// reading stdin blocks, so a signal must not wait for the next line
		termErrCh := make(chan error, 1)
		go func() {
			termErrCh <- client.Run(ctx)
		}()

		select {
		case err = <-termErrCh:
			if err != nil {
				return fmt.Errorf("terminal game error: %w", err)
			}
		case <-ctx.Done():
			log.Info("Application context canceled, shutting down")
		}

		return nil

	default:
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		log.Info("Application context canceled, shutting down")

		return nil
	}
}

func openStorage(ctx context.Context, conf *config.Config) (repository.PreferencesRepository, repository.GameRepository, func() error, error) {
	if conf.Storage == config.StorageMemory {
		return repository.NewMemoryPreferencesRepository(), repository.NewMemoryGameRepository(), func() error { return nil }, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	prefsRepo := repository.NewPreferencesRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.GameTTL)

	return prefsRepo, gameRepo, redisStorage.Close, nil
}
