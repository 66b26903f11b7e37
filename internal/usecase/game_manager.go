package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
)

type prefsRepo interface {
	Save(ctx context.Context, profileID string, prefs entity.Preferences) error
	GetByProfileID(ctx context.Context, profileID string) (entity.Preferences, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	SelectMove(board entity.Board, mark string, difficulty entity.Difficulty) (int, error)
	MakeTurn(game *entity.Game) error
}

type GameManager struct {
	logger    *slog.Logger
	prefsRepo prefsRepo
	gameRepo  gameRepo
	bot       botService
}

func NewGameManager(logger *slog.Logger, prefsRepo prefsRepo, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		prefsRepo: prefsRepo,
		gameRepo:  gameRepo,
		bot:       bot,
	}
}

// GetPreferences - stored preferences of the profile, or the defaults for a new one.
func (that *GameManager) GetPreferences(ctx context.Context, profileID string) (entity.Preferences, error) {
	prefs, err := that.prefsRepo.GetByProfileID(ctx, profileID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		return entity.DefaultPreferences(), nil
	}

	if err != nil {
		return entity.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// SetPlayers - stores the player count and replaces the game named by gameID with a fresh one.
func (that *GameManager) SetPlayers(ctx context.Context, profileID, gameID string, players int) (*entity.Game, error) {
	prefs, err := that.GetPreferences(ctx, profileID)
	if err != nil {
		return nil, err
	}

	prefs.Players = players
	if err = prefs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preferences: %w", err)
	}

	if err = that.prefsRepo.Save(ctx, profileID, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	that.discardGame(ctx, gameID)

	game, err := that.createGame(ctx, prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// SetDifficulty - stores the difficulty; an ongoing game named by gameID switches to it from the computer's next move.
// A game that no longer exists only loses the switch, the preference is stored anyway.
func (that *GameManager) SetDifficulty(ctx context.Context, profileID, gameID string, difficulty entity.Difficulty) (entity.Preferences, error) {
	log := that.logger.With("method", "SetDifficulty", "game_id", gameID)

	prefs, err := that.GetPreferences(ctx, profileID)
	if err != nil {
		return entity.Preferences{}, err
	}

	prefs.Difficulty = difficulty
	if err = prefs.Validate(); err != nil {
		return entity.Preferences{}, fmt.Errorf("invalid preferences: %w", err)
	}

	game, err := that.findGame(ctx, gameID)
	if err != nil {
		return entity.Preferences{}, err
	}

	if game == nil && gameID != "" {
		log.Debug("game is gone, only preferences are updated")
	}

	if err = that.prefsRepo.Save(ctx, profileID, prefs); err != nil {
		return entity.Preferences{}, fmt.Errorf("failed to save preferences: %w", err)
	}

	if game != nil && game.IsOngoing() {
		game.Difficulty = difficulty
		if err = that.updateGame(ctx, game); err != nil {
			return entity.Preferences{}, err
		}
	}

	return prefs, nil
}

// StartGame - new game with the profile's preferences. A previous game named by previousGameID is dropped.
func (that *GameManager) StartGame(ctx context.Context, profileID, previousGameID string) (*entity.Game, error) {
	prefs, err := that.GetPreferences(ctx, profileID)
	if err != nil {
		return nil, err
	}

	that.discardGame(ctx, previousGameID)

	game, err := that.createGame(ctx, prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// MakeTurn - plays cell for whoever is to move, then lets the computer answer in single-player mode.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", gameID)

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsComputerTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.MakeTurn(game.Turn, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsComputerTurn() {
		if err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("computer failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

// SuggestMove - cell the computer would play as O on board.
func (that *GameManager) SuggestMove(board entity.Board, difficulty entity.Difficulty) (int, error) {
	if err := board.Validate(); err != nil {
		return -1, fmt.Errorf("failed to validate board: %w", err)
	}

	if board.Result() != entity.EmptyCell {
		return -1, apperror.ErrGameFinished
	}

	cell, err := that.bot.SelectMove(board, entity.PlayerO, difficulty)
	if err != nil {
		return -1, fmt.Errorf("failed to select move: %w", err)
	}

	return cell, nil
}

func (that *GameManager) createGame(ctx context.Context, prefs entity.Preferences) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID, prefs)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	that.logger.Debug("game created", "game_id", gameID, "players", prefs.Players, "difficulty", prefs.Difficulty)

	return game, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

// findGame - the game named by gameID, or nil when there is none.
func (that *GameManager) findGame(ctx context.Context, gameID string) (*entity.Game, error) {
	if gameID == "" {
		return nil, nil
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) discardGame(ctx context.Context, gameID string) {
	if gameID == "" {
		return
	}

	log := that.logger.With("method", "discardGame", "game_id", gameID)

	err := that.gameRepo.DeleteByID(ctx, gameID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Debug("game discarded")
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
