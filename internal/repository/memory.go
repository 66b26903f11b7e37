package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// memoryGame keeps copies of games so callers never share state with the store, like the redis repository.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{games: make(map[string]entity.Game)}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = *game

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return &entity.Game{}, ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

type memoryPreferences struct {
	mu    sync.RWMutex
	prefs map[string]entity.Preferences
}

func NewMemoryPreferencesRepository() PreferencesRepository {
	return &memoryPreferences{prefs: make(map[string]entity.Preferences)}
}

func (that *memoryPreferences) Save(_ context.Context, profileID string, prefs entity.Preferences) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.prefs[profileID] = prefs

	return nil
}

func (that *memoryPreferences) GetByProfileID(_ context.Context, profileID string) (entity.Preferences, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	prefs, ok := that.prefs[profileID]
	if !ok {
		return entity.Preferences{}, ErrPreferencesNotFound
	}

	return prefs, nil
}
