package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type PreferencesRepository interface {
	Save(ctx context.Context, profileID string, prefs entity.Preferences) error
	GetByProfileID(ctx context.Context, profileID string) (entity.Preferences, error)
}

type dbPreferences struct {
	client *redis.Client
}

func NewPreferencesRepository(client *redis.Client) PreferencesRepository {
	return &dbPreferences{
		client: client,
	}
}

func (that *dbPreferences) Save(ctx context.Context, profileID string, prefs entity.Preferences) error {
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	// preferences outlive games
	err = that.client.Set(ctx, redisKey(preferencesKeyPrefix, profileID), prefsJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set preferences: %w", err)
	}

	return nil
}

func (that *dbPreferences) GetByProfileID(ctx context.Context, profileID string) (entity.Preferences, error) {
	response, err := that.client.Get(ctx, redisKey(preferencesKeyPrefix, profileID)).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Preferences{}, ErrPreferencesNotFound
	}

	if err != nil {
		return entity.Preferences{}, fmt.Errorf("failed to get preferences by profile ID: %w", err)
	}

	var prefs entity.Preferences
	if err = json.Unmarshal([]byte(response), &prefs); err != nil {
		return entity.Preferences{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return prefs, nil
}
