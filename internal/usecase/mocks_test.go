package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type mockPrefsRepo struct {
	mock.Mock
}

func (that *mockPrefsRepo) Save(ctx context.Context, profileID string, prefs entity.Preferences) error {
	args := that.Called(ctx, profileID, prefs)
	return args.Error(0)
}

func (that *mockPrefsRepo) GetByProfileID(ctx context.Context, profileID string) (entity.Preferences, error) {
	args := that.Called(ctx, profileID)
	return args.Get(0).(entity.Preferences), args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
