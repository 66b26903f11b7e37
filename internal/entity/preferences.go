package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	DefaultPlayers    = 2
	DefaultDifficulty = DifficultyEasy
)

func ParseDifficulty(value string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

// Preferences - settings remembered per profile between games.
type Preferences struct {
	Players    int        `json:"players"`
	Difficulty Difficulty `json:"difficulty"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Players:    DefaultPlayers,
		Difficulty: DefaultDifficulty,
	}
}

func (that Preferences) Validate() error {
	if that.Players != 1 && that.Players != 2 {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidPlayers, that.Players)
	}

	if _, err := ParseDifficulty(string(that.Difficulty)); err != nil {
		return err
	}

	return nil
}
