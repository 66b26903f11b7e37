package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID         string     `json:"id"`
	Board      Board      `json:"board"`
	Winner     string     `json:"winner"`
	Status     string     `json:"status"`
	Turn       string     `json:"player_turn"`
	Players    int        `json:"players"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewGame - empty board, X moves first.
func NewGame(id string, prefs Preferences) *Game {
	return &Game{
		ID:         id,
		Turn:       PlayerX,
		Status:     StatusOngoing,
		Players:    prefs.Players,
		Difficulty: prefs.Difficulty,
	}
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Result(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = playerMark
	that.Turn = Opponent(playerMark)

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithComputer() bool {
	return that.Players == 1
}

// IsComputerTurn - in single-player mode the computer always plays O.
func (that *Game) IsComputerTurn() bool {
	return that.IsWithComputer() && that.IsOngoing() && that.Turn == PlayerO
}

// Message - status line shown under the board.
func (that *Game) Message() (string, error) {
	switch that.Status {
	case StatusOngoing:
		return that.Turn + " to move", nil
	case StatusFinished:
		if that.Winner == PlayerTie {
			return "Draw!", nil
		}
		return that.Winner + " wins!", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGameStatus, that.Status)
	}
}
