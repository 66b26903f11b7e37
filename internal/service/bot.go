package service

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Minimax scores, seen from the computer's side. There is no depth discount.
const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// ComputerMark - the computer always answers as O.
const ComputerMark = entity.PlayerO

type BotService interface {
	SelectMove(board entity.Board, mark string, difficulty entity.Difficulty) (int, error)
	MakeTurn(game *entity.Game) error
}

type botService struct {
	intN func(n int) int
}

func NewBotService() BotService {
	return &botService{intN: rand.IntN}
}

// NewBotServiceWithRand - same as NewBotService but draws random cells from rnd.
func NewBotServiceWithRand(rnd *rand.Rand) BotService {
	return &botService{intN: rnd.IntN}
}

// SelectMove - picks the cell mark should play on board.
func (that *botService) SelectMove(board entity.Board, mark string, difficulty entity.Difficulty) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return -1, apperror.ErrNoAvailableMoves
	}

	switch difficulty {
	case entity.DifficultyEasy, entity.DifficultyMedium:
		return availableCells[that.intN(len(availableCells))], nil
	case entity.DifficultyHard:
		return bestMove(&board, mark), nil
	default:
		return -1, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	cell, err := that.SelectMove(game.Board, ComputerMark, game.Difficulty)
	if err != nil {
		return fmt.Errorf("bot failed to select cell: %w", err)
	}

	if err = game.MakeTurn(ComputerMark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// bestMove - first cell with the highest minimax score. board is restored before returning.
func bestMove(board *entity.Board, mark string) int {
	bestScore := math.MinInt
	move := -1

	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = mark
		score := minimax(board, mark, false)
		board[i] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			move = i
		}
	}

	return move
}

// minimax - mark maximises, its opponent minimises.
func minimax(board *entity.Board, mark string, isMaximizing bool) int {
	opponent := entity.Opponent(mark)

	switch {
	case board.CheckWin(mark):
		return scoreWin
	case board.CheckWin(opponent):
		return scoreLoss
	case board.IsFull():
		return scoreDraw
	}

	if isMaximizing {
		bestScore := math.MinInt
		for i := range board {
			if board[i] != entity.EmptyCell {
				continue
			}

			board[i] = mark
			bestScore = max(bestScore, minimax(board, mark, false))
			board[i] = entity.EmptyCell
		}

		return bestScore
	}

	bestScore := math.MaxInt
	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = opponent
		bestScore = min(bestScore, minimax(board, mark, true))
		board[i] = entity.EmptyCell
	}

	return bestScore
}
