package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - 3x3 grid stored row-major, cell 0 is top-left.
type Board [9]string

// CheckWin - reports whether mark holds any of the eight lines.
func (that *Board) CheckWin(mark string) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw - every cell is marked and nobody holds a line.
func (that *Board) IsDraw() bool {
	return that.IsFull() && !that.CheckWin(PlayerX) && !that.CheckWin(PlayerO)
}

func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// Validate - checks that every cell holds a known mark and the mark counts are reachable with X moving first.
func (that *Board) Validate() error {
	var xCount, oCount int

	for i, cell := range that {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		case EmptyCell:
		default:
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidBoard, i, cell)
		}
	}

	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	return nil
}

// Result - winning mark, PlayerTie for a draw, or EmptyCell while the game goes on.
func (that *Board) Result() string {
	switch {
	case that.CheckWin(PlayerX):
		return PlayerX
	case that.CheckWin(PlayerO):
		return PlayerO
	case that.IsFull():
		return PlayerTie
	default:
		return EmptyCell
	}
}

func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
