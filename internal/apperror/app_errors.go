package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrInvalidBoard   = errors.New("invalid board")
	ErrInvalidPlayers = errors.New("number of players must be 1 or 2")

	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNoAvailableMoves  = errors.New("no available moves")
)
