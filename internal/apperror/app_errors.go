package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidBoard = errors.New("invalid board")
	ErrGameConflict = errors.New("game was changed by another request")
)
