package usecase

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Result is the board after a round of play.
type Result struct {
	Board  tictactoe.Board   `json:"board"`
	Status tictactoe.Outcome `json:"status"`
	AIMove *tictactoe.Move   `json:"ai_move,omitempty"`
}

// MoveService plays one human move and the AI's reply. It keeps no game state.
type MoveService struct {
	logger *slog.Logger
}

func NewMoveService(logger *slog.Logger) *MoveService {
	return &MoveService{
		logger: logger.With("component", "move_service"),
	}
}

// Play - places the human mark and answers with the AI's best move.
// Checks run in a fixed order: human win, tie, AI move, AI win, tie.
func (that *MoveService) Play(board tictactoe.Board, move tictactoe.Move) (Result, error) {
	if err := ValidateBoard(board); err != nil {
		return Result{}, err
	}

	if err := validateMove(board, move); err != nil {
		return Result{}, err
	}

	board[move.Row][move.Col] = tictactoe.Human

	if tictactoe.IsWinner(board, tictactoe.Human) {
		return Result{Board: board, Status: tictactoe.HumanWin}, nil
	}

	if tictactoe.IsFull(board) {
		return Result{Board: board, Status: tictactoe.Tie}, nil
	}

	return that.reply(board), nil
}

// Open - makes the AI's first move of a game the AI starts.
func (that *MoveService) Open(board tictactoe.Board) (Result, error) {
	if err := ValidateBoard(board); err != nil {
		return Result{}, err
	}

	if tictactoe.Count(board, tictactoe.AI) > tictactoe.Count(board, tictactoe.Human) {
		return Result{}, apperror.ErrNotYourTurn
	}

	return that.reply(board), nil
}

func (that *MoveService) reply(board tictactoe.Board) Result {
	aiMove := tictactoe.BestMove(board)
	board[aiMove.Row][aiMove.Col] = tictactoe.AI

	that.logger.Debug("ai moved", "move", aiMove.String())

	status := tictactoe.Continue
	switch {
	case tictactoe.IsWinner(board, tictactoe.AI):
		status = tictactoe.AIWin
	case tictactoe.IsFull(board):
		status = tictactoe.Tie
	}

	return Result{Board: board, Status: status, AIMove: &aiMove}
}

// ValidateBoard - rejects boards that could not come from legal play or that are already decided.
func ValidateBoard(board tictactoe.Board) error {
	for row := range board {
		for col, cell := range board[row] {
			if !cell.Valid() {
				return fmt.Errorf("%w: unknown mark %q at (%d,%d)", apperror.ErrInvalidBoard, cell, row, col)
			}
		}
	}

	humans := tictactoe.Count(board, tictactoe.Human)
	ais := tictactoe.Count(board, tictactoe.AI)
	if humans-ais > 1 || ais-humans > 1 {
		return fmt.Errorf("%w: %d human marks against %d ai marks", apperror.ErrInvalidBoard, humans, ais)
	}

	humanWon := tictactoe.IsWinner(board, tictactoe.Human)
	aiWon := tictactoe.IsWinner(board, tictactoe.AI)
	if humanWon && aiWon {
		return fmt.Errorf("%w: both players have a line", apperror.ErrInvalidBoard)
	}

	if humanWon || aiWon || tictactoe.IsFull(board) {
		return apperror.ErrGameFinished
	}

	return nil
}

func validateMove(board tictactoe.Board, move tictactoe.Move) error {
	if !move.InRange() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, move)
	}

	if board[move.Row][move.Col] != tictactoe.Empty {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, move)
	}

	if tictactoe.Count(board, tictactoe.Human) > tictactoe.Count(board, tictactoe.AI) {
		return apperror.ErrNotYourTurn
	}

	return nil
}
