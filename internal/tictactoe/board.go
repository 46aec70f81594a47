package tictactoe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Size is the side length of the board.
const Size = 3

type Cell string

const (
	Empty Cell = " "
	Human Cell = "X"
	AI    Cell = "O"
)

// Outcome is the status of a board after a move.
type Outcome string

const (
	HumanWin Outcome = "human_win"
	AIWin    Outcome = "ai_win"
	Tie      Outcome = "tie"
	Continue Outcome = "continue"
)

// lines holds every winning line: rows, columns, then diagonals.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid. It is a value type: assigning a Board copies every cell.
type Board [Size][Size]Cell

// Move is a (row, col) coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// InRange - reports whether both coordinates are in [0,2].
func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// String renders the board as three "X|O| " rows separated by dashes.
func (that Board) String() string {
	var sb strings.Builder
	for row := range that {
		if row > 0 {
			sb.WriteString("-----\n")
		}
		for col, cell := range that[row] {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(string(cell))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// NewBoard - returns a board with every cell Empty.
func NewBoard() Board {
	var board Board
	for row := range board {
		for col := range board[row] {
			board[row][col] = Empty
		}
	}

	return board
}

// UnmarshalJSON accepts "" as an Empty cell.
func (that *Cell) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cell must be a string: %w", err)
	}

	if raw == "" {
		*that = Empty
		return nil
	}

	*that = Cell(raw)

	return nil
}

// UnmarshalJSON accepts exactly 3 rows of 3 cells.
func (that *Board) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != Size {
		return fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidBoard, Size, len(rows))
	}

	var board Board
	for row := range rows {
		if len(rows[row]) != Size {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidBoard, row, len(rows[row]))
		}
		copy(board[row][:], rows[row])
	}

	*that = board

	return nil
}

func (that Cell) Valid() bool {
	return that == Empty || that == Human || that == AI
}

// Opponent - returns the other player's mark.
func (that Cell) Opponent() Cell {
	if that == Human {
		return AI
	}
	return Human
}

// IsWinner - reports whether player fully occupies one of the 8 lines.
func IsWinner(board Board, player Cell) bool {
	if player != Human && player != AI {
		return false
	}

	for _, line := range lines {
		if board[line[0].Row][line[0].Col] == player &&
			board[line[1].Row][line[1].Col] == player &&
			board[line[2].Row][line[2].Col] == player {
			return true
		}
	}

	return false
}

// IsFull - reports whether no cell is Empty.
func IsFull(board Board) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// EmptyCells - returns every Empty coordinate in row-major order.
// Move selection relies on this order to break ties.
func EmptyCells(board Board) []Move {
	moves := make([]Move, 0, Size*Size)
	for row := range board {
		for col := range board[row] {
			if board[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Status - classifies board, checking the human win first.
func Status(board Board) Outcome {
	switch {
	case IsWinner(board, Human):
		return HumanWin
	case IsWinner(board, AI):
		return AIWin
	case IsFull(board):
		return Tie
	default:
		return Continue
	}
}

// Finished - reports whether the outcome ends the game.
func (that Outcome) Finished() bool {
	return that == HumanWin || that == AIWin || that == Tie
}

// Count - returns how many cells hold mark.
func Count(board Board, mark Cell) int {
	count := 0
	for _, row := range board {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}
