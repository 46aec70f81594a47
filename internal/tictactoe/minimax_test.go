package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapped exchanges the two marks so that BestMove can play for the human.
func swapped(board Board) Board {
	for row := range board {
		for col := range board[row] {
			switch board[row][col] {
			case Human:
				board[row][col] = AI
			case AI:
				board[row][col] = Human
			}
		}
	}

	return board
}

func TestEvaluate(t *testing.T) {
	t.Run("Terminal scores are depth adjusted", func(t *testing.T) {
		aiWon := parseBoard(t, "OOO", "XX_", "X__")
		humanWon := parseBoard(t, "XXX", "OO_", "O__")
		tie := parseBoard(t, "XOX", "XOO", "OXX")

		assert.Equal(t, 10, Evaluate(aiWon, 0, false))
		assert.Equal(t, 7, Evaluate(aiWon, 3, true))
		assert.Equal(t, -10, Evaluate(humanWon, 0, true))
		assert.Equal(t, -6, Evaluate(humanWon, 4, false))
		assert.Equal(t, 0, Evaluate(tie, 5, true))
	})

	t.Run("AI win is checked before human win", func(t *testing.T) {
		// Given: an unreachable board where both players hold a line
		board := parseBoard(t, "OOO", "XXX", "___")

		// Then: the AI base case applies
		assert.Equal(t, 8, Evaluate(board, 2, true))
	})

	t.Run("Empty board is a draw", func(t *testing.T) {
		assert.Equal(t, 0, Evaluate(NewBoard(), 0, true))
	})

	t.Run("AI to move with a winning cell", func(t *testing.T) {
		// Given: AI can complete the top row on its next move
		board := parseBoard(t, "OO_", "XX_", "___")

		// Then: the win lands one ply deeper
		assert.Equal(t, 9, Evaluate(board, 0, true))
	})

	t.Run("Human to move with a winning cell", func(t *testing.T) {
		board := parseBoard(t, "OO_", "XX_", "___")

		assert.Equal(t, -9, Evaluate(board, 0, false))
	})

	t.Run("Idempotent and leaves the board untouched", func(t *testing.T) {
		// Given: a mid-game board and a copy of it
		board := parseBoard(t, "X__", "_O_", "__X")
		before := board

		// When: evaluating twice
		first := Evaluate(board, 0, true)
		second := Evaluate(board, 0, true)

		// Then: scores match and every cell is unchanged
		assert.Equal(t, first, second)
		assert.Equal(t, before, board)
	})
}

func TestBestMove(t *testing.T) {
	t.Run("Takes the immediate win over the block", func(t *testing.T) {
		board := parseBoard(t,
			"OO_",
			"XX_",
			"___",
		)

		assert.Equal(t, Move{Row: 0, Col: 2}, BestMove(board))
	})

	t.Run("Blocks the human's line", func(t *testing.T) {
		board := parseBoard(t,
			"XX_",
			"_O_",
			"___",
		)

		assert.Equal(t, Move{Row: 0, Col: 2}, BestMove(board))
	})

	t.Run("Blocks a diagonal", func(t *testing.T) {
		board := parseBoard(t,
			"X_O",
			"_X_",
			"___",
		)

		assert.Equal(t, Move{Row: 2, Col: 2}, BestMove(board))
	})

	t.Run("Only one cell left", func(t *testing.T) {
		board := parseBoard(t,
			"XOX",
			"XO_",
			"OXX",
		)

		assert.Equal(t, Move{Row: 1, Col: 2}, BestMove(board))
	})

	t.Run("Deterministic on the empty board", func(t *testing.T) {
		// When: asking for the opening move repeatedly
		first := BestMove(NewBoard())
		second := BestMove(NewBoard())

		// Then: the first of the equally scored cells is chosen every time
		assert.Equal(t, Move{Row: 0, Col: 0}, first)
		assert.Equal(t, first, second)
	})

	t.Run("Does not mutate the board", func(t *testing.T) {
		board := parseBoard(t, "X__", "___", "___")
		before := board

		move := BestMove(board)

		assert.Equal(t, before, board)
		assert.Equal(t, Empty, board[move.Row][move.Col])
	})

	t.Run("Panics without empty cells", func(t *testing.T) {
		board := parseBoard(t, "XOX", "XOO", "OXX")

		assert.PanicsWithValue(t, ErrNoEmptyCells, func() {
			BestMove(board)
		})
	})
}

func TestBestMove_SelfPlayIsATie(t *testing.T) {
	for _, humanFirst := range []bool{true, false} {
		// Given: both sides choose moves with BestMove
		board := NewBoard()
		turn := AI
		if humanFirst {
			turn = Human
		}

		// When: playing until the game ends
		for Status(board) == Continue {
			if turn == AI {
				move := BestMove(board)
				board[move.Row][move.Col] = AI
			} else {
				move := BestMove(swapped(board))
				board[move.Row][move.Col] = Human
			}
			turn = turn.Opponent()
		}

		// Then: perfect play is a draw
		assert.Equal(t, Tie, Status(board), "human first: %v", humanFirst)
	}
}

// playEveryLine answers every possible human move with BestMove and fails if the human ever wins.
func playEveryLine(t *testing.T, board Board) int {
	t.Helper()

	games := 0
	for _, move := range EmptyCells(board) {
		next := board
		next[move.Row][move.Col] = Human

		require.False(t, IsWinner(next, Human), "human won with board %v", next)
		if IsFull(next) {
			games++
			continue
		}

		reply := BestMove(next)
		require.Equal(t, Empty, next[reply.Row][reply.Col])
		next[reply.Row][reply.Col] = AI

		if IsWinner(next, AI) || IsFull(next) {
			games++
			continue
		}

		games += playEveryLine(t, next)
	}

	return games
}

func TestBestMove_NeverLoses(t *testing.T) {
	t.Run("Human moves first", func(t *testing.T) {
		games := playEveryLine(t, NewBoard())

		assert.Positive(t, games)
	})

	t.Run("AI moves first", func(t *testing.T) {
		board := NewBoard()
		opening := BestMove(board)
		board[opening.Row][opening.Col] = AI

		games := playEveryLine(t, board)

		assert.Positive(t, games)
	})
}
