package tictactoe

import (
	"errors"
	"math"
)

// Terminal scores before the depth adjustment.
const (
	winScore  = 10
	lossScore = -10
	tieScore  = 0
)

var ErrNoEmptyCells = errors.New("board has no empty cells")

// Evaluate - returns the minimax value of board from the AI's point of view.
// maximizing tells whose turn it is: true for the AI, false for the human.
// Wins are worth 10-depth and losses depth-10, so faster wins and slower losses score better.
// Every branch works on its own copy of board, so the caller's board is never touched.
func Evaluate(board Board, depth int, maximizing bool) int {
	switch {
	case IsWinner(board, AI):
		return winScore - depth
	case IsWinner(board, Human):
		return depth + lossScore
	case IsFull(board):
		return tieScore
	}

	if maximizing {
		best := math.MinInt
		for _, move := range EmptyCells(board) {
			next := board
			next[move.Row][move.Col] = AI
			best = max(best, Evaluate(next, depth+1, false))
		}
		return best
	}

	best := math.MaxInt
	for _, move := range EmptyCells(board) {
		next := board
		next[move.Row][move.Col] = Human
		best = min(best, Evaluate(next, depth+1, true))
	}

	return best
}

// BestMove - returns the optimal move for the AI.
// Cells are tried in row-major order and only a strictly greater score replaces the current pick,
// so the first of several equally good moves wins.
// It panics when board has no empty cell; callers must check IsWinner and IsFull first.
func BestMove(board Board) Move {
	moves := EmptyCells(board)
	if len(moves) == 0 {
		panic(ErrNoEmptyCells)
	}

	bestScore := math.MinInt
	best := moves[0]

	for _, move := range moves {
		next := board
		next[move.Row][move.Col] = AI

		if score := Evaluate(next, 0, false); score > bestScore {
			bestScore = score
			best = move
		}
	}

	return best
}
