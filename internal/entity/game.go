package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Turn is one placed mark in a game's history.
type Turn struct {
	Player tictactoe.Cell `json:"player"`
	Row    int            `json:"row"`
	Col    int            `json:"col"`
}

type Game struct {
	ID        string            `json:"id"`
	Board     tictactoe.Board   `json:"board"`
	Status    tictactoe.Outcome `json:"status"`
	Turn      tictactoe.Cell    `json:"player_turn,omitempty"`
	AIFirst   bool              `json:"ai_first"`
	History   []Turn            `json:"history"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewGame(id string, aiFirst bool) *Game {
	now := time.Now().UTC()

	turn := tictactoe.Human
	if aiFirst {
		turn = tictactoe.AI
	}

	return &Game{
		ID:        id,
		Board:     tictactoe.NewBoard(),
		Status:    tictactoe.Continue,
		Turn:      turn,
		AIFirst:   aiFirst,
		History:   []Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record - appends a placed mark to the history.
func (that *Game) Record(player tictactoe.Cell, move tictactoe.Move) {
	that.History = append(that.History, Turn{Player: player, Row: move.Row, Col: move.Col})
}

// Update - replaces the board and status after a round of play.
func (that *Game) Update(board tictactoe.Board, status tictactoe.Outcome) {
	that.Board = board
	that.Status = status
	that.UpdatedAt = time.Now().UTC()

	if status.Finished() {
		that.Turn = ""
		return
	}

	that.Turn = tictactoe.Human
}

func (that *Game) IsFinished() bool {
	return that.Status.Finished()
}

func (that *Game) IsHumanTurn() bool {
	return that.Turn == tictactoe.Human
}
