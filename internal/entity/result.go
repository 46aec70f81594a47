package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Result is the record of a finished game.
type Result struct {
	GameID     string            `json:"game_id"`
	Outcome    tictactoe.Outcome `json:"outcome"`
	Board      tictactoe.Board   `json:"board"`
	Moves      int               `json:"moves"`
	AIFirst    bool              `json:"ai_first"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Stats counts finished games per outcome.
type Stats struct {
	HumanWins int `json:"human_win"`
	AIWins    int `json:"ai_win"`
	Ties      int `json:"tie"`
}

func NewResult(game *Game) *Result {
	return &Result{
		GameID:     game.ID,
		Outcome:    game.Status,
		Board:      game.Board,
		Moves:      len(game.History),
		AIFirst:    game.AIFirst,
		FinishedAt: game.UpdatedAt,
	}
}

// Total - returns the number of finished games.
func (that Stats) Total() int {
	return that.HumanWins + that.AIWins + that.Ties
}
