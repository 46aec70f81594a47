package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	actionNewGame  = "game:new"
	actionGetGame  = "game:get"
	actionGameTurn = "game:turn"
	actionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID  string          `json:"game_id,omitempty"`
	AIFirst bool            `json:"ai_first,omitempty"`
	Move    *tictactoe.Move `json:"move,omitempty"`
	Game    *entity.Game    `json:"game,omitempty"`
	Error   string          `json:"error,omitempty"`
}
