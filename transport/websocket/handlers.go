package websocket

import (
	"context"
	"errors"
	"fmt"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errMoveRequired   = errors.New("move is required")
)

func (that *Server) handleNewGame(ctx context.Context, payload Payload) (Payload, error) {
	game, err := that.games.NewGame(ctx, payload.AIFirst)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to create a new game: %w", err)
	}

	return Payload{GameID: game.ID, Game: game}, nil
}

func (that *Server) handleGetGame(ctx context.Context, payload Payload) (Payload, error) {
	if payload.GameID == "" {
		return Payload{}, errGameIDRequired
	}

	game, err := that.games.GetGame(ctx, payload.GameID)
	if err != nil {
		return Payload{GameID: payload.GameID}, err
	}

	return Payload{GameID: game.ID, Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, payload Payload) (Payload, error) {
	if payload.GameID == "" {
		return Payload{}, errGameIDRequired
	}

	if payload.Move == nil {
		return Payload{GameID: payload.GameID}, errMoveRequired
	}

	game, err := that.games.MakeTurn(ctx, payload.GameID, *payload.Move)
	if err != nil {
		return Payload{GameID: payload.GameID, Game: game}, err
	}

	return Payload{GameID: game.ID, Game: game}, nil
}
