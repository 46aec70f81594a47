package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrInvalidLimit = errors.New("invalid limit")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, apply func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Stats(ctx context.Context) (*entity.Stats, error)
	Recent(ctx context.Context, limit int) ([]*entity.Result, error)
}

// GameManager keeps games between requests and records finished ones.
type GameManager struct {
	logger     *slog.Logger
	moves      *MoveService
	gameRepo   gameRepo
	resultRepo resultRepo
}

func NewGameManager(logger *slog.Logger, moves *MoveService, gameRepo gameRepo, resultRepo resultRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		moves:      moves,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
	}
}

// NewGame - creates and stores a game. When aiFirst is set the AI has already opened.
func (that *GameManager) NewGame(ctx context.Context, aiFirst bool) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID, aiFirst)

	if aiFirst {
		result, err := that.moves.Open(game.Board)
		if err != nil {
			return nil, fmt.Errorf("failed to open game: %w", err)
		}

		game.Record(tictactoe.AI, *result.AIMove)
		game.Update(result.Board, result.Status)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "aiFirst", aiFirst)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human move and the AI reply on a stored game.
// A finished game is returned together with ErrGameFinished. The load and the write
// are one redis transaction, so a concurrent turn on the same game fails with ErrGameConflict.
func (that *GameManager) MakeTurn(ctx context.Context, id string, move tictactoe.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		if game.IsFinished() {
			return apperror.ErrGameFinished
		}

		if !game.IsHumanTurn() {
			return apperror.ErrNotYourTurn
		}

		result, err := that.moves.Play(game.Board, move)
		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		game.Record(tictactoe.Human, move)
		if result.AIMove != nil {
			game.Record(tictactoe.AI, *result.AIMove)
		}
		game.Update(result.Board, result.Status)

		return nil
	})
	if err != nil {
		if game == nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
		return game, err
	}

	if game.IsFinished() {
		that.recordResult(ctx, game)
	}

	log.Debug("turn made", "move", move.String(), "status", game.Status)

	return game, nil
}

// DeleteGame - drops a stored session. Finished games stay in the result history.
func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID)

	if err := that.resultRepo.Save(ctx, entity.NewResult(game)); err != nil {
		log.Error("failed to save result", "error", err)
		return
	}

	log.Info("game finished", "status", game.Status)
}

func (that *GameManager) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := that.resultRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// Recent - returns up to limit finished games, newest first.
func (that *GameManager) Recent(ctx context.Context, limit int) ([]*entity.Result, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidLimit)
	}

	results, err := that.resultRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	return results, nil
}
