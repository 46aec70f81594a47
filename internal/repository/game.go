package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const gameKeyPrefix = "game:"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, apply func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - stores games as JSON. A zero ttl keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return that.load(ctx, that.client, id)
}

// Update - loads the game, applies the change and writes it back in one WATCH transaction.
// If apply fails, the loaded game is returned with its error and nothing is written.
// A write by anyone else in between fails with ErrGameConflict.
func (that *dbGame) Update(ctx context.Context, id string, apply func(game *entity.Game) error) (*entity.Game, error) {
	key := gameKeyPrefix + id

	var (
		game     *entity.Game
		applyErr error
	)

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		var err error
		if game, err = that.load(ctx, tx, id); err != nil {
			return err
		}

		if applyErr = apply(game); applyErr != nil {
			return applyErr
		}

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, that.ttl)
			return nil
		})

		return err
	}, key)

	switch {
	case applyErr != nil:
		return game, applyErr
	case errors.Is(err, redis.TxFailedErr):
		return nil, apperror.ErrGameConflict
	case errors.Is(err, apperror.ErrGameNotFound):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *dbGame) load(ctx context.Context, client getter, id string) (*entity.Game, error) {
	response, err := client.Get(ctx, gameKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}
