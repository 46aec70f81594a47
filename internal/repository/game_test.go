package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Redis, time.Minute)

	// Given: a new game
	game := entity.NewGame("123", false)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Redis.TTL(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// Given: a game with a few moves on the board
		game := entity.NewGame("123", false)
		board := game.Board
		board[1][1] = tictactoe.Human
		board[0][0] = tictactoe.AI
		game.Record(tictactoe.Human, tictactoe.Move{Row: 1, Col: 1})
		game.Record(tictactoe.AI, tictactoe.Move{Row: 0, Col: 0})
		game.Update(board, tictactoe.Continue)

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.Board, retrievedGame.Board)
		assert.Equal(t, game.Status, retrievedGame.Status)
		assert.Equal(t, game.History, retrievedGame.History)
		assert.True(t, game.UpdatedAt.Equal(retrievedGame.UpdatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// Given: a stored game
		game := entity.NewGame("123", true)

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, time.Minute)

		// Given: a stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123", false)))

		// When: a turn is applied through Update
		updated, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			game.Record(tictactoe.Human, tictactoe.Move{Row: 1, Col: 1})
			return nil
		})

		// Then: the change is returned and persisted
		require.NoError(t, err)
		assert.Len(t, updated.History, 1)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, updated.History, stored.History)
	})

	t.Run("Update_ApplyError", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123", false)))

		// When: the change is refused
		game, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			game.Record(tictactoe.Human, tictactoe.Move{Row: 0, Col: 0})
			return apperror.ErrCellOccupied
		})

		// Then: the error and the loaded game come back, and nothing is written
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.NotNil(t, game)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Empty(t, stored.History)
	})

	t.Run("Update_Conflict", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123", false)))

		// When: another writer saves the game while the change is being applied
		game, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			other := entity.NewGame("123", false)
			other.Record(tictactoe.Human, tictactoe.Move{Row: 2, Col: 2})
			require.NoError(t, gameRepo.CreateOrUpdate(ctx, other))

			game.Record(tictactoe.Human, tictactoe.Move{Row: 0, Col: 0})
			return nil
		})

		// Then: the late write is rejected and the other writer's game survives
		require.ErrorIs(t, err, apperror.ErrGameConflict)
		assert.Nil(t, game)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, []entity.Turn{{Player: tictactoe.Human, Row: 2, Col: 2}}, stored.History)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		game, err := gameRepo.Update(ctx, "9999999", func(*entity.Game) error {
			return nil
		})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, game)
	})
}
