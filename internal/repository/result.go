package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// timeLayout is fixed width so that finished_at sorts as text.
const timeLayout = "2006-01-02 15:04:05.000000000"

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Stats(ctx context.Context) (*entity.Stats, error)
	Recent(ctx context.Context, limit int) ([]*entity.Result, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

// Save - inserts a finished game. Saving the same game twice keeps the first record.
func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	board, err := json.Marshal(result.Board)
	if err != nil {
		return fmt.Errorf("can't marshal board: %w", err)
	}

	query := `INSERT INTO results (game_id, outcome, board, moves, ai_first, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id) DO NOTHING`

	_, err = that.conn.ExecContext(ctx, query,
		result.GameID, string(result.Outcome), string(board), result.Moves, result.AIFirst, result.FinishedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) Stats(ctx context.Context) (*entity.Stats, error) {
	query := `SELECT outcome, COUNT(*) FROM results GROUP BY outcome`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't count results: %w", err)
	}
	defer rows.Close()

	var stats entity.Stats
	for rows.Next() {
		var (
			outcome string
			count   int
		)

		if err = rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("can't scan result count: %w", err)
		}

		switch tictactoe.Outcome(outcome) {
		case tictactoe.HumanWin:
			stats.HumanWins = count
		case tictactoe.AIWin:
			stats.AIWins = count
		case tictactoe.Tie:
			stats.Ties = count
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read result counts: %w", err)
	}

	return &stats, nil
}

func (that *resultRepository) Recent(ctx context.Context, limit int) ([]*entity.Result, error) {
	query := `SELECT game_id, outcome, board, moves, ai_first, finished_at
		FROM results
		ORDER BY finished_at DESC
		LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}
	defer rows.Close()

	results := make([]*entity.Result, 0, limit)
	for rows.Next() {
		var (
			result     entity.Result
			outcome    string
			board      string
			finishedAt string
		)

		if err = rows.Scan(&result.GameID, &outcome, &board, &result.Moves, &result.AIFirst, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan result: %w", err)
		}

		if result.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
			return nil, fmt.Errorf("can't parse finish time: %w", err)
		}

		if err = json.Unmarshal([]byte(board), &result.Board); err != nil {
			return nil, fmt.Errorf("can't unmarshal board: %w", err)
		}

		result.Outcome = tictactoe.Outcome(outcome)
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read results: %w", err)
	}

	return results, nil
}
