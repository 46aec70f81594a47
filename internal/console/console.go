package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

const (
	promptMove     = "Enter your move (row col): "
	msgInvalidMove = "Invalid move. Try again."
	msgBadInput    = "Invalid input. Please enter two numbers separated by a space."
	msgThinking    = "AI is thinking..."
	msgHumanWin    = "You win!"
	msgAIWin       = "AI wins!"
	msgTie         = "It's a tie!"
)

var (
	ErrInputClosed = errors.New("input closed before the game ended")
	errBadInput    = errors.New("expected two numbers")
)

type moveService interface {
	Play(board tictactoe.Board, move tictactoe.Move) (usecase.Result, error)
	Open(board tictactoe.Board) (usecase.Result, error)
}

// Console plays one game against the AI over a line-oriented reader and writer.
type Console struct {
	logger *slog.Logger
	moves  moveService
	in     *bufio.Scanner
	out    io.Writer
}

func New(logger *slog.Logger, moves moveService, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		moves:  moves,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Play - runs a game until someone wins or the board fills, and returns the outcome.
func (that *Console) Play(ctx context.Context, aiFirst bool) (tictactoe.Outcome, error) {
	log := that.logger.With("method", "Play")

	board := tictactoe.NewBoard()

	if aiFirst {
		that.println(msgThinking)

		result, err := that.moves.Open(board)
		if err != nil {
			return "", fmt.Errorf("failed to make the opening move: %w", err)
		}
		board = result.Board
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		that.print(board.String())

		result, err := that.turn(board)
		if err != nil {
			return "", err
		}

		if result.AIMove != nil {
			that.println(msgThinking)
			log.Debug("ai moved", "move", result.AIMove.String())
		}

		board = result.Board

		if result.Status.Finished() {
			that.print(board.String())
			that.println(announcement(result.Status))

			return result.Status, nil
		}
	}
}

// turn - prompts until the human enters a playable move and returns the round's result.
func (that *Console) turn(board tictactoe.Board) (usecase.Result, error) {
	for {
		that.print(promptMove)

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return usecase.Result{}, fmt.Errorf("failed to read move: %w", err)
			}
			return usecase.Result{}, ErrInputClosed
		}

		move, err := parseMove(that.in.Text())
		if err != nil {
			that.println(msgBadInput)
			continue
		}

		result, err := that.moves.Play(board, move)
		if err != nil {
			that.logger.Debug("move rejected", "move", move.String(), "error", err)
			that.println(msgInvalidMove)
			continue
		}

		return result, nil
	}
}

func parseMove(line string) (tictactoe.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return tictactoe.Move{}, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("%w: %w", errBadInput, err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("%w: %w", errBadInput, err)
	}

	return tictactoe.Move{Row: row, Col: col}, nil
}

func announcement(outcome tictactoe.Outcome) string {
	switch outcome {
	case tictactoe.HumanWin:
		return msgHumanWin
	case tictactoe.AIWin:
		return msgAIWin
	default:
		return msgTie
	}
}

func (that *Console) print(text string) {
	_, _ = io.WriteString(that.out, text)
}

func (that *Console) println(text string) {
	_, _ = io.WriteString(that.out, text+"\n")
}
