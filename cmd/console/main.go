package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/console"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

// main - plays one game in the terminal.
func main() {
	aiFirst := flag.Bool("ai-first", false, "let the AI make the first move")
	verbose := flag.Bool("v", false, "log debug messages to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game := console.New(logger, usecase.NewMoveService(logger), os.Stdin, os.Stdout)
	if _, err := game.Play(ctx, *aiFirst); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "game aborted: %v\n", err)
		os.Exit(1)
	}
}
