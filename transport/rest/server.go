package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type moveService interface {
	Play(board tictactoe.Board, move tictactoe.Move) (usecase.Result, error)
}

type gameManager interface {
	NewGame(ctx context.Context, aiFirst bool) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, move tictactoe.Move) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	Stats(ctx context.Context) (*entity.Stats, error)
	Recent(ctx context.Context, limit int) ([]*entity.Result, error)
}

type Server struct {
	logger *slog.Logger
	moves  moveService
	games  gameManager
	router chi.Router
}

func New(logger *slog.Logger, moves moveService, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		moves:  moves,
		games:  games,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(server.logRequests)
	router.Use(middleware.Recoverer)

	router.Get("/ping", server.handlePing)
	router.Post("/make_move", server.handleMakeMove)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", server.handleNewGame)
		r.Get("/{id}", server.handleGetGame)
		r.Delete("/{id}", server.handleDeleteGame)
		r.Post("/{id}/turn", server.handleTurn)
	})

	router.Get("/stats", server.handleStats)
	router.Get("/results", server.handleResults)

	server.router = router

	return server
}

// Handler - returns the router, mainly for tests.
func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// logRequests - writes one structured line per request.
func (that *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}
