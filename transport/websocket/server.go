package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	pongWait        = 60 * time.Second
	pingPeriod      = 30 * time.Second
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

var ErrUnknownAction = errors.New("unknown action")

type gameManager interface {
	NewGame(ctx context.Context, aiFirst bool) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, move tictactoe.Move) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, payload Payload) (Payload, error)

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetGame] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn

	return server
}

// Handler - returns the /ws handler.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client until the connection drops.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	done := make(chan struct{})
	defer close(done)

	go that.keepAlive(conn, done)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if isDecodeError(err) {
				log.Error("failed to unmarshal message", "error", err)
				if err = that.send(conn, actionError, Payload{Error: "invalid message"}); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.processMessage(ctx, &message)
		if err := that.send(conn, message.Action, response); err != nil {
			return err
		}
	}
}

// isDecodeError - reports whether the frame was read but is not a valid message.
func isDecodeError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// processMessage - runs the handler for the message's action and turns errors into payloads.
func (that *Server) processMessage(ctx context.Context, message *Message) Payload {
	log := that.logger.With("method", "processMessage", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		return Payload{Error: fmt.Sprintf("%v: %s", ErrUnknownAction, message.Action)}
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return Payload{Error: "invalid payload"}
		}
	}

	response, err := handler(ctx, payload)
	if err != nil {
		log.Info("action failed", "error", err)
		response.Error = err.Error()
	}

	return response
}

func (that *Server) send(conn *websocket.Conn, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// keepAlive - pings the client until done is closed. WriteControl is safe next to WriteJSON.
func (that *Server) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
