package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	NewSession(ctx context.Context) (*usecase.SessionView, error)
	State(ctx context.Context, id string) (*usecase.SessionView, error)
	Play(ctx context.Context, id string, cell int) (*usecase.SessionView, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.SessionView, error)
	ToggleSort(ctx context.Context, id string) (*usecase.SessionView, error)
}

type handler func(ctx context.Context, msg *Message) Response

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase

	handlers map[string]handler
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,

		handlers: make(map[string]handler),
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionSessionState] = server.handleState
	server.handlers[actionGamePlay] = server.handlePlay
	server.handlers[actionGameJump] = server.handleJump
	server.handlers[actionGameSort] = server.handleSort

	return server
}

// Start - starts WebSocket server on /ws and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

// ServeHTTP - upgrades the connection and answers every message on it.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
		conn.Close(websocket.StatusInternalError, "internal error")
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages until the client closes the connection.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if isClosed(ctx, err) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.dispatch(ctx, data)

		if err = wsjson.Write(ctx, conn, response); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}

		log.Debug("message handled", "action", response.Action)
	}
}

func (that *Server) dispatch(ctx context.Context, data []byte) Response {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		that.logger.Debug("failed to unmarshal message", "error", err)
		return errorResponse("", "invalid message")
	}

	handle, ok := that.handlers[message.Action]
	if !ok {
		return errorResponse(message.Action, "unknown action")
	}

	return handle(ctx, &message)
}

func isClosed(ctx context.Context, err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}

	return ctx.Err() != nil
}
