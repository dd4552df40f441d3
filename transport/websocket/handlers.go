package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

func (that *Server) handleNewSession(ctx context.Context, msg *Message) Response {
	view, err := that.sessions.NewSession(ctx)
	if err != nil {
		return that.failure(msg.Action, err)
	}

	return sessionResponse(msg.Action, view)
}

func (that *Server) handleState(ctx context.Context, msg *Message) Response {
	payload, resp, ok := decodePayload(msg)
	if !ok {
		return resp
	}

	view, err := that.sessions.State(ctx, payload.SessionID)
	if err != nil {
		return that.failure(msg.Action, err)
	}

	return sessionResponse(msg.Action, view)
}

// handlePlay - an illegal move answers with the unchanged session and no error.
func (that *Server) handlePlay(ctx context.Context, msg *Message) Response {
	payload, resp, ok := decodePayload(msg)
	if !ok {
		return resp
	}

	if payload.Cell == nil {
		return errorResponse(msg.Action, "cell is required")
	}

	view, err := that.sessions.Play(ctx, payload.SessionID, *payload.Cell)
	if err != nil && !errors.Is(err, apperror.ErrIllegalMove) {
		return that.failure(msg.Action, err)
	}

	return sessionResponse(msg.Action, view)
}

func (that *Server) handleJump(ctx context.Context, msg *Message) Response {
	payload, resp, ok := decodePayload(msg)
	if !ok {
		return resp
	}

	if payload.Move == nil {
		return errorResponse(msg.Action, "move is required")
	}

	view, err := that.sessions.JumpTo(ctx, payload.SessionID, *payload.Move)
	if err != nil {
		return that.failure(msg.Action, err)
	}

	return sessionResponse(msg.Action, view)
}

func (that *Server) handleSort(ctx context.Context, msg *Message) Response {
	payload, resp, ok := decodePayload(msg)
	if !ok {
		return resp
	}

	view, err := that.sessions.ToggleSort(ctx, payload.SessionID)
	if err != nil {
		return that.failure(msg.Action, err)
	}

	return sessionResponse(msg.Action, view)
}

func decodePayload(msg *Message) (Payload, Response, bool) {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, errorResponse(msg.Action, "invalid payload"), false
	}

	if payload.SessionID == "" {
		return payload, errorResponse(msg.Action, "session_id is required"), false
	}

	return payload, Response{}, true
}

// failure - client errors keep their message, everything else is logged and hidden.
func (that *Server) failure(action string, err error) Response {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return errorResponse(action, apperror.ErrSessionNotFound.Error())
	case errors.Is(err, apperror.ErrOutOfRange):
		return errorResponse(action, apperror.ErrOutOfRange.Error())
	default:
		that.logger.Error("failed to handle message", "action", action, "error", err)
		return errorResponse(action, "internal error")
	}
}

var _ sessionUseCase = (*usecase.SessionManager)(nil)
