package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const (
	actionSessionNew   = "session:new"
	actionSessionState = "session:state"
	actionGamePlay     = "game:play"
	actionGameJump     = "game:jump"
	actionGameSort     = "game:sort"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - request payload; which fields are required depends on the action.
type Payload struct {
	SessionID string `json:"session_id,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
	Move      *int   `json:"move,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}

type ResponsePayload struct {
	Session *usecase.SessionView `json:"session,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func sessionResponse(action string, view *usecase.SessionView) Response {
	return Response{Action: action, Payload: ResponsePayload{Session: view}}
}

func errorResponse(action, message string) Response {
	return Response{Action: action, Payload: ResponsePayload{Error: message}}
}
