package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) createSession(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.NewSession(r.Context())
	if err != nil {
		that.writeError(w, "createSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view)
}

func (that *Server) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "deleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// play - an illegal move answers 200 with the unchanged session.
func (that *Server) play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if !that.decodeBody(w, r, &req) {
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": <0-8>}"})
		return
	}

	view, err := that.sessions.Play(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil && !errors.Is(err, apperror.ErrIllegalMove) {
		that.writeError(w, "play", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Server) jump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if !that.decodeBody(w, r, &req) {
		return
	}

	if req.Move == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"move\": <n>}"})
		return
	}

	view, err := that.sessions.JumpTo(r.Context(), chi.URLParam(r, "id"), *req.Move)
	if err != nil {
		that.writeError(w, "jump", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Server) toggleSort(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.ToggleSort(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "toggleSort", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

// decodeBody - answers 413 for bodies over maxBodyBytes and 400 for invalid JSON.
func (that *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		that.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return false
	}

	that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})

	return false
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
	case errors.Is(err, apperror.ErrOutOfRange):
		that.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: apperror.ErrOutOfRange.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
