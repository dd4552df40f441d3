package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/history"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(time.Hour))

	return New(logger, manager).Handler()
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) usecase.SessionView {
	t.Helper()

	var view usecase.SessionView
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))

	return view
}

func createSession(t *testing.T, handler http.Handler) usecase.SessionView {
	t.Helper()

	rr := do(t, handler, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	return decodeView(t, rr)
}

func TestPing(t *testing.T) {
	handler := newTestHandler(t)

	rr := do(t, handler, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestSessions_Create(t *testing.T) {
	// Given: the REST handler
	handler := newTestHandler(t)

	// When: creating a session
	rr := do(t, handler, http.MethodPost, "/sessions", "")

	// Then: 201 with an empty board and X to move
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	view := decodeView(t, rr)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, entity.Board{}, view.Board)
	assert.Equal(t, entity.X, view.Status.Next)
	require.Len(t, view.Moves, 1)
	assert.Equal(t, "You are at move #0", view.Moves[0].Label)
}

func TestSessions_Get(t *testing.T) {
	t.Run("Known session", func(t *testing.T) {
		handler := newTestHandler(t)
		session := createSession(t, handler)

		rr := do(t, handler, http.MethodGet, "/sessions/"+session.ID, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, session.ID, decodeView(t, rr).ID)
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		handler := newTestHandler(t)

		rr := do(t, handler, http.MethodGet, "/sessions/missing", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"session not found"}`, rr.Body.String())
	})
}

func TestSessions_Play(t *testing.T) {
	t.Run("Winning game reports the line", func(t *testing.T) {
		// Given: a new session
		handler := newTestHandler(t)
		session := createSession(t, handler)

		// When: X takes the top row while O plays 3 and 4
		var rr *httptest.ResponseRecorder
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			rr = do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", `{"cell":`+cell+`}`)
			require.Equal(t, http.StatusOK, rr.Code)
		}

		// Then: X is the winner with line {0,1,2}
		view := decodeView(t, rr)
		assert.Equal(t, entity.StatusWinner, view.Status.Kind)
		assert.Equal(t, entity.X, view.Status.Winner)
		require.NotNil(t, view.Status.Line)
		assert.Equal(t, entity.Line{0, 1, 2}, *view.Status.Line)
		assert.Equal(t, "Winner: X", view.Status.Label())
	})

	t.Run("Illegal move answers with the unchanged session", func(t *testing.T) {
		handler := newTestHandler(t)
		session := createSession(t, handler)
		first := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", `{"cell":4}`)
		require.Equal(t, http.StatusOK, first.Code)
		before := decodeView(t, first)

		rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", `{"cell":4}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, before, decodeView(t, rr))
	})

	t.Run("Malformed body is 400", func(t *testing.T) {
		handler := newTestHandler(t)
		session := createSession(t, handler)

		for _, body := range []string{`{"cell":`, `{}`, `"x"`} {
			rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code, "body %s", body)
		}
	})

	t.Run("Oversized body is 413", func(t *testing.T) {
		// Given: a session and a body padded past the size limit
		handler := newTestHandler(t)
		session := createSession(t, handler)
		body := `{"cell":4,"note":"` + strings.Repeat("a", 2*maxBodyBytes) + `"}`

		// When: playing with it
		rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", body)

		// Then: the request is rejected and the board stays empty
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Equal(t, entity.Board{}, decodeView(t, do(t, handler, http.MethodGet, "/sessions/"+session.ID, "")).Board)
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		handler := newTestHandler(t)

		rr := do(t, handler, http.MethodPost, "/sessions/missing/play", `{"cell":0}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSessions_Jump(t *testing.T) {
	t.Run("Jump to an earlier move", func(t *testing.T) {
		handler := newTestHandler(t)
		session := createSession(t, handler)
		for _, cell := range []string{"0", "4", "8"} {
			require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", `{"cell":`+cell+`}`).Code)
		}

		rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/jump", `{"move":1}`)

		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeView(t, rr)
		assert.Equal(t, 1, view.CurrentMove)
		assert.Len(t, view.Moves, 4)
		assert.Equal(t, entity.Board{entity.X}, view.Board)
		assert.Equal(t, "Next player: O", view.Status.Label())
	})

	t.Run("Out of range is 422", func(t *testing.T) {
		handler := newTestHandler(t)
		session := createSession(t, handler)

		rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/jump", `{"move":5}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.JSONEq(t, `{"error":"move is out of range"}`, rr.Body.String())
	})

	t.Run("Malformed body is 400", func(t *testing.T) {
		handler := newTestHandler(t)
		session := createSession(t, handler)

		rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/jump", `{"move":"one"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSessions_Sort(t *testing.T) {
	handler := newTestHandler(t)
	session := createSession(t, handler)
	require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/play", `{"cell":4}`).Code)

	rr := do(t, handler, http.MethodPost, "/sessions/"+session.ID+"/sort", "")

	require.Equal(t, http.StatusOK, rr.Code)
	view := decodeView(t, rr)
	assert.Equal(t, history.Descending, view.Order)
	assert.Equal(t, 1, view.Moves[0].Move)
	assert.Equal(t, &entity.Position{Row: 1, Col: 1}, view.Moves[0].Position)
}

func TestSessions_Delete(t *testing.T) {
	handler := newTestHandler(t)
	session := createSession(t, handler)

	rr := do(t, handler, http.MethodDelete, "/sessions/"+session.ID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, handler, http.MethodDelete, "/sessions/"+session.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_Start(t *testing.T) {
	// Given: a server on a free port
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(time.Hour))
	server := New(logger, manager)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx, "0")
	}()

	// When: the context is canceled
	cancel()

	// Then: Start returns without error
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
