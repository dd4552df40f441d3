package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/history"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, snapshot history.Snapshot) error
	GetByID(ctx context.Context, id string) (*history.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionView - presentation snapshot of one session.
type SessionView struct {
	ID string `json:"id"`
	history.View
}

// SessionManager - owns every game session. Operations are serialized, so each
// session sees its events strictly one after another.
type SessionManager struct {
	logger *slog.Logger
	repo   sessionRepo

	mu sync.Mutex
}

func NewSessionManager(logger *slog.Logger, repo sessionRepo) *SessionManager {
	return &SessionManager{
		logger: logger,
		repo:   repo,
	}
}

// NewSession - stores a fresh game under a new id.
func (that *SessionManager) NewSession(ctx context.Context) (*SessionView, error) {
	log := that.logger.With("method", "NewSession")

	id := uuid.NewString()
	game := history.New()

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.repo.CreateOrUpdate(ctx, id, game.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session created", "sessionID", id)

	return newSessionView(id, game), nil
}

func (that *SessionManager) State(ctx context.Context, id string) (*SessionView, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return newSessionView(id, game), nil
}

// Play - places the next mark. An illegal move returns the unchanged view with ErrIllegalMove.
func (that *SessionManager) Play(ctx context.Context, id string, cell int) (*SessionView, error) {
	log := that.logger.With("method", "Play", "sessionID", id)

	view, err := that.update(ctx, id, func(game *history.GameHistory) error {
		if err := game.Play(cell); err != nil {
			return fmt.Errorf("failed to play cell %d: %w", cell, err)
		}

		return nil
	})

	switch {
	case errors.Is(err, apperror.ErrIllegalMove):
		log.Debug("illegal move ignored", "cell", cell, "error", err)
	case err != nil:
		log.Error("failed to play", "cell", cell, "error", err)
	default:
		log.Debug("move played", "cell", cell, "move", view.CurrentMove)
	}

	return view, err
}

// JumpTo - moves to an earlier or later entry. Out of range moves return the unchanged view with ErrOutOfRange.
func (that *SessionManager) JumpTo(ctx context.Context, id string, move int) (*SessionView, error) {
	log := that.logger.With("method", "JumpTo", "sessionID", id)

	view, err := that.update(ctx, id, func(game *history.GameHistory) error {
		if err := game.JumpTo(move); err != nil {
			return fmt.Errorf("failed to jump: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Debug("jump rejected", "move", move, "error", err)
		return view, err
	}

	log.Debug("jumped", "move", move)

	return view, nil
}

func (that *SessionManager) ToggleSort(ctx context.Context, id string) (*SessionView, error) {
	return that.update(ctx, id, func(game *history.GameHistory) error {
		game.ToggleSort()
		return nil
	})
}

func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	log := that.logger.With("method", "EndSession", "sessionID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	log.Info("session ended")

	return nil
}

// update - loads the session, applies the operation and stores the result.
// Nothing is stored when the operation fails; the view of the loaded game is returned with the error.
func (that *SessionManager) update(ctx context.Context, id string, apply func(*history.GameHistory) error) (*SessionView, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(game); err != nil {
		return newSessionView(id, game), err
	}

	if err = that.repo.CreateOrUpdate(ctx, id, game.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return newSessionView(id, game), nil
}

func (that *SessionManager) load(ctx context.Context, id string) (*history.GameHistory, error) {
	snapshot, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	game, err := history.Restore(*snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return game, nil
}

func newSessionView(id string, game *history.GameHistory) *SessionView {
	return &SessionView{
		ID:   id,
		View: game.View(),
	}
}
