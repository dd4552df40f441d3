// Package tui plays one local game in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type sessionUseCase interface {
	NewSession(ctx context.Context) (*usecase.SessionView, error)
	Play(ctx context.Context, id string, cell int) (*usecase.SessionView, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.SessionView, error)
	ToggleSort(ctx context.Context, id string) (*usecase.SessionView, error)
	EndSession(ctx context.Context, id string) error
}

// Model - bubbletea model around one session.
type Model struct {
	ctx      context.Context
	logger   *slog.Logger
	sessions sessionUseCase

	session *usecase.SessionView
	cursor  int
	failure string
}

func New(ctx context.Context, logger *slog.Logger, sessions sessionUseCase) (Model, error) {
	session, err := sessions.NewSession(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("failed to start session: %w", err)
	}

	model := Model{
		ctx:      ctx,
		logger:   logger.With("component", "tui"),
		sessions: sessions,
	}
	model.show(session)

	return model, nil
}

// Run - blocks until the player quits or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, sessions sessionUseCase) error {
	model, err := New(ctx, logger, sessions)
	if err != nil {
		return err
	}

	if _, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}

func (that Model) Init() tea.Cmd {
	return nil
}

func (that Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return that, nil
	}

	switch key := keyMsg.String(); key {
	case "q", "ctrl+c":
		that.endSession(that.session.ID)
		return that, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		cell := int(key[0] - '1')
		that.apply(func() (*usecase.SessionView, error) {
			return that.sessions.Play(that.ctx, that.session.ID, cell)
		})
	case "up", "k":
		if that.cursor > 0 {
			that.cursor--
		}
	case "down", "j":
		if that.cursor < len(that.session.Moves)-1 {
			that.cursor++
		}
	case "enter":
		move := that.session.Moves[that.cursor].Move
		that.apply(func() (*usecase.SessionView, error) {
			return that.sessions.JumpTo(that.ctx, that.session.ID, move)
		})
	case "s":
		that.apply(func() (*usecase.SessionView, error) {
			return that.sessions.ToggleSort(that.ctx, that.session.ID)
		})
	case "n":
		that.newGame()
	}

	return that, nil
}

// apply - runs one session operation; illegal moves leave the screen unchanged.
func (that *Model) apply(operation func() (*usecase.SessionView, error)) {
	session, err := operation()
	switch {
	case errors.Is(err, apperror.ErrIllegalMove):
		that.logger.Debug("illegal move ignored", "error", err)
	case err != nil:
		that.logger.Error("session operation failed", "error", err)
		that.failure = err.Error()
		return
	}

	that.failure = ""
	that.show(session)
}

// show - replaces the session and puts the cursor on the current move.
func (that *Model) show(session *usecase.SessionView) {
	that.session = session

	for idx, move := range session.Moves {
		if move.IsCurrent {
			that.cursor = idx
			return
		}
	}
}

// newGame - the old session is ended only once its replacement exists.
func (that *Model) newGame() {
	oldID := that.session.ID

	that.apply(func() (*usecase.SessionView, error) {
		return that.sessions.NewSession(that.ctx)
	})

	if that.session.ID != oldID {
		that.endSession(oldID)
	}
}

func (that *Model) endSession(id string) {
	if err := that.sessions.EndSession(that.ctx, id); err != nil {
		that.logger.Warn("failed to end session", "sessionID", id, "error", err)
	}
}
