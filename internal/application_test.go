package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/history"
)

func TestNewSessionRepository(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory storage", func(t *testing.T) {
		// Given: a config asking for memory storage
		conf := &config.Config{Storage: config.StorageMemory, SessionTTL: time.Hour}

		// When: building the repository
		repo, closeStorage, err := newSessionRepository(ctx, log, conf)

		// Then: a working repository is returned
		require.NoError(t, err)
		defer closeStorage()

		require.NoError(t, repo.CreateOrUpdate(ctx, "abc", history.New().Snapshot()))
		_, err = repo.GetByID(ctx, "abc")
		require.NoError(t, err)
	})

	t.Run("Redis storage without address", func(t *testing.T) {
		conf := &config.Config{Storage: config.StorageRedis}

		_, _, err := newSessionRepository(ctx, log, conf)

		require.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unreachable redis", func(t *testing.T) {
		conf := &config.Config{
			Storage: config.StorageRedis,
			Redis:   config.Redis{Host: "127.0.0.1", Port: "1"},
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		_, _, err := newSessionRepository(timeoutCtx, log, conf)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not connect to redis storage")
	})
}
