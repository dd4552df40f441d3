package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/history"
)

type memorySession struct {
	snapshot history.Snapshot
	expireAt time.Time
}

// memory - in-process sessions, lost on restart.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository - map backed sessions with the same ttl rules as redis.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *memory {
	return &memory{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      now,
	}
}

func (that *memory) CreateOrUpdate(_ context.Context, id string, snapshot history.Snapshot) error {
	entries := make([]entity.Board, len(snapshot.Entries))
	copy(entries, snapshot.Entries)
	snapshot.Entries = entries

	session := memorySession{snapshot: snapshot}
	if that.ttl > 0 {
		session.expireAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[id] = session

	return nil
}

func (that *memory) GetByID(_ context.Context, id string) (*history.Snapshot, error) {
	that.mu.RLock()
	session, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	if that.expired(session) {
		that.prune(id)
		return nil, apperror.ErrSessionNotFound
	}

	snapshot := session.snapshot
	snapshot.Entries = make([]entity.Board, len(session.snapshot.Entries))
	copy(snapshot.Entries, session.snapshot.Entries)

	return &snapshot, nil
}

func (that *memory) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok || that.expired(session) {
		delete(that.sessions, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *memory) expired(session memorySession) bool {
	return !session.expireAt.IsZero() && !that.now().Before(session.expireAt)
}

// prune - drops the session if it is still expired once the write lock is held.
func (that *memory) prune(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if session, ok := that.sessions[id]; ok && that.expired(session) {
		delete(that.sessions, id)
	}
}
