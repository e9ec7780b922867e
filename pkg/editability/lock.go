package editability

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/tailoring/pkg/logger"
)

// LockStore persists tailoring locks.
type LockStore interface {
	Locked(ctx context.Context, project, tailoring string) (bool, error)
	Lock(ctx context.Context, project, tailoring string) error
	Unlock(ctx context.Context, project, tailoring string) error
}

// LockPolicy treats a tailoring as editable while it is not locked.
// Store failures make it answer false.
type LockPolicy struct {
	store LockStore
	log   *slog.Logger
}

var _ Policy = (*LockPolicy)(nil)

// NewLockPolicy creates a LockPolicy over store. A nil logger uses slog.Default().
func NewLockPolicy(store LockStore, log *slog.Logger) *LockPolicy {
	if log == nil {
		log = slog.Default()
	}
	return &LockPolicy{store: store, log: log}
}

// Editable implements Policy.
func (p *LockPolicy) Editable(ctx context.Context, project, tailoring string) bool {
	locked, err := p.store.Locked(ctx, project, tailoring)
	if err != nil {
		p.log.ErrorContext(ctx, "lock lookup failed",
			logger.Component("editability"),
			logger.Project(project),
			logger.Tailoring(tailoring),
			logger.Error(err),
		)
		return false
	}
	return !locked
}

// Store returns the underlying lock store.
func (p *LockPolicy) Store() LockStore {
	return p.store
}

type lockKey struct{ project, tailoring string }

// MemoryLockStore is an in-process LockStore.
type MemoryLockStore struct {
	mu    sync.RWMutex
	locks map[lockKey]struct{}
}

var _ LockStore = (*MemoryLockStore)(nil)

// NewMemoryLockStore creates an empty in-process store.
func NewMemoryLockStore() *MemoryLockStore {
	return &MemoryLockStore{locks: make(map[lockKey]struct{})}
}

// Locked reports whether the tailoring is locked.
func (s *MemoryLockStore) Locked(ctx context.Context, project, tailoring string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.locks[lockKey{project, tailoring}]
	return ok, nil
}

// Lock locks the tailoring. Locking twice is a no-op.
func (s *MemoryLockStore) Lock(ctx context.Context, project, tailoring string) error {
	if err := validateKey(project, tailoring); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks[lockKey{project, tailoring}] = struct{}{}
	return nil
}

// Unlock removes the lock of the tailoring, if any.
func (s *MemoryLockStore) Unlock(ctx context.Context, project, tailoring string) error {
	if err := validateKey(project, tailoring); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, lockKey{project, tailoring})
	return nil
}

func validateKey(project, tailoring string) error {
	if strings.TrimSpace(project) == "" || strings.TrimSpace(tailoring) == "" {
		return ErrInvalidKey
	}
	return nil
}
