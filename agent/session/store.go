package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore holds one ordered conversation thread per user for the
// lifetime of the process. Nothing is persisted; a restart discards every
// thread by design.
//
// Operations on different users never contend: the store-level lock only
// guards the thread map, and each thread serializes its own appends.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string]*thread
}

type thread struct {
	mu    sync.Mutex
	turns []Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		threads: make(map[string]*thread),
	}
}

// Append adds a turn to the user's thread, creating the thread on first
// use. A missing turn id or timestamp is filled in here.
func (s *MemoryStore) Append(ctx context.Context, userID string, turn Turn) error {
	uid, err := ValidateUserID(userID)
	if err != nil {
		return err
	}

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	th := s.threadFor(uid)
	th.mu.Lock()
	th.turns = append(th.turns, turn)
	th.mu.Unlock()
	return nil
}

// History returns the user's full thread in arrival order. A user with no
// thread gets an empty history, not an error. The returned slice is a copy.
func (s *MemoryStore) History(ctx context.Context, userID string) ([]Turn, error) {
	uid, err := ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	th, ok := s.threads[ThreadIDFor(uid)]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	th.mu.Lock()
	defer th.mu.Unlock()
	out := make([]Turn, len(th.turns))
	copy(out, th.turns)
	return out, nil
}

// Clear empties the user's thread. Clearing a user with no thread is a
// no-op.
func (s *MemoryStore) Clear(ctx context.Context, userID string) error {
	uid, err := ValidateUserID(userID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	th, ok := s.threads[ThreadIDFor(uid)]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	th.mu.Lock()
	th.turns = nil
	th.mu.Unlock()
	return nil
}

func (s *MemoryStore) threadFor(uid string) *thread {
	key := ThreadIDFor(uid)

	s.mu.RLock()
	th, ok := s.threads[key]
	s.mu.RUnlock()
	if ok {
		return th
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if th, ok = s.threads[key]; ok {
		return th
	}
	th = &thread{}
	s.threads[key] = th
	return th
}
