package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/bizdash/import-service/internal/application/importing"
)

type memoryEntry[T any] struct {
	session   importing.Session[T]
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Entries expire ttl after their last
// save; expired entries are dropped lazily.
type MemoryStore[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry[T]
}

func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry[T]),
	}
}

func (s *MemoryStore[T]) Save(ctx context.Context, sess *importing.Session[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.sessions[sess.ID] = memoryEntry[T]{session: *sess, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore[T]) Load(ctx context.Context, id string) (*importing.Session[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || s.expired(entry) {
		delete(s.sessions, id)
		return nil, importing.ErrSessionNotFound
	}
	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore[T]) expired(entry memoryEntry[T]) bool {
	return s.ttl > 0 && !s.now().Before(entry.expiresAt)
}

func (s *MemoryStore[T]) sweep() {
	for id, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, id)
		}
	}
}
