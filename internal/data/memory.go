// internal/data/memory.go
// MemoryStore is an in-process Store used by the test suite and for
// running the API without a database. It honors the same contract as
// PostgresStore: ids and timestamps are store-assigned, and Update and
// Delete detect a missing record from the mutation itself while holding
// the lock, so there is no check-then-act window.
package data

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps records in a mutex-guarded map. Records are stored
// and returned by value so callers can never alias internal state. The
// order slice preserves insertion order for GetAll.
type MemoryStore struct {
	mu    sync.RWMutex
	books map[string]Book
	order []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: make(map[string]Book)}
}

// Insert assigns an identifier and timestamps, then stores a copy of book.
func (s *MemoryStore) Insert(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	book.ID = uuid.New().String()
	book.CreatedAt = now
	book.UpdatedAt = now

	s.books[book.ID] = *book
	s.order = append(s.order, book.ID)
	return nil
}

// Get retrieves a copy of the record with the given identifier.
func (s *MemoryStore) Get(_ context.Context, id string) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &book, nil
}

// GetAll retrieves every record, oldest first.
func (s *MemoryStore) GetAll(_ context.Context) ([]*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]*Book, 0, len(s.books))
	for _, id := range s.order {
		b := s.books[id]
		books = append(books, &b)
	}
	return books, nil
}

// Update replaces the field values of the record matching book.ID,
// preserving the identifier and creation timestamp.
func (s *MemoryStore) Update(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.books[book.ID]
	if !ok {
		return ErrRecordNotFound
	}

	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = time.Now().UTC()
	s.books[book.ID] = *book
	return nil
}

// Delete removes the record with the given identifier.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.books, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
