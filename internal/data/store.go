// internal/data/store.go
package data

import (
	"context"
	"errors"
)

// ErrRecordNotFound is returned when an operation targets an identifier
// with no existing record.
var ErrRecordNotFound = errors.New("record not found")

// Store is the persistence contract for book records. Implementations
// own all durable state; nothing above this interface caches records
// between calls. Update and Delete must be atomic conditional mutations:
// they report ErrRecordNotFound from the mutation itself rather than a
// separate existence pre-check, so concurrent callers racing on the same
// identifier see exactly one winner.
type Store interface {
	// Insert persists a new record, writing the assigned identifier and
	// both timestamps back into book.
	Insert(ctx context.Context, book *Book) error

	// Get retrieves a single record by identifier.
	Get(ctx context.Context, id string) (*Book, error)

	// GetAll retrieves every record in insertion order.
	GetAll(ctx context.Context) ([]*Book, error)

	// Update replaces the field values of the record matching book.ID,
	// preserving the identifier and creation timestamp. The refreshed
	// timestamps are written back into book.
	Update(ctx context.Context, book *Book) error

	// Delete removes the record with the given identifier.
	Delete(ctx context.Context, id string) error
}
