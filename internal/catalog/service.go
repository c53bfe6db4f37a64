// Package catalog orchestrates book create/read/update/delete against the
// store, gating every mutation behind the validation pipeline. The service
// holds no record state of its own; the store owns everything durable.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/pagebound/bookstore-api/internal/data"
	"github.com/pagebound/bookstore-api/internal/validator"
)

// ValidationError reports one or more violated field rules. It carries
// the complete field-to-message map so callers can surface every problem
// at once. It never accompanies a store mutation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid book record"
}

// Service aggregates the validators and the store into accept/reject
// decisions. Every failure it returns is one of three kinds: a
// *ValidationError, data.ErrRecordNotFound (possibly wrapped), or a
// wrapped store failure.
type Service struct {
	store data.Store
	rules data.Rules
}

// New constructs a Service over the given store and validation rules.
func New(store data.Store, rules data.Rules) *Service {
	return &Service{store: store, rules: rules}
}

// validate sanitizes the author field in place, then runs the full field
// rule set. Returns a *ValidationError listing every violation, or nil.
func (s *Service) validate(input *data.BookInput) error {
	input.Author = validator.SanitizeAuthor(input.Author)

	v := validator.New()
	data.ValidateBook(v, input, s.rules)
	if !v.Valid() {
		return &ValidationError{Fields: v.Errors}
	}
	return nil
}

// Create validates the six fields and, if they all pass, persists a new
// record. The returned book carries its store-assigned identifier and
// timestamps. On validation failure nothing is persisted.
func (s *Service) Create(ctx context.Context, input *data.BookInput) (*data.Book, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	book := &data.Book{
		Title:       input.Title,
		Author:      input.Author,
		Price:       *input.Price,
		Quantity:    *input.Quantity,
		Description: input.Description,
		Image:       input.Image,
	}

	if err := s.store.Insert(ctx, book); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return book, nil
}

// Get retrieves a single record by identifier.
func (s *Service) Get(ctx context.Context, id string) (*data.Book, error) {
	book, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// List retrieves every record in the catalog.
func (s *Service) List(ctx context.Context) ([]*data.Book, error) {
	books, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update re-validates the full field set (partial updates are not
// supported) and replaces the record's values, preserving the identifier.
// Validation failures are reported first, even when the identifier does
// not exist; existence itself is decided by the store's atomic
// conditional update, so nothing mutates on a missing record.
func (s *Service) Update(ctx context.Context, id string, input *data.BookInput) (*data.Book, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	book := &data.Book{
		ID:          id,
		Title:       input.Title,
		Author:      input.Author,
		Price:       *input.Price,
		Quantity:    *input.Quantity,
		Description: input.Description,
		Image:       input.Image,
	}

	if err := s.store.Update(ctx, book); err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

// Delete removes the record with the given identifier. Delete is
// destructive and terminal; there is no soft-delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return err
		}
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
