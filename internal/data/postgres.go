// internal/data/postgres.go
// PostgresStore persists book records in a "books" table. Identifiers
// are UUID strings generated here rather than by the database, so every
// Store implementation assigns ids the same way.
package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresStore wraps a sqlx connection pool and implements Store.
type PostgresStore struct {
	DB *sqlx.DB
}

// NewPostgresStore constructs a PostgresStore over the given pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Insert adds a new book record. The generated identifier is written into
// book before the query runs; the database-assigned timestamps are
// scanned back afterwards.
func (s *PostgresStore) Insert(ctx context.Context, book *Book) error {
	book.ID = uuid.New().String()

	query := `
		INSERT INTO books (id, title, author, price, quantity, description, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return s.DB.QueryRowxContext(
		ctx,
		query,
		book.ID,
		book.Title,
		book.Author,
		book.Price,
		book.Quantity,
		book.Description,
		book.Image,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
}

// Get retrieves a single book by its identifier.
// Returns ErrRecordNotFound if no matching record exists.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Book, error) {
	// Guard against obviously malformed ids before touching the database.
	if uuid.Validate(id) != nil {
		return nil, ErrRecordNotFound
	}

	var book Book
	err := s.DB.GetContext(ctx, &book, `SELECT * FROM books WHERE id = $1`, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves every book, oldest first.
func (s *PostgresStore) GetAll(ctx context.Context) ([]*Book, error) {
	books := []*Book{}
	err := s.DB.SelectContext(ctx, &books, `SELECT * FROM books ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Update replaces the stored field values for book.ID in a single
// conditional UPDATE. A missing row surfaces as ErrRecordNotFound from
// the mutation itself, so there is no separate existence check to race
// against concurrent callers.
func (s *PostgresStore) Update(ctx context.Context, book *Book) error {
	if uuid.Validate(book.ID) != nil {
		return ErrRecordNotFound
	}

	query := `
		UPDATE books
		SET title = $1, author = $2, price = $3, quantity = $4,
		    description = $5, image = $6, updated_at = now()
		WHERE id = $7
		RETURNING created_at, updated_at`

	err := s.DB.QueryRowxContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.Price,
		book.Quantity,
		book.Description,
		book.Image,
		book.ID,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// Delete removes the book with the given identifier.
// Returns ErrRecordNotFound if no matching record exists.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrRecordNotFound
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
