package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore-api/internal/data"
	"github.com/pagebound/bookstore-api/internal/validator"
)

func testService() (*Service, *data.MemoryStore) {
	store := data.NewMemoryStore()
	rules := data.Rules{
		Quality: validator.NewTextQuality(3, 5),
		Image: validator.NewImageRef(
			[]string{"jpg", "jpeg", "png", "gif", "webp", "avif", "svg"},
			[]string{"bing.com", "unsplash.com", "pixabay.com", "googleusercontent.com"},
		),
		MinTitleLength:       3,
		MinDescriptionLength: 10,
	}
	return New(store, rules), store
}

func validInput() *data.BookInput {
	price := 12.99
	quantity := 4
	return &data.BookInput{
		Title:       "The Hobbit",
		Author:      "J.R.R. Tolkien",
		Price:       &price,
		Quantity:    &quantity,
		Description: "A hobbit leaves home and finds a ring.",
		Image:       "https://example.com/hobbit.jpg",
	}
}

func TestServiceCreateRoundTrip(t *testing.T) {
	svc, _ := testService()
	input := validInput()

	book, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, input.Title, book.Title)
	assert.Equal(t, input.Author, book.Author)
	assert.Equal(t, *input.Price, book.Price)
	assert.Equal(t, *input.Quantity, book.Quantity)
	assert.Equal(t, input.Description, book.Description)
	assert.Equal(t, input.Image, book.Image)

	got, err := svc.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, got)
}

func TestServiceCreateRejectsNegativePrice(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	price := -5.0
	input.Price = &price

	_, err := svc.Create(context.Background(), input)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "must not be negative", vErr.Fields["price"])

	// Nothing was persisted.
	books, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestServiceCreateReportsEveryViolation(t *testing.T) {
	svc, _ := testService()

	_, err := svc.Create(context.Background(), &data.BookInput{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 6)
}

func TestServiceCreateSanitizesAuthor(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.Author = "J.R.R. Tolkien42"

	book, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "J.R.R. Tolkien", book.Author)

	// The stored record holds the sanitized value too.
	got, err := svc.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "J.R.R. Tolkien", got.Author)
}

func TestServiceGetMissing(t *testing.T) {
	svc, _ := testService()
	_, err := svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestServiceUpdateReplacesFields(t *testing.T) {
	svc, _ := testService()
	book, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Title = "The Fellowship of the Ring"
	quantity := 0 // out of stock is a valid state
	input.Quantity = &quantity

	updated, err := svc.Update(context.Background(), book.ID, input)
	require.NoError(t, err)
	assert.Equal(t, book.ID, updated.ID)
	assert.Equal(t, "The Fellowship of the Ring", updated.Title)
	assert.Equal(t, 0, updated.Quantity)

	got, err := svc.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Fellowship of the Ring", got.Title)
}

func TestServiceUpdateMissingWithValidFields(t *testing.T) {
	svc, store := testService()
	book, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Valid fields do not rescue a missing identifier.
	_, err = svc.Update(context.Background(), "no-such-id", validInput())
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	// The existing record is untouched.
	got, err := store.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
}

func TestServiceUpdateValidationWinsOverNotFound(t *testing.T) {
	svc, _ := testService()

	input := validInput()
	input.Title = ""

	_, err := svc.Update(context.Background(), "no-such-id", input)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
}

func TestServiceDeleteThenGet(t *testing.T) {
	svc, _ := testService()
	book, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), book.ID))

	_, err = svc.Get(context.Background(), book.ID)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestServiceDeleteMissing(t *testing.T) {
	svc, _ := testService()
	err := svc.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

// failingStore simulates a broken persistence collaborator.
type failingStore struct {
	data.Store
}

var errStoreDown = errors.New("connection refused")

func (s *failingStore) Insert(_ context.Context, _ *data.Book) error {
	return errStoreDown
}

func TestServiceWrapsStoreFailures(t *testing.T) {
	rules := data.Rules{
		Quality:              validator.NewTextQuality(3, 5),
		Image:                validator.NewImageRef([]string{"jpg"}, nil),
		MinTitleLength:       3,
		MinDescriptionLength: 10,
	}
	svc := New(&failingStore{Store: data.NewMemoryStore()}, rules)

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)

	var vErr *ValidationError
	assert.False(t, errors.As(err, &vErr))
}
