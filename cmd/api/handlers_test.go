package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore-api/internal/catalog"
	"github.com/pagebound/bookstore-api/internal/config"
	"github.com/pagebound/bookstore-api/internal/data"
	"github.com/pagebound/bookstore-api/internal/validator"
)

const testAdminToken = "test-admin-token"

// newTestApp wires the full middleware and routing stack over an
// in-memory store, with rate limiting disabled so tests can hammer it.
func newTestApp(t *testing.T) (*applicationDependencies, http.Handler) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Port = 4000
	cfg.Environment = "test"
	cfg.AdminToken = testAdminToken
	cfg.Limiter.Enabled = false

	rules := data.Rules{
		Quality: validator.NewTextQuality(3, 5),
		Image: validator.NewImageRef(
			[]string{"jpg", "jpeg", "png", "gif", "webp", "avif", "svg"},
			[]string{"bing.com", "unsplash.com", "pixabay.com", "googleusercontent.com"},
		),
		MinTitleLength:       3,
		MinDescriptionLength: 10,
	}

	app := &applicationDependencies{
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		catalog: catalog.New(data.NewMemoryStore(), rules),
	}
	return app, app.routes()
}

func validBookJSON() []byte {
	return []byte(`{
		"title": "The Hobbit",
		"author": "J.R.R. Tolkien",
		"price": 12.99,
		"quantity": 4,
		"description": "A hobbit leaves home and finds a ring.",
		"image": "https://example.com/hobbit.jpg"
	}`)
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	return req
}

func createBook(t *testing.T, handler http.Handler) data.Book {
	t.Helper()

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewReader(validBookJSON())))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var resp struct {
		Book data.Book `json:"book"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Book
}

func TestCreateBook(t *testing.T) {
	_, handler := newTestApp(t)

	book := createBook(t, handler)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "The Hobbit", book.Title)
	assert.Equal(t, "J.R.R. Tolkien", book.Author)
	assert.Equal(t, 12.99, book.Price)
	assert.Equal(t, 4, book.Quantity)
}

func TestCreateBookValidationFailure(t *testing.T) {
	_, handler := newTestApp(t)

	body := []byte(`{
		"title": "ab",
		"author": "J.R.R. Tolkien",
		"price": -5,
		"quantity": 4,
		"description": "A hobbit leaves home and finds a ring.",
		"image": "https://example.com/hobbit.jpg"
	}`)

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewReader(body)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Every violated field must be enumerated, not just the first.
	var resp struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "title")
	assert.Contains(t, resp.Error, "price")

	// Nothing was persisted.
	listReq := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	listRec := httptest.NewRecorder()
	handler.ServeHTTP(listRec, listReq)

	var listResp struct {
		Books []data.Book `json:"books"`
	}
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&listResp))
	assert.Empty(t, listResp.Books)
}

func TestCreateBookRequiresAdmin(t *testing.T) {
	_, handler := newTestApp(t)

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewReader(validBookJSON()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token without the admin capability.
	req = httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewReader(validBookJSON()))
	req.Header.Set("Authorization", "Bearer wrong-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestShowBook(t *testing.T) {
	_, handler := newTestApp(t)
	book := createBook(t, handler)

	// Reads require no credentials.
	req := httptest.NewRequest(http.MethodGet, "/v1/books/"+book.ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Book data.Book `json:"book"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, book, resp.Book)
}

func TestShowBookNotFound(t *testing.T) {
	_, handler := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/books/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowBookMalformedID(t *testing.T) {
	_, handler := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/books/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBooks(t *testing.T) {
	_, handler := newTestApp(t)
	createBook(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Books []data.Book `json:"books"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Books, 1)
}

func TestUpdateBook(t *testing.T) {
	_, handler := newTestApp(t)
	book := createBook(t, handler)

	body := []byte(`{
		"title": "The Hobbit, Revised Edition",
		"author": "J.R.R. Tolkien",
		"price": 14.99,
		"quantity": 0,
		"description": "A hobbit leaves home and finds a ring.",
		"image": "https://example.com/hobbit.jpg"
	}`)

	req := asAdmin(httptest.NewRequest(http.MethodPut, "/v1/books/"+book.ID, bytes.NewReader(body)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp struct {
		Book data.Book `json:"book"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, book.ID, resp.Book.ID)
	assert.Equal(t, "The Hobbit, Revised Edition", resp.Book.Title)
	assert.Equal(t, 0, resp.Book.Quantity)
}

func TestUpdateBookNotFound(t *testing.T) {
	_, handler := newTestApp(t)

	// Valid fields on a non-existent identifier still yield 404.
	req := asAdmin(httptest.NewRequest(http.MethodPut, "/v1/books/"+uuid.New().String(), bytes.NewReader(validBookJSON())))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBookThenGet(t *testing.T) {
	_, handler := newTestApp(t)
	book := createBook(t, handler)

	req := asAdmin(httptest.NewRequest(http.MethodDelete, "/v1/books/"+book.ID, nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/v1/books/"+book.ID, nil)
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestDeleteBookNotFound(t *testing.T) {
	_, handler := newTestApp(t)

	req := asAdmin(httptest.NewRequest(http.MethodDelete, "/v1/books/"+uuid.New().String(), nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimitExceeded(t *testing.T) {
	app, _ := newTestApp(t)
	app.config.Limiter.Enabled = true
	app.config.Limiter.RPS = 1
	app.config.Limiter.Burst = 1
	handler := app.routes()

	first := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	first.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	second.RemoteAddr = "10.0.0.1:5001"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
