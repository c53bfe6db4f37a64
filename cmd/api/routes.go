// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the recoverPanic and rateLimit middlewares. Mutations are
// additionally gated by requireAdmin; reads are open to any client.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router (→ requireAdmin on mutations)
//
// Current endpoints:
//
//	GET    /v1/books        – list all books
//	GET    /v1/books/:id    – retrieve a single book by ID
//	POST   /v1/books        – create a new book (admin)
//	PUT    /v1/books/:id    – replace an existing book's fields (admin)
//	DELETE /v1/books/:id    – delete a book by ID (admin)
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// Read routes, open to any client.
	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.showBookHandler)

	// Mutation routes, gated by the admin capability.
	router.Handler(http.MethodPost, "/v1/books", app.requireAdmin(http.HandlerFunc(app.createBookHandler)))
	router.Handler(http.MethodPut, "/v1/books/:id", app.requireAdmin(http.HandlerFunc(app.updateBookHandler)))
	router.Handler(http.MethodDelete, "/v1/books/:id", app.requireAdmin(http.HandlerFunc(app.deleteBookHandler)))

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and router alike.
	return app.recoverPanic(app.rateLimit(router))
}
