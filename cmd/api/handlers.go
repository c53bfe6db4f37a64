// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the catalog service.
package main

import (
	"errors"
	"net/http"

	"github.com/pagebound/bookstore-api/internal/catalog"
	"github.com/pagebound/bookstore-api/internal/data"
)

// createBookHandler handles POST /v1/books.
// It reads a JSON body containing the six book fields, runs the full
// validation pipeline, and persists a new record. Responds with the
// created book (including its store-assigned ID and timestamps) and a
// 201 Created status, or 422 listing every violated field.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	// Decode the incoming JSON body using the safe readJSON helper.
	// readJSON enforces a 1MB limit, rejects unknown fields, and ensures a single value.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.catalog.Create(r.Context(), &input)
	if err != nil {
		var vErr *catalog.ValidationError
		switch {
		case errors.As(err, &vErr):
			app.failedValidationResponse(w, r, vErr.Fields)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	// readIDParam extracts and validates the :id URL parameter.
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.catalog.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
// It fetches every book from the catalog and returns them as a JSON array.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.catalog.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /v1/books/:id.
// Partial updates are not supported: the body must carry the full six-field
// set, which is re-validated exactly like a create. Responds 422 on
// validation failure, 404 if the book does not exist (even when the fields
// are valid), or the updated book on success.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the :id URL parameter.
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Decode the replacement field set from the request body.
	var input data.BookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.catalog.Update(r.Context(), id, &input)
	if err != nil {
		var vErr *catalog.ValidationError
		switch {
		case errors.As(err, &vErr):
			app.failedValidationResponse(w, r, vErr.Fields)
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id.
// Delete is destructive and terminal. Responds 404 if no book with that
// ID exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the :id URL parameter.
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.catalog.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Respond with a success message.
	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
