// cmd/api/collections.go
// This file contains the handlers for creating and fetching several authors
// in one request.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aoideee/courselibrary/internal/data"
	"github.com/aoideee/courselibrary/internal/validator"
)

// createAuthorCollectionHandler handles POST /api/authorcollections.
// Every author in the body is validated before any is stored; they are then
// inserted in a single transaction.
func (app *applicationDependencies) createAuthorCollectionHandler(w http.ResponseWriter, r *http.Request) {
	var input []data.AuthorForCreationDto
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if len(input) == 0 {
		app.badRequestResponse(w, r, errors.New("body must contain at least one author"))
		return
	}

	v := validator.New()
	authors := make([]*data.Author, len(input))
	for i, in := range input {
		v.StructAt(fmt.Sprintf("[%d]", i), in)
		authors[i] = in.ToAuthor()
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Authors.InsertMany(r.Context(), authors)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID.String()
	}
	headers := make(http.Header)
	headers.Set("Location", link(r, "/api/authorcollections/("+strings.Join(ids, ",")+")", nil))

	err = app.writeJSON(w, http.StatusCreated, data.NewAuthorDtos(authors), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showAuthorCollectionHandler handles GET /api/authorcollections/(id1,id2,...).
// Responds 404 unless every listed author exists.
func (app *applicationDependencies) showAuthorCollectionHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := app.readUUIDList(r, "authorIds")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	ids = distinct(ids)

	authors, err := app.models.Authors.GetMany(r.Context(), ids)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if len(authors) != len(ids) {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.NewAuthorDtos(authors), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// distinct drops repeated ids, keeping first occurrences in order.
func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
