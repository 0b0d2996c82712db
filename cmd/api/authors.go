// cmd/api/authors.go
// This file contains the HTTP handlers for the authors resource.
package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aoideee/courselibrary/internal/data"
	"github.com/aoideee/courselibrary/internal/mapping"
	"github.com/aoideee/courselibrary/internal/shaping"
	"github.com/aoideee/courselibrary/internal/validator"
)

// listAuthorsHandler handles GET and HEAD /api/authors.
// It validates paging, ordering and the data shaping field list, fetches one
// page and returns the shaped authors with their links. Paging metadata
// travels in the X-Pagination header.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	params := data.AuthorsResourceParameters{
		MainCategory: app.readString(qs, "mainCategory", ""),
		SearchQuery:  app.readString(qs, "searchQuery", ""),
		Fields:       app.readString(qs, "fields", ""),
		Filters: data.Filters{
			PageNumber: app.readInt(qs, "pageNumber", 1, v),
			PageSize:   app.readInt(qs, "pageSize", 10, v),
			OrderBy:    app.readString(qs, "orderBy", "name"),
		},
	}

	if data.ValidateFilters(v, params.Filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}
	params.PageSize = min(params.PageSize, data.MaxPageSize)

	if !mapping.ValidMappingExistsFor[data.AuthorDto, data.Author](app.mappings, params.OrderBy) {
		app.invalidOrderByResponse(w, r, params.OrderBy)
		return
	}
	if !shaping.TypeHasProperties[data.AuthorDto](params.Fields) {
		app.invalidFieldsResponse(w, r, params.Fields)
		return
	}

	authors, metadata, err := app.models.Authors.GetAll(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidSort):
			app.invalidOrderByResponse(w, r, params.OrderBy)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	shaped, err := shaping.ShapeAll(data.NewAuthorDtos(authors), params.Fields)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	for i, resource := range shaped {
		resource.Set("links", authorLinks(r, authors[i].ID, ""))
	}

	pagination, err := json.Marshal(metadata)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	headers := make(http.Header)
	headers.Set("X-Pagination", string(pagination))

	body := envelope{
		"value": shaped,
		"links": authorsLinks(r, params, metadata),
	}
	err = app.writeJSON(w, http.StatusOK, body, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showAuthorHandler handles GET /api/authors/:authorId.
// The Accept header selects between the friendly and full representations,
// each with or without links; the response carries the negotiated type.
func (app *applicationDependencies) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "authorId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	mediaType, ok := negotiate(r.Header.Get("Accept"), authorMediaTypes)
	if !ok {
		app.notAcceptableResponse(w, r)
		return
	}
	rep := authorRepresentation(mediaType)

	fields := app.readString(r.URL.Query(), "fields", "")
	valid := shaping.TypeHasProperties[data.AuthorDto](fields)
	if rep.full {
		valid = shaping.TypeHasProperties[data.AuthorFullDto](fields)
	}
	if !valid {
		app.invalidFieldsResponse(w, r, fields)
		return
	}

	author, err := app.models.Authors.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var resource *shaping.Resource
	if rep.full {
		resource, err = shaping.Shape(data.NewAuthorFullDto(author), fields)
	} else {
		resource, err = shaping.Shape(data.NewAuthorDto(author), fields)
	}
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if rep.links {
		resource.Set("links", authorLinks(r, id, fields))
	}

	headers := make(http.Header)
	headers.Set("Content-Type", rep.mediaType)
	err = app.writeJSON(w, http.StatusOK, resource, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createAuthorHandler handles POST /api/authors.
// The Content-Type header selects the creation body: with or without a date
// of death. Courses posted with the author are created alongside it.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var author *data.Author
	v := validator.New()

	switch contentType(r.Header.Get("Content-Type")) {
	case mediaTypeJSON, mediaTypeAuthorForCreation:
		var input data.AuthorForCreationDto
		if err := app.readJSON(w, r, &input); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		v.Struct(input)
		author = input.ToAuthor()
	case mediaTypeAuthorForCreationDeath:
		var input data.AuthorForCreationWithDateOfDeathDto
		if err := app.readJSON(w, r, &input); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		v.Struct(input)
		author = input.ToAuthor()
	default:
		app.unsupportedMediaTypeResponse(w, r)
		return
	}

	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err := app.models.Authors.Insert(r.Context(), author)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resource, err := shaping.Shape(data.NewAuthorDto(author), "")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	resource.Set("links", authorLinks(r, author.ID, ""))

	headers := make(http.Header)
	headers.Set("Location", link(r, authorPath(author.ID), nil))

	err = app.writeJSON(w, http.StatusCreated, resource, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// authorsOptionsHandler handles OPTIONS /api/authors.
func (app *applicationDependencies) authorsOptionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET,HEAD,POST,OPTIONS")
	w.WriteHeader(http.StatusOK)
}
