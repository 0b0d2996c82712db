// cmd/api/links.go
// This file builds the HATEOAS links embedded in responses. Every href is
// absolute, rooted at the scheme and host the request arrived on.
package main

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/aoideee/courselibrary/internal/data"
)

// linkDto is one (href, rel, method) triple.
type linkDto struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// baseURL returns "scheme://host" for r.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// link builds an absolute URL for path with an optional query.
func link(r *http.Request, path string, query url.Values) string {
	u := baseURL(r) + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func authorPath(id uuid.UUID) string { return "/api/authors/" + id.String() }

func coursesPath(authorID uuid.UUID) string { return authorPath(authorID) + "/courses" }

func coursePath(authorID, courseID uuid.UUID) string {
	return coursesPath(authorID) + "/" + courseID.String()
}

// authorLinks lists what a client can do next with one author. A non-blank
// fields list is carried on the self link.
func authorLinks(r *http.Request, id uuid.UUID, fields string) []linkDto {
	var query url.Values
	if fields != "" {
		query = url.Values{"fields": {fields}}
	}
	return []linkDto{
		{Href: link(r, authorPath(id), query), Rel: "self", Method: http.MethodGet},
		{Href: link(r, coursesPath(id), nil), Rel: "create_course_for_author", Method: http.MethodPost},
		{Href: link(r, coursesPath(id), nil), Rel: "courses", Method: http.MethodGet},
	}
}

// authorsLinks returns self plus the neighbouring pages that exist.
func authorsLinks(r *http.Request, params data.AuthorsResourceParameters, metadata data.Metadata) []linkDto {
	links := []linkDto{
		{Href: authorsPageURL(r, params, params.PageNumber), Rel: "self", Method: http.MethodGet},
	}
	if metadata.HasNext() {
		links = append(links, linkDto{Href: authorsPageURL(r, params, params.PageNumber+1), Rel: "nextPage", Method: http.MethodGet})
	}
	if metadata.HasPrevious() {
		links = append(links, linkDto{Href: authorsPageURL(r, params, params.PageNumber-1), Rel: "previousPage", Method: http.MethodGet})
	}
	return links
}

// authorsPageURL keeps every filter of params and moves to page.
func authorsPageURL(r *http.Request, params data.AuthorsResourceParameters, page int) string {
	query := url.Values{}
	if params.Fields != "" {
		query.Set("fields", params.Fields)
	}
	if params.OrderBy != "" {
		query.Set("orderBy", params.OrderBy)
	}
	query.Set("pageNumber", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(params.PageSize))
	if params.MainCategory != "" {
		query.Set("mainCategory", params.MainCategory)
	}
	if params.SearchQuery != "" {
		query.Set("searchQuery", params.SearchQuery)
	}
	return link(r, "/api/authors", query)
}

// courseLinks lists what a client can do next with one course.
func courseLinks(r *http.Request, c *data.Course) []linkDto {
	self := link(r, coursePath(c.AuthorID, c.ID), nil)
	return []linkDto{
		{Href: self, Rel: "self", Method: http.MethodGet},
		{Href: self, Rel: "update_course", Method: http.MethodPut},
		{Href: self, Rel: "partially_update_course", Method: http.MethodPatch},
		{Href: self, Rel: "delete_course", Method: http.MethodDelete},
	}
}
