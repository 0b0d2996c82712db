// cmd/api/root.go
package main

import "net/http"

// rootHandler handles GET /api.
// It advertises the entry points of the API as links.
func (app *applicationDependencies) rootHandler(w http.ResponseWriter, r *http.Request) {
	links := []linkDto{
		{Href: link(r, "/api", nil), Rel: "self", Method: http.MethodGet},
		{Href: link(r, "/api/authors", nil), Rel: "authors", Method: http.MethodGet},
		{Href: link(r, "/api/authors", nil), Rel: "create_author", Method: http.MethodPost},
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"links": links}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
