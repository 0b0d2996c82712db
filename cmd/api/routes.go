// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the logRequest, recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	logRequest → recoverPanic → rateLimit → router
//
// Current endpoints:
//
//	GET     /api                                         – root links
//	GET     /api/authors                                 – paged, sorted, shaped authors
//	HEAD    /api/authors                                 – headers of the above
//	POST    /api/authors                                 – create an author
//	OPTIONS /api/authors                                 – allowed methods
//	GET     /api/authors/:authorId                       – one author, negotiated
//	POST    /api/authorcollections                       – create several authors
//	GET     /api/authorcollections/:authorIds            – fetch "(id1,id2)"
//	GET     /api/authors/:authorId/courses               – courses of an author
//	POST    /api/authors/:authorId/courses               – create a course
//	OPTIONS /api/authors/:authorId/courses               – allowed methods
//	GET     /api/authors/:authorId/courses/:courseId     – one course
//	PUT     /api/authors/:authorId/courses/:courseId     – replace or create
//	PATCH   /api/authors/:authorId/courses/:courseId     – JSON Patch, or create
//	DELETE  /api/authors/:authorId/courses/:courseId     – delete a course
//	OPTIONS /api/authors/:authorId/courses/:courseId     – allowed methods
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api", app.rootHandler)

	// Author routes
	router.HandlerFunc(http.MethodGet,     "/api/authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodHead,    "/api/authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodPost,    "/api/authors", app.createAuthorHandler)
	router.HandlerFunc(http.MethodOptions, "/api/authors", app.authorsOptionsHandler)
	router.HandlerFunc(http.MethodGet,     "/api/authors/:authorId", app.showAuthorHandler)

	// Author collection routes
	router.HandlerFunc(http.MethodPost, "/api/authorcollections", app.createAuthorCollectionHandler)
	router.HandlerFunc(http.MethodGet,  "/api/authorcollections/:authorIds", app.showAuthorCollectionHandler)

	// Course routes
	router.HandlerFunc(http.MethodGet,     "/api/authors/:authorId/courses", app.listCoursesHandler)
	router.HandlerFunc(http.MethodPost,    "/api/authors/:authorId/courses", app.createCourseHandler)
	router.HandlerFunc(http.MethodOptions, "/api/authors/:authorId/courses", app.coursesOptionsHandler)
	router.HandlerFunc(http.MethodGet,     "/api/authors/:authorId/courses/:courseId", app.showCourseHandler)
	router.HandlerFunc(http.MethodPut,     "/api/authors/:authorId/courses/:courseId", app.updateCourseHandler)
	router.HandlerFunc(http.MethodPatch,   "/api/authors/:authorId/courses/:courseId", app.patchCourseHandler)
	router.HandlerFunc(http.MethodDelete,  "/api/authors/:authorId/courses/:courseId", app.deleteCourseHandler)
	router.HandlerFunc(http.MethodOptions, "/api/authors/:authorId/courses/:courseId", app.courseOptionsHandler)

	// logRequest is outermost so a recovered panic is still logged with its
	// 500; recoverPanic catches panics from rateLimit and router alike.
	return app.logRequest(app.recoverPanic(app.rateLimit(router)))
}
