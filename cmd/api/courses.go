// cmd/api/courses.go
// This file contains the HTTP handlers for the courses of an author. Every
// handler first confirms the author exists and responds 404 otherwise.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/aoideee/courselibrary/internal/data"
	"github.com/aoideee/courselibrary/internal/shaping"
	"github.com/aoideee/courselibrary/internal/validator"
)

// readAuthorID parses :authorId and checks the author is stored. It writes
// the error response itself and returns false when the handler must stop.
func (app *applicationDependencies) readAuthorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	authorID, err := app.readUUIDParam(r, "authorId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return uuid.Nil, false
	}

	exists, err := app.models.Authors.Exists(r.Context(), authorID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return uuid.Nil, false
	}
	if !exists {
		app.notFoundResponse(w, r)
		return uuid.Nil, false
	}
	return authorID, true
}

// shapeCourse projects c onto fields and attaches its links.
func shapeCourse(r *http.Request, c *data.Course, fields string) (*shaping.Resource, error) {
	resource, err := shaping.Shape(data.NewCourseDto(c), fields)
	if err != nil {
		return nil, err
	}
	resource.Set("links", courseLinks(r, c))
	return resource, nil
}

// listCoursesHandler handles GET /api/authors/:authorId/courses.
func (app *applicationDependencies) listCoursesHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.readAuthorID(w, r)
	if !ok {
		return
	}

	fields := app.readString(r.URL.Query(), "fields", "")
	if !shaping.TypeHasProperties[data.CourseDto](fields) {
		app.invalidFieldsResponse(w, r, fields)
		return
	}

	courses, err := app.models.Courses.GetAllForAuthor(r.Context(), authorID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	shaped := make([]*shaping.Resource, len(courses))
	for i, c := range courses {
		shaped[i], err = shapeCourse(r, c, fields)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"value": shaped}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showCourseHandler handles GET /api/authors/:authorId/courses/:courseId.
// The response may be cached by clients for the configured max age.
func (app *applicationDependencies) showCourseHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.readAuthorID(w, r)
	if !ok {
		return
	}
	courseID, err := app.readUUIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := app.readString(r.URL.Query(), "fields", "")
	if !shaping.TypeHasProperties[data.CourseDto](fields) {
		app.invalidFieldsResponse(w, r, fields)
		return
	}

	course, err := app.models.Courses.Get(r.Context(), authorID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resource, err := shapeCourse(r, course, fields)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(app.config.Cache.MaxAge.Seconds())))
	err = app.writeJSON(w, http.StatusOK, resource, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createCourseHandler handles POST /api/authors/:authorId/courses.
func (app *applicationDependencies) createCourseHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.readAuthorID(w, r)
	if !ok {
		return
	}

	var input data.CourseForCreationDto
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if v.Struct(input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	course := input.ToCourse(authorID)
	err = app.models.Courses.Insert(r.Context(), course)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeCreatedCourse(w, r, course)
}

// updateCourseHandler handles PUT /api/authors/:authorId/courses/:courseId.
// A course that does not exist yet is created under the id from the URL.
func (app *applicationDependencies) updateCourseHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.readAuthorID(w, r)
	if !ok {
		return
	}
	courseID, err := app.readUUIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.CourseForUpdateDto
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if v.Struct(input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	app.saveCourse(w, r, authorID, courseID, input)
}

// patchCourseHandler handles PATCH /api/authors/:authorId/courses/:courseId.
// The body is a JSON Patch document applied to the course's updatable
// fields. Patching a missing course creates it from an empty document.
func (app *applicationDependencies) patchCourseHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.readAuthorID(w, r)
	if !ok {
		return
	}
	courseID, err := app.readUUIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	patch, err := app.readJSONPatch(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var doc data.CourseForUpdateDto
	course, err := app.models.Courses.Get(r.Context(), authorID, courseID)
	switch {
	case err == nil:
		doc = data.NewCourseForUpdateDto(course)
	case errors.Is(err, data.ErrRecordNotFound):
		// Upserted from the empty document.
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	if err := applyPatch(patch, &doc); err != nil {
		v.AddError("patch", err.Error())
		app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if v.Struct(doc); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if course == nil {
		app.saveCourse(w, r, authorID, courseID, doc)
		return
	}

	doc.ApplyTo(course)
	err = app.models.Courses.Update(r.Context(), course)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCourseHandler handles DELETE /api/authors/:authorId/courses/:courseId.
func (app *applicationDependencies) deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.readAuthorID(w, r)
	if !ok {
		return
	}
	courseID, err := app.readUUIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	course, err := app.models.Courses.Get(r.Context(), authorID, courseID)
	if err == nil {
		err = app.models.Courses.Delete(r.Context(), course)
	}
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// coursesOptionsHandler handles OPTIONS /api/authors/:authorId/courses.
func (app *applicationDependencies) coursesOptionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET,POST,OPTIONS")
	w.WriteHeader(http.StatusOK)
}

// courseOptionsHandler handles OPTIONS /api/authors/:authorId/courses/:courseId.
func (app *applicationDependencies) courseOptionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET,PUT,PATCH,DELETE,OPTIONS")
	w.WriteHeader(http.StatusOK)
}

// saveCourse updates the stored course or, when none exists, inserts one
// under courseID. Responds 204 after an update and 201 after an insert.
func (app *applicationDependencies) saveCourse(w http.ResponseWriter, r *http.Request, authorID, courseID uuid.UUID, input data.CourseForUpdateDto) {
	course := &data.Course{ID: courseID, AuthorID: authorID}
	input.ApplyTo(course)

	err := app.models.Courses.Update(r.Context(), course)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
		return
	case !errors.Is(err, data.ErrRecordNotFound):
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.models.Courses.Insert(r.Context(), course)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	app.writeCreatedCourse(w, r, course)
}

// writeCreatedCourse sends 201 with a Location header and the shaped course.
func (app *applicationDependencies) writeCreatedCourse(w http.ResponseWriter, r *http.Request, course *data.Course) {
	resource, err := shapeCourse(r, course, "")
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", link(r, coursePath(course.AuthorID, course.ID), nil))

	err = app.writeJSON(w, http.StatusCreated, resource, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
