package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/courselibrary/internal/config"
	"github.com/aoideee/courselibrary/internal/data"
)

// fakeAuthors is an in-memory AuthorStore that keeps insertion order.
type fakeAuthors struct {
	mu         sync.Mutex
	order      []uuid.UUID
	byID       map[uuid.UUID]*data.Author
	lastParams data.AuthorsResourceParameters
}

func newFakeAuthors() *fakeAuthors {
	return &fakeAuthors{byID: make(map[uuid.UUID]*data.Author)}
}

func (f *fakeAuthors) add(a *data.Author) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append(f.order, a.ID)
	f.byID[a.ID] = a
}

func (f *fakeAuthors) GetAll(_ context.Context, params data.AuthorsResourceParameters) ([]*data.Author, data.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastParams = params

	var matched []*data.Author
	for _, id := range f.order {
		a := f.byID[id]
		if params.MainCategory != "" && a.MainCategory != params.MainCategory {
			continue
		}
		matched = append(matched, a)
	}

	start := min((params.PageNumber-1)*params.PageSize, len(matched))
	end := min(start+params.PageSize, len(matched))
	metadata := data.Metadata{
		TotalCount:  len(matched),
		PageSize:    params.PageSize,
		CurrentPage: params.PageNumber,
		TotalPages:  (len(matched) + params.PageSize - 1) / params.PageSize,
	}
	return matched[start:end], metadata, nil
}

func (f *fakeAuthors) Get(_ context.Context, id uuid.UUID) (*data.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAuthors) GetMany(_ context.Context, ids []uuid.UUID) ([]*data.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var authors []*data.Author
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			authors = append(authors, a)
		}
	}
	return authors, nil
}

func (f *fakeAuthors) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeAuthors) Insert(ctx context.Context, author *data.Author) error {
	return f.InsertMany(ctx, []*data.Author{author})
}

func (f *fakeAuthors) InsertMany(_ context.Context, authors []*data.Author) error {
	for _, a := range authors {
		a.ID = uuid.New()
		for i := range a.Courses {
			a.Courses[i].ID = uuid.New()
			a.Courses[i].AuthorID = a.ID
		}
		f.add(a)
	}
	return nil
}

// fakeCourses is an in-memory CourseStore.
type fakeCourses struct {
	mu   sync.Mutex
	byID map[uuid.UUID]data.Course
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{byID: make(map[uuid.UUID]data.Course)}
}

func (f *fakeCourses) GetAllForAuthor(_ context.Context, authorID uuid.UUID) ([]*data.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	courses := []*data.Course{}
	for _, c := range f.byID {
		if c.AuthorID == authorID {
			c := c
			courses = append(courses, &c)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Title < courses[j].Title })
	return courses, nil
}

func (f *fakeCourses) Get(_ context.Context, authorID, courseID uuid.UUID) (*data.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[courseID]
	if !ok || c.AuthorID != authorID {
		return nil, data.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCourses) Insert(_ context.Context, course *data.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	f.byID[course.ID] = *course
	return nil
}

func (f *fakeCourses) Update(_ context.Context, course *data.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[course.ID]
	if !ok || c.AuthorID != course.AuthorID {
		return data.ErrRecordNotFound
	}
	f.byID[course.ID] = *course
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, course *data.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[course.ID]
	if !ok || c.AuthorID != course.AuthorID {
		return data.ErrRecordNotFound
	}
	delete(f.byID, course.ID)
	return nil
}

type testApp struct {
	app     *applicationDependencies
	authors *fakeAuthors
	courses *fakeCourses
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	authors := newFakeAuthors()
	courses := newFakeCourses()
	mappings := data.NewPropertyMappings()

	app := &applicationDependencies{
		config: &config.Config{
			Limiter: config.LimiterConfig{Enabled: false},
			Cache:   config.CacheConfig{MaxAge: 240 * time.Second},
		},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:   data.Models{Authors: authors, Courses: courses},
		mappings: mappings,
	}
	return &testApp{app: app, authors: authors, courses: courses, handler: app.routes()}
}

// seedAuthor stores an author directly, bypassing the handlers.
func (ta *testApp) seedAuthor(first, last, category string, born time.Time) *data.Author {
	a := &data.Author{
		ID:           uuid.New(),
		FirstName:    first,
		LastName:     last,
		DateOfBirth:  born,
		MainCategory: category,
	}
	ta.authors.add(a)
	return a
}

func (ta *testApp) seedCourse(authorID uuid.UUID, title, description string) *data.Course {
	c := &data.Course{ID: uuid.New(), AuthorID: authorID, Title: title, Description: description}
	ta.courses.byID[c.ID] = *c
	return c
}

// do sends a request through the full router and middleware chain.
func (ta *testApp) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorded body into a value of type T.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(string(raw)))

	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))

		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	return keys
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
