// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/aoideee/courselibrary/internal/mapping"
	"github.com/aoideee/courselibrary/internal/validator"
)

// queryTimeout bounds every individual database round-trip.
const queryTimeout = 3 * time.Second

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// AuthorStore is the persistence contract for authors.
type AuthorStore interface {
	GetAll(ctx context.Context, params AuthorsResourceParameters) ([]*Author, Metadata, error)
	Get(ctx context.Context, id uuid.UUID) (*Author, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*Author, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Insert(ctx context.Context, author *Author) error
	InsertMany(ctx context.Context, authors []*Author) error
}

// CourseStore is the persistence contract for courses. Every course is
// scoped to its author.
type CourseStore interface {
	GetAllForAuthor(ctx context.Context, authorID uuid.UUID) ([]*Course, error)
	Get(ctx context.Context, authorID, courseID uuid.UUID) (*Course, error)
	Insert(ctx context.Context, course *Course) error
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, course *Course) error
}

// Models groups the stores handed to the HTTP layer.
type Models struct {
	Authors AuthorStore
	Courses CourseStore
}

// NewModels wires the postgres stores to db. mappings must already hold the
// AuthorDto/Author property mapping used to translate orderBy.
func NewModels(db *sql.DB, mappings *mapping.Registry) Models {
	return Models{
		Authors: AuthorModel{DB: db, Mappings: mappings},
		Courses: CourseModel{DB: db},
	}
}

// MaxPageSize caps the page size a client may request.
const MaxPageSize = 20

// Filters holds pagination and sorting parameters extracted from URL query strings.
type Filters struct {
	PageNumber int    // Current page number (1-indexed)
	PageSize   int    // Number of records per page, capped at MaxPageSize
	OrderBy    string // Public order-by expression, e.g. "name desc, age"
}

// ValidateFilters records pagination problems on v.
func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.PageNumber > 0, "pageNumber", "must be greater than zero")
	v.Check(f.PageNumber <= 10_000_000, "pageNumber", "must be a maximum of 10 million")
	v.Check(f.PageSize > 0, "pageSize", "must be greater than zero")
}

// limit returns the SQL LIMIT value derived from PageSize.
func (f Filters) limit() int { return min(f.PageSize, MaxPageSize) }

// offset returns the SQL OFFSET value derived from PageNumber and PageSize.
func (f Filters) offset() int { return (f.PageNumber - 1) * f.limit() }

// Metadata contains pagination information returned alongside list responses.
type Metadata struct {
	TotalCount  int `json:"totalCount"`
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// HasPrevious reports whether a page precedes the current one.
func (m Metadata) HasPrevious() bool { return m.CurrentPage > 1 }

// HasNext reports whether a page follows the current one.
func (m Metadata) HasNext() bool { return m.CurrentPage < m.TotalPages }

// calculateMetadata computes page metadata from total record count and filter values.
func calculateMetadata(totalCount, page, pageSize int) Metadata {
	return Metadata{
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(pageSize))),
	}
}
