// internal/data/author_model.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/aoideee/courselibrary/internal/mapping"
)

// AuthorModel wraps a *sql.DB connection and provides the postgres
// implementation of AuthorStore.
type AuthorModel struct {
	DB       *sql.DB
	Mappings *mapping.Registry
}

const authorColumnList = `id, first_name, last_name, date_of_birth, date_of_death, main_category`

// GetAll retrieves a filtered, sorted page of authors.
// It uses a COUNT(*) OVER() window function so only one round-trip is needed.
func (m AuthorModel) GetAll(ctx context.Context, params AuthorsResourceParameters) ([]*Author, Metadata, error) {
	pm, err := mapping.GetMapping[AuthorDto, Author](m.Mappings)
	if err != nil {
		return nil, Metadata{}, err
	}
	orderBy, err := OrderByClause(pm, params.OrderBy, authorColumns)
	if err != nil {
		return nil, Metadata{}, err
	}
	if orderBy != "" {
		orderBy += ", "
	}

	// The ORDER BY list is built only from mapped column names, never from
	// client text, so it is safe to interpolate.
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM authors
		WHERE ($1 = '' OR main_category = $1)
		AND ($2 = '' OR strpos(lower(main_category), lower($2)) > 0
			OR strpos(lower(first_name), lower($2)) > 0
			OR strpos(lower(last_name), lower($2)) > 0)
		ORDER BY %sid ASC
		LIMIT $3 OFFSET $4`, authorColumnList, orderBy)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query,
		strings.TrimSpace(params.MainCategory),
		strings.TrimSpace(params.SearchQuery),
		params.limit(),
		params.offset(),
	)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalCount := 0
	authors := []*Author{}
	for rows.Next() {
		var a Author
		err := rows.Scan(
			&totalCount, // COUNT(*) OVER() – same value on every row
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.DateOfBirth,
			&a.DateOfDeath,
			&a.MainCategory,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		authors = append(authors, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalCount, params.PageNumber, params.limit())
	return authors, metadata, nil
}

// Get retrieves a single author by id.
// Returns ErrRecordNotFound if no author with the given id exists.
func (m AuthorModel) Get(ctx context.Context, id uuid.UUID) (*Author, error) {
	query := `SELECT ` + authorColumnList + ` FROM authors WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a Author
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.DateOfBirth,
		&a.DateOfDeath,
		&a.MainCategory,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &a, nil
}

// GetMany retrieves the authors whose ids are listed, ordered by name.
// Ids that do not exist are skipped; callers compare lengths.
func (m AuthorModel) GetMany(ctx context.Context, ids []uuid.UUID) ([]*Author, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	query := `SELECT ` + authorColumnList + `
		FROM authors
		WHERE id = ANY($1::uuid[])
		ORDER BY first_name, last_name`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath, &a.MainCategory); err != nil {
			return nil, err
		}
		authors = append(authors, &a)
	}
	return authors, rows.Err()
}

// Exists reports whether an author with id is stored.
func (m AuthorModel) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := m.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Insert stores author and its courses in one transaction, assigning new
// ids to all of them.
func (m AuthorModel) Insert(ctx context.Context, author *Author) error {
	return m.InsertMany(ctx, []*Author{author})
}

// InsertMany stores every author and their courses in one transaction.
func (m AuthorModel) InsertMany(ctx context.Context, authors []*Author) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range authors {
		if err := insertAuthor(ctx, tx, a); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertAuthor(ctx context.Context, tx *sql.Tx, a *Author) error {
	a.ID = uuid.New()

	query := `
		INSERT INTO authors (id, first_name, last_name, date_of_birth, date_of_death, main_category)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.ExecContext(ctx, query, a.ID, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath, a.MainCategory)
	if err != nil {
		return err
	}

	for i := range a.Courses {
		c := &a.Courses[i]
		c.ID = uuid.New()
		c.AuthorID = a.ID
		if err := insertCourse(ctx, tx, c); err != nil {
			return err
		}
	}
	return nil
}
