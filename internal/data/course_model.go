// internal/data/course_model.go
package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// CourseModel wraps a *sql.DB connection and provides the postgres
// implementation of CourseStore.
type CourseModel struct {
	DB *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetAllForAuthor retrieves the courses of one author, ordered by title.
func (m CourseModel) GetAllForAuthor(ctx context.Context, authorID uuid.UUID) ([]*Course, error) {
	query := `
		SELECT id, author_id, title, description
		FROM courses
		WHERE author_id = $1
		ORDER BY title`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*Course{}
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description); err != nil {
			return nil, err
		}
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}

// Get retrieves one course of an author.
// Returns ErrRecordNotFound if the course does not exist for that author.
func (m CourseModel) Get(ctx context.Context, authorID, courseID uuid.UUID) (*Course, error) {
	query := `
		SELECT id, author_id, title, description
		FROM courses
		WHERE author_id = $1 AND id = $2`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Course
	err := m.DB.QueryRowContext(ctx, query, authorID, courseID).Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &c, nil
}

// Insert stores course. A nil id is replaced with a new one; a caller that
// upserts passes the id from the request URL.
func (m CourseModel) Insert(ctx context.Context, course *Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return insertCourse(ctx, m.DB, course)
}

// Update saves the title and description of course.
func (m CourseModel) Update(ctx context.Context, course *Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2
		WHERE id = $3 AND author_id = $4`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, course.Title, course.Description, course.ID, course.AuthorID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes course.
// Returns ErrRecordNotFound if no matching record exists.
func (m CourseModel) Delete(ctx context.Context, course *Course) error {
	query := `DELETE FROM courses WHERE id = $1 AND author_id = $2`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, course.ID, course.AuthorID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func insertCourse(ctx context.Context, db execer, c *Course) error {
	query := `
		INSERT INTO courses (id, author_id, title, description)
		VALUES ($1, $2, $3, $4)`

	_, err := db.ExecContext(ctx, query, c.ID, c.AuthorID, c.Title, c.Description)
	return err
}

// requireAffected maps a zero-row result to ErrRecordNotFound.
func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
