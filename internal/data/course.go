// internal/data/course.go
package data

import "github.com/google/uuid"

// Course is a row of the "courses" table.
type Course struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
}

// CourseDto is the public course representation.
type CourseDto struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `json:"authorId"`
}

// CourseForCreationDto is the body of POST /api/authors/:authorId/courses.
type CourseForCreationDto struct {
	Title       string `json:"title" validate:"required,max=100,nefield=Description"`
	Description string `json:"description" validate:"max=1500"`
}

// CourseForUpdateDto is the body of PUT and the target document of PATCH.
// Unlike creation, an update must carry a description.
type CourseForUpdateDto struct {
	Title       string `json:"title" validate:"required,max=100,nefield=Description"`
	Description string `json:"description" validate:"required,max=1500"`
}

// NewCourseDto maps a course to its public representation.
func NewCourseDto(c *Course) CourseDto {
	return CourseDto{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		AuthorID:    c.AuthorID,
	}
}

// NewCourseDtos maps a slice of courses, keeping order.
func NewCourseDtos(courses []*Course) []CourseDto {
	dtos := make([]CourseDto, len(courses))
	for i, c := range courses {
		dtos[i] = NewCourseDto(c)
	}
	return dtos
}

// NewCourseForUpdateDto returns the patchable view of c.
func NewCourseForUpdateDto(c *Course) CourseForUpdateDto {
	return CourseForUpdateDto{Title: c.Title, Description: c.Description}
}

// ToCourse builds a course for authorID.
func (in CourseForCreationDto) ToCourse(authorID uuid.UUID) *Course {
	return &Course{AuthorID: authorID, Title: in.Title, Description: in.Description}
}

// ApplyTo copies the updatable fields onto c.
func (in CourseForUpdateDto) ApplyTo(c *Course) {
	c.Title = in.Title
	c.Description = in.Description
}

func coursesFromCreation(in []CourseForCreationDto) []Course {
	if len(in) == 0 {
		return nil
	}
	courses := make([]Course, len(in))
	for i, c := range in {
		courses[i] = Course{Title: c.Title, Description: c.Description}
	}
	return courses
}
