// Package data holds the catalog entities, their public representations,
// and the postgres stores that persist them.
package data

import (
	"time"

	"github.com/google/uuid"
)

// Author is a row of the "authors" table together with its courses.
type Author struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	DateOfDeath  *time.Time
	MainCategory string
	Courses      []Course
}

// AuthorsResourceParameters are the query string options of GET /api/authors.
type AuthorsResourceParameters struct {
	MainCategory string
	SearchQuery  string
	Fields       string
	Filters
}

// AuthorDto is the friendly author representation.
type AuthorDto struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	MainCategory string    `json:"mainCategory"`
}

// AuthorFullDto exposes every stored author field.
type AuthorFullDto struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	DateOfBirth  time.Time  `json:"dateOfBirth"`
	DateOfDeath  *time.Time `json:"dateOfDeath"`
	MainCategory string     `json:"mainCategory"`
}

// AuthorForCreationDto is the body of POST /api/authors and of each element
// posted to /api/authorcollections.
type AuthorForCreationDto struct {
	FirstName    string                 `json:"firstName" validate:"required,max=50"`
	LastName     string                 `json:"lastName" validate:"required,max=50"`
	DateOfBirth  time.Time              `json:"dateOfBirth" validate:"required"`
	MainCategory string                 `json:"mainCategory" validate:"required,max=50"`
	Courses      []CourseForCreationDto `json:"courses" validate:"dive"`
}

// AuthorForCreationWithDateOfDeathDto is the creation body that also
// carries a date of death.
type AuthorForCreationWithDateOfDeathDto struct {
	FirstName    string                 `json:"firstName" validate:"required,max=50"`
	LastName     string                 `json:"lastName" validate:"required,max=50"`
	DateOfBirth  time.Time              `json:"dateOfBirth" validate:"required"`
	DateOfDeath  *time.Time             `json:"dateOfDeath" validate:"omitempty,gtfield=DateOfBirth"`
	MainCategory string                 `json:"mainCategory" validate:"required,max=50"`
	Courses      []CourseForCreationDto `json:"courses" validate:"dive"`
}

// NewAuthorDto maps an author to its friendly representation.
func NewAuthorDto(a *Author) AuthorDto {
	return AuthorDto{
		ID:           a.ID,
		Name:         a.FirstName + " " + a.LastName,
		Age:          CurrentAge(a.DateOfBirth, a.DateOfDeath, time.Now()),
		MainCategory: a.MainCategory,
	}
}

// NewAuthorDtos maps a slice of authors, keeping order.
func NewAuthorDtos(authors []*Author) []AuthorDto {
	dtos := make([]AuthorDto, len(authors))
	for i, a := range authors {
		dtos[i] = NewAuthorDto(a)
	}
	return dtos
}

// NewAuthorFullDto maps an author to its full representation.
func NewAuthorFullDto(a *Author) AuthorFullDto {
	return AuthorFullDto{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		DateOfBirth:  a.DateOfBirth,
		DateOfDeath:  a.DateOfDeath,
		MainCategory: a.MainCategory,
	}
}

// ToAuthor builds a new author entity; ids are assigned on insert.
func (in AuthorForCreationDto) ToAuthor() *Author {
	return &Author{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  in.DateOfBirth,
		MainCategory: in.MainCategory,
		Courses:      coursesFromCreation(in.Courses),
	}
}

// ToAuthor builds a new author entity; ids are assigned on insert.
func (in AuthorForCreationWithDateOfDeathDto) ToAuthor() *Author {
	return &Author{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  in.DateOfBirth,
		DateOfDeath:  in.DateOfDeath,
		MainCategory: in.MainCategory,
		Courses:      coursesFromCreation(in.Courses),
	}
}

// CurrentAge returns the age in whole years of someone born at dateOfBirth,
// measured at dateOfDeath when set and at now otherwise.
func CurrentAge(dateOfBirth time.Time, dateOfDeath *time.Time, now time.Time) int {
	until := now.UTC()
	if dateOfDeath != nil {
		until = dateOfDeath.UTC()
	}
	born := dateOfBirth.UTC()

	age := until.Year() - born.Year()
	if until.Before(born.AddDate(age, 0, 0)) {
		age--
	}
	return age
}
