// internal/data/mappings.go
package data

import "github.com/aoideee/courselibrary/internal/mapping"

// authorPropertyMapping maps sortable AuthorDto fields onto Author.
// Age sorts on DateOfBirth reversed: an earlier birth date is a greater age.
var authorPropertyMapping = map[string]mapping.PropertyMappingValue{
	"Id":           mapping.NewValue(false, "Id"),
	"MainCategory": mapping.NewValue(false, "MainCategory"),
	"Age":          mapping.NewValue(true, "DateOfBirth"),
	"Name":         mapping.NewValue(false, "FirstName", "LastName"),
}

// NewPropertyMappings builds the sealed registry for every resource pair the
// API sorts on. It panics on a configuration error, which can only be a
// programming mistake in this file.
func NewPropertyMappings() *mapping.Registry {
	r := mapping.NewRegistry()
	r.MustRegister(mapping.For[AuthorDto, Author](authorPropertyMapping))
	r.Seal()
	return r
}
