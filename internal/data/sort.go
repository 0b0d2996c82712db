// internal/data/sort.go
package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aoideee/courselibrary/internal/mapping"
)

// ErrInvalidSort is returned when an order-by expression cannot be
// translated to storage columns.
var ErrInvalidSort = errors.New("invalid sort")

// authorColumns maps Author storage properties to their SQL columns.
var authorColumns = map[string]string{
	"id":           "id",
	"firstname":    "first_name",
	"lastname":     "last_name",
	"dateofbirth":  "date_of_birth",
	"dateofdeath":  "date_of_death",
	"maincategory": "main_category",
}

// OrderByClause translates a public order-by expression into a SQL ORDER BY
// list. Each public field expands to its mapped storage properties, and a
// reverted mapping flips the requested direction. columns is keyed by the
// lower-cased storage property name.
func OrderByClause(pm *mapping.PropertyMapping, orderBy string, columns map[string]string) (string, error) {
	clauses := mapping.ParseOrderBy(orderBy)
	terms := make([]string, 0, len(clauses))
	for _, c := range clauses {
		v, ok := pm.Lookup(c.Field)
		if !ok {
			return "", fmt.Errorf("%w: unknown field %q", ErrInvalidSort, c.Field)
		}

		desc := c.Descending
		if v.Revert {
			desc = !desc
		}
		direction := "ASC"
		if desc {
			direction = "DESC"
		}

		for _, property := range v.DestinationProperties {
			column, ok := columns[strings.ToLower(property)]
			if !ok {
				return "", fmt.Errorf("%w: no column for property %q", ErrInvalidSort, property)
			}
			terms = append(terms, column+" "+direction)
		}
	}
	return strings.Join(terms, ", "), nil
}
