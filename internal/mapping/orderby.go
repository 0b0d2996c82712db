package mapping

import "strings"

// OrderClause is one "<field> [asc|desc]" term of an order-by expression.
type OrderClause struct {
	Field      string
	Descending bool
}

// ParseOrderBy splits an expression such as "name desc, id" into clauses.
//
// Parsing is syntactic only: whitespace is trimmed, the direction token is
// optional and case-insensitive. A blank expression yields no clauses; a
// blank clause inside a non-blank expression yields a clause with an empty
// Field so that lookups reject it.
func ParseOrderBy(expr string) []OrderClause {
	if strings.TrimSpace(expr) == "" {
		return nil
	}

	parts := strings.Split(expr, ",")
	clauses := make([]OrderClause, 0, len(parts))
	for _, part := range parts {
		tokens := strings.Fields(part)
		var c OrderClause
		if n := len(tokens); n > 1 {
			switch strings.ToLower(tokens[n-1]) {
			case "desc":
				c.Descending = true
				tokens = tokens[:n-1]
			case "asc":
				tokens = tokens[:n-1]
			}
		}
		c.Field = strings.Join(tokens, " ")
		clauses = append(clauses, c)
	}
	return clauses
}
