package mapping

import (
	"fmt"
	"reflect"
)

// Registry is the set of property mappings known to the process.
//
// Register is meant to be called from a single goroutine during startup.
// After Seal every method is read-only and safe for concurrent use.
type Registry struct {
	mappings []*PropertyMapping
	sealed   bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds m for its (source, destination) pair.
func (r *Registry) Register(m *PropertyMapping) error {
	if m == nil {
		return ErrNilType
	}
	if r.sealed {
		return ErrSealed
	}
	for _, existing := range r.mappings {
		if existing.matches(m.source, m.destination) {
			return fmt.Errorf("%w for <%s, %s>", ErrDuplicateMapping, m.source, m.destination)
		}
	}
	r.mappings = append(r.mappings, m)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(m *PropertyMapping, err error) {
	if err != nil {
		panic(err)
	}
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Seal freezes the registry. Further registrations fail with ErrSealed.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.sealed }

// Len returns the number of registered mappings.
func (r *Registry) Len() int { return len(r.mappings) }

// Mapping returns the single mapping registered for the pair.
func (r *Registry) Mapping(source, destination reflect.Type) (*PropertyMapping, error) {
	var found []*PropertyMapping
	for _, m := range r.mappings {
		if m.matches(source, destination) {
			found = append(found, m)
		}
	}
	if len(found) != 1 {
		return nil, fmt.Errorf("%w for <%s, %s>", ErrMappingNotFound, source, destination)
	}
	return found[0], nil
}

// IsValidOrderBy reports whether every clause of orderBy names a field
// known to the pair's mapping. An empty expression is valid.
func (r *Registry) IsValidOrderBy(source, destination reflect.Type, orderBy string) bool {
	clauses := ParseOrderBy(orderBy)
	if len(clauses) == 0 {
		return true
	}

	m, err := r.Mapping(source, destination)
	if err != nil {
		return false
	}
	for _, c := range clauses {
		if _, ok := m.Lookup(c.Field); !ok {
			return false
		}
	}
	return true
}

// GetMapping is the generic form of Registry.Mapping.
func GetMapping[TSource, TDestination any](r *Registry) (*PropertyMapping, error) {
	return r.Mapping(typeOf[TSource](), typeOf[TDestination]())
}

// ValidMappingExistsFor is the generic form of Registry.IsValidOrderBy.
func ValidMappingExistsFor[TSource, TDestination any](r *Registry, orderBy string) bool {
	return r.IsValidOrderBy(typeOf[TSource](), typeOf[TDestination](), orderBy)
}
