// Package mapping translates public resource field names into the storage
// field names they are persisted under.
//
// A Registry holds one PropertyMapping per (source, destination) type pair,
// e.g. (AuthorDto, Author). It is populated once during startup, sealed, and
// then only read, so lookups need no locking.
package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrDuplicateMapping is returned when a mapping for the same type pair
	// is registered twice.
	ErrDuplicateMapping = errors.New("mapping: duplicate property mapping")
	// ErrMappingNotFound is returned when exactly one mapping cannot be
	// resolved for a type pair.
	ErrMappingNotFound = errors.New("mapping: property mapping not found")
	// ErrSealed is returned by Register once the registry has been sealed.
	ErrSealed = errors.New("mapping: registry is sealed")
	// ErrEmptyDestination is returned for a value without destination properties.
	ErrEmptyDestination = errors.New("mapping: no destination properties")
	// ErrDuplicateProperty is returned when two public names collide
	// case-insensitively.
	ErrDuplicateProperty = errors.New("mapping: duplicate public property")
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("mapping: nil reflect.Type provided")
)

// PropertyMappingValue describes how one public field maps to storage.
type PropertyMappingValue struct {
	// DestinationProperties lists the storage fields, in sort priority order.
	DestinationProperties []string
	// Revert flips the sort direction when ordering by the storage fields.
	Revert bool
}

// NewValue builds a PropertyMappingValue. It panics when no destination is
// given; mappings are static configuration.
func NewValue(revert bool, destinations ...string) PropertyMappingValue {
	if len(destinations) == 0 {
		panic(ErrEmptyDestination)
	}
	return PropertyMappingValue{
		DestinationProperties: append([]string(nil), destinations...),
		Revert:                revert,
	}
}

// PropertyMapping maps public field names of Source to storage fields of
// Destination. Names are matched case-insensitively.
type PropertyMapping struct {
	source      reflect.Type
	destination reflect.Type
	names       []string
	values      map[string]PropertyMappingValue
}

// NewPropertyMapping validates values and returns an immutable mapping for
// the (source, destination) pair.
func NewPropertyMapping(source, destination reflect.Type, values map[string]PropertyMappingValue) (*PropertyMapping, error) {
	if source == nil || destination == nil {
		return nil, ErrNilType
	}

	pm := &PropertyMapping{
		source:      source,
		destination: destination,
		names:       make([]string, 0, len(values)),
		values:      make(map[string]PropertyMappingValue, len(values)),
	}
	for name, v := range values {
		if len(v.DestinationProperties) == 0 {
			return nil, fmt.Errorf("%w for %q", ErrEmptyDestination, name)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := pm.values[key]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateProperty, name)
		}
		pm.values[key] = PropertyMappingValue{
			DestinationProperties: append([]string(nil), v.DestinationProperties...),
			Revert:                v.Revert,
		}
		pm.names = append(pm.names, name)
	}
	return pm, nil
}

// For is the generic form of NewPropertyMapping.
func For[TSource, TDestination any](values map[string]PropertyMappingValue) (*PropertyMapping, error) {
	return NewPropertyMapping(typeOf[TSource](), typeOf[TDestination](), values)
}

// Source returns the public resource type.
func (pm *PropertyMapping) Source() reflect.Type { return pm.source }

// Destination returns the storage type.
func (pm *PropertyMapping) Destination() reflect.Type { return pm.destination }

// Lookup resolves a public field name, ignoring case and surrounding space.
func (pm *PropertyMapping) Lookup(name string) (PropertyMappingValue, bool) {
	v, ok := pm.values[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// Names returns the public field names as registered (order is unspecified).
func (pm *PropertyMapping) Names() []string {
	return append([]string(nil), pm.names...)
}

func (pm *PropertyMapping) matches(source, destination reflect.Type) bool {
	return pm.source == source && pm.destination == destination
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
