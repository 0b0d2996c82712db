// Package shaping projects resources down to a client-selected set of fields.
//
// A resource type is described once by Describe, which records its exported
// fields in declaration order under their JSON names. Shape and ShapeAll then
// use that descriptor to copy the requested fields off each instance into an
// ordered Resource, and TypeHasProperties lets callers reject a bad field list
// before doing any work.
package shaping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	// ErrNilSource is returned when a nil resource or collection is shaped.
	ErrNilSource = errors.New("shaping: nil source")
	// ErrNotStruct is returned when the resource type is not a struct.
	ErrNotStruct = errors.New("shaping: resource type is not a struct")
	// ErrFieldNotFound matches every *FieldNotFoundError.
	ErrFieldNotFound = errors.New("shaping: field not found")
)

// FieldNotFoundError reports a requested field missing from a resource type.
type FieldNotFoundError struct {
	Field string
	Type  reflect.Type
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("shaping: field %q was not found on %s", e.Field, e.Type)
}

// Is makes errors.Is(err, ErrFieldNotFound) true.
func (e *FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// Field is one exported field of a resource type.
type Field struct {
	// Name is the canonical name used as the key in shaped output.
	Name  string
	index []int
}

// Descriptor lists the fields of a struct type in declaration order.
type Descriptor struct {
	typ    reflect.Type
	fields []Field
	byName map[string]int
}

// Type returns the described struct type.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// Fields returns the fields in declaration order.
func (d *Descriptor) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Names returns the canonical field names in declaration order.
func (d *Descriptor) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup resolves name case-insensitively.
func (d *Descriptor) Lookup(name string) (Field, bool) {
	i, ok := d.byName[strings.ToLower(name)]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Resolve returns the fields selected by a comma-separated list. A blank
// list selects every field in declaration order; otherwise fields come back
// in request order.
func (d *Descriptor) Resolve(fields string) ([]Field, error) {
	if strings.TrimSpace(fields) == "" {
		return d.Fields(), nil
	}

	tokens := strings.Split(fields, ",")
	selected := make([]Field, 0, len(tokens))
	for _, token := range tokens {
		name := strings.TrimSpace(token)
		f, ok := d.Lookup(name)
		if !ok {
			return nil, &FieldNotFoundError{Field: name, Type: d.typ}
		}
		selected = append(selected, f)
	}
	return selected, nil
}

// value reads f off the struct value v.
func (f Field) value(v reflect.Value) any {
	return v.FieldByIndex(f.index).Interface()
}

// descriptors caches one *Descriptor per reflect.Type.
var descriptors sync.Map

// Describe returns the descriptor of t, which must be a struct or a pointer
// to a struct.
func Describe(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, ErrNotStruct
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	if d, ok := descriptors.Load(t); ok {
		return d.(*Descriptor), nil
	}
	d, _ := descriptors.LoadOrStore(t, buildDescriptor(t))
	return d.(*Descriptor), nil
}

// DescribeType is the generic form of Describe.
func DescribeType[T any]() (*Descriptor, error) {
	return Describe(reflect.TypeOf((*T)(nil)).Elem())
}

func buildDescriptor(t reflect.Type) *Descriptor {
	d := &Descriptor{typ: t, byName: make(map[string]int)}
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		// Promoted fields are reachable through their embedding struct,
		// which must itself be exported.
		if len(sf.Index) > 1 && !promotable(t, sf.Index) {
			continue
		}
		name, ok := fieldName(sf)
		if !ok {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := d.byName[key]; dup {
			continue
		}
		d.byName[key] = len(d.fields)
		d.fields = append(d.fields, Field{Name: name, index: sf.Index})
	}
	return d
}

// promotable reports whether every embedded struct on the path is a
// non-pointer struct value, so FieldByIndex cannot hit a nil pointer.
func promotable(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		sf := t.Field(i)
		if sf.Type.Kind() != reflect.Struct {
			return false
		}
		t = sf.Type
	}
	return true
}

// fieldName returns the JSON name of sf, or false when the field is hidden.
func fieldName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return sf.Name, true
	}
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name, true
	}
	return name, true
}
