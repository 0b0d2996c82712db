package shaping

import (
	"reflect"
	"strings"
)

// Shape copies the fields named in fields off source into a Resource.
//
// T must be a struct or a pointer to a struct. A blank fields list selects
// every field; an unknown name fails the whole call with a
// *FieldNotFoundError.
func Shape[T any](source T, fields string) (*Resource, error) {
	d, err := DescribeType[T]()
	if err != nil {
		return nil, err
	}
	v, ok := structValue(reflect.ValueOf(&source).Elem())
	if !ok {
		return nil, ErrNilSource
	}
	selected, err := d.Resolve(fields)
	if err != nil {
		return nil, err
	}
	return project(v, selected), nil
}

// ShapeAll shapes every element of source with one field resolution. The
// result keeps the order of source.
func ShapeAll[T any](source []T, fields string) ([]*Resource, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	d, err := DescribeType[T]()
	if err != nil {
		return nil, err
	}
	selected, err := d.Resolve(fields)
	if err != nil {
		return nil, err
	}

	shaped := make([]*Resource, 0, len(source))
	for i := range source {
		v, ok := structValue(reflect.ValueOf(&source[i]).Elem())
		if !ok {
			return nil, ErrNilSource
		}
		shaped = append(shaped, project(v, selected))
	}
	return shaped, nil
}

// HasProperties reports whether every name in fields is a field of t.
// A blank list is always valid.
func HasProperties(t reflect.Type, fields string) bool {
	if strings.TrimSpace(fields) == "" {
		return true
	}
	d, err := Describe(t)
	if err != nil {
		return false
	}
	_, err = d.Resolve(fields)
	return err == nil
}

// TypeHasProperties is the generic form of HasProperties.
func TypeHasProperties[T any](fields string) bool {
	return HasProperties(reflect.TypeOf((*T)(nil)).Elem(), fields)
}

func project(v reflect.Value, fields []Field) *Resource {
	r := NewResource(len(fields))
	for _, f := range fields {
		r.Set(f.Name, f.value(v))
	}
	return r
}

// structValue dereferences v down to a struct, failing on a nil pointer.
func structValue(v reflect.Value) (reflect.Value, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}
