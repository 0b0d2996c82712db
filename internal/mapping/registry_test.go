package mapping_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/courselibrary/internal/mapping"
)

type authorDto struct {
	ID           string
	Name         string
	Age          int
	MainCategory string
}

type author struct {
	ID           string
	FirstName    string
	LastName     string
	DateOfBirth  string
	MainCategory string
}

type courseDto struct{ ID, Title string }

type course struct{ ID, Title string }

func authorValues() map[string]mapping.PropertyMappingValue {
	return map[string]mapping.PropertyMappingValue{
		"Id":           mapping.NewValue(false, "id"),
		"MainCategory": mapping.NewValue(false, "MainCategory"),
		"Age":          mapping.NewValue(true, "DateOfBirth"),
		"Name":         mapping.NewValue(false, "FirstName", "LastName"),
	}
}

func newRegistry(t *testing.T) *mapping.Registry {
	t.Helper()
	r := mapping.NewRegistry()
	m, err := mapping.For[authorDto, author](authorValues())
	require.NoError(t, err)
	require.NoError(t, r.Register(m))
	r.Seal()
	return r
}

func TestValidMappingExistsFor(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name    string
		orderBy string
		want    bool
	}{
		{"empty is a no-op", "", true},
		{"whitespace is a no-op", "   ", true},
		{"single field", "name", true},
		{"field with direction", "name desc, id", true},
		{"mixed case and spacing", "  NaMe   DESC ,Id asc ", true},
		{"reverted field", "age", true},
		{"unknown field", "bogus", false},
		{"second clause unknown", "name, bogus desc", false},
		{"empty clause", "name,,id", false},
		{"direction only", "desc", false},
		{"garbage after field", "name sideways", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapping.ValidMappingExistsFor[authorDto, author](r, tt.orderBy))
		})
	}
}

func TestValidMappingExistsFor_UnknownPair(t *testing.T) {
	r := newRegistry(t)

	assert.True(t, mapping.ValidMappingExistsFor[courseDto, course](r, ""))
	assert.False(t, mapping.ValidMappingExistsFor[courseDto, course](r, "title"))
}

func TestRegister_DuplicatePair(t *testing.T) {
	r := mapping.NewRegistry()
	first, err := mapping.For[authorDto, author](authorValues())
	require.NoError(t, err)
	second, err := mapping.For[authorDto, author](authorValues())
	require.NoError(t, err)

	require.NoError(t, r.Register(first))
	err = r.Register(second)
	require.ErrorIs(t, err, mapping.ErrDuplicateMapping)
	assert.Equal(t, 1, r.Len())
}

func TestRegister_Sealed(t *testing.T) {
	r := newRegistry(t)
	m, err := mapping.For[courseDto, course](map[string]mapping.PropertyMappingValue{
		"Title": mapping.NewValue(false, "Title"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, r.Register(m), mapping.ErrSealed)
	assert.True(t, r.Sealed())
}

func TestMustRegister_Panics(t *testing.T) {
	r := mapping.NewRegistry()
	r.MustRegister(mapping.For[authorDto, author](authorValues()))

	assert.Panics(t, func() {
		r.MustRegister(mapping.For[authorDto, author](authorValues()))
	})
}

func TestGetMapping(t *testing.T) {
	r := newRegistry(t)

	m, err := mapping.GetMapping[authorDto, author](r)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(authorDto{}), m.Source())
	assert.Equal(t, reflect.TypeOf(author{}), m.Destination())

	name, ok := m.Lookup("NAME")
	require.True(t, ok)
	assert.Equal(t, []string{"FirstName", "LastName"}, name.DestinationProperties)
	assert.False(t, name.Revert)

	age, ok := m.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, []string{"DateOfBirth"}, age.DestinationProperties)
	assert.True(t, age.Revert)

	assert.ElementsMatch(t, []string{"Id", "MainCategory", "Age", "Name"}, m.Names())
}

func TestGetMapping_NotFound(t *testing.T) {
	r := newRegistry(t)

	_, err := mapping.GetMapping[courseDto, course](r)
	assert.ErrorIs(t, err, mapping.ErrMappingNotFound)

	// The reversed pair is a different pair.
	_, err = mapping.GetMapping[author, authorDto](r)
	assert.ErrorIs(t, err, mapping.ErrMappingNotFound)
}

func TestNewPropertyMapping_Errors(t *testing.T) {
	_, err := mapping.For[authorDto, author](map[string]mapping.PropertyMappingValue{
		"Name": {},
	})
	assert.ErrorIs(t, err, mapping.ErrEmptyDestination)

	_, err = mapping.For[authorDto, author](map[string]mapping.PropertyMappingValue{
		"name": mapping.NewValue(false, "FirstName"),
		"Name": mapping.NewValue(false, "LastName"),
	})
	assert.ErrorIs(t, err, mapping.ErrDuplicateProperty)

	_, err = mapping.NewPropertyMapping(nil, reflect.TypeOf(author{}), nil)
	assert.ErrorIs(t, err, mapping.ErrNilType)

	assert.Panics(t, func() { mapping.NewValue(false) })
}

func TestNewPropertyMapping_CopiesDestinations(t *testing.T) {
	dest := []string{"FirstName", "LastName"}
	m, err := mapping.For[authorDto, author](map[string]mapping.PropertyMappingValue{
		"Name": {DestinationProperties: dest},
	})
	require.NoError(t, err)

	dest[0] = "changed"
	v, _ := m.Lookup("name")
	assert.Equal(t, "FirstName", v.DestinationProperties[0])
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := newRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, mapping.ValidMappingExistsFor[authorDto, author](r, "name desc, age"))
			}
		}()
	}
	wg.Wait()
}
