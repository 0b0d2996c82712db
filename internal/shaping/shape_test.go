package shaping_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/courselibrary/internal/shaping"
)

type authorDto struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	MainCategory string    `json:"mainCategory"`
}

type audited struct {
	CreatedAt time.Time `json:"createdAt"`
}

type courseDto struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AuthorID    uuid.UUID
	audited
	secret string
	Hidden string `json:"-"`
}

func sampleAuthor() authorDto {
	return authorDto{
		ID:           uuid.MustParse("d28888e9-2ba9-473a-a40f-e38cb54f9b35"),
		Name:         "Berry Griffin Beach",
		Age:          42,
		MainCategory: "Ships",
	}
}

func TestShape_AllFields(t *testing.T) {
	a := sampleAuthor()

	for _, fields := range []string{"", "   ", "\t"} {
		r, err := shaping.Shape(a, fields)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "age", "mainCategory"}, r.Keys())

		v, _ := r.Get("name")
		assert.Equal(t, a.Name, v)
	}
}

func TestShape_Pointer(t *testing.T) {
	a := sampleAuthor()

	r, err := shaping.Shape(&a, "age")
	require.NoError(t, err)
	v, ok := r.Get("age")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestShape_SelectedFields(t *testing.T) {
	a := sampleAuthor()

	tests := []struct {
		name   string
		fields string
		want   []string
	}{
		{"single", "name", []string{"name"}},
		{"request order", "mainCategory,id", []string{"mainCategory", "id"}},
		{"case insensitive", "NAME, Id", []string{"name", "id"}},
		{"whitespace", "  age ,   name  ", []string{"age", "name"}},
		{"duplicates collapse", "id,ID", []string{"id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := shaping.Shape(a, tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Keys())

			values := map[string]any{
				"id": a.ID, "name": a.Name, "age": a.Age, "mainCategory": a.MainCategory,
			}
			for _, k := range r.Keys() {
				got, _ := r.Get(k)
				assert.Equal(t, values[k], got, k)
			}
		})
	}
}

func TestShape_FieldNotFound(t *testing.T) {
	_, err := shaping.Shape(sampleAuthor(), "id,nonexistentField")
	require.Error(t, err)
	assert.ErrorIs(t, err, shaping.ErrFieldNotFound)

	var fnf *shaping.FieldNotFoundError
	require.True(t, errors.As(err, &fnf))
	assert.Equal(t, "nonexistentField", fnf.Field)
	assert.Equal(t, reflect.TypeOf(authorDto{}), fnf.Type)
	assert.Contains(t, err.Error(), "nonexistentField")
	assert.Contains(t, err.Error(), "authorDto")
}

func TestShape_EmptyToken(t *testing.T) {
	_, err := shaping.Shape(sampleAuthor(), "id,")
	assert.ErrorIs(t, err, shaping.ErrFieldNotFound)
}

func TestShape_NilSource(t *testing.T) {
	var a *authorDto
	_, err := shaping.Shape(a, "")
	assert.ErrorIs(t, err, shaping.ErrNilSource)

	_, err = shaping.ShapeAll[authorDto](nil, "")
	assert.ErrorIs(t, err, shaping.ErrNilSource)

	_, err = shaping.ShapeAll([]*authorDto{nil}, "")
	assert.ErrorIs(t, err, shaping.ErrNilSource)
}

func TestShape_NotStruct(t *testing.T) {
	_, err := shaping.Shape(42, "")
	assert.ErrorIs(t, err, shaping.ErrNotStruct)
}

func TestShape_FieldRules(t *testing.T) {
	c := courseDto{
		ID:       uuid.New(),
		Title:    "Commandeering a Ship Without Getting Caught",
		AuthorID: uuid.New(),
		audited:  audited{CreatedAt: time.Date(2023, 7, 29, 11, 19, 48, 0, time.UTC)},
		secret:   "s",
		Hidden:   "h",
	}

	r, err := shaping.Shape(c, "")
	require.NoError(t, err)
	// omitempty does not drop a selected field; unexported and "-" fields are not part of the resource.
	assert.Equal(t, []string{"id", "title", "description", "AuthorID", "createdAt"}, r.Keys())

	created, _ := r.Get("createdAt")
	assert.Equal(t, c.CreatedAt, created)

	assert.False(t, shaping.TypeHasProperties[courseDto]("hidden"))
	assert.False(t, shaping.TypeHasProperties[courseDto]("secret"))
	assert.True(t, shaping.TypeHasProperties[courseDto]("authorid,createdat"))
}

func TestShapeAll(t *testing.T) {
	authors := make([]authorDto, 5)
	for i := range authors {
		authors[i] = authorDto{ID: uuid.New(), Name: "author", Age: 30 + i, MainCategory: "Rum"}
	}

	shaped, err := shaping.ShapeAll(authors, "age, id")
	require.NoError(t, err)
	require.Len(t, shaped, len(authors))

	for i, r := range shaped {
		assert.Equal(t, []string{"age", "id"}, r.Keys())
		age, _ := r.Get("age")
		id, _ := r.Get("id")
		assert.Equal(t, authors[i].Age, age)
		assert.Equal(t, authors[i].ID, id)
	}
}

func TestShapeAll_Empty(t *testing.T) {
	shaped, err := shaping.ShapeAll([]authorDto{}, "bogus")
	assert.ErrorIs(t, err, shaping.ErrFieldNotFound)
	assert.Nil(t, shaped)

	shaped, err = shaping.ShapeAll([]authorDto{}, "")
	require.NoError(t, err)
	assert.Empty(t, shaped)
}

func TestShape_DoesNotMutateSource(t *testing.T) {
	a := sampleAuthor()
	before := a

	r, err := shaping.Shape(&a, "name")
	require.NoError(t, err)
	r.Set("name", "changed")

	assert.Equal(t, before, a)
}

func TestResource_MarshalJSON_PreservesOrder(t *testing.T) {
	r, err := shaping.Shape(sampleAuthor(), "mainCategory,name,id")
	require.NoError(t, err)
	r.Set("links", []map[string]string{{"rel": "self"}})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"mainCategory":"Ships","name":"Berry Griffin Beach","id":"d28888e9-2ba9-473a-a40f-e38cb54f9b35","links":[{"rel":"self"}]}`,
		string(b))
}

func TestResource_SetExistingKeyKeepsPosition(t *testing.T) {
	r := shaping.NewResource(2)
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, 2, r.Len())
	v, _ := r.Get("a")
	assert.Equal(t, 3, v)

	b, err := json.Marshal(shaping.NewResource(0))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestHasProperties(t *testing.T) {
	tests := []struct {
		fields string
		want   bool
	}{
		{"", true},
		{"  ", true},
		{"id,name", true},
		{"ID , NaMe", true},
		{"id,madeUp", false},
		{"id,", false},
	}

	for _, tt := range tests {
		t.Run(tt.fields, func(t *testing.T) {
			assert.Equal(t, tt.want, shaping.TypeHasProperties[authorDto](tt.fields))
			assert.Equal(t, tt.want, shaping.HasProperties(reflect.TypeOf(&authorDto{}), tt.fields))
		})
	}

	assert.True(t, shaping.TypeHasProperties[int](""))
	assert.False(t, shaping.TypeHasProperties[int]("id"))
}

func TestDescribe_ConcurrentAndCached(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*shaping.Descriptor, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := shaping.DescribeType[authorDto]()
			assert.NoError(t, err)
			results[i] = d
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		assert.Same(t, results[0], d)
	}
	assert.Equal(t, []string{"id", "name", "age", "mainCategory"}, results[0].Names())
}
