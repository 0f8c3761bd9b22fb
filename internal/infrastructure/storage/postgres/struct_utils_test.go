package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockpos/internal/core/entity"
	"stockpos/internal/core/id"
)

type mockCatalog struct {
	entity.Base
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	Ignored     string  `db:"-"`
	NoTag       string
}

func TestExtractDBColumns_IncludesEmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "version", "created_at", "updated_at", "deleted_at", "name", "description",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.Len(t, cols, len(expectedCols))
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	cols := ExtractDBColumns[*mockCatalog]()
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "id")
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	desc := "test description"
	cat := mockCatalog{
		Base: entity.Base{
			ID:        id.New(),
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
			DeletedAt: &now,
		},
		Name:        "Test Name",
		Description: &desc,
		Ignored:     "skip",
		NoTag:       "skip",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, &now, m["deleted_at"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, &desc, m["description"])
	assert.NotContains(t, m, "Ignored")
	assert.NotContains(t, m, "NoTag")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Base: entity.NewBase(), Name: "ptr"}
	m := StructToMap(cat)
	assert.Equal(t, "ptr", m["name"])
}
