package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortColumnsOrderBy(t *testing.T) {
	cols := SortColumns{"name": "s.name", "created_at": "s.created_at"}

	got := cols.OrderBy("created_at", "name", true)
	assert.Equal(t, "s.created_at", got.Column.Name)
	assert.True(t, got.Column.Raw)
	assert.True(t, got.Desc)

	got = cols.OrderBy("name; DROP TABLE stores", "name", false)
	assert.Equal(t, "s.name", got.Column.Name)
	assert.False(t, got.Desc)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
}
