package dto

import (
	"math"
	"testing"

	"anoa.com/storerating/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestListQueryNormalize(t *testing.T) {
	q := ListQuery{Page: 0, Limit: 500}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 0, q.Offset())

	q = ListQuery{Page: 3, Limit: 10}
	q.Normalize()
	assert.Equal(t, 20, q.Offset())

	q = ListQuery{Page: math.MaxInt, Limit: MaxLimit}
	q.Normalize()
	assert.Equal(t, MaxPage, q.Page)
	assert.Positive(t, q.Offset())
	assert.LessOrEqual(t, q.Offset(), math.MaxInt32)
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 10, 21)

	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)

	empty := NewPaginationMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPrevPage)
}

func TestListQueryDescending(t *testing.T) {
	desc, err := ListQuery{}.Descending(true)
	assert.NoError(t, err)
	assert.True(t, desc)

	desc, err = ListQuery{SortOrder: "ASC"}.Descending(true)
	assert.NoError(t, err)
	assert.False(t, desc)

	_, err = ListQuery{SortOrder: "sideways"}.Descending(false)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}
