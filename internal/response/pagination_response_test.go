package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 50, 120)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, int64(120), p.TotalItems)
	assert.True(t, p.HasMore)
	assert.Equal(t, 51, p.From)
	assert.Equal(t, 100, p.To)
}

func TestNewPaginationLastPage(t *testing.T) {
	p := NewPagination(3, 50, 120)

	assert.False(t, p.HasMore)
	assert.Equal(t, 101, p.From)
	assert.Equal(t, 120, p.To)
}

func TestNewPaginationBeyondEnd(t *testing.T) {
	p := NewPagination(10, 50, 120)

	assert.Equal(t, 0, p.From)
	assert.Equal(t, 0, p.To)
	assert.False(t, p.HasMore)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(1, 50, 0)

	assert.Equal(t, int64(0), p.TotalPages)
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 0, p.To)
	assert.False(t, p.HasMore)
}
