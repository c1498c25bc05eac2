package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePaginationMeta(t *testing.T) {
	meta := CreatePaginationMeta(2, 15, 31)
	assert.Equal(t, 3, meta.LastPage)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	meta = CreatePaginationMeta(1, 15, 0)
	assert.Equal(t, 1, meta.LastPage)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)

	meta = CreatePaginationMeta(3, 15, 45)
	assert.Equal(t, 3, meta.LastPage)
	assert.False(t, meta.HasNext)
}
