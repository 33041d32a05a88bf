package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagerPagesAndBounds(t *testing.T) {
	rows := makeSales(45)
	p := NewPager(0)

	assert.Equal(t, DefaultPageSize, p.Size())
	assert.Equal(t, 5, p.PageCount(len(rows)))
	assert.False(t, p.Previous(), "previous on first page is a no-op")
	assert.Equal(t, 0, p.Index())

	for i := 0; i < 4; i++ {
		assert.True(t, p.Next(len(rows)))
	}
	assert.Equal(t, 4, p.Index())
	assert.False(t, p.Next(len(rows)), "next on last page is a no-op")
	assert.Equal(t, 4, p.Index())

	last := p.Page(rows)
	assert.Len(t, last, 5)
	assert.Equal(t, int64(41), last[0].ID)
}

func TestPagerClamp(t *testing.T) {
	p := NewPager(10)
	for p.Next(45) {
	}
	p.Clamp(3)
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 1, p.PageCount(3))
}

func TestPagerEmpty(t *testing.T) {
	p := NewPager(10)
	assert.Equal(t, 0, p.PageCount(0))
	assert.False(t, p.Next(0))
	assert.Empty(t, p.Page(nil))
}
