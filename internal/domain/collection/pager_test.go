package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		size  int
		want  int
	}{
		{total: 0, size: 6, want: 1},
		{total: 1, size: 6, want: 1},
		{total: 6, size: 6, want: 1},
		{total: 7, size: 6, want: 2},
		{total: 13, size: 6, want: 3},
		{total: 13, size: 0, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPager_Paginate(t *testing.T) {
	p := NewPager(6)
	assert.Equal(t, 1, p.Current())

	assert.Equal(t, 3, p.Paginate(3, 13))
	assert.False(t, p.HasNext(13))
	assert.True(t, p.HasPrev())

	assert.Equal(t, 3, p.Paginate(10, 13), "clamped to the last page")
	assert.Equal(t, 1, p.Paginate(0, 13), "clamped to the first page")
	assert.Equal(t, 1, p.Paginate(-4, 13))
	assert.Equal(t, 1, p.Paginate(2, 0), "empty collection has one page")
}

func TestPager_ClampAfterShrink(t *testing.T) {
	p := NewPager(6)
	p.Paginate(3, 13)

	// единственная запись третьей страницы удалена
	assert.Equal(t, 2, p.Clamp(12))
	assert.Equal(t, 2, p.Clamp(12))
	assert.Equal(t, 1, p.Clamp(0))
}

func TestPager_Last(t *testing.T) {
	p := NewPager(6)
	assert.Equal(t, 3, p.Last(13))
	assert.Equal(t, 1, p.Last(0))
}

func TestWindow(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i + 1
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, Window(items, 1, 6))
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, Window(items, 2, 6))
	assert.Equal(t, []int{13}, Window(items, 3, 6))
	assert.Empty(t, Window(items, 4, 6))
	assert.Empty(t, Window(items, 0, 6))
	assert.Empty(t, Window([]int{}, 1, 6))
}

func TestPageRange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "single page", current: 1, total: 1, want: []int{1}},
		{name: "short range", current: 2, total: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "first page of many", current: 1, total: 10, want: []int{1, 2, -1, 10}},
		{name: "middle", current: 5, total: 10, want: []int{1, -1, 4, 5, 6, -1, 10}},
		{name: "last page", current: 10, total: 10, want: []int{1, -1, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageRange(tt.current, tt.total))
		})
	}
}
