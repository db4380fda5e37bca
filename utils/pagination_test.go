package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaginateSplitsIntoFixedPages(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	p1 := Paginate(items, 1)
	p2 := Paginate(items, 2)
	p3 := Paginate(items, 3)

	assert.Len(t, p1.Items, 20)
	assert.Len(t, p2.Items, 20)
	assert.Len(t, p3.Items, 5)
	assert.Equal(t, 45, p1.Total)
	assert.Equal(t, 3, p1.TotalPages)

	// concatenating the pages reproduces the input
	var all []int
	all = append(all, p1.Items...)
	all = append(all, p2.Items...)
	all = append(all, p3.Items...)
	assert.Equal(t, items, all)
}

func TestPaginateClampsPage(t *testing.T) {
	items := make([]int, 45)

	past := Paginate(items, 99)
	assert.Equal(t, 3, past.Page)
	assert.Len(t, past.Items, 5)

	below := Paginate(items, 0)
	assert.Equal(t, 1, below.Page)
	assert.Len(t, below.Items, 20)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string{}, 1)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.PageNumbers)
}

func TestPageNumbersWindow(t *testing.T) {
	// fewer pages than the window
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(2, 3))

	// centered in the middle
	assert.Equal(t, []int{3, 4, 5, 6, 7}, PageNumbers(5, 10))

	// shifted at the edges
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(1, 10))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(2, 10))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageNumbers(10, 10))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageNumbers(9, 10))
}

func TestMatchesSearch(t *testing.T) {
	title := "Weekend Plans"
	content := "anyone up for hiking?"

	assert.True(t, MatchesSearch("", &title, &content))
	assert.True(t, MatchesSearch("weekend", &title, &content))
	assert.True(t, MatchesSearch("HIKING", &title, &content))
	assert.False(t, MatchesSearch("cooking", &title, &content))
	assert.False(t, MatchesSearch("anything", nil, nil))
}

func TestInDateRangeInclusiveBounds(t *testing.T) {
	lastInstant := time.Date(2025, 3, 10, 23, 59, 59, 0, time.Local)
	assert.True(t, InDateRange(lastInstant, "2025-03-01", "2025-03-10"))

	nextMidnight := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)
	assert.False(t, InDateRange(nextMidnight, "2025-03-01", "2025-03-10"))

	firstInstant := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, InDateRange(firstInstant, "2025-03-01", "2025-03-10"))

	beforeStart := time.Date(2025, 2, 28, 12, 0, 0, 0, time.Local)
	assert.False(t, InDateRange(beforeStart, "2025-03-01", ""))
}

func TestInDateRangeIgnoresBadBounds(t *testing.T) {
	now := time.Now()
	assert.True(t, InDateRange(now, "", ""))
	assert.True(t, InDateRange(now, "not-a-date", "also-bad"))
}
