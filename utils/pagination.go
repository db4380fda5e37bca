package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// PageSize is the fixed page size shared by every list screen.
const PageSize = 20

const maxVisiblePages = 5

// ListParams are the filter inputs common to the list screens. StartDate and
// EndDate are "2006-01-02" strings; empty means unbounded on that side.
type ListParams struct {
	Search    string
	StartDate string
	EndDate   string
	Page      int
}

// ParseListParams reads the common list query parameters.
func ParseListParams(c *gin.Context) ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return ListParams{
		Search:    strings.TrimSpace(c.Query("search")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Page:      page,
	}
}

// Page is one page of a filtered record set plus the pagination state the
// console renders.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int   `json:"total"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	PageNumbers []int `json:"pageNumbers"`
}

// Paginate slices items into the requested page. The page is clamped into
// [1, totalPages], so a page left dangling after the filtered set shrank
// resolves to the new last page instead of coming back empty.
func Paginate[T any](items []T, page int) Page[T] {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		Total:       len(items),
		Page:        page,
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(page, totalPages),
	}
}

// PageNumbers returns at most five page buttons centered on current, shifted
// to stay within [1, totalPages].
func PageNumbers(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	start := current - maxVisiblePages/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisiblePages - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start+1 < maxVisiblePages {
		start = end - maxVisiblePages + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// MatchesSearch reports whether term is a case-insensitive substring of any
// field. An empty term matches everything; nil fields are skipped.
func MatchesSearch(term string, fields ...*string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), term) {
			return true
		}
	}
	return false
}

// InDateRange checks t against an inclusive [startDate, endDate] range at day
// granularity: the start bound is truncated to 00:00:00 and the end bound
// extended to the last instant of that day. Unparseable or empty bounds are
// ignored.
func InDateRange(t time.Time, startDate, endDate string) bool {
	if startDate != "" {
		if start, err := time.ParseInLocation("2006-01-02", startDate, t.Location()); err == nil {
			if t.Before(DayStart(start)) {
				return false
			}
		}
	}
	if endDate != "" {
		if end, err := time.ParseInLocation("2006-01-02", endDate, t.Location()); err == nil {
			if t.After(DayEnd(end)) {
				return false
			}
		}
	}
	return true
}

// DayStart returns local midnight of t's day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last nanosecond of t's day.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
