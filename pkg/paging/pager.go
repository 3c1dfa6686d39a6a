// Package paging slices a fully-loaded, ascending reading set into
// fixed-size chart pages. Navigation clamps instead of erroring, so a pager
// is always on a valid page.
package paging

import (
	"strconv"
	"time"

	"github.com/agrovista/agrovista/pkg/models"
)

// DefaultPageSize is the number of readings per chart page.
const DefaultPageSize = 100

// State is the externally visible pagination state for one sensor kind.
type State struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
	Total       int `json:"total"`
}

// Pager owns one kind's full reading set and a current page. The data slice
// is never mutated, only replaced wholesale via Reset.
type Pager struct {
	data        []models.Reading
	currentPage int
	pageSize    int
	totalPages  int
}

// NewPager creates a pager positioned on page 1. A pageSize below 1 falls
// back to DefaultPageSize. An empty dataset has one empty page, so
// 1 <= currentPage <= totalPages holds unconditionally.
func NewPager(data []models.Reading, pageSize int) *Pager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	p := &Pager{pageSize: pageSize}
	p.Reset(data)
	return p
}

// Reset replaces the dataset and returns to page 1.
func (p *Pager) Reset(data []models.Reading) {
	p.data = data
	p.totalPages = (len(data) + p.pageSize - 1) / p.pageSize
	if p.totalPages == 0 {
		p.totalPages = 1
	}
	p.currentPage = 1
}

// GoToPage moves to page n, clamped to [1, totalPages].
func (p *Pager) GoToPage(n int) {
	if n < 1 {
		n = 1
	}
	if n > p.totalPages {
		n = p.totalPages
	}
	p.currentPage = n
}

// First moves to the first page.
func (p *Pager) First() { p.GoToPage(1) }

// Last moves to the last page.
func (p *Pager) Last() { p.GoToPage(p.totalPages) }

// Next moves one page forward, clamping at the last page.
func (p *Pager) Next() { p.GoToPage(p.currentPage + 1) }

// Prev moves one page back, clamping at the first page.
func (p *Pager) Prev() { p.GoToPage(p.currentPage - 1) }

// State returns the current pagination state.
func (p *Pager) State() State {
	return State{
		CurrentPage: p.currentPage,
		PageSize:    p.pageSize,
		TotalPages:  p.totalPages,
		Total:       len(p.data),
	}
}

// Window returns the readings of the current page. The window length is
// min(pageSize, remaining); the last page carries the remainder.
func (p *Pager) Window() []models.Reading {
	start := (p.currentPage - 1) * p.pageSize
	if start >= len(p.data) {
		return []models.Reading{}
	}

	end := start + p.pageSize
	if end > len(p.data) {
		end = len(p.data)
	}

	return p.data[start:end]
}

// ChartPoints projects the current window into chart points. Labels are
// global 1-based record positions so the X axis stays continuous across
// pages; the source timestamp is preserved for tooltips.
func (p *Pager) ChartPoints() []models.ChartPoint {
	window := p.Window()
	offset := (p.currentPage - 1) * p.pageSize

	points := make([]models.ChartPoint, len(window))
	for i, r := range window {
		points[i] = models.ChartPoint{
			Label:             strconv.Itoa(offset + i + 1),
			Value:             r.Value,
			OriginalTimestamp: r.Timestamp.Format(time.RFC3339),
		}
	}

	return points
}
