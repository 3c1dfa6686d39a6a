package paging

import (
	"strconv"
	"testing"
	"time"

	"github.com/agrovista/agrovista/pkg/models"
)

func makeReadings(n int) []models.Reading {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	readings := make([]models.Reading, n)
	for i := range readings {
		readings[i] = models.Reading{
			Value:     float64(i),
			Unit:      "°C",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return readings
}

func TestNewPager_TotalPages(t *testing.T) {
	testCases := []struct {
		name       string
		total      int
		pageSize   int
		totalPages int
	}{
		{"exact multiple", 200, 100, 2},
		{"remainder", 250, 100, 3},
		{"single partial page", 42, 100, 1},
		{"empty dataset still has one page", 0, 100, 1},
		{"one record", 1, 100, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPager(makeReadings(tc.total), tc.pageSize)
			state := p.State()

			if state.TotalPages != tc.totalPages {
				t.Errorf("Expected totalPages=%d, got %d", tc.totalPages, state.TotalPages)
			}
			if state.CurrentPage != 1 {
				t.Errorf("Expected initial page 1, got %d", state.CurrentPage)
			}
			if state.Total != tc.total {
				t.Errorf("Expected total=%d, got %d", tc.total, state.Total)
			}
		})
	}
}

func TestGoToPage_Clamps(t *testing.T) {
	p := NewPager(makeReadings(250), 100)

	testCases := []struct {
		name     string
		goTo     int
		expected int
	}{
		{"below range clamps to first", -5, 1},
		{"zero clamps to first", 0, 1},
		{"valid page", 2, 2},
		{"above range clamps to last", 99, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p.GoToPage(tc.goTo)
			if got := p.State().CurrentPage; got != tc.expected {
				t.Errorf("GoToPage(%d): expected page %d, got %d", tc.goTo, tc.expected, got)
			}
		})
	}
}

func TestGoToPage_Idempotent(t *testing.T) {
	p := NewPager(makeReadings(250), 100)

	p.GoToPage(2)
	first := p.State()
	window := p.Window()

	p.GoToPage(2)
	if p.State() != first {
		t.Errorf("Expected identical state after repeated GoToPage, got %+v vs %+v", p.State(), first)
	}
	again := p.Window()
	if len(window) != len(again) || window[0].Value != again[0].Value {
		t.Error("Expected identical window after repeated GoToPage")
	}
}

func TestWindow_LastPageCarriesRemainder(t *testing.T) {
	p := NewPager(makeReadings(250), 100)

	p.GoToPage(3)
	window := p.Window()

	if len(window) != 50 {
		t.Fatalf("Expected 50 readings on the last page, got %d", len(window))
	}
	if p.State().CurrentPage != 3 || p.State().TotalPages != 3 {
		t.Errorf("Expected page 3 of 3, got %+v", p.State())
	}
	if window[0].Value != 200 {
		t.Errorf("Expected last page to start at record 201 (value 200), got %f", window[0].Value)
	}
}

func TestWindow_EmptyDataset(t *testing.T) {
	p := NewPager(nil, 100)

	for _, nav := range []func(){p.First, p.Prev, p.Next, p.Last} {
		nav()
		if len(p.Window()) != 0 {
			t.Fatal("Expected empty window for empty dataset")
		}
		if len(p.ChartPoints()) != 0 {
			t.Fatal("Expected no chart points for empty dataset")
		}
	}
}

func TestNavigation_Derived(t *testing.T) {
	p := NewPager(makeReadings(250), 100)

	p.Next()
	if p.State().CurrentPage != 2 {
		t.Errorf("Expected page 2 after Next, got %d", p.State().CurrentPage)
	}

	p.Last()
	if p.State().CurrentPage != 3 {
		t.Errorf("Expected page 3 after Last, got %d", p.State().CurrentPage)
	}

	// Next on the last page stays put
	p.Next()
	if p.State().CurrentPage != 3 {
		t.Errorf("Expected Next to clamp on last page, got %d", p.State().CurrentPage)
	}

	p.First()
	if p.State().CurrentPage != 1 {
		t.Errorf("Expected page 1 after First, got %d", p.State().CurrentPage)
	}

	// Prev on the first page stays put
	p.Prev()
	if p.State().CurrentPage != 1 {
		t.Errorf("Expected Prev to clamp on first page, got %d", p.State().CurrentPage)
	}
}

func TestChartPoints_GlobalIndexRoundTrip(t *testing.T) {
	const total = 250
	const pageSize = 100
	p := NewPager(makeReadings(total), pageSize)

	for page := 1; page <= p.State().TotalPages; page++ {
		p.GoToPage(page)
		points := p.ChartPoints()

		for i, point := range points {
			// Re-deriving the global position from page and local index must
			// reproduce the label for every record of every page
			globalPos := (page-1)*pageSize + i + 1
			if point.Label != strconv.Itoa(globalPos) {
				t.Fatalf("page %d, local %d: expected label %d, got %s", page, i, globalPos, point.Label)
			}
			if point.Value != float64(globalPos-1) {
				t.Fatalf("page %d, local %d: expected value %d, got %f", page, i, globalPos-1, point.Value)
			}
			if point.OriginalTimestamp == "" {
				t.Fatal("Expected original timestamp to be preserved")
			}
		}
	}
}

func TestReset_ReturnsToFirstPage(t *testing.T) {
	p := NewPager(makeReadings(250), 100)
	p.Last()

	p.Reset(makeReadings(30))
	state := p.State()

	if state.CurrentPage != 1 || state.TotalPages != 1 || state.Total != 30 {
		t.Errorf("Expected fresh state on page 1, got %+v", state)
	}
	if len(p.Window()) != 30 {
		t.Errorf("Expected 30 readings in window, got %d", len(p.Window()))
	}
}
