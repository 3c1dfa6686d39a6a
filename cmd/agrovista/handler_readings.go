package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/agrovista/agrovista/pkg/models"
	"github.com/agrovista/agrovista/pkg/paging"
)

// getReadingHistoryHandler serves one chart page of a sensor kind.
// Query params:
//   - page: absolute page number, or one of first/last/next/prev
//
// Without a page param the current page is returned unchanged.
func (rm *RouteManager) getReadingHistoryHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	pageParam := r.URL.Query().Get("page")

	var move func(*paging.Pager)
	switch pageParam {
	case "":
		move = func(p *paging.Pager) {}
	case "first":
		move = func(p *paging.Pager) { p.First() }
	case "last":
		move = func(p *paging.Pager) { p.Last() }
	case "next":
		move = func(p *paging.Pager) { p.Next() }
	case "prev":
		move = func(p *paging.Pager) { p.Prev() }
	default:
		n, err := strconv.Atoi(pageParam)
		if err != nil {
			http.Error(w, "Invalid page parameter", http.StatusBadRequest)
			return
		}
		move = func(p *paging.Pager) { p.GoToPage(n) }
	}

	page := rm.dashboardService.Navigate(kind, move)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// getCurrentReadingsHandler proxies the live endpoint of one sensor kind.
// Upstream failures surface as an empty list, never as an error.
func (rm *RouteManager) getCurrentReadingsHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	readings := rm.dashboardService.Current(r.Context(), kind)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"kind":     kind,
		"unit":     models.KindRegistry[kind].Unit,
		"readings": readings,
	})
}

// reloadReadingsHandler re-fetches all historical datasets
func (rm *RouteManager) reloadReadingsHandler(w http.ResponseWriter, r *http.Request) {
	rm.dashboardService.Load(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"loaded_at": rm.dashboardService.LoadedAt().Format(time.RFC3339),
	})
}

// parseKind extracts and validates the {kind} route variable
func parseKind(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	kind, err := models.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return kind, true
}
