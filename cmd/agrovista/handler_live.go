package main

import (
	"encoding/json"
	"net/http"

	"github.com/agrovista/agrovista/pkg/models"
)

type LiveValue struct {
	Kind    models.Kind     `json:"kind"`
	Label   string          `json:"label"`
	Unit    string          `json:"unit"`
	Reading *models.Reading `json:"reading"`
}

type LiveChart struct {
	Kind   models.Kind         `json:"kind"`
	Label  string              `json:"label"`
	Unit   string              `json:"unit"`
	Points []models.ChartPoint `json:"points"`
}

// getLiveHandler returns the current rotation sample for every sensor
// kind. A nil reading means the kind has no data yet and clients should
// render a placeholder.
func (rm *RouteManager) getLiveHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := rm.dashboardService.Live()

	values := make([]LiveValue, 0, len(models.AllKinds))
	for _, kind := range models.AllKinds {
		info := models.KindRegistry[kind]
		values = append(values, LiveValue{
			Kind:    kind,
			Label:   info.Label,
			Unit:    info.Unit,
			Reading: snapshot[kind],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(values)
}

// getLiveChartsHandler returns the current rotating chart window for
// every sensor kind
func (rm *RouteManager) getLiveChartsHandler(w http.ResponseWriter, r *http.Request) {
	windows := rm.dashboardService.LiveCharts()

	charts := make([]LiveChart, 0, len(models.AllKinds))
	for _, kind := range models.AllKinds {
		info := models.KindRegistry[kind]
		points := windows[kind]
		if points == nil {
			points = []models.ChartPoint{}
		}
		charts = append(charts, LiveChart{
			Kind:   kind,
			Label:  info.Label,
			Unit:   info.Unit,
			Points: points,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(charts)
}
