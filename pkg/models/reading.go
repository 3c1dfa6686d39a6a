package models

import (
	"fmt"
	"time"
)

// Kind identifies one of the simulated sensor feeds.
type Kind string

const (
	KindTemperature Kind = "temperature"
	KindHumidity    Kind = "humidity"
	KindRain        Kind = "rain"
	KindRadiation   Kind = "radiation"
)

// AllKinds lists every sensor kind in display order.
var AllKinds = []Kind{KindTemperature, KindHumidity, KindRain, KindRadiation}

// ParseKind validates a kind coming from a URL or request body.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTemperature, KindHumidity, KindRain, KindRadiation:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown sensor kind: %s", s)
}

// KindInfo holds display metadata for a sensor kind.
type KindInfo struct {
	Label string
	Unit  string
}

// KindRegistry maps sensor kinds to their display metadata.
var KindRegistry = map[Kind]KindInfo{
	KindTemperature: {Label: "Temperatura", Unit: "°C"},
	KindHumidity:    {Label: "Humedad", Unit: "%"},
	KindRain:        {Label: "Lluvia", Unit: "mm"},
	KindRadiation:   {Label: "Radiación Solar", Unit: "W/m²"},
}

// Location is an optional geolocation attached to map-plotted readings.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Reading is a single timestamped measurement pulled from an external
// reading endpoint. Readings are immutable once fetched.
type Reading struct {
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"ts"`
	Location  *Location `json:"location,omitempty"`
}

// ChartPoint is a display-ready projection of a reading. Label is either a
// global record index (history pages) or a synthetic sequence number (live
// rotation windows); the source timestamp is kept for tooltips.
type ChartPoint struct {
	Label             string  `json:"label"`
	Value             float64 `json:"value"`
	OriginalTimestamp string  `json:"original_ts,omitempty"`
}
