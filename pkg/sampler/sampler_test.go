package sampler

import (
	"math/rand"
	"reflect"
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

func TestRotateSingle_OnlyTemperaturePopulated(t *testing.T) {
	data := map[models.Kind][]models.Reading{
		models.KindTemperature: makeReadings(10),
		models.KindHumidity:    {},
		models.KindRain:        nil,
		models.KindRadiation:   {},
	}

	s := New(data, WithRandSource(rand.NewSource(1)))
	snapshot := s.Snapshot()

	if snapshot[models.KindTemperature] == nil {
		t.Fatal("Expected a temperature value")
	}
	if snapshot[models.KindTemperature].Value < 0 || snapshot[models.KindTemperature].Value > 9 {
		t.Errorf("Sampled value out of dataset range: %f", snapshot[models.KindTemperature].Value)
	}

	for _, kind := range []models.Kind{models.KindHumidity, models.KindRain, models.KindRadiation} {
		if snapshot[kind] != nil {
			t.Errorf("Expected nil snapshot for empty %s, got %v", kind, snapshot[kind])
		}
	}
}

func TestRotateSingle_AllEmpty(t *testing.T) {
	s := New(map[models.Kind][]models.Reading{}, WithRandSource(rand.NewSource(1)))

	snapshot := s.Snapshot()
	for _, kind := range models.AllKinds {
		if snapshot[kind] != nil {
			t.Errorf("Expected nil snapshot for %s with no data", kind)
		}
	}
}

func TestRotateSingle_SharedIndexAcrossKinds(t *testing.T) {
	// Both kinds have the same length, so a single draw must land on the
	// same position in each
	data := map[models.Kind][]models.Reading{
		models.KindTemperature: makeReadings(50),
		models.KindHumidity:    makeReadings(50),
	}

	s := New(data, WithRandSource(rand.NewSource(42)))
	snapshot := s.Snapshot()

	tempVal := snapshot[models.KindTemperature]
	humVal := snapshot[models.KindHumidity]
	if tempVal == nil || humVal == nil {
		t.Fatal("Expected values for both populated kinds")
	}
	if tempVal.Value != humVal.Value {
		t.Errorf("Expected the same draw index for all kinds, got %f vs %f", tempVal.Value, humVal.Value)
	}
}

func TestRotateCharts_WindowSizeAndLabels(t *testing.T) {
	data := map[models.Kind][]models.Reading{
		models.KindTemperature: makeReadings(100),
	}

	s := New(data, WithRandSource(rand.NewSource(7)), WithWindowSize(8))
	charts := s.ChartWindows()

	window := charts[models.KindTemperature]
	if len(window) != 8 {
		t.Fatalf("Expected 8 chart points, got %d", len(window))
	}

	for i, point := range window {
		if want := strconv.Itoa(i + 1); point.Label != want {
			t.Errorf("Expected sequential label %s, got %s", want, point.Label)
		}
		if point.OriginalTimestamp == "" {
			t.Error("Expected original timestamp on rotated points")
		}
	}

	// Empty kinds publish empty windows, not nil panics
	if got := charts[models.KindRain]; len(got) != 0 {
		t.Errorf("Expected empty window for rain, got %d points", len(got))
	}
}

func TestRotateCharts_DrawsWithReplacement(t *testing.T) {
	// A single-element dataset forces every draw onto the same reading
	data := map[models.Kind][]models.Reading{
		models.KindHumidity: makeReadings(1),
	}

	s := New(data, WithRandSource(rand.NewSource(3)), WithWindowSize(5))
	window := s.ChartWindows()[models.KindHumidity]

	if len(window) != 5 {
		t.Fatalf("Expected 5 points, got %d", len(window))
	}
	for _, point := range window {
		if point.Value != 0 {
			t.Errorf("Expected repeated draws of the only reading, got %f", point.Value)
		}
	}
}

func TestStop_HaltsPublishing(t *testing.T) {
	data := map[models.Kind][]models.Reading{
		models.KindTemperature: makeReadings(100),
	}

	s := New(data,
		WithRandSource(rand.NewSource(9)),
		WithIntervals(time.Millisecond, time.Millisecond),
	)
	s.Start()

	// Let a few rotations land, then stop
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	// Allow any in-flight rotation to finish before sampling state
	time.Sleep(5 * time.Millisecond)

	before := reflect.ValueOf(s.Snapshot()).Pointer()
	time.Sleep(20 * time.Millisecond)
	after := reflect.ValueOf(s.Snapshot()).Pointer()

	if before != after {
		t.Error("Expected no snapshot publishes after Stop")
	}

	// Stop is idempotent
	s.Stop()
}
