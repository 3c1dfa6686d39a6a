// Package sampler republishes randomly chosen historical readings as if
// they were a live feed. A single loop owns both cadences: one for the
// per-kind "current value" snapshot, one for the animated chart windows.
package sampler

import (
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/agrovista/agrovista/pkg/models"
)

const (
	// DefaultSingleInterval is the cadence of the single-value rotation.
	DefaultSingleInterval = 3 * time.Second
	// DefaultChartInterval is the cadence of the chart-window rotation,
	// intentionally offset from the single-value cadence.
	DefaultChartInterval = 2 * time.Second
	// DefaultWindowSize is the number of points per rotated chart window.
	DefaultWindowSize = 8
)

// Snapshot holds the published "current reading" per kind. A kind with no
// data has a nil entry and renders as a placeholder, never as zero.
type Snapshot map[models.Kind]*models.Reading

// ChartWindows holds the published rotation window per kind, labeled
// sequentially rather than by timestamp.
type ChartWindows map[models.Kind][]models.ChartPoint

// Sampler drives the live rotation over a fixed in-memory reading set.
// The dataset is never mutated; published state is replaced wholesale.
type Sampler struct {
	data           map[models.Kind][]models.Reading
	singleInterval time.Duration
	chartInterval  time.Duration
	windowSize     int
	rng            *rand.Rand

	mu       sync.RWMutex
	snapshot Snapshot
	charts   ChartWindows

	stopChan chan struct{}
	stopOnce sync.Once
}

// Option configures a Sampler
type Option func(*Sampler)

// WithIntervals overrides both rotation cadences (used by tests)
func WithIntervals(single, chart time.Duration) Option {
	return func(s *Sampler) {
		s.singleInterval = single
		s.chartInterval = chart
	}
}

// WithWindowSize overrides the chart window size
func WithWindowSize(n int) Option {
	return func(s *Sampler) {
		s.windowSize = n
	}
}

// WithRandSource injects a deterministic random source
func WithRandSource(src rand.Source) Option {
	return func(s *Sampler) {
		s.rng = rand.New(src)
	}
}

// New creates a sampler over the given full reading sets and publishes an
// initial snapshot so consumers never observe empty state after Start.
func New(data map[models.Kind][]models.Reading, opts ...Option) *Sampler {
	s := &Sampler{
		data:           data,
		singleInterval: DefaultSingleInterval,
		chartInterval:  DefaultChartInterval,
		windowSize:     DefaultWindowSize,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		stopChan:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rotateSingle()
	s.rotateCharts()

	return s
}

// Start begins both rotations. Call only after the initial load succeeded.
func (s *Sampler) Start() {
	go s.run()
	log.Println("✓ Live rotation sampler started")
}

// Stop halts both rotations; no further snapshots are published. Safe to
// call more than once.
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		log.Println("✓ Live rotation sampler stopped")
	})
}

// run owns both cadences in one loop so the rand source needs no locking.
func (s *Sampler) run() {
	singleTicker := time.NewTicker(s.singleInterval)
	defer singleTicker.Stop()

	chartTicker := time.NewTicker(s.chartInterval)
	defer chartTicker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-singleTicker.C:
			s.rotateSingle()
		case <-chartTicker.C:
			s.rotateCharts()
		}
	}
}

// maxLen returns the longest dataset length across kinds
func (s *Sampler) maxLen() int {
	max := 0
	for _, readings := range s.data {
		if len(readings) > max {
			max = len(readings)
		}
	}
	return max
}

// rotateSingle draws one uniform index and publishes, per kind, the reading
// at that index if present. Draws are with replacement; the same index may
// recur.
func (s *Sampler) rotateSingle() {
	snapshot := make(Snapshot, len(models.AllKinds))

	max := s.maxLen()
	var idx int
	if max > 0 {
		idx = s.rng.Intn(max)
	}

	for _, kind := range models.AllKinds {
		readings := s.data[kind]
		if idx < len(readings) {
			r := readings[idx]
			snapshot[kind] = &r
		} else {
			snapshot[kind] = nil
		}
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
}

// rotateCharts draws windowSize uniform indices per kind, with replacement,
// unsorted and undeduplicated, and publishes them labeled sequentially. The
// discontinuous animation is the point.
func (s *Sampler) rotateCharts() {
	charts := make(ChartWindows, len(models.AllKinds))

	for _, kind := range models.AllKinds {
		readings := s.data[kind]
		if len(readings) == 0 {
			charts[kind] = []models.ChartPoint{}
			continue
		}

		points := make([]models.ChartPoint, s.windowSize)
		for i := range points {
			r := readings[s.rng.Intn(len(readings))]
			points[i] = models.ChartPoint{
				Label:             strconv.Itoa(i + 1),
				Value:             r.Value,
				OriginalTimestamp: r.Timestamp.Format(time.RFC3339),
			}
		}
		charts[kind] = points
	}

	s.mu.Lock()
	s.charts = charts
	s.mu.Unlock()
}

// Snapshot returns the latest single-value rotation state.
func (s *Sampler) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// ChartWindows returns the latest chart rotation state.
func (s *Sampler) ChartWindows() ChartWindows {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charts
}
