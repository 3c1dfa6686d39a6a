// Package dashboard composes the reading fetch adapter, the pagination
// engine and the live rotation sampler into the state behind the dashboard
// API. The service is the single owner of every data slice; fetched
// datasets flow one way into the pagers and the sampler and are replaced
// wholesale on reload, never mutated in place.
package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/agrovista/agrovista/pkg/models"
	"github.com/agrovista/agrovista/pkg/paging"
	"github.com/agrovista/agrovista/pkg/sampler"
)

// Fetcher is the slice of the readings client the service depends on.
type Fetcher interface {
	FetchAllHistorical(ctx context.Context) map[models.Kind][]models.Reading
	FetchCurrent(ctx context.Context, kind models.Kind) []models.Reading
}

// HistoryPage is one chart page of one sensor kind.
type HistoryPage struct {
	Kind       models.Kind         `json:"kind"`
	Unit       string              `json:"unit"`
	Points     []models.ChartPoint `json:"points"`
	Pagination paging.State        `json:"pagination"`
}

// Service owns the session-lifetime sensor datasets and their derived views.
type Service struct {
	fetcher     Fetcher
	samplerOpts []sampler.Option

	mu       sync.Mutex
	pagers   map[models.Kind]*paging.Pager
	smp      *sampler.Sampler
	loadedAt time.Time
}

// NewService creates an unloaded service. Call Load before serving.
func NewService(fetcher Fetcher, samplerOpts ...sampler.Option) *Service {
	return &Service{
		fetcher:     fetcher,
		samplerOpts: samplerOpts,
		pagers:      make(map[models.Kind]*paging.Pager),
	}
}

// Load fetches the four historical datasets concurrently, rebuilds one
// pager per kind and restarts the sampler over the fresh data. Also used
// for manual retries; a previous sampler is stopped before the new one
// starts so at most one rotation loop is live.
func (s *Service) Load(ctx context.Context) {
	data := s.fetcher.FetchAllHistorical(ctx)

	pagers := make(map[models.Kind]*paging.Pager, len(models.AllKinds))
	total := 0
	for _, kind := range models.AllKinds {
		pagers[kind] = paging.NewPager(data[kind], paging.DefaultPageSize)
		total += len(data[kind])
	}

	smp := sampler.New(data, s.samplerOpts...)

	s.mu.Lock()
	old := s.smp
	s.pagers = pagers
	s.smp = smp
	s.loadedAt = time.Now()
	s.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	smp.Start()

	log.Printf("✓ Loaded %d historical readings across %d sensor kinds", total, len(models.AllKinds))
}

// Stop tears down the rotation sampler. The service can be reloaded later.
func (s *Service) Stop() {
	s.mu.Lock()
	smp := s.smp
	s.mu.Unlock()

	if smp != nil {
		smp.Stop()
	}
}

// LoadedAt reports when the current datasets were fetched; zero before the
// first Load.
func (s *Service) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// Navigate applies a page transition for one kind and returns the resulting
// chart page. move is applied under the service lock since pagers carry the
// current page across requests.
func (s *Service) Navigate(kind models.Kind, move func(*paging.Pager)) HistoryPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	pager, ok := s.pagers[kind]
	if !ok {
		pager = paging.NewPager(nil, paging.DefaultPageSize)
		s.pagers[kind] = pager
	}

	if move != nil {
		move(pager)
	}

	return HistoryPage{
		Kind:       kind,
		Unit:       models.KindRegistry[kind].Unit,
		Points:     pager.ChartPoints(),
		Pagination: pager.State(),
	}
}

// HistoryPageFor returns the current page for a kind without navigating.
func (s *Service) HistoryPageFor(kind models.Kind) HistoryPage {
	return s.Navigate(kind, nil)
}

// Live returns the latest single-value rotation snapshot, or an all-nil
// snapshot before the first load.
func (s *Service) Live() sampler.Snapshot {
	s.mu.Lock()
	smp := s.smp
	s.mu.Unlock()

	if smp == nil {
		empty := make(sampler.Snapshot, len(models.AllKinds))
		for _, kind := range models.AllKinds {
			empty[kind] = nil
		}
		return empty
	}
	return smp.Snapshot()
}

// LiveCharts returns the latest chart rotation windows.
func (s *Service) LiveCharts() sampler.ChartWindows {
	s.mu.Lock()
	smp := s.smp
	s.mu.Unlock()

	if smp == nil {
		return sampler.ChartWindows{}
	}
	return smp.ChartWindows()
}

// Current proxies a current-readings fetch for one kind.
func (s *Service) Current(ctx context.Context, kind models.Kind) []models.Reading {
	return s.fetcher.FetchCurrent(ctx, kind)
}
