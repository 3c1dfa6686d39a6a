package readings

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/agrovista/agrovista/pkg/models"
)

// Function endpoint names of the upstream reading services. The historical
// variants return the full record set (observed cap near 10k records).
var currentEndpoints = map[models.Kind]string{
	models.KindTemperature: "servicio-temperatura",
	models.KindHumidity:    "servicio-humidity",
	models.KindRain:        "servicio-lluvia",
	models.KindRadiation:   "servicio-radiacion",
}

var historicalEndpoints = map[models.Kind]string{
	models.KindTemperature: "servicio-temperatura-historico",
	models.KindHumidity:    "servicio-humedad-historico",
	models.KindRain:        "servicio-lluvia-historico",
	models.KindRadiation:   "servicio-radiacion-historico",
}

// Client fetches normalized sensor readings from the external function
// endpoints. Every fetch is a single attempt with its own timeout; failures
// degrade to an empty list, never an error.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new readings client
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		timeout: 15 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the per-call timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// wireReading is the upstream JSON shape
type wireReading struct {
	Value    float64          `json:"value"`
	Unit     string           `json:"unit"`
	TS       string           `json:"ts"`
	Location *models.Location `json:"location,omitempty"`
}

type readingsResponse struct {
	Readings []wireReading `json:"readings"`
}

// FetchCurrent returns the current readings for the given kind
func (c *Client) FetchCurrent(ctx context.Context, kind models.Kind) []models.Reading {
	return c.fetch(ctx, kind, currentEndpoints[kind])
}

// FetchHistorical returns the full historical record set for the given kind,
// sorted ascending by timestamp
func (c *Client) FetchHistorical(ctx context.Context, kind models.Kind) []models.Reading {
	return c.fetch(ctx, kind, historicalEndpoints[kind])
}

// FetchAllHistorical issues the four historical fetches concurrently and
// joins them. A failing endpoint yields an empty slice for that kind only;
// the other fetches still complete.
func (c *Client) FetchAllHistorical(ctx context.Context) map[models.Kind][]models.Reading {
	var wg sync.WaitGroup
	var mu sync.Mutex
	result := make(map[models.Kind][]models.Reading, len(models.AllKinds))

	for _, kind := range models.AllKinds {
		wg.Add(1)
		go func(kind models.Kind) {
			defer wg.Done()
			data := c.FetchHistorical(ctx, kind)
			mu.Lock()
			result[kind] = data
			mu.Unlock()
		}(kind)
	}

	wg.Wait()
	return result
}

// fetch performs a single POST against one function endpoint. Callers treat
// an empty result as "no data available", so every failure path logs and
// returns an empty slice.
func (c *Client) fetch(ctx context.Context, kind models.Kind, endpoint string) []models.Reading {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"name": "Functions"})
	if err != nil {
		log.Printf("❌ Failed to encode request for %s: %v", endpoint, err)
		return []models.Reading{}
	}

	url := c.baseURL + "/functions/v1/" + endpoint
	req, err := http.NewRequestWithContext(fetchCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ Failed to create request for %s: %v", endpoint, err)
		return []models.Reading{}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Error fetching %s: %v", endpoint, err)
		return []models.Reading{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Endpoint %s returned status %d", endpoint, resp.StatusCode)
		return []models.Reading{}
	}

	var payload readingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("❌ Failed to parse response from %s: %v", endpoint, err)
		return []models.Reading{}
	}

	unit := models.KindRegistry[kind].Unit
	readings := make([]models.Reading, 0, len(payload.Readings))
	for _, wr := range payload.Readings {
		ts, err := time.Parse(time.RFC3339, wr.TS)
		if err != nil {
			log.Printf("Skipping reading with invalid timestamp %q from %s", wr.TS, endpoint)
			continue
		}

		r := models.Reading{
			Value:     wr.Value,
			Unit:      wr.Unit,
			Timestamp: ts,
			Location:  wr.Location,
		}
		if r.Unit == "" {
			r.Unit = unit
		}
		readings = append(readings, r)
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})

	return readings
}
