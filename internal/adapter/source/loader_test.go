package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
	"github.com/couchcryptid/creek-quality-dashboard/internal/observability"
)

// --- counting fake for loader tests ---

type countingClient struct {
	mu    sync.Mutex
	calls map[string]int

	failStations int // fail this many Stations calls before succeeding
	data         *domain.Dataset
}

func newCountingClient() *countingClient {
	return &countingClient{
		calls: make(map[string]int),
		data:  loaderDataset(),
	}
}

func (c *countingClient) count(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[resource]++
	return c.calls[resource]
}

func (c *countingClient) callCount(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[resource]
}

func (c *countingClient) Stations(_ context.Context) (map[string]domain.Station, error) {
	if n := c.count(ResourceStations); n <= c.failStations {
		return nil, errors.New("connection refused")
	}
	return c.data.Stations, nil
}

func (c *countingClient) Measurements(_ context.Context) (map[string]domain.Series, error) {
	c.count(ResourceMeasurements)
	return c.data.Measurements, nil
}

func (c *countingClient) LatestValues(_ context.Context) (map[string]map[string]domain.LatestValue, error) {
	c.count(ResourceLatestValues)
	return c.data.LatestValues, nil
}

func (c *countingClient) AnalyteRanges(_ context.Context) (domain.Ranges, error) {
	c.count(ResourceAnalyteRanges)
	return c.data.AnalyteRanges, nil
}

func ptr(v float64) *float64 { return &v }

func loaderDataset() *domain.Dataset {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Dataset{
		Stations: map[string]domain.Station{
			"SRA100": {Code: "SRA100", Name: "Station SRA100", Latitude: 37.86, Longitude: -122.04,
				Analytes: []string{"pH"}, MeasurementCount: 1},
		},
		Measurements: map[string]domain.Series{
			"SRA100": {"pH": {{Date: date, Value: 7.2}}},
		},
		LatestValues: map[string]map[string]domain.LatestValue{
			"SRA100": {"pH": {Value: 7.2, Date: date, Status: domain.StatusAcceptable}},
		},
		AnalyteRanges: domain.Ranges{"pH": {Min: ptr(6.5), Max: ptr(8.5)}},
	}
}

func newTestLoader(c ResourceClient, fb Fallback) *Loader {
	return NewLoader(c, fb, observability.NewMetricsForTesting(), discardLogger())
}

// --- tests ---

func TestLoader_Memoizes(t *testing.T) {
	client := newCountingClient()
	l := newTestLoader(client, Fallback{})

	for range 3 {
		stations, err := l.Stations(context.Background())
		require.NoError(t, err)
		assert.Len(t, stations, 1)
	}

	assert.Equal(t, 1, client.callCount(ResourceStations), "completed fetch is cached for the session")
}

func TestLoader_ConcurrentCallsShareOneFetch(t *testing.T) {
	client := newCountingClient()
	l := newTestLoader(client, Fallback{})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Measurements(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, client.callCount(ResourceMeasurements), "concurrent loads must de-duplicate")
}

func TestLoader_FailedFetchIsNotCached(t *testing.T) {
	client := newCountingClient()
	client.failStations = 1
	l := newTestLoader(client, Fallback{})

	_, err := l.Stations(context.Background())
	require.Error(t, err)

	stations, err := l.Stations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 1)
	assert.Equal(t, 2, client.callCount(ResourceStations))
}

func TestLoader_LoadAll(t *testing.T) {
	client := newCountingClient()
	l := newTestLoader(client, Fallback{})

	d, err := l.LoadAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, d.Stations, 1)
	assert.False(t, d.Synthetic)
	assert.Equal(t, domain.StatusAcceptable, d.StatusFor("SRA100", "pH"))

	// Each resource fetched exactly once across the fan-out.
	for _, r := range []string{ResourceStations, ResourceMeasurements, ResourceLatestValues, ResourceAnalyteRanges} {
		assert.Equal(t, 1, client.callCount(r), r)
	}

	// A later LoadAll is served entirely from cache.
	_, err = l.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.callCount(ResourceStations))
}

func TestLoader_LoadAll_FailureWithoutFallback(t *testing.T) {
	client := newCountingClient()
	client.failStations = 1000
	l := newTestLoader(client, Fallback{})

	_, err := l.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestLoader_LoadAll_ValidationFailure(t *testing.T) {
	client := newCountingClient()
	client.data.Measurements["GHOST"] = domain.Series{}
	l := newTestLoader(client, Fallback{})

	_, err := l.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Contains(t, err.Error(), "unknown station")
}

func TestLoader_LoadAll_FallbackSynthesizes(t *testing.T) {
	client := newCountingClient()
	client.failStations = 1000
	l := newTestLoader(client, Fallback{Enabled: true, Seed: 42})

	d, err := l.LoadAll(context.Background())
	require.NoError(t, err)

	assert.True(t, d.Synthetic)
	assert.Len(t, d.Stations, 6)
	require.NoError(t, d.Validate())

	// Same seed yields the same fabricated dataset.
	l2 := newTestLoader(client, Fallback{Enabled: true, Seed: 42})
	d2, err := l2.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, d.Measurements, d2.Measurements)
}
