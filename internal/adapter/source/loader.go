package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
	"github.com/couchcryptid/creek-quality-dashboard/internal/observability"
	"github.com/couchcryptid/creek-quality-dashboard/internal/synthetic"
)

// ErrDataUnavailable wraps any failure to assemble the aggregate dataset
// when no fallback is configured.
var ErrDataUnavailable = errors.New("dashboard data unavailable")

// ResourceClient is the set of fetch operations the loader memoizes.
type ResourceClient interface {
	Stations(ctx context.Context) (map[string]domain.Station, error)
	Measurements(ctx context.Context) (map[string]domain.Series, error)
	LatestValues(ctx context.Context) (map[string]map[string]domain.LatestValue, error)
	AnalyteRanges(ctx context.Context) (domain.Ranges, error)
}

// Fallback configures the synthetic dataset used when the primary load fails.
type Fallback struct {
	Enabled bool
	Seed    int64
}

// Loader memoizes resource fetches for the process lifetime. Each resource
// is fetched at most once: concurrent callers share one in-flight request
// and later callers get the cached value. There is no eviction or refresh.
type Loader struct {
	client   ResourceClient
	fallback Fallback
	metrics  *observability.Metrics
	logger   *slog.Logger

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]any
}

// NewLoader creates a memoizing loader over the given client.
func NewLoader(client ResourceClient, fallback Fallback, metrics *observability.Metrics, logger *slog.Logger) *Loader {
	return &Loader{
		client:   client,
		fallback: fallback,
		metrics:  metrics,
		logger:   logger,
		cache:    make(map[string]any),
	}
}

// LoadAll fans out the four resource fetches concurrently and joins them
// into one validated dataset. On failure it either synthesizes a fallback
// dataset (when configured) or returns an error wrapping ErrDataUnavailable;
// it never returns a partial dataset.
func (l *Loader) LoadAll(ctx context.Context) (*domain.Dataset, error) {
	var (
		stations map[string]domain.Station
		series   map[string]domain.Series
		latest   map[string]map[string]domain.LatestValue
		ranges   domain.Ranges
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stations, err = l.Stations(gctx)
		return err
	})
	g.Go(func() (err error) {
		series, err = l.Measurements(gctx)
		return err
	})
	g.Go(func() (err error) {
		latest, err = l.LatestValues(gctx)
		return err
	})
	g.Go(func() (err error) {
		ranges, err = l.AnalyteRanges(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return l.degrade(err)
	}

	d := &domain.Dataset{
		Stations:      stations,
		Measurements:  series,
		LatestValues:  latest,
		AnalyteRanges: ranges,
	}
	if err := d.Validate(); err != nil {
		return l.degrade(fmt.Errorf("validate dataset: %w", err))
	}

	l.metrics.DatasetLoaded.Set(1)
	l.logger.Info("dataset loaded",
		"stations", len(d.Stations),
		"analytes", len(d.AnalyteNames()),
	)
	return d, nil
}

// degrade applies the fallback policy to a failed load.
func (l *Loader) degrade(cause error) (*domain.Dataset, error) {
	if !l.fallback.Enabled {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, cause)
	}

	l.logger.Warn("primary data load failed, generating synthetic dataset",
		"error", cause,
		"seed", l.fallback.Seed,
	)
	d := synthetic.Generate(l.fallback.Seed, synthetic.Options{})
	l.metrics.SyntheticFallback.Set(1)
	l.metrics.DatasetLoaded.Set(1)
	return d, nil
}

// Stations returns the memoized stations resource.
func (l *Loader) Stations(ctx context.Context) (map[string]domain.Station, error) {
	return resource(ctx, l, ResourceStations, l.client.Stations)
}

// Measurements returns the memoized measurements resource.
func (l *Loader) Measurements(ctx context.Context) (map[string]domain.Series, error) {
	return resource(ctx, l, ResourceMeasurements, l.client.Measurements)
}

// LatestValues returns the memoized latest-values resource.
func (l *Loader) LatestValues(ctx context.Context) (map[string]map[string]domain.LatestValue, error) {
	return resource(ctx, l, ResourceLatestValues, l.client.LatestValues)
}

// AnalyteRanges returns the memoized analyte-ranges resource.
func (l *Loader) AnalyteRanges(ctx context.Context) (domain.Ranges, error) {
	return resource(ctx, l, ResourceAnalyteRanges, l.client.AnalyteRanges)
}

// resource implements the load-once contract for one resource key: cache
// hit, or a singleflight fetch shared by all concurrent callers. Failed
// fetches are not cached, so a later call may retry.
func resource[T any](ctx context.Context, l *Loader, key string, fetch func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	if v, ok := l.cache[key]; ok {
		l.mu.Unlock()
		l.metrics.ResourceCache.WithLabelValues(key, "hit").Inc()
		return v.(T), nil
	}
	l.mu.Unlock()

	l.metrics.ResourceCache.WithLabelValues(key, "miss").Inc()

	v, err, _ := l.group.Do(key, func() (any, error) {
		// A caller that lost the flight race may arrive after completion;
		// re-check so the fetch stays once-only.
		l.mu.Lock()
		if v, ok := l.cache[key]; ok {
			l.mu.Unlock()
			return v, nil
		}
		l.mu.Unlock()

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[key] = fetched
		l.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
