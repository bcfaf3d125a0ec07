// Package dashboard orchestrates the dashboard: the App owns the loaded
// dataset, and Sessions carry the per-browser UI state (analyte selection,
// chart colors, open detail panel).
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/creek-quality-dashboard/internal/adapter/source"
	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
	"github.com/couchcryptid/creek-quality-dashboard/internal/observability"
)

// App loads the dataset once at startup and hands out sessions over it.
type App struct {
	loader         *source.Loader
	defaultAnalyte string
	metrics        *observability.Metrics
	logger         *slog.Logger

	mu   sync.RWMutex
	data *domain.Dataset
}

// New creates an App. defaultAnalyte seeds every session's selection set.
func New(loader *source.Loader, defaultAnalyte string, metrics *observability.Metrics, logger *slog.Logger) *App {
	return &App{
		loader:         loader,
		defaultAnalyte: defaultAnalyte,
		metrics:        metrics,
		logger:         logger,
	}
}

// Init performs the initial aggregate load. It fails as a whole, with no
// partial initialization and no retry; the loader's fallback policy is the
// only degradation path.
func (a *App) Init(ctx context.Context) error {
	d, err := a.loader.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("initialize dashboard: %w", err)
	}

	a.mu.Lock()
	a.data = d
	a.mu.Unlock()

	if d.Synthetic {
		a.logger.Warn("dashboard running on synthetic fallback data")
	}
	return nil
}

// CheckReadiness returns nil once the dataset has loaded.
func (a *App) CheckReadiness(_ context.Context) error {
	if a.Dataset() == nil {
		return errors.New("dataset not loaded yet")
	}
	return nil
}

// Dataset returns the loaded dataset, or nil before Init completes.
func (a *App) Dataset() *domain.Dataset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data
}

// DefaultAnalyte is the analyte pre-selected in new sessions.
func (a *App) DefaultAnalyte() string {
	return a.defaultAnalyte
}
