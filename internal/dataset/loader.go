package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/metrics"
)

// Loader memoizes the dataset read from a Source. The first successful read is kept for the
// life of the process; concurrent first calls share one read. Failures are not cached.
type Loader struct {
	source Source
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	ds    *candy.Dataset
}

func NewLoader(src Source, logger *slog.Logger) *Loader {
	return &Loader{source: src, logger: logger}
}

// Load returns the cached dataset, reading the source if nothing is cached yet.
// Any failure is reported as candy.ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context) (*candy.Dataset, error) {
	if ds := l.cached(); ds != nil {
		return ds, nil
	}

	// The read is shared by every waiting caller, so one caller's cancellation must not end it.
	readCtx := context.WithoutCancel(ctx)
	v, err, _ := l.group.Do("dataset", func() (interface{}, error) {
		if ds := l.cached(); ds != nil {
			return ds, nil
		}
		return l.read(readCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*candy.Dataset), nil
}

func (l *Loader) cached() *candy.Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ds
}

func (l *Loader) read(ctx context.Context) (*candy.Dataset, error) {
	start := time.Now()
	records, err := l.source.Load(ctx)
	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatasetLoads.WithLabelValues("error").Inc()
		return nil, unavailable(l.source.Name(), err)
	}
	if len(records) == 0 {
		metrics.DatasetLoads.WithLabelValues("error").Inc()
		return nil, unavailable(l.source.Name(), errors.New("no rows"))
	}

	ds, err := candy.NewDataset(records)
	if err != nil {
		metrics.DatasetLoads.WithLabelValues("error").Inc()
		return nil, unavailable(l.source.Name(), err)
	}

	l.mu.Lock()
	l.ds = ds
	l.mu.Unlock()

	metrics.DatasetLoads.WithLabelValues("ok").Inc()
	metrics.DatasetRows.Set(float64(ds.Len()))
	l.logger.Info("dataset loaded",
		"source", l.source.Name(),
		"rows", ds.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

func unavailable(source string, err error) error {
	if errors.Is(err, candy.ErrDataUnavailable) {
		return fmt.Errorf("%s: %w", source, err)
	}
	return fmt.Errorf("%w: %s: %w", candy.ErrDataUnavailable, source, err)
}
