package dataset

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// Source loads a dataset from its backing artifact
type Source interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

const loadKey = "dataset"

// Loader memoizes the dataset for the process lifetime. Failed loads are
// not cached; the next caller retries.
type Loader struct {
	source  Source
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	ds    *domain.Dataset
	// gen is bumped by Reload; a load begun under an older gen is not cached
	gen uint64
}

// NewLoader creates a loader over source
func NewLoader(source Source, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Loader {
	if metrics == nil {
		metrics = infrastructure.NoopBusinessMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source:  source,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "dataset_loader")),
	}
}

// Dataset returns the shared dataset, loading it on first use
func (l *Loader) Dataset(ctx context.Context) (*domain.Dataset, error) {
	if ds := l.cached(); ds != nil {
		return ds, nil
	}
	return l.load(ctx)
}

// Reload drops the cached dataset and loads the artifact again. Callers
// holding the previous dataset keep a valid, unchanged reference.
func (l *Loader) Reload(ctx context.Context) (*domain.Dataset, error) {
	l.mu.Lock()
	l.ds = nil
	l.gen++
	l.group.Forget(loadKey)
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "dataset cache dropped")
	return l.load(ctx)
}

// Loaded reports whether a dataset is cached
func (l *Loader) Loaded() bool { return l.cached() != nil }

func (l *Loader) cached() *domain.Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ds
}

func (l *Loader) load(ctx context.Context) (*domain.Dataset, error) {
	ch := l.group.DoChan(loadKey, func() (interface{}, error) {
		l.mu.RLock()
		cached, gen := l.ds, l.gen
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		// Detached so one caller's cancellation does not fail the others
		// sharing this load.
		loadCtx := context.WithoutCancel(ctx)
		ds, err := l.source.Load(loadCtx)
		l.metrics.RecordDatasetLoad(loadCtx, ds.Len(), err)
		if err != nil {
			l.logger.ErrorContext(loadCtx, "dataset load failed", slog.String("error", err.Error()))
			return nil, err
		}

		l.mu.Lock()
		if l.gen == gen {
			l.ds = ds
		}
		l.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Dataset), nil
	}
}
