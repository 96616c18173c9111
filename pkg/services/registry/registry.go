// Package registry caches canonical datasets per kind for the process
// lifetime. Datasets are built lazily on first access and shared read-only
// across sessions.
package registry

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/normalizer"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Source supplies the raw table for a dataset kind. Fetch happens at most
// once per kind between invalidations.
type Source interface {
	Fetch(ctx context.Context, kind domain.DatasetKind) (*domain.RawTable, error)
}

type Registry interface {
	// Get returns the canonical dataset for a kind, normalizing on first
	// access. Concurrent first accesses coalesce into a single build; every
	// caller receives the same dataset or the same error.
	Get(ctx context.Context, kind domain.DatasetKind) (*domain.Dataset, error)
	// Invalidate drops the cached dataset (or cached failure) so the next
	// Get re-normalizes from source.
	Invalidate(kind domain.DatasetKind)
	IsLoaded(kind domain.DatasetKind) bool
	// Generation increases on every invalidation. View memoization keys on
	// it so cached views die with the data they were computed from.
	Generation() uint64
}

type entry struct {
	ds  *domain.Dataset
	err error
}

type registry struct {
	source     Source
	normalizer *normalizer.Normalizer

	mu         sync.RWMutex
	entries    map[domain.DatasetKind]*entry
	group      singleflight.Group
	generation atomic.Uint64
}

func New(source Source, n *normalizer.Normalizer) Registry {
	return &registry{
		source:     source,
		normalizer: n,
		entries:    make(map[domain.DatasetKind]*entry),
	}
}

func (r *registry) Get(ctx context.Context, kind domain.DatasetKind) (*domain.Dataset, error) {
	r.mu.RLock()
	e := r.entries[kind]
	r.mu.RUnlock()
	if e != nil {
		return e.ds, e.err
	}

	v, _, _ := r.group.Do(string(kind), func() (any, error) {
		for {
			// A racing caller may have finished the build while this one
			// waited on the flight key.
			r.mu.RLock()
			cached := r.entries[kind]
			r.mu.RUnlock()
			if cached != nil {
				return cached, nil
			}

			gen := r.generation.Load()
			built := r.build(ctx, kind)

			// An invalidation while the build ran means the source may
			// have changed under it; discard the result and rebuild.
			r.mu.Lock()
			if r.generation.Load() == gen {
				r.entries[kind] = built
				r.mu.Unlock()
				return built, nil
			}
			r.mu.Unlock()
		}
	})
	got := v.(*entry)
	return got.ds, got.err
}

func (r *registry) build(ctx context.Context, kind domain.DatasetKind) *entry {
	logger := zerolog.Ctx(ctx)

	raw, err := r.source.Fetch(ctx, kind)
	if err != nil {
		logger.Error().Err(err).Str("kind", string(kind)).Msg("source fetch failed")
		return &entry{err: &domain.SchemaError{Kind: kind, Reason: err.Error()}}
	}

	ds, err := r.normalizer.Normalize(ctx, kind, raw)
	if err != nil {
		logger.Error().Err(err).Str("kind", string(kind)).Msg("normalization failed")
		return &entry{err: err}
	}

	logger.Info().
		Str("kind", string(kind)).
		Int("records", len(ds.Records)).
		Int("excluded", ds.Excluded).
		Msg("dataset loaded")
	return &entry{ds: ds}
}

func (r *registry) Invalidate(kind domain.DatasetKind) {
	r.mu.Lock()
	delete(r.entries, kind)
	r.mu.Unlock()
	r.generation.Add(1)
}

func (r *registry) IsLoaded(kind domain.DatasetKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[kind]
	return ok && e.err == nil
}

func (r *registry) Generation() uint64 {
	return r.generation.Load()
}
