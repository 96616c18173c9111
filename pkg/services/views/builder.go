// Package views computes the derived, filtered views each dashboard page
// consumes. Builds are pure in (view spec, filter state, registry contents)
// and memoized on exactly that triple.
package views

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/rs/zerolog"
)

// ComputeFunc turns the filtered (and joined) records into output rows.
// Implementations must be deterministic: group ordering ties break on the
// group key, never insertion order.
type ComputeFunc func(records []domain.CanonicalRecord) ([]string, []domain.ViewRow)

// JoinClause declares an equality join on a canonical field. Unmatched rows
// on either side are excluded and counted, never duplicated.
type JoinClause struct {
	Kind   domain.DatasetKind
	Key    string
	Fields []string
}

// ViewSpec names the dataset, join and aggregation one page needs, plus the
// filter dimensions the view consults. Only declared dimensions filter the
// view, and updates that only touch dimensions outside that set are served
// from memo without recomputation. A spec with no dimensions is always
// unfiltered.
type ViewSpec struct {
	Name       string
	Source     domain.DatasetKind
	Join       *JoinClause
	Dimensions []string
	Compute    ComputeFunc
}

type Builder interface {
	// Build computes (or serves from memo) the named view under the given
	// filter snapshot.
	Build(ctx context.Context, view string, state domain.FilterState) (*domain.FilteredView, error)
	// Views lists the registered view names.
	Views() []string
}

type builder struct {
	registry registry.Registry
	specs    map[string]ViewSpec
	order    []string

	mu   sync.Mutex
	memo map[string]*domain.FilteredView
}

// NewBuilder registers the shipped view specs over the given registry.
func NewBuilder(reg registry.Registry) Builder {
	b := &builder{
		registry: reg,
		specs:    make(map[string]ViewSpec),
		memo:     make(map[string]*domain.FilteredView),
	}
	for _, spec := range DefaultSpecs() {
		b.specs[spec.Name] = spec
		b.order = append(b.order, spec.Name)
	}
	return b
}

func (b *builder) Views() []string {
	return append([]string(nil), b.order...)
}

func (b *builder) Build(ctx context.Context, view string, state domain.FilterState) (*domain.FilteredView, error) {
	spec, ok := b.specs[view]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", view)
	}

	key := spec.Name + "|" +
		strconv.FormatUint(b.registry.Generation(), 10) + "|" +
		state.Fingerprint(spec.Dimensions)

	b.mu.Lock()
	cached := b.memo[key]
	b.mu.Unlock()
	if cached != nil {
		served := *cached
		served.StateVersion = state.Version
		return &served, nil
	}

	ds, err := b.registry.Get(ctx, spec.Source)
	if err != nil {
		return nil, err
	}

	records := applyFilters(ds, state, spec.Dimensions)

	var stats *domain.JoinStats
	if spec.Join != nil {
		right, err := b.registry.Get(ctx, spec.Join.Kind)
		if err != nil {
			return nil, err
		}
		var js domain.JoinStats
		records, js = join(records, right, *spec.Join)
		stats = &js
		if js.UnmatchedLeft > 0 || js.UnmatchedRight > 0 {
			zerolog.Ctx(ctx).Warn().
				Str("view", spec.Name).
				Int("unmatched_left", js.UnmatchedLeft).
				Int("unmatched_right", js.UnmatchedRight).
				Msg("join key mismatches excluded")
		}
	}

	columns, rows := spec.Compute(records)
	result := &domain.FilteredView{
		Name:         spec.Name,
		Columns:      columns,
		Rows:         rows,
		Join:         stats,
		StateVersion: state.Version,
	}

	b.mu.Lock()
	b.memo[key] = result
	b.mu.Unlock()
	return result, nil
}
