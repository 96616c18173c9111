// Package session owns per-session filter state. Snapshots are immutable;
// every update produces a new versioned snapshot and rejected updates leave
// the prior snapshot in effect.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// Manager creates sessions and validates filter updates against the
// recognized dimension set and the registry's dataset domains.
type Manager struct {
	registry   registry.Registry
	declared   []domain.FilterDimension
	dimensions map[string]domain.FilterDimension

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(reg registry.Registry, dims []domain.FilterDimension) *Manager {
	m := &Manager{
		registry:   reg,
		declared:   append([]domain.FilterDimension(nil), dims...),
		dimensions: make(map[string]domain.FilterDimension, len(dims)),
		sessions:   make(map[string]*Session),
	}
	for _, d := range dims {
		m.dimensions[d.Name] = d
	}
	return m
}

// Dimensions returns the recognized dimension declarations in declaration
// order.
func (m *Manager) Dimensions() []domain.FilterDimension {
	return append([]domain.FilterDimension(nil), m.declared...)
}

// Create starts a new session with an empty snapshot.
func (m *Manager) Create() *Session {
	s := &Session{
		manager: m,
		state: domain.FilterState{
			SessionID:  uuid.NewString(),
			Selections: map[string][]string{},
		},
	}
	m.mu.Lock()
	m.sessions[s.state.SessionID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Session holds one interactive session's filter state. Mutations are
// serialized; reads return value snapshots.
type Session struct {
	manager *Manager

	mu    sync.Mutex
	state domain.FilterState
}

// Snapshot returns the current immutable filter state.
func (s *Session) Snapshot() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces one dimension's selection and returns the new snapshot.
// An unrecognized dimension or an out-of-domain value fails with
// InvalidFilterError and the state is untouched, never clamped.
// An empty values slice clears the dimension.
func (s *Session) Update(ctx context.Context, dimension string, values []string) (domain.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dim, ok := s.manager.dimensions[dimension]
	if !ok && dimension != domain.DimensionDateRange {
		return s.state, &domain.InvalidFilterError{
			Dimension: dimension,
			Reason:    "dimension is not recognized",
		}
	}

	next := s.state.Clone()
	next.Version++

	if dimension == domain.DimensionDateRange {
		r, err := parseDateRange(values)
		if err != nil {
			return s.state, err
		}
		next.DateRange = r
	} else if len(values) == 0 {
		delete(next.Selections, dimension)
	} else {
		if err := s.manager.validateDomain(ctx, dim, values); err != nil {
			return s.state, err
		}
		next.Selections[dimension] = append([]string(nil), values...)
	}

	zerolog.Ctx(ctx).Debug().
		Str("session", s.state.SessionID).
		Str("dimension", dimension).
		Uint64("version", next.Version).
		Msg("filter updated")

	s.state = next
	return next, nil
}

// Reset clears every selection. The version still advances so stale views
// are detectable.
func (s *Session) Reset() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.FilterState{
		SessionID:  s.state.SessionID,
		Version:    s.state.Version + 1,
		Selections: map[string][]string{},
	}
	s.state = next
	return next
}

func (m *Manager) validateDomain(ctx context.Context, dim domain.FilterDimension, values []string) error {
	ds, err := m.registry.Get(ctx, dim.Kind)
	if err != nil {
		return &domain.InvalidFilterError{
			Dimension: dim.Name,
			Reason:    fmt.Sprintf("domain dataset %q unavailable: %v", dim.Kind, err),
		}
	}

	valid := make(map[string]bool)
	for _, v := range ds.DistinctStrings(dim.Field) {
		valid[v] = true
	}
	for _, v := range values {
		if !valid[v] {
			return &domain.InvalidFilterError{
				Dimension: dim.Name,
				Reason:    fmt.Sprintf("value %q not present in dataset %q field %q", v, dim.Kind, dim.Field),
			}
		}
	}
	return nil
}

func parseDateRange(values []string) (*domain.DateRange, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) != 2 {
		return nil, &domain.InvalidFilterError{
			Dimension: domain.DimensionDateRange,
			Reason:    "expected [start, end]",
		}
	}
	start, err := time.Parse(dateLayout, values[0])
	if err != nil {
		return nil, &domain.InvalidFilterError{
			Dimension: domain.DimensionDateRange,
			Reason:    fmt.Sprintf("bad start date %q", values[0]),
		}
	}
	end, err := time.Parse(dateLayout, values[1])
	if err != nil {
		return nil, &domain.InvalidFilterError{
			Dimension: domain.DimensionDateRange,
			Reason:    fmt.Sprintf("bad end date %q", values[1]),
		}
	}
	if end.Before(start) {
		return nil, &domain.InvalidFilterError{
			Dimension: domain.DimensionDateRange,
			Reason:    "end date before start date",
		}
	}
	return &domain.DateRange{Start: start, End: end}, nil
}
