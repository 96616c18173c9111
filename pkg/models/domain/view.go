package domain

// ViewRow is one output row of a filtered view: column name to typed value.
type ViewRow map[string]Value

// JoinStats counts rows excluded during a view join. Non-fatal; reported as
// a data-quality signal.
type JoinStats struct {
	UnmatchedLeft  int
	UnmatchedRight int
}

// FilteredView is the derived, render-ready result of applying a FilterState
// to one or more datasets. Never mutated in place; recomputed (or served from
// memo) on every state change.
type FilteredView struct {
	Name         string
	Columns      []string
	Rows         []ViewRow
	Join         *JoinStats
	StateVersion uint64
}
