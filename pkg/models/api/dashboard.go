package api

// DatasetInfo describes one dataset kind's load state.
type DatasetInfo struct {
	Kind     string `json:"kind"`
	Loaded   bool   `json:"loaded"`
	Records  int    `json:"records,omitempty"`
	Excluded int    `json:"excluded,omitempty"`
}

// FilterState is the JSON form of a session's filter snapshot.
type FilterState struct {
	SessionID  string              `json:"session_id"`
	Version    uint64              `json:"version"`
	Selections map[string][]string `json:"selections"`
	DateStart  string              `json:"date_start,omitempty"`
	DateEnd    string              `json:"date_end,omitempty"`
}

// Dimension describes one recognized filter dimension and the dataset field
// its valid values come from.
type Dimension struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Field string `json:"field"`
}

// JoinStats reports rows excluded during a view join.
type JoinStats struct {
	UnmatchedLeft  int `json:"unmatched_left"`
	UnmatchedRight int `json:"unmatched_right"`
}

// View is the JSON form of a filtered view.
type View struct {
	Name         string           `json:"name"`
	Columns      []string         `json:"columns"`
	Rows         []map[string]any `json:"rows"`
	Join         *JoinStats       `json:"join,omitempty"`
	StateVersion uint64           `json:"state_version"`
}

// Error is the uniform error payload.
type Error struct {
	Error string `json:"error"`
}
