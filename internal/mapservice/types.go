package mapservice

import "github.com/vk/metrograph/internal/metro"

// Snapshot is the render-ready view of the map.
type Snapshot struct {
	Stations []metro.Station `json:"stations"`
	Lines    []metro.Line    `json:"lines"`
	Edges    []Edge          `json:"edges"`
}

// Edge is an undirected edge with its resolved styling. Each edge appears
// once, with From sorting before To.
type Edge struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Weight    float64  `json:"weight"`
	LineIDs   []string `json:"line_ids"`
	Colors    []string `json:"colors"`
	LineNames []string `json:"line_names"`
}

// Route is the outcome of a shortest-path search.
type Route struct {
	Path     []string    `json:"path"`
	Distance float64     `json:"distance"`
	Legs     []metro.Leg `json:"legs"`
	Guide    string      `json:"guide"`
}

// Event describes a successful mutation.
type Event struct {
	Kind string `json:"kind"`
	Key  string `json:"key,omitempty"`
}

// Event kinds.
const (
	EventStationAdded   = "station_added"
	EventStationDeleted = "station_deleted"
	EventLineAdded      = "line_added"
	EventEdgeAdded      = "edge_added"
	EventCleared        = "cleared"
	EventReloaded       = "reloaded"
)
