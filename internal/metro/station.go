package metro

import "sort"

// station is a vertex of the map. Neighbors maps a neighbor's name to the
// edge weight and is kept symmetric by Map.
type station struct {
	name      string
	x, y      float64
	lines     Set
	neighbors map[string]float64
}

// Station is a read-only snapshot of a vertex for consumers such as the
// renderer. Lines and Neighbors are sorted by name.
type Station struct {
	Name      string     `json:"name"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Lines     []string   `json:"lines"`
	Neighbors []Neighbor `json:"neighbors"`
}

// Neighbor is one endpoint of an edge as seen from a station.
type Neighbor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Line is a registered transit line.
type Line struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *station) snapshot() Station {
	out := Station{
		Name:      s.name,
		X:         s.x,
		Y:         s.y,
		Lines:     s.lines.Sorted(),
		Neighbors: make([]Neighbor, 0, len(s.neighbors)),
	}
	for name, w := range s.neighbors {
		out.Neighbors = append(out.Neighbors, Neighbor{Name: name, Weight: w})
	}
	sort.Slice(out.Neighbors, func(i, j int) bool { return out.Neighbors[i].Name < out.Neighbors[j].Name })
	return out
}
