package metro

import (
	"fmt"
	"strings"
)

// Leg is a maximal run of path edges sharing the same set of connecting
// line names.
type Leg struct {
	Lines      []string `json:"lines"`
	Stations   int      `json:"stations"`
	EndStation string   `json:"end_station"`
}

// Itinerary splits the current path into legs. A path of a single station,
// or no path at all, yields no legs. It fails if the map was edited after
// the search so that an edge of the path no longer exists.
func (m *Map) Itinerary() ([]Leg, error) {
	path := m.path
	if len(path) < 2 {
		return nil, nil
	}

	active, err := m.EdgeLineNames(path[0], path[1])
	if err != nil {
		return nil, fmt.Errorf("stale path at %s-%s: %w", path[0], path[1], err)
	}
	var legs []Leg
	count := 1
	for i := 1; i < len(path)-1; i++ {
		names, err := m.EdgeLineNames(path[i], path[i+1])
		if err != nil {
			return nil, fmt.Errorf("stale path at %s-%s: %w", path[i], path[i+1], err)
		}
		if !names.Equal(active) {
			legs = append(legs, Leg{Lines: active.Sorted(), Stations: count, EndStation: path[i]})
			active = names
			count = 0
		}
		count++
	}
	legs = append(legs, Leg{Lines: active.Sorted(), Stations: count, EndStation: path[len(path)-1]})
	return legs, nil
}

// TransferGuide renders the itinerary of the current path as plain text,
// one instruction per line. It returns an empty string when there is no
// current path.
func (m *Map) TransferGuide() (string, error) {
	if len(m.path) == 0 {
		return "", nil
	}
	legs, err := m.Itinerary()
	if err != nil {
		return "", err
	}

	start, dest := m.path[0], m.path[len(m.path)-1]
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s transfer guide\n", start, dest)
	fmt.Fprintf(&b, "Start: %s\n", start)
	for i, leg := range legs {
		verb := "Ride"
		if i > 0 {
			verb = "Transfer to"
		}
		fmt.Fprintf(&b, "%s %s, take %d %s, arrive at %s\n",
			verb, joinLines(leg.Lines), leg.Stations, plural(leg.Stations, "station", "stations"), leg.EndStation)
	}
	fmt.Fprintf(&b, "Destination: %s", dest)
	return b.String(), nil
}

func joinLines(names []string) string {
	if len(names) == 0 {
		return "(unknown line)"
	}
	return strings.Join(names, "/")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
