package metro

import (
	"math"
	"sort"
)

// Map is the mutable transit graph: stations, the line registry and the
// current path of the last successful search.
type Map struct {
	stations map[string]*station
	lines    map[string]Line

	path     []string
	distance float64
}

// New creates an empty map.
func New() *Map {
	return &Map{
		stations: make(map[string]*station),
		lines:    make(map[string]Line),
	}
}

// AddStation creates a station with the given position and initial line
// memberships. It fails with ErrDuplicateStation if the name is taken.
func (m *Map) AddStation(name string, x, y float64, lines []string) error {
	if _, exists := m.stations[name]; exists {
		return ErrDuplicateStation
	}
	m.stations[name] = &station{
		name:      name,
		x:         x,
		y:         y,
		lines:     NewSet(lines...),
		neighbors: make(map[string]float64),
	}
	return nil
}

// DeleteStation removes a station together with every edge referencing it.
func (m *Map) DeleteStation(name string) error {
	if _, exists := m.stations[name]; !exists {
		return stationNotFound(name)
	}
	delete(m.stations, name)
	for _, s := range m.stations {
		delete(s.neighbors, name)
	}
	return nil
}

// AddEdge connects two stations with an edge weighted by the straight-line
// distance between them. Calling it again for the same pair overwrites the
// weight with a freshly computed one.
func (m *Map) AddEdge(name1, name2 string) error {
	s1, ok := m.stations[name1]
	if !ok {
		return stationNotFound(name1)
	}
	s2, ok := m.stations[name2]
	if !ok {
		return stationNotFound(name2)
	}
	d := math.Hypot(s1.x-s2.x, s1.y-s2.y)
	s1.neighbors[name2] = d
	s2.neighbors[name1] = d
	return nil
}

// AddLine registers a line. An already registered id is left untouched and
// ErrDuplicateLine is returned.
func (m *Map) AddLine(id, name, color string) error {
	if _, exists := m.lines[id]; exists {
		return ErrDuplicateLine
	}
	m.lines[id] = Line{ID: id, Name: name, Color: color}
	return nil
}

// AddEdgeToLine adds the edge name1-name2 and records lineID on both
// stations. The line does not have to be registered yet.
func (m *Map) AddEdgeToLine(name1, name2, lineID string) error {
	if err := m.AddEdge(name1, name2); err != nil {
		return err
	}
	m.stations[name1].lines.Add(lineID)
	m.stations[name2].lines.Add(lineID)
	return nil
}

// Clear empties stations, lines and the current path.
func (m *Map) Clear() {
	m.stations = make(map[string]*station)
	m.lines = make(map[string]Line)
	m.path = nil
	m.distance = 0
}

// HasStation reports whether a station with the given name exists.
func (m *Map) HasStation(name string) bool {
	_, ok := m.stations[name]
	return ok
}

// Station returns a snapshot of the named station.
func (m *Map) Station(name string) (Station, bool) {
	s, ok := m.stations[name]
	if !ok {
		return Station{}, false
	}
	return s.snapshot(), true
}

// Stations returns snapshots of all stations sorted by name.
func (m *Map) Stations() []Station {
	out := make([]Station, 0, len(m.stations))
	for _, s := range m.stations {
		out = append(out, s.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StationCount returns the number of stations.
func (m *Map) StationCount() int { return len(m.stations) }

// Neighbors returns the sorted names adjacent to the named station.
func (m *Map) Neighbors(name string) ([]string, error) {
	s, ok := m.stations[name]
	if !ok {
		return nil, stationNotFound(name)
	}
	out := make([]string, 0, len(s.neighbors))
	for n := range s.neighbors {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// Adjacent reports whether an edge connects the two stations.
func (m *Map) Adjacent(name1, name2 string) bool {
	s, ok := m.stations[name1]
	if !ok {
		return false
	}
	_, ok = s.neighbors[name2]
	return ok
}

// Weight returns the weight of the edge name1-name2.
func (m *Map) Weight(name1, name2 string) (float64, bool) {
	s, ok := m.stations[name1]
	if !ok {
		return 0, false
	}
	w, ok := s.neighbors[name2]
	return w, ok
}

// Line looks up a registered line.
func (m *Map) Line(id string) (Line, bool) {
	l, ok := m.lines[id]
	return l, ok
}

// Lines returns all registered lines sorted by id.
func (m *Map) Lines() []Line {
	out := make([]Line, 0, len(m.lines))
	for _, l := range m.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LineCount returns the number of registered lines.
func (m *Map) LineCount() int { return len(m.lines) }

// LineStations returns the sorted names of every station that lists lineID
// among its memberships, along with the registered line.
func (m *Map) LineStations(lineID string) ([]string, Line, error) {
	l, ok := m.lines[lineID]
	if !ok {
		return nil, Line{}, &NotFoundError{Kind: KindLine, Name: lineID}
	}
	var names []string
	for name, s := range m.stations {
		if s.lines.Has(lineID) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, l, nil
}
