package metro

// EdgeLines returns the ids of the lines running between two adjacent
// stations: the intersection of their memberships.
func (m *Map) EdgeLines(name1, name2 string) (Set, error) {
	s1, ok := m.stations[name1]
	if !ok {
		return nil, stationNotFound(name1)
	}
	s2, ok := m.stations[name2]
	if !ok {
		return nil, stationNotFound(name2)
	}
	if _, ok := s1.neighbors[name2]; !ok {
		return nil, ErrNotAdjacent
	}
	return s1.lines.Intersect(s2.lines), nil
}

// EdgeColors maps EdgeLines through the registry to colors. Ids that were
// never registered are skipped.
func (m *Map) EdgeColors(name1, name2 string) (Set, error) {
	return m.edgeAttr(name1, name2, func(l Line) string { return l.Color })
}

// EdgeLineNames maps EdgeLines through the registry to display names.
func (m *Map) EdgeLineNames(name1, name2 string) (Set, error) {
	return m.edgeAttr(name1, name2, func(l Line) string { return l.Name })
}

func (m *Map) edgeAttr(name1, name2 string, attr func(Line) string) (Set, error) {
	ids, err := m.EdgeLines(name1, name2)
	if err != nil {
		return nil, err
	}
	out := make(Set, len(ids))
	for id := range ids {
		if l, ok := m.lines[id]; ok {
			out.Add(attr(l))
		}
	}
	return out, nil
}
