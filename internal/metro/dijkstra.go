package metro

import "container/heap"

// frontierItem is a tentative distance pushed onto the frontier heap.
// Entries are never updated in place: a better distance pushes a new item
// and the outdated one is skipped when popped.
type frontierItem struct {
	name string
	dist float64
}

type frontier []frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// SearchShortestPath runs Dijkstra's algorithm from one station to another
// and, on success, replaces the current path. On any failure the previous
// current path is kept as it was.
func (m *Map) SearchShortestPath(from, to string) error {
	if _, ok := m.stations[from]; !ok {
		return stationNotFound(from)
	}
	if _, ok := m.stations[to]; !ok {
		return stationNotFound(to)
	}

	open := map[string]float64{from: 0}
	closed := make(map[string]float64)
	parent := make(map[string]string)

	pq := &frontier{{name: from, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		best, inOpen := open[cur.name]
		if !inOpen || cur.dist > best {
			continue // stale entry
		}
		delete(open, cur.name)
		closed[cur.name] = cur.dist

		if cur.name == to {
			m.path = reconstructPath(parent, from, to)
			m.distance = cur.dist
			return nil
		}

		for next, w := range m.stations[cur.name].neighbors {
			if _, done := closed[next]; done {
				continue
			}
			cand := cur.dist + w
			if d, seen := open[next]; seen && cand >= d {
				continue
			}
			open[next] = cand
			parent[next] = cur.name
			heap.Push(pq, frontierItem{name: next, dist: cand})
		}
	}
	return ErrNoPath
}

// reconstructPath walks the predecessor map back from the destination.
func reconstructPath(parent map[string]string, from, to string) []string {
	path := []string{to}
	for cur := to; cur != from; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CurrentPath returns a copy of the path found by the last successful
// search, or nil if there is none.
func (m *Map) CurrentPath() []string {
	if m.path == nil {
		return nil
	}
	out := make([]string, len(m.path))
	copy(out, m.path)
	return out
}

// CurrentDistance is the total weight of the current path.
func (m *Map) CurrentDistance() float64 { return m.distance }
