package mapservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/feed"
	"github.com/vk/metrograph/internal/metro"
)

const snapshotKey = "snapshot"

// ErrNoFeed is returned by Reload when the service has no feed path.
var ErrNoFeed = errors.New("no feed configured")

// Service serializes access to a metro.Map.
type Service struct {
	mu       sync.Mutex
	m        *metro.Map
	feedPath string

	cache *gocache.Cache

	subMu       sync.RWMutex
	subscribers []func(Event)
}

// Options configures a Service.
type Options struct {
	// FeedPath is re-applied by Reload. Empty disables reloading.
	FeedPath string
	// SnapshotTTL bounds how long a snapshot may be served from cache.
	// Mutations flush it regardless.
	SnapshotTTL time.Duration
}

// New wraps m. The service becomes the map's only owner; callers must not
// keep using m directly.
func New(m *metro.Map, opts Options) *Service {
	ttl := opts.SnapshotTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{
		m:        m,
		feedPath: opts.FeedPath,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// Subscribe registers fn to be called after every successful mutation.
// fn runs outside the map lock.
func (s *Service) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) publish(ev Event) {
	s.subMu.RLock()
	subs := append([]func(Event){}, s.subscribers...)
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// mutate runs fn under the lock and publishes ev if fn succeeds. The
// snapshot cache is flushed before the lock is released.
func (s *Service) mutate(ev Event, fn func(m *metro.Map) error) error {
	s.mu.Lock()
	err := fn(s.m)
	s.cache.Flush()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(ev)
	return nil
}

// AddStation adds a station.
func (s *Service) AddStation(name string, x, y float64, lines []string) error {
	return s.mutate(Event{Kind: EventStationAdded, Key: name}, func(m *metro.Map) error {
		return m.AddStation(name, x, y, lines)
	})
}

// DeleteStation removes a station and its edges.
func (s *Service) DeleteStation(name string) error {
	return s.mutate(Event{Kind: EventStationDeleted, Key: name}, func(m *metro.Map) error {
		return m.DeleteStation(name)
	})
}

// AddLine registers a line.
func (s *Service) AddLine(id, name, color string) error {
	return s.mutate(Event{Kind: EventLineAdded, Key: id}, func(m *metro.Map) error {
		return m.AddLine(id, name, color)
	})
}

// AddEdgeToLine connects two stations on a line.
func (s *Service) AddEdgeToLine(from, to, lineID string) error {
	return s.mutate(Event{Kind: EventEdgeAdded, Key: from + "-" + to}, func(m *metro.Map) error {
		return m.AddEdgeToLine(from, to, lineID)
	})
}

// Clear empties the map.
func (s *Service) Clear() {
	_ = s.mutate(Event{Kind: EventCleared}, func(m *metro.Map) error {
		m.Clear()
		return nil
	})
}

// Reload replaces the map with one built from the configured feed. On any
// load or apply failure the current map is kept.
func (s *Service) Reload(ctx context.Context) (feed.Counts, error) {
	if s.feedPath == "" {
		return feed.Counts{}, ErrNoFeed
	}
	ctx = ctxlog.With(ctx, "feed", s.feedPath)
	f, err := feed.Load(ctx, s.feedPath)
	if err != nil {
		return feed.Counts{}, err
	}

	// Build aside so a failing feed leaves the current map in place.
	next := metro.New()
	counts, err := feed.Apply(ctx, next, f)
	if err != nil {
		return counts, err
	}

	s.mu.Lock()
	s.m = next
	s.cache.Flush()
	s.mu.Unlock()
	s.publish(Event{Kind: EventReloaded, Key: s.feedPath})

	ctxlog.FromContext(ctx).Info("Feed reloaded.", "stations", counts.Stations, "edges", counts.Edges)
	return counts, nil
}

// Lines returns the registered lines.
func (s *Service) Lines() []metro.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Lines()
}

// LineStations returns the stations on a registered line.
func (s *Service) LineStations(id string) ([]string, metro.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LineStations(id)
}

// EdgeInfo resolves the lines, colors and names of the edge from-to.
func (s *Service) EdgeInfo(from, to string) (Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return edgeInfo(s.m, from, to)
}

func edgeInfo(m *metro.Map, from, to string) (Edge, error) {
	ids, err := m.EdgeLines(from, to)
	if err != nil {
		return Edge{}, err
	}
	colors, err := m.EdgeColors(from, to)
	if err != nil {
		return Edge{}, err
	}
	names, err := m.EdgeLineNames(from, to)
	if err != nil {
		return Edge{}, err
	}
	w, _ := m.Weight(from, to)
	return Edge{
		From:      from,
		To:        to,
		Weight:    w,
		LineIDs:   ids.Sorted(),
		Colors:    colors.Sorted(),
		LineNames: names.Sorted(),
	}, nil
}

// Snapshot returns the render view of the whole map, cached until the next
// mutation.
func (s *Service) Snapshot() (*Snapshot, error) {
	if v, ok := s.cache.Get(snapshotKey); ok {
		return v.(*Snapshot), nil
	}

	s.mu.Lock()
	snap, err := buildSnapshot(s.m)
	if err == nil {
		// Stored under the lock so a concurrent mutation's flush cannot be
		// overtaken by an older snapshot.
		s.cache.SetDefault(snapshotKey, snap)
	}
	s.mu.Unlock()
	return snap, err
}

func buildSnapshot(m *metro.Map) (*Snapshot, error) {
	snap := &Snapshot{
		Stations: m.Stations(),
		Lines:    m.Lines(),
		Edges:    []Edge{},
	}
	for _, st := range snap.Stations {
		for _, n := range st.Neighbors {
			if st.Name > n.Name {
				continue
			}
			e, err := edgeInfo(m, st.Name, n.Name)
			if err != nil {
				return nil, fmt.Errorf("resolve edge %s-%s: %w", st.Name, n.Name, err)
			}
			snap.Edges = append(snap.Edges, e)
		}
	}
	return snap, nil
}

// FindRoute searches the shortest path and describes it. On failure the
// previously found route stays current.
func (s *Service) FindRoute(from, to string) (*Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.m.SearchShortestPath(from, to); err != nil {
		return nil, err
	}
	return currentRoute(s.m)
}

// CurrentRoute describes the path of the last successful search. ok is
// false when there is none.
func (s *Service) CurrentRoute() (r *Route, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.m.CurrentPath()) == 0 {
		return nil, false, nil
	}
	r, err = currentRoute(s.m)
	return r, err == nil, err
}

func currentRoute(m *metro.Map) (*Route, error) {
	legs, err := m.Itinerary()
	if err != nil {
		return nil, err
	}
	guide, err := m.TransferGuide()
	if err != nil {
		return nil, err
	}
	if legs == nil {
		legs = []metro.Leg{}
	}
	return &Route{
		Path:     m.CurrentPath(),
		Distance: m.CurrentDistance(),
		Legs:     legs,
		Guide:    guide,
	}, nil
}
