package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/metro"
)

// Mutator is the mutation surface of the graph engine that a feed needs.
type Mutator interface {
	AddLine(id, name, color string) error
	AddStation(name string, x, y float64, lines []string) error
	AddEdge(name1, name2 string) error
	AddEdgeToLine(name1, name2, lineID string) error
}

// Apply feeds every record of f through m. Duplicate lines and stations are
// logged and skipped, matching a feed that lists an interchange twice; any
// other failure aborts and names the offending record.
func Apply(ctx context.Context, m Mutator, f *Feed) (Counts, error) {
	logger := ctxlog.FromContext(ctx)
	var c Counts

	for _, l := range f.Lines {
		name := l.Name
		if name == "" {
			name = l.ID
		}
		if err := m.AddLine(l.ID, name, l.Color); err != nil {
			if errors.Is(err, metro.ErrDuplicateLine) {
				logger.Warn("Skipping duplicate line.", "id", l.ID)
				c.Skipped++
				continue
			}
			return c, fmt.Errorf("line %q: %w", l.ID, err)
		}
		c.Lines++
	}

	for _, s := range f.Stations {
		if s.X == nil || s.Y == nil {
			return c, fmt.Errorf("station %q: position is required", s.Name)
		}
		if err := m.AddStation(s.Name, *s.X, *s.Y, s.Lines); err != nil {
			if errors.Is(err, metro.ErrDuplicateStation) {
				logger.Warn("Skipping duplicate station.", "name", s.Name)
				c.Skipped++
				continue
			}
			return c, fmt.Errorf("station %q: %w", s.Name, err)
		}
		c.Stations++
	}

	for _, e := range f.Edges {
		var err error
		if e.Line == "" {
			err = m.AddEdge(e.From, e.To)
		} else {
			err = m.AddEdgeToLine(e.From, e.To, e.Line)
		}
		if err != nil {
			return c, fmt.Errorf("edge %s-%s: %w", e.From, e.To, err)
		}
		c.Edges++
	}

	for _, r := range f.Routes {
		for i := 0; i+1 < len(r.Stations); i++ {
			from, to := r.Stations[i], r.Stations[i+1]
			if err := m.AddEdgeToLine(from, to, r.Line); err != nil {
				return c, fmt.Errorf("route %q edge %s-%s: %w", r.Line, from, to, err)
			}
			c.Edges++
		}
	}

	logger.Debug("Feed applied.", "lines", c.Lines, "stations", c.Stations, "edges", c.Edges, "skipped", c.Skipped)
	return c, nil
}
