package metro

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateStation is returned when a station name is already in use.
	ErrDuplicateStation = errors.New("station already exists")
	// ErrDuplicateLine is returned when a line id is already registered.
	ErrDuplicateLine = errors.New("line already exists")
	// ErrStationNotFound matches every NotFoundError of kind KindStation.
	ErrStationNotFound = errors.New("station not found")
	// ErrLineNotFound matches every NotFoundError of kind KindLine.
	ErrLineNotFound = errors.New("line not found")
	// ErrNoPath is returned by SearchShortestPath when the destination is
	// unreachable from the source.
	ErrNoPath = errors.New("no path between stations")
	// ErrNotAdjacent is returned by the resolver for pairs without an edge.
	ErrNotAdjacent = errors.New("stations are not adjacent")
)

// Kinds of keyed entities a NotFoundError can refer to.
const (
	KindStation = "station"
	KindLine    = "line"
)

// NotFoundError reports a lookup of a station or line that does not exist.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// Unwrap lets errors.Is match the sentinel for the error's kind.
func (e *NotFoundError) Unwrap() error {
	if e.Kind == KindLine {
		return ErrLineNotFound
	}
	return ErrStationNotFound
}

func stationNotFound(name string) error {
	return &NotFoundError{Kind: KindStation, Name: name}
}
