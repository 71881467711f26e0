package feed

// Feed is the format-agnostic description of a network.
type Feed struct {
	Lines    []LineRecord    `hcl:"line,block" yaml:"lines" validate:"dive"`
	Stations []StationRecord `hcl:"station,block" yaml:"stations" validate:"dive"`
	Edges    []EdgeRecord    `hcl:"edge,block" yaml:"edges" validate:"dive"`
	Routes   []RouteRecord   `hcl:"route,block" yaml:"routes" validate:"dive"`
}

// LineRecord registers a line. An empty Name falls back to the ID.
type LineRecord struct {
	ID    string `hcl:"id,label" yaml:"id" validate:"required"`
	Name  string `hcl:"name,optional" yaml:"name"`
	Color string `hcl:"color,optional" yaml:"color"`
}

// StationRecord creates a station at a planar position. X and Y are
// pointers so a YAML or JSON record that omits them fails validation
// instead of landing at the origin.
type StationRecord struct {
	Name  string   `hcl:"name,label" yaml:"name" validate:"required"`
	X     *float64 `hcl:"x" yaml:"x" validate:"required"`
	Y     *float64 `hcl:"y" yaml:"y" validate:"required"`
	Lines []string `hcl:"lines,optional" yaml:"lines" validate:"dive,required"`
}

// EdgeRecord connects two stations, optionally on a line.
type EdgeRecord struct {
	From string `hcl:"from" yaml:"from" validate:"required"`
	To   string `hcl:"to" yaml:"to" validate:"required,nefield=From"`
	Line string `hcl:"line,optional" yaml:"line"`
}

// RouteRecord is shorthand for the edges between consecutive stations of a
// line.
type RouteRecord struct {
	Line     string   `hcl:"line,label" yaml:"line" validate:"required"`
	Stations []string `hcl:"stations" yaml:"stations" validate:"min=2,dive,required"`
}

// Counts summarizes what Apply did.
type Counts struct {
	Lines    int `json:"lines"`
	Stations int `json:"stations"`
	Edges    int `json:"edges"`
	Skipped  int `json:"skipped"`
}
