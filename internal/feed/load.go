package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/fsutil"
)

// Extensions lists the feed file extensions Load understands.
var Extensions = []string{".hcl", ".yaml", ".yml", ".json"}

// Load reads, decodes and validates the feed at path. The encoding is
// chosen by file extension. When path is a directory every feed file below
// it is loaded in lexical order and the records are concatenated.
func Load(ctx context.Context, path string) (*Feed, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading feed.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, Extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no feed files found in %s", path)
	}

	f := &Feed{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read feed: %w", err)
		}
		part, err := Parse(src, file)
		if err != nil {
			return nil, err
		}
		logger.Debug("Feed file decoded.", "file", file)
		f.merge(part)
	}
	if err := Validate(f); err != nil {
		return nil, fmt.Errorf("invalid feed %s: %w", path, err)
	}

	logger.Debug("Feed decoded.",
		"lines", len(f.Lines),
		"stations", len(f.Stations),
		"edges", len(f.Edges),
		"routes", len(f.Routes),
	)
	return f, nil
}

func (f *Feed) merge(other *Feed) {
	f.Lines = append(f.Lines, other.Lines...)
	f.Stations = append(f.Stations, other.Stations...)
	f.Edges = append(f.Edges, other.Edges...)
	f.Routes = append(f.Routes, other.Routes...)
}

// Parse decodes src according to the extension of filename.
func Parse(src []byte, filename string) (*Feed, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl":
		return ParseHCL(src, filename)
	case ".yaml", ".yml", ".json":
		return ParseYAML(src, filename)
	default:
		return nil, fmt.Errorf("unsupported feed format %q", ext)
	}
}
