package feed

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML feed. JSON is valid YAML, so .json feeds go
// through here as well.
func ParseYAML(src []byte, filename string) (*Feed, error) {
	var f Feed
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return &f, nil
}
