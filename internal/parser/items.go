package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/studiowebux/popfocus/internal/popoverlist"
	"gopkg.in/yaml.v3"
)

// ItemSpec is a row as written in a seed or script file. ID is optional.
type ItemSpec struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

type itemsFile struct {
	Items []ItemSpec `json:"items" yaml:"items"`
}

// ParseItems parses a YAML or JSON file containing the seed rows. The file
// may be a list of rows or an object with an "items" list.
func ParseItems(filePath string) (popoverlist.Items, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	specs, err := decodeItems(data, isJSON(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filePath), err)
	}

	return BuildItems(specs)
}

func isJSON(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".json"
}

func decodeItems(data []byte, asJSON bool) ([]ItemSpec, error) {
	unmarshal := yaml.Unmarshal
	if asJSON {
		unmarshal = json.Unmarshal
	}

	// Try the object form first
	var wrapped itemsFile
	if err := unmarshal(data, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	var list []ItemSpec
	if err := unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// BuildItems converts specs into rows, generating ids where missing
func BuildItems(specs []ItemSpec) (popoverlist.Items, error) {
	items := make(popoverlist.Items, 0, len(specs))
	seen := make(map[uuid.UUID]bool, len(specs))

	for i, spec := range specs {
		id := uuid.New()
		if spec.ID != "" {
			parsed, err := uuid.Parse(spec.ID)
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid id %q: %w", i, spec.ID, err)
			}
			id = parsed
		}
		if seen[id] {
			return nil, fmt.Errorf("item %d: duplicate id %s", i, id)
		}
		seen[id] = true

		items = append(items, popoverlist.Item{ID: id, Text: spec.Text})
	}

	return items, nil
}
