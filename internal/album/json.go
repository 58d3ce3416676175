package album

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a JSON metadata document. The document is not validated; any
// subset of Album fields may be present.
func Load(path string) (Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Partial{}, fmt.Errorf("read metadata: %w", err)
	}
	var p Partial
	if err := json.Unmarshal(data, &p); err != nil {
		return Partial{}, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return p, nil
}

// Save writes the album as an indented JSON metadata document.
func Save(path string, a Album) error {
	if a.Tracks == nil {
		a.Tracks = []Track{}
	}
	return writeJSON(path, a)
}

// SavePartial writes only the present fields of p, so the document can be
// layered over other sources without resetting them.
func SavePartial(path string, p Partial) error {
	return writeJSON(path, p)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
