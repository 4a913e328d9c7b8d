// Package format writes command output as text, JSON or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Texter is implemented by values with a human-readable rendering.
type Texter interface {
	Text(w io.Writer) error
}

// Write writes v in the requested format.
//
// Supported formats:
// - text (default; falls back to YAML for values without a Text method)
// - json
// - yaml
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "text":
		if t, ok := v.(Texter); ok {
			return t.Text(w)
		}
		return WriteYAML(w, v)
	case "json":
		return WriteJSON(w, v, pretty)
	case "yaml":
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes a single JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
