package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (aligned, colored when the writer is a terminal)
// - markdown (checklist rendered with glamour)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	case "markdown", "md":
		return WriteMarkdown(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// ShortID is the id prefix shown in human-readable output. Any unique prefix is
// accepted back by the CLI.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
