package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names a layout file format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatWires Format = "wires"
)

// DetectFormat picks a format from the file extension, falling back to the
// content: JSON documents start with '{'.
func DetectFormat(name string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".wires":
		return FormatWires
	}
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("{")) {
		return FormatJSON
	}
	return FormatWires
}

// LoadJSON decodes a JSON snapshot. Unknown fields are rejected.
func LoadJSON(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoadWires parses a .wires document into a snapshot.
func LoadWires(r io.Reader) (*Snapshot, error) {
	p, err := NewWiresParser()
	if err != nil {
		return nil, err
	}
	file, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	snap, err := file.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Load reads content in the given format.
func Load(content []byte, format Format) (*Snapshot, error) {
	switch format {
	case FormatJSON:
		return LoadJSON(bytes.NewReader(content))
	case FormatWires:
		return LoadWires(bytes.NewReader(content))
	default:
		return nil, fmt.Errorf("unsupported layout format %q", format)
	}
}

// LoadFile reads a layout file, detecting its format.
func LoadFile(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	snap, err := Load(content, DetectFormat(path, content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// WriteJSON encodes a snapshot as indented JSON.
func WriteJSON(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}
