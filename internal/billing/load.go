package billing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Decode reads a statement in the given format ("yaml" or "json"), fills
// in a generated ID when missing and validates it.
func Decode(r io.Reader, format string) (*Statement, error) {
	var stmt Statement
	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&stmt); err != nil {
			return nil, fmt.Errorf("failed to decode statement JSON: %w", err)
		}
	case "yaml", "yml", "":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&stmt); err != nil {
			return nil, fmt.Errorf("failed to decode statement YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported statement format %q", format)
	}

	if stmt.ID == "" {
		stmt.ID = uuid.NewString()
	}
	if err := stmt.Validate(); err != nil {
		return nil, err
	}
	return &stmt, nil
}

// Load reads a statement file, picking the format from its extension
func Load(path string) (*Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatOf(path))
}

// FormatOf returns "json" for .json files and "yaml" otherwise
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "yaml"
}
