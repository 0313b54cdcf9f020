// Package scenario reads and writes flat parameter files in JSON or YAML.
// A file holds one key per named parameter; decoding overlays the keys it
// finds onto a base set and leaves everything else untouched.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/epeers/warehouse/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
	ErrMalformed         = errors.New("malformed scenario")
)

// ParseFormat maps a user-supplied format name to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ContentType returns the MIME type used when serving f
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Encode writes every parameter of p as a flat mapping
func Encode(p models.Params, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode scenario: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML:
		b, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode scenario: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Decode overlays the keys present in data onto base. Unknown keys are
// ignored and returned sorted so callers can report them. Shares are taken
// as written, never re-normalized. On any error base is returned unchanged.
func Decode(data []byte, f Format, base models.Params) (models.Params, []string, error) {
	known := KnownKeys()
	out := base
	var ignored []string

	switch f {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return base, nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
		}
		raw := map[string]json.RawMessage{}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		// encoding/json matches struct keys case-insensitively; only exact
		// keys may reach the struct
		exact := make(map[string]json.RawMessage, len(raw))
		for k, v := range raw {
			if _, ok := known[k]; ok {
				exact[k] = v
			} else {
				ignored = append(ignored, k)
			}
		}
		b, err := json.Marshal(exact)
		if err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := json.Unmarshal(b, &out); err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatYAML:
		raw := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := yaml.Unmarshal(data, &out); err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for k := range raw {
			if _, ok := known[k]; !ok {
				ignored = append(ignored, k)
			}
		}
	default:
		return base, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	sort.Strings(ignored)
	return out, ignored, nil
}

// KnownKeys returns the set of parameter keys a scenario may carry
func KnownKeys() map[string]struct{} {
	b, _ := json.Marshal(models.Params{})
	m := map[string]json.RawMessage{}
	_ = json.Unmarshal(b, &m)

	keys := make(map[string]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return keys
}
