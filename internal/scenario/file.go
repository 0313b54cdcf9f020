package scenario

import (
	"fmt"
	"os"

	"github.com/epeers/warehouse/internal/models"
)

// ReadFile loads a scenario file over base, picking the format from the
// file extension.
func ReadFile(path string, base models.Params) (models.Params, []string, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return base, nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return base, nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	p, ignored, err := Decode(b, f, base)
	if err != nil {
		return base, nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, ignored, nil
}

// WriteFile saves p via a temp file then rename
func WriteFile(path string, p models.Params) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	b, err := Encode(p, f)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}
	return os.Rename(tmp, path)
}
