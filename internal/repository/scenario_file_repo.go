package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/epeers/warehouse/internal/models"
	"github.com/google/uuid"
)

// ScenarioFileRepository stores one JSON document per scenario in a
// directory. It stands in for ScenarioRepository when no database is
// configured.
type ScenarioFileRepository struct {
	dir string
	mu  sync.RWMutex
}

// NewScenarioFileRepository creates the directory if needed
func NewScenarioFileRepository(dir string) (*ScenarioFileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	return &ScenarioFileRepository{dir: dir}, nil
}

func (r *ScenarioFileRepository) path(id string) (string, error) {
	// ids are uuids; anything else could escape the directory
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrScenarioNotFound
	}
	return filepath.Join(r.dir, id+".json"), nil
}

func (r *ScenarioFileRepository) read(path string) (*models.Scenario, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrScenarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s := &models.Scenario{Params: models.DefaultParams()}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// write saves via a temp file then rename
func (r *ScenarioFileRepository) write(s *models.Scenario) error {
	path, err := r.path(s.ID)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}
	return os.Rename(tmp, path)
}

func (r *ScenarioFileRepository) all() ([]*models.Scenario, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	var out []*models.Scenario
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := r.read(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *ScenarioFileRepository) findByOwnerAndName(ownerID int64, name string) (*models.Scenario, error) {
	scenarios, err := r.all()
	if err != nil {
		return nil, err
	}
	for _, s := range scenarios {
		if s.OwnerID == ownerID && s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

// Create writes a new scenario; s.ID must already be set
func (r *ScenarioFileRepository) Create(ctx context.Context, s *models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.findByOwnerAndName(s.OwnerID, s.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrConflict
	}

	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	return r.write(s)
}

// GetByID retrieves a scenario by ID
func (r *ScenarioFileRepository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, err := r.path(id)
	if err != nil {
		return nil, err
	}
	return r.read(path)
}

// GetByOwnerAndName returns the user's scenario with this name, or nil
func (r *ScenarioFileRepository) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByOwnerAndName(ownerID, name)
}

// Update replaces a scenario's name and params
func (r *ScenarioFileRepository) Update(ctx context.Context, s *models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.path(s.ID)
	if err != nil {
		return err
	}
	current, err := r.read(path)
	if err != nil {
		return err
	}
	other, err := r.findByOwnerAndName(current.OwnerID, s.Name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != s.ID {
		return ErrConflict
	}

	s.OwnerID = current.OwnerID
	s.CreatedAt = current.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	return r.write(s)
}

// Delete deletes a scenario
func (r *ScenarioFileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrScenarioNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

// GetByUserID retrieves all scenarios for a user (metadata only), newest first
func (r *ScenarioFileRepository) GetByUserID(ctx context.Context, userID int64) ([]models.ScenarioListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenarios, err := r.all()
	if err != nil {
		return nil, err
	}
	items := []models.ScenarioListItem{}
	for _, s := range scenarios {
		if s.OwnerID != userID {
			continue
		}
		items = append(items, models.ScenarioListItem{
			ID:        s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
