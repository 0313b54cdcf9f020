package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/repository"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrConflict         = errors.New("scenario with same name already exists")
	ErrUnauthorized     = errors.New("not authorized to modify this scenario")
)

// ScenarioStore persists scenarios. ScenarioRepository (PostgreSQL) and
// ScenarioFileRepository (directory of JSON files) both satisfy it.
type ScenarioStore interface {
	Create(ctx context.Context, s *models.Scenario) error
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
	GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Scenario, error)
	Update(ctx context.Context, s *models.Scenario) error
	Delete(ctx context.Context, id string) error
	GetByUserID(ctx context.Context, userID int64) ([]models.ScenarioListItem, error)
}

// ScenarioService handles saved scenario business logic
type ScenarioService struct {
	store ScenarioStore
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(store ScenarioStore) *ScenarioService {
	return &ScenarioService{store: store}
}

func mapStoreError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrScenarioNotFound):
		return ErrScenarioNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	}
	return fmt.Errorf("failed to %s scenario: %w", action, err)
}

// CreateScenario validates and saves a new scenario. Params omitted from the
// request keep their default values.
func (s *ScenarioService) CreateScenario(ctx context.Context, req *models.CreateScenarioRequest) (*models.Scenario, error) {
	defer TrackTime("CreateScenario", time.Now())

	params := models.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}
	return s.create(ctx, req.OwnerID, req.Name, params)
}

func (s *ScenarioService) create(ctx context.Context, ownerID int64, name string, params models.Params) (*models.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Problems: []string{"name is required"}}
	}
	if err := ValidateParams(params.Effective()); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing scenario: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	sc := &models.Scenario{
		ID:      uuid.New().String(),
		Name:    name,
		OwnerID: ownerID,
		Params:  params,
	}
	if err := s.store.Create(ctx, sc); err != nil {
		return nil, mapStoreError(err, "create")
	}

	log.WithFields(log.Fields{"id": sc.ID, "owner": ownerID}).Info("scenario created")
	return sc, nil
}

// GetScenario retrieves a scenario by ID
func (s *ScenarioService) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	defer TrackTime("GetScenario", time.Now())

	sc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "get")
	}
	return sc, nil
}

// ListScenarios returns the metadata of every scenario a user owns
func (s *ScenarioService) ListScenarios(ctx context.Context, userID int64) ([]models.ScenarioListItem, error) {
	items, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, "list")
	}
	return items, nil
}

// UpdateScenario renames a scenario and/or overlays new params on it.
// Only the owner may update.
func (s *ScenarioService) UpdateScenario(ctx context.Context, id string, userID int64, req *models.UpdateScenarioRequest) (*models.Scenario, error) {
	sc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "get")
	}
	if sc.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		sc.Name = name
	}
	if len(req.Params) > 0 {
		params, ignored, err := scenario.Decode(req.Params, scenario.FormatJSON, sc.Params)
		if err != nil {
			return nil, &ValidationError{Problems: []string{err.Error()}}
		}
		warnIgnored(ctx, ignored)
		sc.Params = params
	}
	if err := ValidateParams(sc.Params.Effective()); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, sc); err != nil {
		return nil, mapStoreError(err, "update")
	}
	return sc, nil
}

// DeleteScenario deletes a scenario. Only the owner may delete.
func (s *ScenarioService) DeleteScenario(ctx context.Context, id string, userID int64) error {
	sc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "get")
	}
	if sc.OwnerID != userID {
		return ErrUnauthorized
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err, "delete")
	}
	return nil
}

// ImportScenario decodes an uploaded JSON or YAML scenario over the default
// parameters and saves it. Nothing is stored when decoding or validation
// fails.
func (s *ScenarioService) ImportScenario(ctx context.Context, ownerID int64, name string, data []byte, format scenario.Format) (*models.Scenario, error) {
	defer TrackTime("ImportScenario", time.Now())

	params, ignored, err := scenario.Decode(data, format, models.DefaultParams())
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}
	warnIgnored(ctx, ignored)
	return s.create(ctx, ownerID, name, params)
}

// ExportScenario encodes a stored scenario's params as a flat file
func (s *ScenarioService) ExportScenario(ctx context.Context, id string, format scenario.Format) ([]byte, *models.Scenario, error) {
	sc, err := s.GetScenario(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := scenario.Encode(sc.Params, format)
	if err != nil {
		return nil, nil, err
	}
	return b, sc, nil
}

func warnIgnored(ctx context.Context, ignored []string) {
	for _, key := range ignored {
		Warnf(ctx, models.WarnUnknownScenarioKey, "unknown key %q was ignored", key)
	}
}
