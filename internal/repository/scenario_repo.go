package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/epeers/warehouse/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrConflict         = errors.New("scenario with same name already exists for this user")
)

const uniqueViolation = "23505"

// ScenarioRepository handles database operations for scenarios
type ScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new ScenarioRepository
func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a scenario; s.ID must already be set
func (r *ScenarioRepository) Create(ctx context.Context, s *models.Scenario) error {
	params, err := json.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	query := `
		INSERT INTO scenario (id, owner, name, params, created, updated)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created, updated
	`
	err = r.pool.QueryRow(ctx, query, s.ID, s.OwnerID, s.Name, params).Scan(&s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	return nil
}

func scanScenario(row pgx.Row) (*models.Scenario, error) {
	s := &models.Scenario{}
	var params []byte
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &params, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	// stored sets may predate newer keys; those keep their defaults
	s.Params = models.DefaultParams()
	if err := json.Unmarshal(params, &s.Params); err != nil {
		return nil, fmt.Errorf("failed to decode params of scenario %s: %w", s.ID, err)
	}
	return s, nil
}

// GetByID retrieves a scenario by ID
func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	query := `
		SELECT id, owner, name, params, created, updated
		FROM scenario
		WHERE id = $1
	`
	s, err := scanScenario(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScenarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return s, nil
}

// GetByOwnerAndName returns the user's scenario with this name, or nil
func (r *ScenarioRepository) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Scenario, error) {
	query := `
		SELECT id, owner, name, params, created, updated
		FROM scenario
		WHERE owner = $1 AND name = $2
	`
	s, err := scanScenario(r.pool.QueryRow(ctx, query, ownerID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check scenario: %w", err)
	}
	return s, nil
}

// Update replaces a scenario's name and params
func (r *ScenarioRepository) Update(ctx context.Context, s *models.Scenario) error {
	params, err := json.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	query := `
		UPDATE scenario
		SET name = $1, params = $2, updated = NOW()
		WHERE id = $3
		RETURNING updated
	`
	err = r.pool.QueryRow(ctx, query, s.Name, params, s.ID).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrScenarioNotFound
	}
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}
	return nil
}

// Delete deletes a scenario
func (r *ScenarioRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM scenario WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrScenarioNotFound
	}
	return nil
}

// GetByUserID retrieves all scenarios for a user (metadata only)
func (r *ScenarioRepository) GetByUserID(ctx context.Context, userID int64) ([]models.ScenarioListItem, error) {
	query := `
		SELECT id, name, created, updated
		FROM scenario
		WHERE owner = $1
		ORDER BY created DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	items := []models.ScenarioListItem{}
	for rows.Next() {
		var item models.ScenarioListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}
	return items, nil
}
