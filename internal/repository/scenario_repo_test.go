package repository

import (
	"context"
	"os"
	"testing"

	"github.com/epeers/warehouse/internal/database"
	"github.com/epeers/warehouse/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPostgres connects to PG_URL and applies the schema. Tests using it are
// skipped when no database is configured.
func setupPostgres(t *testing.T) *ScenarioRepository {
	t.Helper()
	url := os.Getenv("PG_URL")
	if url == "" {
		t.Skip("PG_URL not set, skipping database test")
	}

	ctx := context.Background()
	db, err := database.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	return NewScenarioRepository(db.Pool)
}

func TestScenarioRepository_CRUD(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	// a random owner keeps reruns from colliding on (owner, name)
	owner := int64(uuid.New().ID())
	sc := &models.Scenario{
		ID:      uuid.New().String(),
		Name:    "pg-crud",
		OwnerID: owner,
		Params:  models.DefaultParams(),
	}
	sc.Params.StorageFee = 1650
	require.NoError(t, repo.Create(ctx, sc))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), sc.ID) })
	assert.False(t, sc.CreatedAt.IsZero())

	dup := *sc
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrConflict)

	got, err := repo.GetByID(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, sc.Params, got.Params)

	byName, err := repo.GetByOwnerAndName(ctx, owner, "pg-crud")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, sc.ID, byName.ID)

	missing, err := repo.GetByOwnerAndName(ctx, owner, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.Name = "pg-crud-renamed"
	got.Params.TotalArea = 320
	require.NoError(t, repo.Update(ctx, got))

	items, err := repo.GetByUserID(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pg-crud-renamed", items[0].Name)

	require.NoError(t, repo.Delete(ctx, sc.ID))
	_, err = repo.GetByID(ctx, sc.ID)
	assert.ErrorIs(t, err, ErrScenarioNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, sc.ID), ErrScenarioNotFound)
}
