package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/repository"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScenarioService(t *testing.T) *ScenarioService {
	t.Helper()
	store, err := repository.NewScenarioFileRepository(t.TempDir())
	require.NoError(t, err)
	return NewScenarioService(store)
}

func TestScenarioService_CreateAndGet(t *testing.T) {
	svc := newScenarioService(t)
	ctx := context.Background()

	created, err := svc.CreateScenario(ctx, &models.CreateScenarioRequest{Name: "  base  ", OwnerID: 1})
	require.NoError(t, err)
	assert.Equal(t, "base", created.Name)
	assert.Len(t, created.ID, 36)
	assert.Equal(t, models.DefaultParams(), created.Params)

	got, err := svc.GetScenario(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Params, got.Params)

	_, err = svc.CreateScenario(ctx, &models.CreateScenarioRequest{Name: "base", OwnerID: 1})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.GetScenario(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestScenarioService_CreateRejectsInvalid(t *testing.T) {
	svc := newScenarioService(t)
	p := models.DefaultParams()
	p.LoanShare = 0.9

	_, err := svc.CreateScenario(context.Background(), &models.CreateScenarioRequest{Name: "bad", OwnerID: 1, Params: &p})
	assert.ErrorIs(t, err, ErrInvalidParams)

	items, err := svc.ListScenarios(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScenarioService_UpdateOverlaysParams(t *testing.T) {
	svc := newScenarioService(t)
	ctx, wc := NewWarningContext(context.Background())

	created, err := svc.CreateScenario(ctx, &models.CreateScenarioRequest{Name: "s", OwnerID: 5})
	require.NoError(t, err)

	raw, _ := json.Marshal(map[string]interface{}{"storage_fee": 1800, "legacy_flag": true})
	updated, err := svc.UpdateScenario(ctx, created.ID, 5, &models.UpdateScenarioRequest{Name: "s2", Params: raw})
	require.NoError(t, err)
	assert.Equal(t, "s2", updated.Name)
	assert.Equal(t, 1800.0, updated.Params.StorageFee)
	assert.Equal(t, models.DefaultParams().TotalArea, updated.Params.TotalArea)

	warnings := wc.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnUnknownScenarioKey, warnings[0].Code)

	_, err = svc.UpdateScenario(ctx, created.ID, 6, &models.UpdateScenarioRequest{Name: "stolen"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	bad, _ := json.Marshal(map[string]interface{}{"total_area": -1})
	_, err = svc.UpdateScenario(ctx, created.ID, 5, &models.UpdateScenarioRequest{Params: bad})
	assert.ErrorIs(t, err, ErrInvalidParams)

	// the failed update left the stored scenario alone
	got, err := svc.GetScenario(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultParams().TotalArea, got.Params.TotalArea)
}

func TestScenarioService_Delete(t *testing.T) {
	svc := newScenarioService(t)
	ctx := context.Background()

	created, err := svc.CreateScenario(ctx, &models.CreateScenarioRequest{Name: "d", OwnerID: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteScenario(ctx, created.ID, 2), ErrUnauthorized)
	require.NoError(t, svc.DeleteScenario(ctx, created.ID, 1))
	assert.ErrorIs(t, svc.DeleteScenario(ctx, created.ID, 1), ErrScenarioNotFound)
}

func TestScenarioService_ImportExportRoundTrip(t *testing.T) {
	svc := newScenarioService(t)
	ctx := context.Background()

	data := []byte("storage_fee: 1650\nloan_share: 0.25\nstorage_share: 0.55\ntime_horizon: 12\n")
	imported, err := svc.ImportScenario(ctx, 3, "from yaml", data, scenario.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1650.0, imported.Params.StorageFee)
	assert.Equal(t, 12, imported.Params.TimeHorizon)

	for _, f := range []scenario.Format{scenario.FormatJSON, scenario.FormatYAML} {
		b, sc, err := svc.ExportScenario(ctx, imported.ID, f)
		require.NoError(t, err)
		assert.Equal(t, imported.ID, sc.ID)

		back, _, err := scenario.Decode(b, f, models.Params{})
		require.NoError(t, err)
		assert.Equal(t, imported.Params, back)
	}
}

func TestScenarioService_ImportRejectsMalformed(t *testing.T) {
	svc := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.ImportScenario(ctx, 3, "broken", []byte(`{"storage_fee": `), scenario.FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidParams)

	// over-allocated shares are loaded as written and then rejected
	_, err = svc.ImportScenario(ctx, 3, "over", []byte(`{"storage_share": 0.9, "loan_share": 0.9}`), scenario.FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidParams)

	items, err := svc.ListScenarios(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, items)
}
