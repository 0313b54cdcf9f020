package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/epeers/warehouse/internal/cache"
	"github.com/epeers/warehouse/internal/middleware"
	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/repository"
	"github.com/epeers/warehouse/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewScenarioFileRepository(t.TempDir())
	require.NoError(t, err)

	memCache := cache.NewMemoryCache(time.Minute, 1000)
	calcSvc := services.NewCalculatorService(memCache)
	scenarioSvc := services.NewScenarioService(store)

	router := gin.New()
	router.Use(middleware.ValidateUser())
	RegisterRoutes(router, NewCalculatorHandler(calcSvc), NewScenarioHandler(scenarioSvc), NewUserHandler(scenarioSvc), NewAdminHandler(memCache))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDefaults(t *testing.T) {
	router := setupTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/defaults", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var p models.Params
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, models.DefaultParams(), p)
}

func TestCalculate(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/calculate", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.CalculationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 560000.0, resp.Breakdown.TotalExpenses, 1e-6)
	assert.Empty(t, resp.Warnings)

	w = doJSON(t, router, http.MethodPost, "/calculate", `{"short_term_share": 0, "mystery": 1}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = models.CalculationResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	codes := map[models.WarningCode]bool{}
	for _, warning := range resp.Warnings {
		codes[warning.Code] = true
	}
	assert.True(t, codes[models.WarnUnallocatedArea])
	assert.True(t, codes[models.WarnUnknownScenarioKey])
}

func TestAdminCache(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/calculate", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/calculate", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/admin/cache", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats cache.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Breakdowns)
	assert.Equal(t, int64(1), stats.Hits)

	w = doJSON(t, router, http.MethodDelete, "/admin/cache", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/admin/cache", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.Breakdowns)
}

func TestCalculate_Invalid(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/calculate", `{"total_area": 0, "default_probability": 3}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "bad_request", errResp.Error)
	assert.Len(t, errResp.Details, 2)

	w = doJSON(t, router, http.MethodPost, "/calculate", `{"total_area": `, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjection(t *testing.T) {
	router := setupTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/projection", `{"time_horizon": 3}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProjectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Months, 3)
	assert.Equal(t, 3, resp.Months[2].Month)
}

func TestBreakeven(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"params": {"loan_share": 0, "vip_share": 0, "short_term_share": 0, "storage_share": 1, "item_realization_markup": 0}, "targets": ["storage_fee"]}`

	w := doJSON(t, router, http.MethodPost, "/breakeven", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.BreakevenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].Root.Found)
	assert.InDelta(t, 560000.0/750, resp.Results[0].Root.Value, 0.01)
	// params not in the body keep their defaults
	assert.Equal(t, 1500.0, resp.Results[0].Base)

	w = doJSON(t, router, http.MethodPost, "/breakeven", `{"targets": ["flux"]}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweep(t *testing.T) {
	router := setupTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/sweep", `{"param": "storage_fee", "points": 5}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SweepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Points, 5)
	assert.Equal(t, 750.0, resp.Points[0].Value)
	assert.Equal(t, 2250.0, resp.Points[4].Value)

	w = doJSON(t, router, http.MethodPost, "/sweep", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeShares(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"shares": {"storage_share": 0.5, "loan_share": 0.3, "vip_share": 0.1, "short_term_share": 0.1}, "changed": "storage_share", "value": 0.8}`

	w := doJSON(t, router, http.MethodPost, "/shares/normalize", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.NormalizeSharesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.8, resp.Shares.Storage)
	assert.InDelta(t, 1.0, resp.Sum, 1e-12)

	w = doJSON(t, router, http.MethodPost, "/shares/normalize", `{"changed": "moon_share", "value": 0.2}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCSV(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/export/csv", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"total_expenses", "560000.00"}, records[2])

	w = doJSON(t, router, http.MethodPost, "/export/csv?report=projection", `{"time_horizon": 4}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	records, err = csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 5)

	w = doJSON(t, router, http.MethodPost, "/export/csv?report=pie", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScenarioLifecycle(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/scenarios", `{"name": "north", "owner_id": 9, "params": {"storage_fee": 1800}}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1800.0, created.Params.StorageFee)
	// keys missing from params keep their defaults
	assert.Equal(t, 250.0, created.Params.TotalArea)

	w = doJSON(t, router, http.MethodPost, "/scenarios", `{"name": "north", "owner_id": 9}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/scenarios/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/scenarios/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/scenarios/00000000-0000-0000-0000-000000000001", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/scenarios/"+created.ID, `{"params": {"total_area": 300}}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPut, "/scenarios/"+created.ID, `{"params": {"total_area": 300}}`, "10")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPut, "/scenarios/"+created.ID, `{"name": "north v2", "params": {"total_area": 300}}`, "9")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "north v2", updated.Name)
	assert.Equal(t, 300.0, updated.Params.TotalArea)
	assert.Equal(t, 1800.0, updated.Params.StorageFee)

	w = doJSON(t, router, http.MethodGet, "/scenarios/"+created.ID+"/export?format=yaml", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	var exported models.Params
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &exported))
	assert.Equal(t, updated.Params, exported)

	w = doJSON(t, router, http.MethodGet, "/scenarios/"+created.ID+"/export?format=toml", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/9/scenarios", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.ScenarioListItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "north v2", items[0].Name)

	w = doJSON(t, router, http.MethodGet, "/users/abc/scenarios", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/scenarios/"+created.ID, "", "9")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodGet, "/scenarios/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// buildImportRequest builds a multipart request with an optional name field
// and a scenario file part.
func buildImportRequest(t *testing.T, filename, content, name, userID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(t, writer.WriteField("name", name))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("scenario", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/scenarios/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	return req
}

func TestImportScenario(t *testing.T) {
	router := setupTestRouter(t)

	testCases := []struct {
		name     string
		filename string
		content  string
		wantFee  float64
	}{
		{"json", "json-case.json", `{"storage_fee": 1400, "old_key": 1}`, 1400},
		{"yaml", "yaml-case.yml", "storage_fee: 1300\n", 1300},
		{"csv", "csv-case.csv", "parameter,value\nstorage_fee,1200\n", 1200},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, buildImportRequest(t, tc.filename, tc.content, "", "4"))
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var resp struct {
				Scenario models.Scenario `json:"scenario"`
				Warnings []models.Warning `json:"warnings"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantFee, resp.Scenario.Params.StorageFee)
			assert.Equal(t, strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(tc.filename, ".json"), ".yml"), ".csv"), resp.Scenario.Name)
		})
	}
}

func TestImportScenario_Errors(t *testing.T) {
	router := setupTestRouter(t)

	testCases := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"anonymous", buildImportRequest(t, "a.json", `{}`, "a", ""), http.StatusUnauthorized},
		{"no file", buildImportRequest(t, "", "", "a", "4"), http.StatusBadRequest},
		{"bad extension", buildImportRequest(t, "a.ini", "x=1", "a", "4"), http.StatusBadRequest},
		{"malformed json", buildImportRequest(t, "a.json", `{"storage_fee": `, "a", "4"), http.StatusBadRequest},
		{"invalid params", buildImportRequest(t, "a.json", `{"total_area": -5}`, "a", "4"), http.StatusBadRequest},
		{"bad csv", buildImportRequest(t, "a.csv", "parameter,value\nstorage_fee,lots\n", "a", "4"), http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}

	w := doJSON(t, router, http.MethodGet, "/users/4/scenarios", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
