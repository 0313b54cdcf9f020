package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/epeers/warehouse/internal/middleware"
	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/report"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/epeers/warehouse/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxScenarioUpload caps the size of an imported scenario file
const maxScenarioUpload = 1 << 20

// ScenarioHandler handles saved scenario endpoints
type ScenarioHandler struct {
	scenarioSvc *services.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(scenarioSvc *services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioSvc: scenarioSvc,
	}
}

func scenarioID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid scenario ID")
		return "", false
	}
	return id.String(), true
}

func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return 0, false
	}
	return userID, true
}

// Create handles POST /scenarios
// @Summary Save a scenario
// @Description Save a named parameter set. Params omitted from the body keep their defaults.
// @Tags scenarios
// @Accept json
// @Produce json
// @Param scenario body models.CreateScenarioRequest true "Scenario"
// @Success 201 {object} models.Scenario
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scenarios [post]
func (h *ScenarioHandler) Create(c *gin.Context) {
	defaults := models.DefaultParams()
	req := models.CreateScenarioRequest{Params: &defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sc, err := h.scenarioSvc.CreateScenario(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// Get handles GET /scenarios/:id
// @Summary Get a scenario
// @Tags scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 200 {object} models.Scenario
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scenarios/{id} [get]
func (h *ScenarioHandler) Get(c *gin.Context) {
	id, ok := scenarioID(c)
	if !ok {
		return
	}

	sc, err := h.scenarioSvc.GetScenario(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

// Update handles PUT /scenarios/:id
// @Summary Update a scenario
// @Description Rename a scenario and/or overlay new params. Owner only.
// @Tags scenarios
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param X-User-ID header int true "User ID"
// @Param scenario body models.UpdateScenarioRequest true "Changes"
// @Success 200 {object} models.Scenario
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scenarios/{id} [put]
func (h *ScenarioHandler) Update(c *gin.Context) {
	id, ok := scenarioID(c)
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sc, err := h.scenarioSvc.UpdateScenario(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

// Delete handles DELETE /scenarios/:id
// @Summary Delete a scenario
// @Tags scenarios
// @Param id path string true "Scenario ID"
// @Param X-User-ID header int true "User ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scenarios/{id} [delete]
func (h *ScenarioHandler) Delete(c *gin.Context) {
	id, ok := scenarioID(c)
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.scenarioSvc.DeleteScenario(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Import handles POST /scenarios/import
// @Summary Import a scenario file
// @Description Upload a flat JSON, YAML or CSV (parameter,value) scenario. Keys not in the file keep their defaults; unknown keys are ignored with a warning.
// @Tags scenarios
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header int true "User ID"
// @Param name formData string false "Scenario name (defaults to the file name)"
// @Param scenario formData file true "Scenario file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scenarios/import [post]
func (h *ScenarioHandler) Import(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	wc := withWarnings(c)

	fh, err := c.FormFile("scenario")
	if err != nil {
		badRequest(c, "missing scenario file")
		return
	}
	if fh.Size > maxScenarioUpload {
		badRequest(c, "scenario file too large")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "failed to open scenario file")
		return
	}
	defer f.Close()

	data, format, err := readUpload(f, fh.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	name := c.PostForm("name")
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	}

	sc, err := h.scenarioSvc.ImportScenario(c.Request.Context(), userID, name, data, format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"scenario": sc, "warnings": wc.GetWarnings()})
}

// readUpload returns the upload as JSON or YAML. CSV parameter sheets are
// converted to JSON.
func readUpload(r io.Reader, filename string) ([]byte, scenario.Format, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		values, err := report.ParseParamsCSV(r)
		if err != nil {
			return nil, "", &services.ValidationError{Problems: []string{err.Error()}}
		}
		b, err := json.Marshal(values)
		if err != nil {
			return nil, "", err
		}
		return b, scenario.FormatJSON, nil
	}

	format, err := scenario.FormatFromPath(filename)
	if err != nil {
		return nil, "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

// Export handles GET /scenarios/:id/export
// @Summary Download a scenario file
// @Tags scenarios
// @Produce json
// @Produce application/yaml
// @Param id path string true "Scenario ID"
// @Param format query string false "json (default) or yaml"
// @Success 200 {object} models.Params
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scenarios/{id}/export [get]
func (h *ScenarioHandler) Export(c *gin.Context) {
	id, ok := scenarioID(c)
	if !ok {
		return
	}
	format, err := scenario.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, sc, err := h.scenarioSvc.ExportScenario(c.Request.Context(), id, format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+sc.ID+"."+string(format)+`"`)
	c.Data(http.StatusOK, format.ContentType(), data)
}

// UserHandler handles user-related endpoints
type UserHandler struct {
	scenarioSvc *services.ScenarioService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(scenarioSvc *services.ScenarioService) *UserHandler {
	return &UserHandler{
		scenarioSvc: scenarioSvc,
	}
}

// ListScenarios handles GET /users/:user_id/scenarios
// @Summary List user's scenarios
// @Description Get all scenarios belonging to a user
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} models.ScenarioListItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /users/{user_id}/scenarios [get]
func (h *UserHandler) ListScenarios(c *gin.Context) {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		badRequest(c, "invalid user ID")
		return
	}

	items, err := h.scenarioSvc.ListScenarios(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Return empty array if no scenarios
	if items == nil {
		items = []models.ScenarioListItem{}
	}
	c.JSON(http.StatusOK, items)
}
