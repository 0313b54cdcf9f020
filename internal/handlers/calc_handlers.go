package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/report"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/epeers/warehouse/internal/services"
	"github.com/gin-gonic/gin"
)

// CalculatorHandler handles model evaluation endpoints
type CalculatorHandler struct {
	calcSvc *services.CalculatorService
}

// NewCalculatorHandler creates a new CalculatorHandler
func NewCalculatorHandler(calcSvc *services.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{
		calcSvc: calcSvc,
	}
}

// bindParams overlays the JSON body on the default parameters. An empty
// body means the defaults.
func bindParams(c *gin.Context) (models.Params, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "failed to read request body")
		return models.Params{}, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return models.DefaultParams(), true
	}
	p, ignored, err := scenario.Decode(body, scenario.FormatJSON, models.DefaultParams())
	if err != nil {
		badRequest(c, err.Error())
		return models.Params{}, false
	}
	for _, key := range ignored {
		services.Warnf(c.Request.Context(), models.WarnUnknownScenarioKey, "unknown key %q was ignored", key)
	}
	return p, true
}

// withWarnings swaps the request context for one that collects warnings
func withWarnings(c *gin.Context) *services.WarningCollector {
	ctx, wc := services.NewWarningContext(c.Request.Context())
	c.Request = c.Request.WithContext(ctx)
	return wc
}

// Defaults handles GET /defaults
// @Summary Default parameters
// @Description Get the stock warehouse parameter set
// @Tags calculator
// @Produce json
// @Success 200 {object} models.Params
// @Router /defaults [get]
func (h *CalculatorHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultParams())
}

// Calculate handles POST /calculate
// @Summary Calculate monthly economics
// @Description Evaluate one month of income, expenses and profit. Keys omitted from the body keep their defaults.
// @Tags calculator
// @Accept json
// @Produce json
// @Param params body models.Params false "Parameters to override"
// @Success 200 {object} models.CalculationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /calculate [post]
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	wc := withWarnings(c)
	p, ok := bindParams(c)
	if !ok {
		return
	}

	resp, err := h.calcSvc.Calculate(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Project handles POST /projection
// @Summary Project over the time horizon
// @Description Month-by-month income, expenses and cumulative profit with compounding rent growth
// @Tags calculator
// @Accept json
// @Produce json
// @Param params body models.Params false "Parameters to override"
// @Success 200 {object} models.ProjectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /projection [post]
func (h *CalculatorHandler) Project(c *gin.Context) {
	wc := withWarnings(c)
	p, ok := bindParams(c)
	if !ok {
		return
	}

	resp, err := h.calcSvc.Project(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Breakeven handles POST /breakeven
// @Summary Find breakeven values
// @Description Solve each target parameter for zero monthly profit, holding the others fixed
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body models.BreakevenRequest true "Breakeven targets"
// @Success 200 {object} models.BreakevenResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /breakeven [post]
func (h *CalculatorHandler) Breakeven(c *gin.Context) {
	wc := withWarnings(c)

	defaults := models.DefaultParams()
	req := models.BreakevenRequest{Params: &defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Params == nil {
		req.Params = &defaults
	}

	resp, err := h.calcSvc.Breakeven(c.Request.Context(), *req.Params, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Sweep handles POST /sweep
// @Summary Profit curve
// @Description Sample monthly profit across a range of one parameter (default ±50% around its value)
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body models.SweepRequest true "Sweep request"
// @Success 200 {object} models.SweepResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /sweep [post]
func (h *CalculatorHandler) Sweep(c *gin.Context) {
	defaults := models.DefaultParams()
	req := models.SweepRequest{Params: &defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Params == nil {
		req.Params = &defaults
	}

	resp, err := h.calcSvc.Sweep(c.Request.Context(), *req.Params, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NormalizeShares handles POST /shares/normalize
// @Summary Rebalance the line mix
// @Description Set one line share and rescale the other enabled lines so the mix sums to at most 100%
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body models.NormalizeSharesRequest true "Share edit"
// @Success 200 {object} models.NormalizeSharesResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /shares/normalize [post]
func (h *CalculatorHandler) NormalizeShares(c *gin.Context) {
	var req models.NormalizeSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	shares, err := services.NormalizeShares(c.Request.Context(), req.Shares, req.Changed, req.Value, req.Disabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NormalizeSharesResponse{Shares: shares, Sum: shares.Sum()})
}

// ExportCSV handles POST /export/csv
// @Summary Download results as CSV
// @Description Headline metrics (report=summary, the default) or the monthly projection (report=projection)
// @Tags calculator
// @Accept json
// @Produce text/csv
// @Param report query string false "summary or projection"
// @Param params body models.Params false "Parameters to override"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /export/csv [post]
func (h *CalculatorHandler) ExportCSV(c *gin.Context) {
	kind := c.DefaultQuery("report", "summary")
	if kind != "summary" && kind != "projection" {
		badRequest(c, "report must be 'summary' or 'projection'")
		return
	}
	p, ok := bindParams(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if kind == "projection" {
		resp, err := h.calcSvc.Project(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := report.WriteProjectionCSV(&buf, resp.Months); err != nil {
			respondError(c, err)
			return
		}
	} else {
		resp, err := h.calcSvc.Calculate(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := report.WriteCalculationCSV(&buf, resp); err != nil {
			respondError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+kind+`.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
