package models

import (
	"github.com/epeers/warehouse/internal/engine"
)

// CalculationResponse is one month of the warehouse model with derived metrics
type CalculationResponse struct {
	Params           Params                `json:"params"`
	Areas            engine.Areas          `json:"areas"`
	Items            engine.Items          `json:"items"`
	Breakdown        engine.Breakdown      `json:"breakdown"`
	ProfitMargin     float64               `json:"profit_margin"`
	Profitability    float64               `json:"profitability"`
	ProfitByLine     engine.LineProfit     `json:"profit_by_line"`
	LoanSizingMode   engine.LoanSizingMode `json:"loan_sizing_mode"`
	MinLoan          float64               `json:"min_loan"`
	MinLoanBasic     float64               `json:"min_loan_basic"`
	UnallocatedShare float64               `json:"unallocated_share"`
	Warnings         []Warning             `json:"warnings,omitempty"`
}

// ProjectionResponse is the month-by-month projection over the time horizon
type ProjectionResponse struct {
	TimeHorizon       int                      `json:"time_horizon"`
	MonthlyRentGrowth float64                  `json:"monthly_rent_growth"`
	Months            []engine.ProjectionPoint `json:"months"`
	TotalProfit       float64                  `json:"total_profit"`
	Warnings          []Warning                `json:"warnings,omitempty"`
}

// BreakevenRequest represents the request body for breakeven queries.
// Each target is solved independently holding every other input fixed.
type BreakevenRequest struct {
	Params        *Params  `json:"params"`
	Targets       []string `json:"targets" binding:"required"`
	Floor         *float64 `json:"floor,omitempty"`
	AllowNegative bool     `json:"allow_negative"`
	IncludeCurve  bool     `json:"include_curve"`
	CurvePoints   int      `json:"curve_points"`
}

// BreakevenResult is the solver outcome for one parameter
type BreakevenResult struct {
	Param string              `json:"param"`
	Base  float64             `json:"base"`
	Root  engine.Root         `json:"root"`
	Curve []engine.SweepPoint `json:"curve,omitempty"`
}

// BreakevenResponse collects breakeven results in request order
type BreakevenResponse struct {
	Results  []BreakevenResult `json:"results"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// SweepRequest represents the request body for a profit curve.
// From and To default to ±50% around the current value.
type SweepRequest struct {
	Params *Params  `json:"params"`
	Param  string   `json:"param" binding:"required"`
	From   *float64 `json:"from,omitempty"`
	To     *float64 `json:"to,omitempty"`
	Points int      `json:"points"`
}

// SweepResponse is a sampled profit curve
type SweepResponse struct {
	Param  string              `json:"param"`
	Points []engine.SweepPoint `json:"points"`
}

// NormalizeSharesRequest represents one edit of the line mix. Changed names
// the edited share key (e.g. "loan_share"); Disabled lists share keys whose
// lines are switched off.
type NormalizeSharesRequest struct {
	Shares   engine.Shares `json:"shares"`
	Changed  string        `json:"changed" binding:"required"`
	Value    float64       `json:"value"`
	Disabled []string      `json:"disabled,omitempty"`
}

// NormalizeSharesResponse is the redistributed line mix
type NormalizeSharesResponse struct {
	Shares engine.Shares `json:"shares"`
	Sum    float64       `json:"sum"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
