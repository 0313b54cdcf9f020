// Package report renders model results as CSV and reads parameter sheets.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epeers/warehouse/internal/engine"
	"github.com/epeers/warehouse/internal/models"
	"github.com/shopspring/decimal"
)

// money renders v rounded half away from zero to two decimals
func money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// WriteCalculationCSV writes the headline metrics of one calculation as
// metric,value rows.
func WriteCalculationCSV(w io.Writer, resp *models.CalculationResponse) error {
	minLoanMetric := "min_loan_basic"
	if resp.LoanSizingMode == engine.LoanSizingRiskAdjusted {
		minLoanMetric = "min_loan_risk_adjusted"
	}

	b := resp.Breakdown
	rows := [][]string{
		{"metric", "value"},
		{"total_income", money(b.TotalIncome)},
		{"total_expenses", money(b.TotalExpenses)},
		{"profit", money(b.Profit)},
		{"profit_margin_pct", money(resp.ProfitMargin)},
		{"profitability_pct", money(resp.Profitability)},
		{"realization_income", money(b.RealizationIncome)},
		{minLoanMetric, money(resp.MinLoan)},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteProjectionCSV writes one row per projected month
func WriteProjectionCSV(w io.Writer, months []engine.ProjectionPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "income", "expenses", "profit", "cumulative_profit", "rental_cost_per_m2"}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	for _, m := range months {
		record := []string{
			strconv.Itoa(m.Month),
			money(m.Income),
			money(m.Expenses),
			money(m.Profit),
			money(m.CumulativeProfit),
			money(m.RentalCostPerM2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBreakevenCSV writes one row per solved parameter
func WriteBreakevenCSV(w io.Writer, results []models.BreakevenResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"param", "base", "found", "value", "low", "high", "attempts", "iterations"}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	for _, r := range results {
		value := ""
		if r.Root.Found {
			value = money(r.Root.Value)
		}
		record := []string{
			r.Param,
			money(r.Base),
			strconv.FormatBool(r.Root.Found),
			value,
			money(r.Root.Low),
			money(r.Root.High),
			strconv.Itoa(r.Root.Attempts),
			strconv.Itoa(r.Root.Iterations),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseParamsCSV reads a parameter sheet with columns "parameter" and "value"
// into a key/value map. Blank parameter names are skipped; values must be
// numeric, or true/false for boolean keys.
func ParseParamsCSV(r io.Reader) (map[string]interface{}, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"parameter", "value"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	out := make(map[string]interface{})
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		key := strings.TrimSpace(record[colIdx["parameter"]])
		if key == "" {
			continue
		}
		raw := strings.TrimSpace(record[colIdx["value"]])

		if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
			out[key] = b
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q for %s", rowNum, raw, key)
		}
		f, _ := v.Float64()
		out[key] = f
	}
	return out, nil
}
