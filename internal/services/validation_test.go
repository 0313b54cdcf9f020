package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsAreValid(t *testing.T) {
	assert.Empty(t, Validate(models.DefaultParams()))
	assert.NoError(t, ValidateParams(models.DefaultParams()))
}

func TestValidate_Rules(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *models.Params)
		want   string
	}{
		{"zero total area", func(p *models.Params) { p.TotalArea = 0 }, "total_area"},
		{"zero rent", func(p *models.Params) { p.RentalCostPerM2 = 0 }, "rental_cost_per_m2"},
		{"negative loan rate", func(p *models.Params) { p.LoanInterestRate = -0.1 }, "loan_interest_rate"},
		{"negative storage fee", func(p *models.Params) { p.StorageFee = -1 }, "storage_fee"},
		{"useful ratio above 1", func(p *models.Params) { p.UsefulAreaRatio = 1.2 }, "useful_area_ratio"},
		{"negative share", func(p *models.Params) { p.VIPShare = -0.1 }, "vip_share"},
		{"shares above 1", func(p *models.Params) { p.LoanShare = 0.5 }, "sum above 1"},
		{"negative item value", func(p *models.Params) { p.AverageItemValue = -5 }, "average_item_value"},
		{"negative salary", func(p *models.Params) { p.SalaryExpense = -1 }, "salary_expense"},
		{"negative misc", func(p *models.Params) { p.MiscellaneousExpenses = -1 }, "miscellaneous_expenses"},
		{"negative depreciation", func(p *models.Params) { p.DepreciationExpense = -1 }, "depreciation_expense"},
		{"default probability above 1", func(p *models.Params) { p.DefaultProbability = 1.5 }, "default_probability"},
		{"realization share above 1", func(p *models.Params) { p.RealizationShareLoan = 2 }, "realization_share_loan"},
		{"item evaluation above 1", func(p *models.Params) { p.ItemEvaluation = 1.1 }, "item_evaluation"},
		{"negative density", func(p *models.Params) { p.VIPItemsDensity = -2 }, "vip_items_density"},
		{"no shelves", func(p *models.Params) { p.ShelvesPerM2 = 0 }, "shelves_per_m2"},
		{"zero horizon", func(p *models.Params) { p.TimeHorizon = 0 }, "time_horizon"},
		{"zero liquidity", func(p *models.Params) { p.LiquidityFactor = 0 }, "liquidity_factor"},
		{"negative safety", func(p *models.Params) { p.SafetyFactor = -1 }, "safety_factor"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := models.DefaultParams()
			tc.mutate(&p)
			problems := Validate(p)
			require.Len(t, problems, 1, "problems: %v", problems)
			assert.Contains(t, problems[0], tc.want)
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	p := models.DefaultParams()
	p.StorageFee = 0
	p.LoanInterestRate = 0
	p.UsefulAreaRatio = 1
	p.DefaultProbability = 1
	p.SafetyFactor = 0
	// shares summing to 1 within float noise
	p.StorageShare, p.LoanShare, p.VIPShare, p.ShortTermShare = 0.7, 0.1, 0.1, 0.1
	assert.Empty(t, Validate(p))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	p := models.DefaultParams()
	p.TotalArea = -1
	p.StorageFee = -1
	p.DefaultProbability = 2

	err := ValidateParams(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParams))
	assert.Len(t, ProblemsOf(err), 3)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid parameters: "))
	assert.Nil(t, ProblemsOf(errors.New("other")))
}

func TestValidate_NonFinite(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *models.Params)
		want   []string
	}{
		{"nan area", func(p *models.Params) { p.TotalArea = math.NaN() }, []string{"total_area"}},
		{"infinite rent", func(p *models.Params) { p.RentalCostPerM2 = math.Inf(1) }, []string{"rental_cost_per_m2"}},
		{"negative infinite fee", func(p *models.Params) { p.StorageFee = math.Inf(-1) }, []string{"storage_fee"}},
		{"nan share and growth", func(p *models.Params) {
			p.VIPShare = math.NaN()
			p.MonthlyRentGrowth = math.NaN()
		}, []string{"vip_share", "monthly_rent_growth"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := models.DefaultParams()
			tc.mutate(&p)
			problems := Validate(p)
			require.Len(t, problems, len(tc.want), "problems: %v", problems)
			for i, key := range tc.want {
				assert.Contains(t, problems[i], key)
				assert.Contains(t, problems[i], "finite")
			}
		})
	}
}

func TestCalculate_RejectsNonFiniteScenario(t *testing.T) {
	p, _, err := scenario.Decode([]byte("total_area: .nan\nrental_cost_per_m2: .inf\n"), scenario.FormatYAML, models.DefaultParams())
	require.NoError(t, err)

	_, err = NewCalculatorService(nil).Calculate(context.Background(), p)
	require.ErrorIs(t, err, ErrInvalidParams)
	assert.Len(t, ProblemsOf(err), 2)
}
