package models

import (
	"github.com/epeers/warehouse/internal/engine"
)

// Params is the flat, named parameter set for one warehouse scenario.
// Keys match the scenario file format. Percent-valued inputs
// (item_realization_markup, loan_interest_rate) are in percent; every other
// ratio is a fraction.
type Params struct {
	// Warehouse
	TotalArea       float64 `json:"total_area" yaml:"total_area"`
	RentalCostPerM2 float64 `json:"rental_cost_per_m2" yaml:"rental_cost_per_m2"`
	UsefulAreaRatio float64 `json:"useful_area_ratio" yaml:"useful_area_ratio"`
	ShelvesPerM2    float64 `json:"shelves_per_m2" yaml:"shelves_per_m2"`

	// Line mix
	StorageShare   float64 `json:"storage_share" yaml:"storage_share"`
	LoanShare      float64 `json:"loan_share" yaml:"loan_share"`
	VIPShare       float64 `json:"vip_share" yaml:"vip_share"`
	ShortTermShare float64 `json:"short_term_share" yaml:"short_term_share"`

	// Tariffs
	StorageFee         float64 `json:"storage_fee" yaml:"storage_fee"`
	ShortTermDailyRate float64 `json:"short_term_daily_rate" yaml:"short_term_daily_rate"`
	VIPExtraFee        float64 `json:"vip_extra_fee" yaml:"vip_extra_fee"`

	// Valuation and loans
	ItemEvaluation        float64 `json:"item_evaluation" yaml:"item_evaluation"`
	ItemRealizationMarkup float64 `json:"item_realization_markup" yaml:"item_realization_markup"`
	AverageItemValue      float64 `json:"average_item_value" yaml:"average_item_value"`
	LoanInterestRate      float64 `json:"loan_interest_rate" yaml:"loan_interest_rate"`

	// Realization
	RealizationShareStorage   float64 `json:"realization_share_storage" yaml:"realization_share_storage"`
	RealizationShareLoan      float64 `json:"realization_share_loan" yaml:"realization_share_loan"`
	RealizationShareVIP       float64 `json:"realization_share_vip" yaml:"realization_share_vip"`
	RealizationShareShortTerm float64 `json:"realization_share_short_term" yaml:"realization_share_short_term"`

	// Density
	StorageItemsDensity   float64 `json:"storage_items_density" yaml:"storage_items_density"`
	LoanItemsDensity      float64 `json:"loan_items_density" yaml:"loan_items_density"`
	VIPItemsDensity       float64 `json:"vip_items_density" yaml:"vip_items_density"`
	ShortTermItemsDensity float64 `json:"short_term_items_density" yaml:"short_term_items_density"`

	// Fixed monthly costs
	SalaryExpense         float64 `json:"salary_expense" yaml:"salary_expense"`
	MiscellaneousExpenses float64 `json:"miscellaneous_expenses" yaml:"miscellaneous_expenses"`
	DepreciationExpense   float64 `json:"depreciation_expense" yaml:"depreciation_expense"`

	// Time and risk
	TimeHorizon        int     `json:"time_horizon" yaml:"time_horizon"`
	MonthlyRentGrowth  float64 `json:"monthly_rent_growth" yaml:"monthly_rent_growth"`
	DefaultProbability float64 `json:"default_probability" yaml:"default_probability"`
	LiquidityFactor    float64 `json:"liquidity_factor" yaml:"liquidity_factor"`
	SafetyFactor       float64 `json:"safety_factor" yaml:"safety_factor"`
	DisableExtended    bool    `json:"disable_extended" yaml:"disable_extended"`
}

// DefaultParams returns the stock warehouse scenario
func DefaultParams() Params {
	return Params{
		TotalArea:       250,
		RentalCostPerM2: 1000,
		UsefulAreaRatio: 0.5,
		ShelvesPerM2:    3,

		StorageShare:   0.5,
		LoanShare:      0.3,
		VIPShare:       0.1,
		ShortTermShare: 0.1,

		StorageFee:         1500,
		ShortTermDailyRate: 60,
		VIPExtraFee:        1000,

		ItemEvaluation:        0.8,
		ItemRealizationMarkup: 20,
		AverageItemValue:      10000,
		LoanInterestRate:      0.317,

		RealizationShareStorage:   0.5,
		RealizationShareLoan:      0.5,
		RealizationShareVIP:       0.5,
		RealizationShareShortTerm: 0.5,

		StorageItemsDensity:   5,
		LoanItemsDensity:      5,
		VIPItemsDensity:       2,
		ShortTermItemsDensity: 4,

		SalaryExpense:         240000,
		MiscellaneousExpenses: 50000,
		DepreciationExpense:   20000,

		TimeHorizon:        6,
		MonthlyRentGrowth:  0.01,
		DefaultProbability: 0.05,
		LiquidityFactor:    1.0,
		SafetyFactor:       1.2,
	}
}

// Effective returns the parameters actually used for computation. With
// extended parameters disabled the horizon collapses to one month and the
// growth and risk factors become neutral.
func (p Params) Effective() Params {
	if !p.DisableExtended {
		return p
	}
	p.TimeHorizon = 1
	p.MonthlyRentGrowth = 0
	p.DefaultProbability = 0
	p.LiquidityFactor = 1
	p.SafetyFactor = 1
	return p
}

// Shares returns the line mix
func (p Params) Shares() engine.Shares {
	return engine.Shares{
		Storage:   p.StorageShare,
		Loan:      p.LoanShare,
		VIP:       p.VIPShare,
		ShortTerm: p.ShortTermShare,
	}
}

// SetShares overwrites the line mix
func (p *Params) SetShares(s engine.Shares) {
	p.StorageShare = s.Storage
	p.LoanShare = s.Loan
	p.VIPShare = s.VIP
	p.ShortTermShare = s.ShortTerm
}

// Densities returns items per m² by line
func (p Params) Densities() engine.Densities {
	return engine.Densities{
		Storage:   p.StorageItemsDensity,
		Loan:      p.LoanItemsDensity,
		VIP:       p.VIPItemsDensity,
		ShortTerm: p.ShortTermItemsDensity,
	}
}

// RealizationShares returns the monthly liquidation fractions by line
func (p Params) RealizationShares() engine.RealizationShares {
	return engine.RealizationShares{
		Storage:   p.RealizationShareStorage,
		Loan:      p.RealizationShareLoan,
		VIP:       p.RealizationShareVIP,
		ShortTerm: p.RealizationShareShortTerm,
	}
}

// Areas allocates the warehouse shelf capacity between lines
func (p Params) Areas() engine.Areas {
	return engine.Allocate(p.TotalArea, p.UsefulAreaRatio, p.ShelvesPerM2, p.Shares())
}

// Inputs builds the financial model input tuple
func (p Params) Inputs() engine.Inputs {
	return engine.Inputs{
		Areas:                 p.Areas(),
		Densities:             p.Densities(),
		StorageFee:            p.StorageFee,
		ItemEvaluation:        p.ItemEvaluation,
		ItemRealizationMarkup: p.ItemRealizationMarkup,
		AverageItemValue:      p.AverageItemValue,
		LoanInterestRate:      p.LoanInterestRate,
		Realization:           p.RealizationShares(),
		RentalCostPerM2:       p.RentalCostPerM2,
		TotalArea:             p.TotalArea,
		SalaryExpense:         p.SalaryExpense,
		MiscellaneousExpenses: p.MiscellaneousExpenses,
		DepreciationExpense:   p.DepreciationExpense,
		DefaultProbability:    p.DefaultProbability,
		VIPExtraFee:           p.VIPExtraFee,
		ShortTermDailyRate:    p.ShortTermDailyRate,
	}
}

// LoanRisk returns the loan-sizing risk factors
func (p Params) LoanRisk() engine.LoanRisk {
	return engine.LoanRisk{
		MonthlyRentGrowth:  p.MonthlyRentGrowth,
		TimeHorizon:        p.TimeHorizon,
		DefaultProbability: p.DefaultProbability,
		LiquidityFactor:    p.LiquidityFactor,
		SafetyFactor:       p.SafetyFactor,
	}
}

// LoanSizingMode picks risk-adjusted sizing unless extended parameters are
// disabled or there is no interest to earn.
func (p Params) LoanSizingMode() engine.LoanSizingMode {
	if !p.DisableExtended && p.LoanInterestRate > 0 {
		return engine.LoanSizingRiskAdjusted
	}
	return engine.LoanSizingBasic
}
