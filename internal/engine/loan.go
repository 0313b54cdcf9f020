package engine

// LoanSizingMode selects the minimum-loan formula
type LoanSizingMode string

const (
	LoanSizingBasic        LoanSizingMode = "basic"
	LoanSizingRiskAdjusted LoanSizingMode = "risk_adjusted"
)

// LoanRisk carries the factors used by risk-adjusted loan sizing
type LoanRisk struct {
	MonthlyRentGrowth  float64 // fraction per month
	TimeHorizon        int     // months
	DefaultProbability float64
	LiquidityFactor    float64
	SafetyFactor       float64
}

// MinLoanBasic returns the loan whose daily interest covers one day of
// storage fee. Zero when the rate is not positive.
func MinLoanBasic(dailyStorageFee, dailyRatePercent float64) float64 {
	if dailyRatePercent <= 0 {
		return 0
	}
	return dailyStorageFee / (dailyRatePercent / 100)
}

// MinLoanRiskAdjusted scales the basic minimum by the average rent growth over
// the horizon (taken at its midpoint), the safety factor, expected defaults
// and collateral liquidity.
func MinLoanRiskAdjusted(dailyStorageFee, dailyRatePercent float64, risk LoanRisk) float64 {
	if dailyRatePercent <= 0 {
		return 0
	}
	growthFactor := 1 + risk.MonthlyRentGrowth*(float64(risk.TimeHorizon)/2)
	adjustedFee := dailyStorageFee * growthFactor

	denominator := (dailyRatePercent / 100) * (1 - risk.DefaultProbability) * risk.LiquidityFactor
	if denominator <= 0 {
		return 0
	}
	return risk.SafetyFactor * adjustedFee / denominator
}

// MinLoan dispatches on mode. Unknown modes fall back to basic sizing.
func MinLoan(mode LoanSizingMode, dailyStorageFee, dailyRatePercent float64, risk LoanRisk) float64 {
	if mode == LoanSizingRiskAdjusted {
		return MinLoanRiskAdjusted(dailyStorageFee, dailyRatePercent, risk)
	}
	return MinLoanBasic(dailyStorageFee, dailyRatePercent)
}
