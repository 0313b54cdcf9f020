package engine

// DaysPerMonth is the fixed month length used by every daily rate.
const DaysPerMonth = 30.0

// RealizationShares is the fraction of each line's items liquidated per month
type RealizationShares struct {
	Storage   float64 `json:"realization_share_storage" yaml:"realization_share_storage"`
	Loan      float64 `json:"realization_share_loan" yaml:"realization_share_loan"`
	VIP       float64 `json:"realization_share_vip" yaml:"realization_share_vip"`
	ShortTerm float64 `json:"realization_share_short_term" yaml:"realization_share_short_term"`
}

// Inputs is the full input tuple of the monthly financial model.
// It only holds scalar fields so it is comparable and can key a cache.
type Inputs struct {
	Areas     Areas
	Densities Densities

	StorageFee            float64 // per m² per month
	ItemEvaluation        float64 // fraction of item value lent against
	ItemRealizationMarkup float64 // percent
	AverageItemValue      float64
	LoanInterestRate      float64 // percent per day
	Realization           RealizationShares

	RentalCostPerM2       float64
	TotalArea             float64
	SalaryExpense         float64
	MiscellaneousExpenses float64
	DepreciationExpense   float64

	DefaultProbability float64
	VIPExtraFee        float64
	ShortTermDailyRate float64 // per m² per day
}

// RealizationIncome itemizes realization income by storage line
type RealizationIncome struct {
	Storage   float64 `json:"storage"`
	Loan      float64 `json:"loan"`
	VIP       float64 `json:"vip"`
	ShortTerm float64 `json:"short_term"`
}

// Total returns the realization income summed over the four lines
func (r RealizationIncome) Total() float64 {
	return r.Storage + r.Loan + r.VIP + r.ShortTerm
}

// Breakdown is one month of income, expenses and profit
type Breakdown struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Profit        float64 `json:"profit"`

	StorageIncome              float64           `json:"storage_income"`
	LoanIncomeAfterRealization float64           `json:"loan_income_after_realization"`
	RealizationIncome          float64           `json:"realization_income"`
	RealizationByLine          RealizationIncome `json:"realization_by_line"`
	VIPIncome                  float64           `json:"vip_income"`
	ShortTermIncome            float64           `json:"short_term_income"`

	RentalExpense         float64 `json:"rental_expense"`
	SalaryExpense         float64 `json:"salary_expense"`
	MiscellaneousExpenses float64 `json:"miscellaneous_expenses"`
	DepreciationExpense   float64 `json:"depreciation_expense"`

	LoanAmount       float64 `json:"loan_amount"`
	LoanIncomeMonth  float64 `json:"loan_income_month"`
	LoanInterestRate float64 `json:"loan_interest_rate"` // after clamping
	DailyStorageFee  float64 `json:"daily_storage_fee"`
	Items            Items   `json:"items"`
}

// Evaluator computes a Breakdown for an input tuple. Compute is the reference
// implementation; callers may substitute a memoizing wrapper.
type Evaluator func(Inputs) Breakdown

// Compute evaluates the monthly financial model. It is a pure function of in:
// identical inputs always give a bit-identical Breakdown.
func Compute(in Inputs) Breakdown {
	items := CountItems(in.Areas, in.Densities)

	storageIncome := in.Areas.Storage * in.StorageFee

	rate := in.LoanInterestRate
	if rate < 0 {
		rate = 0
	}
	loanAmount := in.Areas.Loan * in.AverageItemValue * in.ItemEvaluation
	loanIncomeMonth := loanAmount * (rate / 100) * DaysPerMonth

	markup := in.ItemRealizationMarkup / 100
	realization := RealizationIncome{
		Storage:   items.Storage * in.Realization.Storage * in.AverageItemValue * markup,
		Loan:      items.Loan * in.Realization.Loan * in.AverageItemValue * markup,
		VIP:       items.VIP * in.Realization.VIP * in.AverageItemValue * markup,
		ShortTerm: items.ShortTerm * in.Realization.ShortTerm * in.AverageItemValue * markup,
	}
	realizationIncome := realization.Total()

	// Liquidated collateral stops earning interest; defaults are a flat haircut.
	loanAfterRealization := loanIncomeMonth * (1 - in.Realization.Loan) * (1 - in.DefaultProbability)

	vipIncome := in.Areas.VIP * (in.StorageFee + in.VIPExtraFee)
	shortTermIncome := in.Areas.ShortTerm * in.ShortTermDailyRate * DaysPerMonth

	totalIncome := storageIncome + loanAfterRealization + realizationIncome + vipIncome + shortTermIncome

	rentalExpense := in.TotalArea * in.RentalCostPerM2
	totalExpenses := rentalExpense + in.SalaryExpense + in.MiscellaneousExpenses + in.DepreciationExpense

	return Breakdown{
		TotalIncome:                totalIncome,
		TotalExpenses:              totalExpenses,
		Profit:                     totalIncome - totalExpenses,
		StorageIncome:              storageIncome,
		LoanIncomeAfterRealization: loanAfterRealization,
		RealizationIncome:          realizationIncome,
		RealizationByLine:          realization,
		VIPIncome:                  vipIncome,
		ShortTermIncome:            shortTermIncome,
		RentalExpense:              rentalExpense,
		SalaryExpense:              in.SalaryExpense,
		MiscellaneousExpenses:      in.MiscellaneousExpenses,
		DepreciationExpense:        in.DepreciationExpense,
		LoanAmount:                 loanAmount,
		LoanIncomeMonth:            loanIncomeMonth,
		LoanInterestRate:           rate,
		DailyStorageFee:            in.StorageFee / DaysPerMonth,
		Items:                      items,
	}
}

// LineProfit is a rough per-line profit: line income minus the rent on the
// line's own shelf area. Realization income and fixed costs are not spread.
type LineProfit struct {
	Storage   float64 `json:"storage"`
	Loan      float64 `json:"loan"`
	VIP       float64 `json:"vip"`
	ShortTerm float64 `json:"short_term"`
}

// ProfitByLine attributes income and area rent to each storage line
func ProfitByLine(in Inputs, b Breakdown) LineProfit {
	return LineProfit{
		Storage:   b.StorageIncome - in.Areas.Storage*in.RentalCostPerM2,
		Loan:      b.LoanIncomeAfterRealization - in.Areas.Loan*in.RentalCostPerM2,
		VIP:       b.VIPIncome - in.Areas.VIP*in.RentalCostPerM2,
		ShortTerm: b.ShortTermIncome - in.Areas.ShortTerm*in.RentalCostPerM2,
	}
}

// Margins returns profit margin (profit / income) and profitability
// (profit / expenses), both in percent, zero when the divisor is not positive.
func Margins(b Breakdown) (profitMargin, profitability float64) {
	if b.TotalIncome > 0 {
		profitMargin = b.Profit / b.TotalIncome * 100
	}
	if b.TotalExpenses > 0 {
		profitability = b.Profit / b.TotalExpenses * 100
	}
	return profitMargin, profitability
}
