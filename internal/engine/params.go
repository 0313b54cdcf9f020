package engine

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownParam is returned when a parameter name does not address an input
var ErrUnknownParam = errors.New("unknown parameter")

// Param names a single scalar input of the financial model
type Param string

const (
	ParamStorageArea           Param = "storage_area"
	ParamLoanArea              Param = "loan_area"
	ParamVIPArea               Param = "vip_area"
	ParamShortTermArea         Param = "short_term_area"
	ParamStorageItemsDensity   Param = "storage_items_density"
	ParamLoanItemsDensity      Param = "loan_items_density"
	ParamVIPItemsDensity       Param = "vip_items_density"
	ParamShortTermItemsDensity Param = "short_term_items_density"
	ParamStorageFee            Param = "storage_fee"
	ParamItemEvaluation        Param = "item_evaluation"
	ParamItemRealizationMarkup Param = "item_realization_markup"
	ParamAverageItemValue      Param = "average_item_value"
	ParamLoanInterestRate      Param = "loan_interest_rate"
	ParamRealizationStorage    Param = "realization_share_storage"
	ParamRealizationLoan       Param = "realization_share_loan"
	ParamRealizationVIP        Param = "realization_share_vip"
	ParamRealizationShortTerm  Param = "realization_share_short_term"
	ParamRentalCostPerM2       Param = "rental_cost_per_m2"
	ParamTotalArea             Param = "total_area"
	ParamSalaryExpense         Param = "salary_expense"
	ParamMiscellaneousExpenses Param = "miscellaneous_expenses"
	ParamDepreciationExpense   Param = "depreciation_expense"
	ParamDefaultProbability    Param = "default_probability"
	ParamVIPExtraFee           Param = "vip_extra_fee"
	ParamShortTermDailyRate    Param = "short_term_daily_rate"
)

// field returns a pointer to the input addressed by p
func (in *Inputs) field(p Param) (*float64, error) {
	switch p {
	case ParamStorageArea:
		return &in.Areas.Storage, nil
	case ParamLoanArea:
		return &in.Areas.Loan, nil
	case ParamVIPArea:
		return &in.Areas.VIP, nil
	case ParamShortTermArea:
		return &in.Areas.ShortTerm, nil
	case ParamStorageItemsDensity:
		return &in.Densities.Storage, nil
	case ParamLoanItemsDensity:
		return &in.Densities.Loan, nil
	case ParamVIPItemsDensity:
		return &in.Densities.VIP, nil
	case ParamShortTermItemsDensity:
		return &in.Densities.ShortTerm, nil
	case ParamStorageFee:
		return &in.StorageFee, nil
	case ParamItemEvaluation:
		return &in.ItemEvaluation, nil
	case ParamItemRealizationMarkup:
		return &in.ItemRealizationMarkup, nil
	case ParamAverageItemValue:
		return &in.AverageItemValue, nil
	case ParamLoanInterestRate:
		return &in.LoanInterestRate, nil
	case ParamRealizationStorage:
		return &in.Realization.Storage, nil
	case ParamRealizationLoan:
		return &in.Realization.Loan, nil
	case ParamRealizationVIP:
		return &in.Realization.VIP, nil
	case ParamRealizationShortTerm:
		return &in.Realization.ShortTerm, nil
	case ParamRentalCostPerM2:
		return &in.RentalCostPerM2, nil
	case ParamTotalArea:
		return &in.TotalArea, nil
	case ParamSalaryExpense:
		return &in.SalaryExpense, nil
	case ParamMiscellaneousExpenses:
		return &in.MiscellaneousExpenses, nil
	case ParamDepreciationExpense:
		return &in.DepreciationExpense, nil
	case ParamDefaultProbability:
		return &in.DefaultProbability, nil
	case ParamVIPExtraFee:
		return &in.VIPExtraFee, nil
	case ParamShortTermDailyRate:
		return &in.ShortTermDailyRate, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, string(p))
}

// Get returns the current value of p
func (in Inputs) Get(p Param) (float64, error) {
	f, err := in.field(p)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// With returns a copy of in with p set to v. The receiver is not modified.
func (in Inputs) With(p Param, v float64) (Inputs, error) {
	f, err := in.field(p)
	if err != nil {
		return in, err
	}
	*f = v
	return in, nil
}

// Params lists every addressable parameter name in sorted order
func Params() []Param {
	all := []Param{
		ParamStorageArea, ParamLoanArea, ParamVIPArea, ParamShortTermArea,
		ParamStorageItemsDensity, ParamLoanItemsDensity, ParamVIPItemsDensity, ParamShortTermItemsDensity,
		ParamStorageFee, ParamItemEvaluation, ParamItemRealizationMarkup, ParamAverageItemValue,
		ParamLoanInterestRate, ParamRealizationStorage, ParamRealizationLoan, ParamRealizationVIP,
		ParamRealizationShortTerm, ParamRentalCostPerM2, ParamTotalArea, ParamSalaryExpense,
		ParamMiscellaneousExpenses, ParamDepreciationExpense, ParamDefaultProbability,
		ParamVIPExtraFee, ParamShortTermDailyRate,
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}
