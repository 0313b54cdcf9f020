package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/epeers/warehouse/internal/models"
)

// shareTolerance absorbs float noise when shares are meant to sum to exactly 1
const shareTolerance = 1e-6

var ErrInvalidParams = errors.New("invalid parameters")

// ValidationError lists every rule a parameter set breaks
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidParams.Error(), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}

// ProblemsOf returns the individual messages carried by err, if any
func ProblemsOf(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Problems
	}
	return nil
}

// nonFinite lists the scenario keys of p holding NaN or ±Inf
func nonFinite(p models.Params) []string {
	v := reflect.ValueOf(p)
	t := v.Type()
	var out []string
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Float64 {
			continue
		}
		if x := f.Float(); math.IsNaN(x) || math.IsInf(x, 0) {
			key := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
			out = append(out, fmt.Sprintf("%s must be a finite number, got %g", key, x))
		}
	}
	return out
}

// Validate returns one message per violated rule, nil when p is usable.
// Non-finite values are reported alone since no other rule means anything
// for them.
func Validate(p models.Params) []string {
	if problems := nonFinite(p); len(problems) > 0 {
		return problems
	}

	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	fraction := func(key string, v float64) {
		if v < 0 || v > 1 {
			add("%s must be between 0 and 1, got %g", key, v)
		}
	}
	nonNegative := func(key string, v float64) {
		if v < 0 {
			add("%s cannot be negative, got %g", key, v)
		}
	}

	if p.TotalArea <= 0 {
		add("total_area must be positive, got %g", p.TotalArea)
	}
	if p.RentalCostPerM2 <= 0 {
		add("rental_cost_per_m2 must be positive, got %g", p.RentalCostPerM2)
	}
	nonNegative("loan_interest_rate", p.LoanInterestRate)
	nonNegative("storage_fee", p.StorageFee)
	fraction("useful_area_ratio", p.UsefulAreaRatio)

	fraction("storage_share", p.StorageShare)
	fraction("loan_share", p.LoanShare)
	fraction("vip_share", p.VIPShare)
	fraction("short_term_share", p.ShortTermShare)
	if sum := p.Shares().Sum(); sum > 1+shareTolerance {
		add("line shares must not sum above 1, got %g", sum)
	}

	nonNegative("average_item_value", p.AverageItemValue)
	nonNegative("salary_expense", p.SalaryExpense)
	nonNegative("miscellaneous_expenses", p.MiscellaneousExpenses)
	nonNegative("depreciation_expense", p.DepreciationExpense)
	fraction("default_probability", p.DefaultProbability)

	fraction("item_evaluation", p.ItemEvaluation)
	fraction("realization_share_storage", p.RealizationShareStorage)
	fraction("realization_share_loan", p.RealizationShareLoan)
	fraction("realization_share_vip", p.RealizationShareVIP)
	fraction("realization_share_short_term", p.RealizationShareShortTerm)

	nonNegative("storage_items_density", p.StorageItemsDensity)
	nonNegative("loan_items_density", p.LoanItemsDensity)
	nonNegative("vip_items_density", p.VIPItemsDensity)
	nonNegative("short_term_items_density", p.ShortTermItemsDensity)
	if p.ShelvesPerM2 <= 0 {
		add("shelves_per_m2 must be positive, got %g", p.ShelvesPerM2)
	}

	if p.TimeHorizon < 1 {
		add("time_horizon must be at least 1 month, got %d", p.TimeHorizon)
	}
	if p.LiquidityFactor <= 0 {
		add("liquidity_factor must be positive, got %g", p.LiquidityFactor)
	}
	nonNegative("safety_factor", p.SafetyFactor)

	return problems
}

// ValidateParams wraps Validate as an error matching ErrInvalidParams
func ValidateParams(p models.Params) error {
	if problems := Validate(p); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
