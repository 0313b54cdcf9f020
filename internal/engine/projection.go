package engine

// ProjectionPoint is one month of a projection
type ProjectionPoint struct {
	Month            int     `json:"month"`
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
	RentalCostPerM2  float64 `json:"rental_cost_per_m2"`
}

// Project runs the financial model for months 1..horizon. Rent per m²
// compounds by (1 + monthlyRentGrowth) from month 2 on; every other input is
// held constant. A horizon below 1 yields an empty series.
func Project(in Inputs, monthlyRentGrowth float64, horizon int) []ProjectionPoint {
	return ProjectWith(Compute, in, monthlyRentGrowth, horizon)
}

// ProjectWith is Project using eval in place of Compute
func ProjectWith(eval Evaluator, in Inputs, monthlyRentGrowth float64, horizon int) []ProjectionPoint {
	if horizon < 1 {
		return []ProjectionPoint{}
	}

	points := make([]ProjectionPoint, 0, horizon)
	month := in
	cumulative := 0.0
	for m := 1; m <= horizon; m++ {
		if m > 1 {
			month.RentalCostPerM2 *= 1 + monthlyRentGrowth
		}
		b := eval(month)
		cumulative += b.Profit
		points = append(points, ProjectionPoint{
			Month:            m,
			Income:           b.TotalIncome,
			Expenses:         b.TotalExpenses,
			Profit:           b.Profit,
			CumulativeProfit: cumulative,
			RentalCostPerM2:  month.RentalCostPerM2,
		})
	}
	return points
}
