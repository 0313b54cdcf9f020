package engine

import (
	"math"
	"testing"
)

func TestProject_CompoundingRent(t *testing.T) {
	in := baseInputs()
	points := Project(in, 0.01, 6)

	if len(points) != 6 {
		t.Fatalf("expected 6 months, got %d", len(points))
	}

	for i, p := range points {
		if p.Month != i+1 {
			t.Errorf("point %d: month = %d, want %d", i, p.Month, i+1)
		}
		wantRent := in.RentalCostPerM2 * math.Pow(1.01, float64(i))
		if math.Abs(p.RentalCostPerM2-wantRent) > 1e-6 {
			t.Errorf("month %d: rent/m² = %.6f, want %.6f", p.Month, p.RentalCostPerM2, wantRent)
		}
	}

	// month 1 is the unadjusted model
	first := Compute(in)
	if points[0].Income != first.TotalIncome || points[0].Expenses != first.TotalExpenses {
		t.Errorf("month 1 = (%v, %v), want (%v, %v)", points[0].Income, points[0].Expenses, first.TotalIncome, first.TotalExpenses)
	}
}

func TestProject_MonotonicRentPressure(t *testing.T) {
	points := Project(baseInputs(), 0.02, 12)

	for k := 1; k < len(points); k++ {
		prev, cur := points[k-1], points[k]
		if cur.RentalCostPerM2 <= prev.RentalCostPerM2 {
			t.Errorf("month %d: rent %.4f not above month %d rent %.4f", cur.Month, cur.RentalCostPerM2, prev.Month, prev.RentalCostPerM2)
		}
		if cur.Expenses <= prev.Expenses {
			t.Errorf("month %d: expenses %.2f not above %.2f", cur.Month, cur.Expenses, prev.Expenses)
		}
		if cur.Income != prev.Income {
			t.Errorf("month %d: income changed from %.2f to %.2f", cur.Month, prev.Income, cur.Income)
		}
		if cur.Profit >= prev.Profit {
			t.Errorf("month %d: profit %.2f not below %.2f", cur.Month, cur.Profit, prev.Profit)
		}
	}
}

func TestProject_CumulativeProfit(t *testing.T) {
	points := Project(baseInputs(), 0.01, 4)
	sum := 0.0
	for _, p := range points {
		sum += p.Profit
		if p.CumulativeProfit != sum {
			t.Errorf("month %d: cumulative = %v, want %v", p.Month, p.CumulativeProfit, sum)
		}
	}
}

func TestProject_ZeroGrowthIsFlat(t *testing.T) {
	in := baseInputs()
	points := Project(in, 0, 3)
	monthly := Compute(in).Profit
	for _, p := range points {
		if p.Profit != monthly {
			t.Errorf("month %d: profit = %v, want %v", p.Month, p.Profit, monthly)
		}
	}
	if math.Abs(points[2].CumulativeProfit-3*monthly) > 1e-6 {
		t.Errorf("cumulative = %v, want %v", points[2].CumulativeProfit, 3*monthly)
	}
}

func TestProject_EmptyHorizon(t *testing.T) {
	if got := Project(baseInputs(), 0.01, 0); len(got) != 0 {
		t.Errorf("expected empty series, got %d points", len(got))
	}
}

func TestProjectWith_UsesEvaluator(t *testing.T) {
	calls := 0
	eval := func(in Inputs) Breakdown {
		calls++
		return Compute(in)
	}
	ProjectWith(eval, baseInputs(), 0.01, 5)
	if calls != 5 {
		t.Errorf("expected 5 evaluations, got %d", calls)
	}
}
