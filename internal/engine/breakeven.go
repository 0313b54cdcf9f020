package engine

import "math"

// SolverOptions controls the bracket search and bisection of FindRoot
type SolverOptions struct {
	LowMultiplier  float64 // initial low bound as a multiple of base
	HighMultiplier float64 // initial high bound as a multiple of base
	Step           float64 // multiplier widening per attempt, applied to both sides
	MaxAttempts    int     // bracket attempts, including the first
	MaxIterations  int     // bisection iterations
	Tolerance      float64 // absolute bracket width that ends bisection

	// Floor, when set, clamps the low bound so that widening never probes
	// values below it (e.g. 0 for tariffs).
	Floor *float64
}

// DefaultSolverOptions returns the standard search: [0.5, 1.5] × base widened
// by 0.5 up to 5 times, then up to 100 bisection steps to a width of 0.01.
// No floor is applied.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		LowMultiplier:  0.5,
		HighMultiplier: 1.5,
		Step:           0.5,
		MaxAttempts:    5,
		MaxIterations:  100,
		Tolerance:      0.01,
	}
}

// WithFloor returns a copy of o that clamps the low bound at floor
func (o SolverOptions) WithFloor(floor float64) SolverOptions {
	o.Floor = &floor
	return o
}

// Root is the outcome of a root search. Found is false when no sign change
// was bracketed; that is a normal result, not an error.
type Root struct {
	Value       float64 `json:"value"`
	Found       bool    `json:"found"`
	Low         float64 `json:"low"`  // last bracket searched
	High        float64 `json:"high"` // last bracket searched
	Attempts    int     `json:"attempts"`
	Iterations  int     `json:"iterations"`
	Evaluations int     `json:"evaluations"`
}

// FindRoot locates x where f(x) crosses zero near base. It first searches for
// a bracket around base, widening it symmetrically, then bisects it.
// A bound at which f is exactly zero is returned directly, the low bound
// taking precedence.
func FindRoot(f func(float64) float64, base float64, opts SolverOptions) Root {
	res := Root{}
	eval := func(x float64) float64 {
		res.Evaluations++
		return f(x)
	}

	lowMul, highMul := opts.LowMultiplier, opts.HighMultiplier
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		res.Attempts = attempt
		low, high := bracket(base, lowMul, highMul, opts.Floor)
		res.Low, res.High = low, high
		lowMul -= opts.Step
		highMul += opts.Step

		// the whole bracket lies below the floor
		if high < low {
			continue
		}

		fLow := eval(low)
		if fLow == 0 {
			res.Value, res.Found = low, true
			return res
		}
		if high == low {
			continue
		}
		fHigh := eval(high)
		if fHigh == 0 {
			res.Value, res.Found = high, true
			return res
		}
		if (fLow > 0) == (fHigh > 0) {
			continue
		}

		res.Value = bisect(eval, low, high, fLow, opts, &res)
		res.Found = true
		return res
	}
	return res
}

// bracket returns the ordered search interval for one attempt. A negative
// base flips the multiplied bounds. With a floor the low bound is raised to
// it; low > high on return means nothing is left above the floor.
func bracket(base, lowMul, highMul float64, floor *float64) (float64, float64) {
	low, high := base*lowMul, base*highMul
	if low > high {
		low, high = high, low
	}
	if floor != nil && low < *floor {
		low = *floor
	}
	return low, high
}

// bisect narrows [low, high] (low < high, f(low) and f(high) of opposite
// sign) and returns its final midpoint
func bisect(eval func(float64) float64, low, high, fLow float64, opts SolverOptions, res *Root) float64 {
	for i := 0; i < opts.MaxIterations; i++ {
		res.Iterations++
		mid := (low + high) / 2
		fMid := eval(mid)
		if fMid == 0 || math.Abs(high-low) < opts.Tolerance {
			return mid
		}
		if (fMid > 0) == (fLow > 0) {
			low, fLow = mid, fMid
		} else {
			high = mid
		}
	}
	return (low + high) / 2
}

// Breakeven finds the value of p at which monthly profit is zero, holding
// every other input of in fixed.
func Breakeven(in Inputs, p Param, base float64, opts SolverOptions) (Root, error) {
	return BreakevenWith(Compute, in, p, base, opts)
}

// BreakevenWith is Breakeven using eval in place of Compute
func BreakevenWith(eval Evaluator, in Inputs, p Param, base float64, opts SolverOptions) (Root, error) {
	if _, err := in.Get(p); err != nil {
		return Root{}, err
	}
	profitAt := func(v float64) float64 {
		next, _ := in.With(p, v)
		return eval(next).Profit
	}
	return FindRoot(profitAt, base, opts), nil
}

// SweepPoint is one sample of a profit curve
type SweepPoint struct {
	Value  float64 `json:"value"`
	Profit float64 `json:"profit"`
}

// Sweep samples profit at points evenly spaced values of p from `from` to
// `to` inclusive. Fewer than 2 points samples `from` only.
func Sweep(eval Evaluator, in Inputs, p Param, from, to float64, points int) ([]SweepPoint, error) {
	if _, err := in.Get(p); err != nil {
		return nil, err
	}
	if points < 1 {
		return []SweepPoint{}, nil
	}
	out := make([]SweepPoint, 0, points)
	for i := 0; i < points; i++ {
		v := from
		if points > 1 {
			v = from + (to-from)*float64(i)/float64(points-1)
		}
		next, _ := in.With(p, v)
		out = append(out, SweepPoint{Value: v, Profit: eval(next).Profit})
	}
	return out, nil
}
