package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/epeers/warehouse/internal/cache"
	"github.com/epeers/warehouse/internal/engine"
	"github.com/epeers/warehouse/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCurvePoints is the profit curve resolution when none is requested
	DefaultCurvePoints = 100
	// MaxCurvePoints caps the curve resolution of a single request
	MaxCurvePoints = 2000
	// sweepSpan is the default curve range around the current value (±50%)
	sweepSpan = 0.5
	// maxConcurrentSolves bounds the breakeven goroutines of one request
	maxConcurrentSolves = 4
)

// CalculatorService runs the warehouse model for API and CLI callers.
// Parameters are validated here; the engine itself never rejects input.
type CalculatorService struct {
	cache *cache.MemoryCache
	eval  engine.Evaluator
}

// NewCalculatorService creates a CalculatorService. A nil cache evaluates
// every request directly.
func NewCalculatorService(memCache *cache.MemoryCache) *CalculatorService {
	eval := engine.Evaluator(engine.Compute)
	if memCache != nil {
		eval = memCache.Evaluator()
	}
	return &CalculatorService{
		cache: memCache,
		eval:  eval,
	}
}

// prepare applies the extended-mode overrides and validates the result
func (s *CalculatorService) prepare(p models.Params) (models.Params, error) {
	eff := p.Effective()
	if err := ValidateParams(eff); err != nil {
		return eff, err
	}
	return eff, nil
}

// Calculate evaluates one month of the model with derived metrics
func (s *CalculatorService) Calculate(ctx context.Context, p models.Params) (*models.CalculationResponse, error) {
	defer TrackTime("Calculate", time.Now())

	eff, err := s.prepare(p)
	if err != nil {
		return nil, err
	}

	in := eff.Inputs()
	b := s.eval(in)
	margin, profitability := engine.Margins(b)

	mode := eff.LoanSizingMode()
	minLoan := engine.MinLoan(mode, b.DailyStorageFee, b.LoanInterestRate, eff.LoanRisk())

	resp := &models.CalculationResponse{
		Params:           eff,
		Areas:            in.Areas,
		Items:            b.Items,
		Breakdown:        b,
		ProfitMargin:     margin,
		Profitability:    profitability,
		ProfitByLine:     engine.ProfitByLine(in, b),
		LoanSizingMode:   mode,
		MinLoan:          minLoan,
		MinLoanBasic:     engine.MinLoanBasic(b.DailyStorageFee, b.LoanInterestRate),
		UnallocatedShare: eff.Shares().Remaining(),
	}

	if resp.UnallocatedShare > shareTolerance {
		Warnf(ctx, models.WarnUnallocatedArea, "%.1f%% of shelf area is not assigned to any line", resp.UnallocatedShare*100)
	}
	if b.Profit < 0 {
		Warnf(ctx, models.WarnLossMaking, "monthly profit is negative: %.2f", b.Profit)
	}
	if b.LoanInterestRate == 0 {
		Warnf(ctx, models.WarnZeroLoanRate, "loan interest rate is 0, the loan line earns no interest")
	} else if mode == engine.LoanSizingRiskAdjusted && minLoan == 0 {
		Warnf(ctx, models.WarnLoanRiskDegenerate, "default probability %.2f and liquidity %.2f leave no recoverable interest", eff.DefaultProbability, eff.LiquidityFactor)
	}

	log.WithFields(log.Fields{
		"profit":   b.Profit,
		"income":   b.TotalIncome,
		"expenses": b.TotalExpenses,
	}).Debug("calculated monthly model")

	return resp, nil
}

// Project runs the model month by month over the scenario's time horizon
func (s *CalculatorService) Project(ctx context.Context, p models.Params) (*models.ProjectionResponse, error) {
	defer TrackTime("Project", time.Now())

	eff, err := s.prepare(p)
	if err != nil {
		return nil, err
	}

	in := eff.Inputs()
	var months []engine.ProjectionPoint
	if s.cache != nil {
		if cached, ok := s.cache.GetProjection(in, eff.MonthlyRentGrowth, eff.TimeHorizon); ok {
			months = cached
		}
	}
	if months == nil {
		months = engine.ProjectWith(s.eval, in, eff.MonthlyRentGrowth, eff.TimeHorizon)
		if s.cache != nil {
			s.cache.SetProjection(in, eff.MonthlyRentGrowth, eff.TimeHorizon, months)
		}
	}

	resp := &models.ProjectionResponse{
		TimeHorizon:       eff.TimeHorizon,
		MonthlyRentGrowth: eff.MonthlyRentGrowth,
		Months:            months,
	}
	if len(months) > 0 {
		resp.TotalProfit = months[len(months)-1].CumulativeProfit
		if resp.TotalProfit < 0 {
			Warnf(ctx, models.WarnLossMaking, "cumulative profit over %d months is negative: %.2f", eff.TimeHorizon, resp.TotalProfit)
		}
	}
	return resp, nil
}

// SolverOptions returns the breakeven search options for a request. Unless
// the caller supplies a floor or allows negative values, the search never
// probes below zero.
func SolverOptions(req *models.BreakevenRequest) engine.SolverOptions {
	opts := engine.DefaultSolverOptions()
	switch {
	case req.Floor != nil:
		opts = opts.WithFloor(*req.Floor)
	case !req.AllowNegative:
		opts = opts.WithFloor(0)
	}
	return opts
}

// Breakeven solves each requested parameter for zero monthly profit. Targets
// are independent and solved concurrently; results keep request order.
func (s *CalculatorService) Breakeven(ctx context.Context, p models.Params, req *models.BreakevenRequest) (*models.BreakevenResponse, error) {
	defer TrackTime("Breakeven", time.Now())

	eff, err := s.prepare(p)
	if err != nil {
		return nil, err
	}
	if len(req.Targets) == 0 {
		return nil, &ValidationError{Problems: []string{"at least one breakeven target is required"}}
	}
	points, err := curvePoints(req.CurvePoints)
	if err != nil {
		return nil, err
	}

	in := eff.Inputs()
	params := make([]engine.Param, len(req.Targets))
	for i, t := range req.Targets {
		params[i] = engine.Param(t)
		if _, err := in.Get(params[i]); err != nil {
			return nil, err
		}
	}

	opts := SolverOptions(req)
	results := make([]models.BreakevenResult, len(params))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSolves)
	for i, param := range params {
		i, param := i, param
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			base, _ := in.Get(param)
			root, err := engine.BreakevenWith(s.eval, in, param, base, opts)
			if err != nil {
				return fmt.Errorf("breakeven for %s: %w", param, err)
			}
			if !root.Found {
				Warnf(ctx, models.WarnBreakevenNotFound, "no breakeven for %s in [%g, %g] after %d attempts", param, root.Low, root.High, root.Attempts)
			}

			res := models.BreakevenResult{Param: string(param), Base: base, Root: root}
			if req.IncludeCurve {
				from, to := curveRange(base, root, opts)
				curve, err := engine.Sweep(s.eval, in, param, from, to, points)
				if err != nil {
					return err
				}
				res.Curve = curve
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.BreakevenResponse{Results: results}, nil
}

// curveRange spans ±50% around base, stretched to include a root outside it
func curveRange(base float64, root engine.Root, opts engine.SolverOptions) (float64, float64) {
	from, to := base*(1-sweepSpan), base*(1+sweepSpan)
	if from > to {
		from, to = to, from
	}
	if root.Found {
		from = math.Min(from, root.Value)
		to = math.Max(to, root.Value)
	}
	if opts.Floor != nil && from < *opts.Floor {
		from = *opts.Floor
	}
	return from, to
}

func curvePoints(n int) (int, error) {
	if n == 0 {
		return DefaultCurvePoints, nil
	}
	if n < 2 || n > MaxCurvePoints {
		return 0, &ValidationError{Problems: []string{fmt.Sprintf("curve points must be between 2 and %d, got %d", MaxCurvePoints, n)}}
	}
	return n, nil
}

// Sweep samples monthly profit across a range of one parameter. Without an
// explicit range it spans ±50% around the current value.
func (s *CalculatorService) Sweep(ctx context.Context, p models.Params, req *models.SweepRequest) (*models.SweepResponse, error) {
	defer TrackTime("Sweep", time.Now())

	eff, err := s.prepare(p)
	if err != nil {
		return nil, err
	}
	points, err := curvePoints(req.Points)
	if err != nil {
		return nil, err
	}

	in := eff.Inputs()
	param := engine.Param(req.Param)
	base, err := in.Get(param)
	if err != nil {
		return nil, err
	}

	from, to := base*(1-sweepSpan), base*(1+sweepSpan)
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}

	curve, err := engine.Sweep(s.eval, in, param, from, to, points)
	if err != nil {
		return nil, err
	}
	return &models.SweepResponse{Param: req.Param, Points: curve}, nil
}
