// Package arma implements ARMA and ARIMA model estimation via conditional least squares.
package arma

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/goarma/stats"
	"github.com/statkit/goarma/timeseries"
)

var (
	// ErrInsufficientData is returned when the defined region of the series
	// is too short for the specified order.
	ErrInsufficientData = errors.New("arma: insufficient data for the specified order")
	// ErrDivergence is returned when estimation produces a non-finite
	// coefficient or one beyond the stability bound.
	ErrDivergence = errors.New("arma: estimation diverged")
)

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// FitStatus tracks the terminal state of the fitting iteration.
type FitStatus int

const (
	// StatusInitialized means Fit has not run yet.
	StatusInitialized FitStatus = iota
	// StatusIterating means fitting is in progress.
	StatusIterating
	// StatusConverged means the maximum coefficient change fell below tolerance.
	StatusConverged
	// StatusMaxIterations means the iteration cap was hit without meeting
	// tolerance. The model is still usable; the caller decides whether to
	// accept it.
	StatusMaxIterations
	// StatusDiverged means a coefficient left the stability region.
	StatusDiverged
)

func (s FitStatus) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusIterating:
		return "iterating"
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max iterations reached"
	case StatusDiverged:
		return "diverged"
	default:
		return fmt.Sprintf("unknown status %d", int(s))
	}
}

// FitOptions configures the conditional least squares iteration.
type FitOptions struct {
	Tolerance      float64 // Convergence threshold on the max coefficient change
	MaxIterations  int     // Iteration cap
	StabilityBound float64 // Divergence bound on coefficient magnitude
}

// DefaultFitOptions returns the default fitting configuration.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Tolerance:      1e-6,
		MaxIterations:  100,
		StabilityBound: 1e10,
	}
}

// Model represents an ARMA model, optionally with differencing (ARIMA).
// A Model is immutable after Fit returns and holds no reference to the
// training series.
type Model struct {
	Order      Order
	Constant   float64
	ARCoeffs   []float64 // AR coefficients (phi)
	MACoeffs   []float64 // MA coefficients (theta)
	Variance   float64   // Residual variance (mean squared residual)
	Status     FitStatus
	Iterations int
	AIC        float64
	AICc       float64 // Corrected AIC for small sample sizes
	BIC        float64
	LogLik     float64

	opts      FitOptions
	fitted    bool
	y         []float64 // defined region of the differenced working series
	eps       []float64 // conditional residuals, zero before max(p,q)
	diffTails []float64 // last defined value at each differencing level 0..d-1
}

// New creates a new model with the specified order and default options.
func New(p, d, q int) *Model {
	return NewWithOptions(p, d, q, DefaultFitOptions())
}

// NewWithOptions creates a new model with explicit fitting options.
// Zero-valued options fall back to their defaults.
func NewWithOptions(p, d, q int, opts FitOptions) *Model {
	def := DefaultFitOptions()
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = def.MaxIterations
	}
	if opts.StabilityBound <= 0 {
		opts.StabilityBound = def.StabilityBound
	}
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, max(p, 0)),
		MACoeffs: make([]float64, max(q, 0)),
		Status:   StatusInitialized,
		opts:     opts,
	}
}

// Fit estimates the model on the given series.
//
// For d > 0 the series is differenced d times first and ARMA(p,q) is fitted
// on the defined region of the result; the estimator core is agnostic to d.
// A return of nil with Status == StatusMaxIterations is a degraded result,
// not a failure.
func (m *Model) Fit(series *timeseries.Series) error {
	if m.Order.P < 0 || m.Order.D < 0 || m.Order.Q < 0 {
		return fmt.Errorf("arma: negative order (%d,%d,%d)", m.Order.P, m.Order.D, m.Order.Q)
	}

	// A failed refit must not leave results from an earlier fit visible.
	m.fitted = false
	m.Status = StatusInitialized
	m.Iterations = 0

	work := series
	m.diffTails = m.diffTails[:0]
	for i := 0; i < m.Order.D; i++ {
		tail, ok := lastDefined(work)
		if !ok {
			return fmt.Errorf("%w: no defined points at differencing level %d", ErrInsufficientData, i)
		}
		m.diffTails = append(m.diffTails, tail)

		next, err := work.Diff()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInsufficientData, err)
		}
		work = next
	}

	y := work.DefinedValues()
	if len(y) < m.Order.P+m.Order.Q+10 {
		return fmt.Errorf("%w: %d defined points for ARMA(%d,%d)", ErrInsufficientData, len(y), m.Order.P, m.Order.Q)
	}
	m.y = y

	if err := m.fitCLS(); err != nil {
		return err
	}

	m.calculateIC()
	m.fitted = true
	return nil
}

// fitCLS runs the conditional least squares iteration.
func (m *Model) fitCLS() error {
	y := m.y
	n := len(y)
	p := m.Order.P
	q := m.Order.Q
	start := max(p, q)

	if p == 0 && q == 0 {
		// White noise model: constant is the mean.
		mean := 0.0
		for _, v := range y {
			mean += v
		}
		m.Constant = mean / float64(n)

		m.eps = make([]float64, n)
		m.Variance = 0
		for i, v := range y {
			m.eps[i] = v - m.Constant
			m.Variance += m.eps[i] * m.eps[i]
		}
		m.Variance /= float64(n)
		m.Status = StatusConverged
		m.Iterations = 0
		return nil
	}

	if err := m.seed(); err != nil {
		return err
	}

	prev := m.coefficientVector()
	for iter := 1; iter <= m.opts.MaxIterations; iter++ {
		m.Status = StatusIterating
		m.Iterations = iter

		eps := m.conditionalResiduals()

		// Regress y_t on {1, y_{t-1..t-p}, eps_{t-1..t-q}} with this
		// iteration's residuals held fixed.
		rows := n - start
		design := mat.NewDense(rows, 1+p+q, nil)
		target := mat.NewVecDense(rows, nil)
		for i := 0; i < rows; i++ {
			t := start + i
			target.SetVec(i, y[t])
			design.Set(i, 0, 1)
			for j := 1; j <= p; j++ {
				design.Set(i, j, y[t-j])
			}
			for j := 1; j <= q; j++ {
				design.Set(i, p+j, eps[t-j])
			}
		}

		coeffs, err := leastSquares(design, target)
		if err != nil {
			m.Status = StatusDiverged
			return fmt.Errorf("%w: %v", ErrDivergence, err)
		}

		m.setCoefficients(coeffs)
		if err := m.checkStability(coeffs); err != nil {
			return err
		}

		maxDelta := 0.0
		for i := range coeffs {
			if d := math.Abs(coeffs[i] - prev[i]); d > maxDelta {
				maxDelta = d
			}
		}
		prev = coeffs

		if maxDelta < m.opts.Tolerance {
			m.Status = StatusConverged
			break
		}
	}

	if m.Status == StatusIterating {
		m.Status = StatusMaxIterations
	}

	m.eps = m.conditionalResiduals()
	sse := 0.0
	for t := start; t < n; t++ {
		sse += m.eps[t] * m.eps[t]
	}
	m.Variance = sse / float64(n-start)

	return nil
}

// seed initializes the AR part by ordinary least squares of y_t on its own
// lags, ignoring MA terms; MA coefficients start at zero.
func (m *Model) seed() error {
	y := m.y
	n := len(y)
	p := m.Order.P

	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0
	}

	if p == 0 {
		mean := 0.0
		for _, v := range y {
			mean += v
		}
		m.Constant = mean / float64(n)
		return nil
	}

	rows := n - p
	design := mat.NewDense(rows, 1+p, nil)
	target := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		t := p + i
		target.SetVec(i, y[t])
		design.Set(i, 0, 1)
		for j := 1; j <= p; j++ {
			design.Set(i, j, y[t-j])
		}
	}

	coeffs, err := leastSquares(design, target)
	if err != nil {
		return fmt.Errorf("%w: AR seeding failed: %v", ErrInsufficientData, err)
	}

	m.Constant = coeffs[0]
	copy(m.ARCoeffs, coeffs[1:])
	return nil
}

// conditionalResiduals computes eps_t = y_t - yhat_t under the current
// coefficients, with eps_t = 0 before max(p,q).
func (m *Model) conditionalResiduals() []float64 {
	y := m.y
	n := len(y)
	p := m.Order.P
	q := m.Order.Q
	start := max(p, q)

	eps := make([]float64, n)
	for t := start; t < n; t++ {
		pred := m.Constant
		for j := 1; j <= p; j++ {
			pred += m.ARCoeffs[j-1] * y[t-j]
		}
		for j := 1; j <= q; j++ {
			pred += m.MACoeffs[j-1] * eps[t-j]
		}
		eps[t] = y[t] - pred
	}
	return eps
}

func (m *Model) coefficientVector() []float64 {
	out := make([]float64, 1+len(m.ARCoeffs)+len(m.MACoeffs))
	out[0] = m.Constant
	copy(out[1:], m.ARCoeffs)
	copy(out[1+len(m.ARCoeffs):], m.MACoeffs)
	return out
}

func (m *Model) setCoefficients(coeffs []float64) {
	m.Constant = coeffs[0]
	copy(m.ARCoeffs, coeffs[1:1+len(m.ARCoeffs)])
	copy(m.MACoeffs, coeffs[1+len(m.ARCoeffs):])
}

func (m *Model) checkStability(coeffs []float64) error {
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) || math.Abs(c) > m.opts.StabilityBound {
			m.Status = StatusDiverged
			return fmt.Errorf("%w: coefficient %v after %d iterations", ErrDivergence, c, m.Iterations)
		}
	}
	return nil
}

// calculateIC calculates the Gaussian log-likelihood and AIC, AICc, BIC.
func (m *Model) calculateIC() {
	start := max(m.Order.P, m.Order.Q)
	n := len(m.y) - start
	k := m.Order.P + m.Order.Q + 1 // AR + MA + constant

	sse := 0.0
	for t := start; t < len(m.y); t++ {
		sse += m.eps[t] * m.eps[t]
	}

	if m.Variance > 0 {
		nf := float64(n)
		m.LogLik = -nf/2*math.Log(2*math.Pi) - nf/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	kf := float64(k)
	nf := float64(n)

	m.AIC = -2*m.LogLik + 2*kf
	if nf-kf-1 > 0 {
		m.AICc = m.AIC + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		m.AICc = math.Inf(1)
	}
	m.BIC = -2*m.LogLik + kf*math.Log(nf)
}

// Residuals returns the fitting residuals on the differenced scale. The
// first max(p,q) conditioning points are undefined.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	start := max(m.Order.P, m.Order.Q)
	out := make([]float64, len(m.eps))
	for i, r := range m.eps {
		if i < start {
			out[i] = math.NaN()
		} else {
			out[i] = r
		}
	}
	return out
}

// FittedValues returns the one-step-ahead fitted values on the differenced
// scale. The first max(p,q) conditioning points are undefined.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	start := max(m.Order.P, m.Order.Q)
	out := make([]float64, len(m.y))
	for i := range m.y {
		if i < start {
			out[i] = math.NaN()
		} else {
			out[i] = m.y[i] - m.eps[i]
		}
	}
	return out
}

// Summary holds a report of the fitted model.
type Summary struct {
	Order      Order
	Constant   float64
	ARCoeffs   []float64
	MACoeffs   []float64
	Variance   float64
	Status     FitStatus
	Iterations int
	AIC        float64
	AICc       float64
	BIC        float64
	LogLik     float64
	NObs       int
	LjungBox   *stats.LjungBoxResult
}

// Summary returns a report of the fitted model, including a Ljung-Box test
// on the residuals. Returns nil if the model has not been fitted.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	residSeries := timeseries.New(m.Residuals())
	lb, _ := stats.LjungBox(residSeries, 10, m.Order.P+m.Order.Q)

	return &Summary{
		Order:      m.Order,
		Constant:   m.Constant,
		ARCoeffs:   append([]float64(nil), m.ARCoeffs...),
		MACoeffs:   append([]float64(nil), m.MACoeffs...),
		Variance:   m.Variance,
		Status:     m.Status,
		Iterations: m.Iterations,
		AIC:        m.AIC,
		AICc:       m.AICc,
		BIC:        m.BIC,
		LogLik:     m.LogLik,
		NObs:       len(m.y),
		LjungBox:   lb,
	}
}

// leastSquares solves min ||y - X*beta|| via QR decomposition.
func leastSquares(x *mat.Dense, y *mat.VecDense) ([]float64, error) {
	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
		// Ill-conditioned but solvable; keep the solution.
	}

	out := make([]float64, beta.Len())
	for i := range out {
		out[i] = beta.AtVec(i)
	}
	return out, nil
}

func lastDefined(s *timeseries.Series) (float64, bool) {
	for i := s.Len() - 1; i >= 0; i-- {
		if s.IsDefined(i) {
			return s.Values[i], true
		}
	}
	return 0, false
}
