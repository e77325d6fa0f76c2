package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/goarma/timeseries"
)

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	CriticalVals map[string]float64 // Critical values at 1%, 5%, 10%
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller test for a unit root over the
// defined region of the series. The null hypothesis is that the series has a
// unit root (is non-stationary); a p-value below 0.05 rejects the null.
func ADF(series *timeseries.Series, maxLag int) (*ADFResult, error) {
	x := series.DefinedValues()
	n := len(x)
	if n < 10 {
		return nil, fmt.Errorf("%w: ADF needs at least 10 defined points", ErrInsufficientData)
	}

	// Default lag selection: floor((n-1)^(1/3)).
	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diff[i-1] = x[i] - x[i-1]
	}

	// Regression: delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i*delta_y_{t-i}).
	// The unit-root test is the t-statistic on beta.
	nObs := n - maxLag - 1
	if nObs < 10 {
		return nil, fmt.Errorf("%w: ADF has %d usable observations after lagging", ErrInsufficientData, nObs)
	}

	k := 2 + maxLag
	design := mat.NewDense(nObs, k, nil)
	y := mat.NewVecDense(nObs, nil)

	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y.SetVec(i, diff[t])
		design.Set(i, 0, 1)
		design.Set(i, 1, x[t])
		for j := 1; j <= maxLag; j++ {
			design.Set(i, 1+j, diff[t-j])
		}
	}

	coeffs, stdErrs, err := olsWithStdErr(design, y)
	if err != nil {
		return nil, fmt.Errorf("stats: ADF regression failed: %w", err)
	}
	if stdErrs[1] == 0 {
		return nil, fmt.Errorf("%w: degenerate ADF regression", ErrInsufficientData)
	}

	tStat := coeffs[1] / stdErrs[1]
	pValue := mackinnonPValue(tStat)

	return &ADFResult{
		Statistic: tStat,
		PValue:    pValue,
		Lags:      maxLag,
		NObs:      nObs,
		CriticalVals: map[string]float64{
			"1%":  -3.43,
			"5%":  -2.86,
			"10%": -2.57,
		},
		IsStationary: pValue < 0.05,
	}, nil
}

// KPSSResult represents the result of a KPSS test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	CriticalVals map[string]float64
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for stationarity
// over the defined region. The null hypothesis is that the series is
// stationary. regression is "c" (level) or "ct" (trend); nlags <= 0 selects
// the default bandwidth.
func KPSS(series *timeseries.Series, regression string, nlags int) (*KPSSResult, error) {
	x := series.DefinedValues()
	n := len(x)
	if n < 10 {
		return nil, fmt.Errorf("%w: KPSS needs at least 10 defined points", ErrInsufficientData)
	}

	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}

	residuals := make([]float64, n)
	if regression == "ct" {
		// Linear detrend: y = a + b*t + residual.
		var sumT, sumY, sumTY, sumT2 float64
		for i, v := range x {
			t := float64(i)
			sumT += t
			sumY += v
			sumTY += t * v
			sumT2 += t * t
		}
		nf := float64(n)
		b := (nf*sumTY - sumT*sumY) / (nf*sumT2 - sumT*sumT)
		a := (sumY - b*sumT) / nf
		for i, v := range x {
			residuals[i] = v - a - b*float64(i)
		}
	} else {
		mean := 0.0
		for _, v := range x {
			mean += v
		}
		mean /= float64(n)
		for i, v := range x {
			residuals[i] = v - mean
		}
	}

	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	// Long-run variance via Newey-West with Bartlett weights.
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)

	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}
	if s2 <= 0 {
		return nil, fmt.Errorf("%w: KPSS long-run variance is not positive", ErrInsufficientData)
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	stat := etaSq / (float64(n) * float64(n) * s2)

	var criticalVals map[string]float64
	if regression == "ct" {
		criticalVals = map[string]float64{"10%": 0.119, "5%": 0.146, "1%": 0.216}
	} else {
		criticalVals = map[string]float64{"10%": 0.347, "5%": 0.463, "1%": 0.739}
	}

	pValue := kpssPValue(stat, regression)

	return &KPSSResult{
		Statistic:    stat,
		PValue:       pValue,
		Lags:         nlags,
		CriticalVals: criticalVals,
		IsStationary: pValue >= 0.05, // null is stationarity
	}, nil
}

// NDiffs suggests the number of first differences required for stationarity,
// up to maxD (default 2). testType is "kpss" (default) or "adf". The
// suggestion is advisory; the ARMA estimator never consults it.
func NDiffs(series *timeseries.Series, maxD int, testType string) int {
	if maxD <= 0 {
		maxD = 2
	}
	if testType == "" {
		testType = "kpss"
	}

	current := series
	for d := 0; d < maxD; d++ {
		stationary := false
		if testType == "adf" {
			if result, err := ADF(current, 0); err == nil && result.IsStationary {
				stationary = true
			}
		} else {
			if result, err := KPSS(current, "c", 0); err == nil && result.IsStationary {
				stationary = true
			}
		}
		if stationary {
			return d
		}

		next, err := current.Diff()
		if err != nil || next.NumDefined() < 10 {
			return d
		}
		current = next
	}

	return maxD
}

// olsWithStdErr solves the least squares problem y = X*beta via QR and
// returns the coefficients with their standard errors.
func olsWithStdErr(x *mat.Dense, y *mat.VecDense) (coeffs, stdErrs []float64, err error) {
	n, k := x.Dims()
	if n <= k {
		return nil, nil, fmt.Errorf("%w: %d observations for %d regressors", ErrInsufficientData, n, k)
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, nil, err
		}
		// Ill-conditioned but solvable; keep the solution.
	}

	coeffs = make([]float64, k)
	for i := range coeffs {
		coeffs[i] = beta.AtVec(i)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	sse := 0.0
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		sse += r * r
	}
	s2 := sse / float64(n-k)

	var xtx, inv mat.Dense
	xtx.Mul(x.T(), x)
	if err := inv.Inverse(&xtx); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, nil, err
		}
	}

	stdErrs = make([]float64, k)
	for i := range stdErrs {
		stdErrs[i] = math.Sqrt(s2 * inv.At(i, i))
	}

	return coeffs, stdErrs, nil
}

// mackinnonPValue approximates the p-value for the ADF statistic using the
// MacKinnon (1994) response surface for the constant-only regression.
func mackinnonPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}

// kpssPValue approximates the p-value for the KPSS statistic.
func kpssPValue(stat float64, regression string) float64 {
	if regression == "ct" {
		switch {
		case stat > 0.216:
			return 0.01
		case stat > 0.146:
			return 0.05
		case stat > 0.119:
			return 0.10
		default:
			return 0.10 + (0.119-stat)*2
		}
	}

	switch {
	case stat > 0.739:
		return 0.01
	case stat > 0.463:
		return 0.05
	case stat > 0.347:
		return 0.10
	default:
		return 0.10 + (0.347-stat)*0.5
	}
}
