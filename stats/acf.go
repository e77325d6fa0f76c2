// Package stats provides statistical tests and functions for time series analysis.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/statkit/goarma/timeseries"
)

var (
	// ErrInsufficientData is returned when a series has too few defined
	// points, or no variance, for the requested computation.
	ErrInsufficientData = errors.New("stats: insufficient data")
	// ErrSingularRecursion is returned when the Durbin-Levinson recursion
	// hits a denominator within floating-point epsilon of zero.
	ErrSingularRecursion = errors.New("stats: singular Durbin-Levinson recursion")
)

// relative guard for vanishing denominators
const varianceEpsilon = 1e-12

// ACF calculates the autocorrelation function over the defined region of the
// series. Returns values for lags 0 to maxLag; acf[0] is 1 by construction.
//
// The full-series mean is used for every lag, not a per-window mean.
func ACF(series *timeseries.Series, maxLag int) ([]float64, error) {
	if maxLag < 0 {
		return nil, fmt.Errorf("stats: max lag must be non-negative, got %d", maxLag)
	}

	x := series.DefinedValues()
	n := len(x)
	if maxLag >= n {
		return nil, fmt.Errorf("%w: max lag %d with %d defined points", ErrInsufficientData, maxLag, n)
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	denom := 0.0
	sumSq := 0.0
	for _, v := range x {
		d := v - mean
		denom += d * d
		sumSq += v * v
	}
	// The guard is relative to the magnitude of the series, so a legitimate
	// small-valued series is not mistaken for a constant one.
	if denom <= varianceEpsilon*sumSq {
		return nil, fmt.Errorf("%w: series has no variance", ErrInsufficientData)
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for t := k; t < n; t++ {
			sum += (x[t] - mean) * (x[t-k] - mean)
		}
		acf[k] = sum / denom
	}
	acf[0] = 1

	return acf, nil
}

// PACF calculates the partial autocorrelation function using the
// Durbin-Levinson recursion. Returns values for lags 0 to maxLag, where
// index k carries phi_{k,k}; index 0 carries 1 by convention.
func PACF(series *timeseries.Series, maxLag int) ([]float64, error) {
	if maxLag < 1 {
		return nil, fmt.Errorf("stats: max lag must be at least 1, got %d", maxLag)
	}

	acf, err := ACF(series, maxLag)
	if err != nil {
		return nil, err
	}

	return durbinLevinson(acf)
}

// durbinLevinson runs the Durbin-Levinson recursion on an autocorrelation
// sequence (acf[0] must be 1) and returns the partial autocorrelations
// phi_{k,k} for k = 0..len(acf)-1.
func durbinLevinson(acf []float64) ([]float64, error) {
	maxLag := len(acf) - 1

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1

	// phi[k][j] holds the AR(k) coefficient on lag j.
	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}

		if math.Abs(den) < varianceEpsilon {
			return nil, fmt.Errorf("%w: denominator vanished at lag %d", ErrSingularRecursion, k)
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}

	return pacf, nil
}

// LagProfile is an ordered sequence of (lag, coefficient) pairs together
// with the 95% white-noise confidence bound for the series that produced it.
type LagProfile struct {
	Lags       []int
	Values     []float64
	ConfBounds float64 // +-1.96/sqrt(n) over the defined region
}

// ACFProfile calculates the ACF with confidence bounds.
func ACFProfile(series *timeseries.Series, maxLag int) (*LagProfile, error) {
	acf, err := ACF(series, maxLag)
	if err != nil {
		return nil, err
	}
	return newLagProfile(acf, series.NumDefined()), nil
}

// PACFProfile calculates the PACF with confidence bounds.
func PACFProfile(series *timeseries.Series, maxLag int) (*LagProfile, error) {
	pacf, err := PACF(series, maxLag)
	if err != nil {
		return nil, err
	}
	return newLagProfile(pacf, series.NumDefined()), nil
}

func newLagProfile(values []float64, n int) *LagProfile {
	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}
	return &LagProfile{
		Lags:       lags,
		Values:     values,
		ConfBounds: 1.96 / math.Sqrt(float64(n)),
	}
}

// SignificantLags returns the lags (excluding lag 0) where the coefficients
// exceed the confidence bound.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}

// OrderSuggestion is advisory guidance for choosing ARMA orders from the
// ACF/PACF cutoff heuristic: a PACF that cuts off after lag p suggests
// AR(p), an ACF that cuts off after lag q suggests MA(q).
type OrderSuggestion struct {
	P          int // Last consecutive significant PACF lag
	Q          int // Last consecutive significant ACF lag
	MaxLag     int
	ConfBounds float64
}

// SuggestOrder reads the ACF and PACF cutoffs against the white-noise bound
// and reports candidate AR and MA orders. The suggestion is advisory only;
// it performs no model search and never selects for the caller.
func SuggestOrder(series *timeseries.Series, maxLag int) (*OrderSuggestion, error) {
	acfProfile, err := ACFProfile(series, maxLag)
	if err != nil {
		return nil, err
	}
	pacfProfile, err := PACFProfile(series, maxLag)
	if err != nil {
		return nil, err
	}

	return &OrderSuggestion{
		P:          cutoffLag(pacfProfile.Values, pacfProfile.ConfBounds),
		Q:          cutoffLag(acfProfile.Values, acfProfile.ConfBounds),
		MaxLag:     maxLag,
		ConfBounds: acfProfile.ConfBounds,
	}, nil
}

// cutoffLag returns the last lag of the initial run of significant
// coefficients, starting at lag 1.
func cutoffLag(values []float64, confBound float64) int {
	cutoff := 0
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) <= confBound {
			break
		}
		cutoff = i
	}
	return cutoff
}
