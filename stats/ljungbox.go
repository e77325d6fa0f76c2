package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/statkit/goarma/timeseries"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox performs the Ljung-Box test for autocorrelation in residuals.
// The null hypothesis is that there is no autocorrelation up to the given
// lag; a p-value below 0.05 indicates significant autocorrelation.
// fitdf is the number of parameters estimated in the model (p + q for ARMA).
func LjungBox(series *timeseries.Series, lags, fitdf int) (*LjungBoxResult, error) {
	n := series.NumDefined()
	if n < 10 || lags < 1 {
		return nil, fmt.Errorf("%w: Ljung-Box needs at least 10 defined points and one lag", ErrInsufficientData)
	}
	if lags >= n {
		lags = n - 1
	}

	acf, err := ACF(series, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - distuv.ChiSquared{K: float64(dof)}.CDF(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// BoxPierceResult represents the result of a Box-Pierce test.
type BoxPierceResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// BoxPierce performs the Box-Pierce test for autocorrelation. Similar to
// Ljung-Box but with the unweighted statistic.
func BoxPierce(series *timeseries.Series, lags, fitdf int) (*BoxPierceResult, error) {
	n := series.NumDefined()
	if n < 10 || lags < 1 {
		return nil, fmt.Errorf("%w: Box-Pierce needs at least 10 defined points and one lag", ErrInsufficientData)
	}
	if lags >= n {
		lags = n - 1
	}

	acf, err := ACF(series, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k]
	}
	q *= float64(n)

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	return &BoxPierceResult{
		Statistic: q,
		PValue:    1 - distuv.ChiSquared{K: float64(dof)}.CDF(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// DurbinWatsonResult represents the result of a Durbin-Watson test.
type DurbinWatsonResult struct {
	Statistic float64
	// d near 2: no autocorrelation
	// d below 2: positive autocorrelation
	// d above 2: negative autocorrelation
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order
// autocorrelation in residuals. Undefined residuals are skipped.
func DurbinWatson(residuals []float64) (*DurbinWatsonResult, error) {
	defined := make([]float64, 0, len(residuals))
	for _, r := range residuals {
		if !math.IsNaN(r) {
			defined = append(defined, r)
		}
	}

	n := len(defined)
	if n < 2 {
		return nil, fmt.Errorf("%w: Durbin-Watson needs at least 2 defined residuals", ErrInsufficientData)
	}

	numerator := 0.0
	for i := 1; i < n; i++ {
		d := defined[i] - defined[i-1]
		numerator += d * d
	}

	denominator := 0.0
	for _, r := range defined {
		denominator += r * r
	}
	if denominator == 0 {
		return nil, fmt.Errorf("%w: residuals are identically zero", ErrInsufficientData)
	}

	return &DurbinWatsonResult{Statistic: numerator / denominator}, nil
}
