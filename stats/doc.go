// Package stats provides statistical tests and analysis functions for time series.
//
// This package includes the autocorrelation engine, residual diagnostics,
// and stationarity tests used around ARMA model fitting.
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns:
//
//	// Autocorrelation function, lags 0..20
//	acf, err := stats.ACF(series, 20)
//
//	// Partial autocorrelation function via Durbin-Levinson
//	pacf, err := stats.PACF(series, 20)
//
//	// With white-noise confidence bounds
//	profile, err := stats.ACFProfile(series, 20)
//	significant := stats.SignificantLags(profile.Values, profile.ConfBounds)
//
// Both functions operate on the defined region of the series and fail with
// ErrInsufficientData when the region is too short for the requested lag or
// the series has no variance.
//
// # Order Guidance
//
// SuggestOrder reads the ACF/PACF cutoffs and reports candidate ARMA orders.
// The suggestion is advisory; picking p and q remains the caller's call:
//
//	hint, err := stats.SuggestOrder(series, 20)
//	// hint.P, hint.Q
//
// # Residual Diagnostics
//
//	// Ljung-Box test for autocorrelation in residuals
//	lb, err := stats.LjungBox(residuals, 10, p+q)
//	if lb.PValue > 0.05 {
//	    // residuals look like white noise
//	}
//
//	bp, err := stats.BoxPierce(residuals, 10, p+q)
//	dw, err := stats.DurbinWatson(residuals.Values)
//
// # Stationarity Tests
//
//	// Augmented Dickey-Fuller: H0 = unit root (non-stationary)
//	adf, err := stats.ADF(series, 0)
//
//	// KPSS: H0 = stationary
//	kpss, err := stats.KPSS(series, "c", 0)
//
//	// Suggested number of first differences
//	d := stats.NDiffs(series, 2, "kpss")
package stats
