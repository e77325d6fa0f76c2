// Package goarma provides univariate time series analysis and ARMA modeling.
//
// GoARMA is a small numeric core for time series work: series transforms
// (differencing, rolling and expanding aggregation, exponential weighting),
// autocorrelation analysis (ACF, PACF), and ARMA(p,q) parameter estimation
// via iterative conditional least squares. ARIMA(p,d,q) is handled by
// differencing d times and fitting ARMA(p,q) on the result.
//
// # Quick Start
//
// Fit an ARMA model:
//
//	series := timeseries.New(values)
//	model := arma.New(1, 0, 0) // AR(1)
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	forecasts, _ := model.Predict(10)
//
// Inspect autocorrelation structure before choosing an order:
//
//	acf, _ := stats.ACF(series, 20)
//	pacf, _ := stats.PACF(series, 20)
//
// # Packages
//
//   - timeseries: the Series value type and series utilities
//   - stats: autocorrelation analysis, residual diagnostics, stationarity tests
//   - arma: ARMA/ARIMA parameter estimation and forecasting
//
// Undefined observations (the leading points of a differenced series, the
// warm-up region of a rolling window) are represented as NaN and are excluded
// from every derived statistic; they are never silently treated as zero.
//
// # References
//
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
package goarma
