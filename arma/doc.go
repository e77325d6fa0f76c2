// Package arma implements AutoRegressive Moving Average (ARMA) models,
// optionally with differencing (ARIMA).
//
// An ARMA(p,q) model explains each observation as a linear combination of
// its own past values and past shocks:
//   - AR(p): AutoRegressive component with p lags
//   - MA(q): Moving Average component with q lags
//
// Setting a differencing order d fits the same model to the d-times
// differenced series, which is the ARIMA(p,d,q) form.
//
// # Estimation
//
// Coefficients are estimated by iterative conditional least squares: each
// round treats the residuals from the previous round's coefficients as
// fixed regressors and refits by ordinary least squares, repeating until
// the largest coefficient change drops below tolerance. The first max(p,q)
// observations condition the recursion and produce no residual.
//
// # Basic Usage
//
// Create and fit a model:
//
//	// Create ARMA(2,1) on the once-differenced series
//	model := arma.New(2, 1, 1)
//
//	err := model.Fit(series)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch model.Status {
//	case arma.StatusConverged:
//	    // accept
//	case arma.StatusMaxIterations:
//	    // degraded result; inspect model.Iterations and decide
//	}
//
//	forecasts, _ := model.Predict(10)
//
// # Model Selection
//
// Use information criteria (AIC, AICc, BIC) to compare candidate orders:
//
//	model1 := arma.New(1, 0, 0)
//	model2 := arma.New(1, 0, 1)
//	model1.Fit(series)
//	model2.Fit(series)
//
//	// Lower AICc is better
//	if model1.AICc < model2.AICc {
//	    // Use model1
//	}
//
// stats.SuggestOrder gives advisory starting orders from the correlation
// structure of the series.
//
// # Residual Analysis
//
// Summary runs a Ljung-Box test on the residuals; use stats.LjungBox or
// stats.DurbinWatson directly for finer control:
//
//	residuals := model.Residuals()
//	summary := model.Summary()
//	fmt.Printf("Ljung-Box p-value: %.3f\n", summary.LjungBox.PValue)
package arma
