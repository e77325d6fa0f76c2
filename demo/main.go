// Package main demonstrates the goarma analysis pipeline on synthetic data:
// stationarity checks, correlation profiles, model fitting, and forecasting.
package main

import (
	"math"
	"math/rand"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/statkit/goarma/arma"
	"github.com/statkit/goarma/stats"
	"github.com/statkit/goarma/timeseries"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	rng := rand.New(rand.NewSource(42))

	series := simulateARMA(rng, 500, 10.0, []float64{0.6, -0.2}, []float64{0.4}, 1.0)
	log.WithFields(log.Fields{
		"n":    series.Len(),
		"mean": series.Mean(),
		"std":  series.Std(),
	}).Info("simulated ARMA(2,1) series")

	analyze(series, "arma21")

	trend := withTrend(rng, 400, 0.25, 2.0)
	log.WithFields(log.Fields{
		"n":    trend.Len(),
		"mean": trend.Mean(),
	}).Info("simulated trending series")

	analyze(trend, "trend")
}

// analyze runs the full pipeline on one series: differencing advice,
// correlation profiles, order suggestion, fit, diagnostics, and forecast.
func analyze(series *timeseries.Series, name string) {
	logger := log.WithField("series", name)

	d := stats.NDiffs(series, 2, "adf")
	logger.WithField("d", d).Info("differencing order advised")

	work := series
	if d > 0 {
		var err error
		work, err = series.DiffN(d)
		if err != nil {
			logger.WithError(err).Fatal("differencing failed")
		}
	}

	if adf, err := stats.ADF(work, 0); err != nil {
		logger.WithError(err).Warn("ADF test failed")
	} else {
		logger.WithFields(log.Fields{
			"statistic":  adf.Statistic,
			"p_value":    adf.PValue,
			"stationary": adf.IsStationary,
		}).Info("ADF on working series")
	}

	acf, err := stats.ACFProfile(work, 20)
	if err != nil {
		logger.WithError(err).Fatal("ACF failed")
	}
	pacf, err := stats.PACFProfile(work, 20)
	if err != nil {
		logger.WithError(err).Fatal("PACF failed")
	}
	logger.WithFields(log.Fields{
		"acf_significant":  stats.SignificantLags(acf.Values, acf.ConfBounds),
		"pacf_significant": stats.SignificantLags(pacf.Values, pacf.ConfBounds),
		"conf_bound":       acf.ConfBounds,
	}).Info("correlation profiles")

	suggestion, err := stats.SuggestOrder(work, 20)
	if err != nil {
		logger.WithError(err).Fatal("order suggestion failed")
	}
	logger.WithFields(log.Fields{
		"p": suggestion.P,
		"q": suggestion.Q,
	}).Info("suggested starting orders")

	p, q := suggestion.P, suggestion.Q
	if p == 0 && q == 0 {
		p = 1
	}

	model := arma.New(p, d, q)
	if err := model.Fit(series); err != nil {
		logger.WithError(err).Fatal("fit failed")
	}

	summary := model.Summary()
	fields := log.Fields{
		"status":     summary.Status.String(),
		"iterations": summary.Iterations,
		"constant":   summary.Constant,
		"ar":         summary.ARCoeffs,
		"ma":         summary.MACoeffs,
		"variance":   summary.Variance,
		"aicc":       summary.AICc,
		"bic":        summary.BIC,
	}
	if summary.LjungBox != nil {
		fields["ljung_box_p"] = summary.LjungBox.PValue
	}
	logger.WithFields(fields).Info("model fitted")

	if summary.Status == arma.StatusMaxIterations {
		logger.Warn("fit did not converge within the iteration cap; coefficients are approximate")
	}

	forecasts, err := model.Predict(10)
	if err != nil {
		logger.WithError(err).Fatal("forecast failed")
	}
	logger.WithField("forecasts", round(forecasts, 3)).Info("10-step forecast")
}

// simulateARMA generates n observations from an ARMA process with the given
// constant, AR and MA coefficients, and shock standard deviation. A burn-in
// period is discarded so the output starts near the stationary distribution.
func simulateARMA(rng *rand.Rand, n int, c float64, phi, theta []float64, sigma float64) *timeseries.Series {
	burn := 100
	total := n + burn
	y := make([]float64, total)
	eps := make([]float64, total)

	for t := 0; t < total; t++ {
		eps[t] = rng.NormFloat64() * sigma
		y[t] = c + eps[t]
		for j, p := range phi {
			if t-j-1 >= 0 {
				y[t] += p * y[t-j-1]
			}
		}
		for j, q := range theta {
			if t-j-1 >= 0 {
				y[t] += q * eps[t-j-1]
			}
		}
	}

	return timeseries.New(y[burn:])
}

// withTrend generates a linear trend plus noise, a textbook case for d=1.
func withTrend(rng *rand.Rand, n int, slope, sigma float64) *timeseries.Series {
	y := make([]float64, n)
	for t := range y {
		y[t] = slope*float64(t) + rng.NormFloat64()*sigma
	}
	return timeseries.New(y)
}

func round(xs []float64, places int) []float64 {
	scale := math.Pow(10, float64(places))
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Round(x*scale) / scale
	}
	return out
}
