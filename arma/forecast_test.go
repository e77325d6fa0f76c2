package arma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statkit/goarma/timeseries"
)

func TestPredictBeforeFit(t *testing.T) {
	model := New(1, 0, 0)

	_, err := model.Predict(5)
	assert.Error(t, err)
}

func TestPredictInvalidSteps(t *testing.T) {
	series := timeseries.New(simulate(50, 200, 0, []float64{0.5}, nil))
	model := New(1, 0, 0)
	require.NoError(t, model.Fit(series))

	_, err := model.Predict(0)
	assert.Error(t, err)
	_, err = model.Predict(-3)
	assert.Error(t, err)
}

func TestPredictAR1MeanReversion(t *testing.T) {
	values := simulate(51, 500, 1, []float64{0.6}, nil)
	series := timeseries.New(values)

	model := New(1, 0, 0)
	require.NoError(t, model.Fit(series))

	forecasts, err := model.Predict(20)
	require.NoError(t, err)
	require.Len(t, forecasts, 20)

	// AR(1) forecasts decay geometrically toward the unconditional mean.
	mu := model.Constant / (1 - model.ARCoeffs[0])
	assert.LessOrEqual(t, math.Abs(forecasts[19]-mu), math.Abs(forecasts[0]-mu))
	assert.InDelta(t, mu, forecasts[19], 0.5)
}

func TestPredictMAReversion(t *testing.T) {
	values := simulate(52, 500, 3, nil, []float64{0.5})
	series := timeseries.New(values)

	model := New(0, 0, 1)
	require.NoError(t, model.Fit(series))

	forecasts, err := model.Predict(5)
	require.NoError(t, err)

	// Beyond q steps only the constant remains.
	for h := 1; h < 5; h++ {
		assert.InDelta(t, model.Constant, forecasts[h], 1e-12, "step %d", h)
	}
}

func TestPredictIntegratesLinearTrend(t *testing.T) {
	// An exact line differences to a constant; forecasts must continue it.
	n := 50
	values := make([]float64, n)
	for i := range values {
		values[i] = 2 * float64(i)
	}
	series := timeseries.New(values)

	model := New(0, 1, 0)
	require.NoError(t, model.Fit(series))

	forecasts, err := model.Predict(3)
	require.NoError(t, err)

	assert.InDelta(t, 2*float64(n), forecasts[0], 1e-9)
	assert.InDelta(t, 2*float64(n+1), forecasts[1], 1e-9)
	assert.InDelta(t, 2*float64(n+2), forecasts[2], 1e-9)
}

func TestPredictDoubleIntegration(t *testing.T) {
	// A quadratic differences twice to a constant.
	n := 60
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i * i)
	}
	series := timeseries.New(values)

	model := New(0, 2, 0)
	require.NoError(t, model.Fit(series))

	forecasts, err := model.Predict(2)
	require.NoError(t, err)

	assert.InDelta(t, float64(n*n), forecasts[0], 1e-6)
	assert.InDelta(t, float64((n+1)*(n+1)), forecasts[1], 1e-6)
}

func TestPredictAfterDifferencedFit(t *testing.T) {
	inner := simulate(53, 400, 0.5, []float64{0.4}, nil)
	values := make([]float64, len(inner))
	running := 100.0
	for i, v := range inner {
		running += v
		values[i] = running
	}
	series := timeseries.New(values)

	model := New(1, 1, 0)
	require.NoError(t, model.Fit(series))

	forecasts, err := model.Predict(10)
	require.NoError(t, err)

	// Forecasts continue from the level of the series, not the differences.
	last := values[len(values)-1]
	assert.InDelta(t, last, forecasts[0], 10*series.Std())
	for _, f := range forecasts {
		assert.False(t, math.IsNaN(f))
	}
}
