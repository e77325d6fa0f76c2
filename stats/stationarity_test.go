package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statkit/goarma/timeseries"
)

// randomWalk simulates a unit-root process with the given drift.
func randomWalk(seed int64, n int, drift float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := 1; i < n; i++ {
		out[i] = out[i-1] + drift + rng.NormFloat64()
	}
	return out
}

func TestADFStationary(t *testing.T) {
	s := timeseries.New(ar1(20, 300, 0.5))

	result, err := ADF(s, 0)
	require.NoError(t, err)

	assert.True(t, result.IsStationary)
	assert.Less(t, result.Statistic, -3.43)
	t.Logf("ADF stat=%.3f p=%.3f lags=%d", result.Statistic, result.PValue, result.Lags)
}

func TestADFRandomWalk(t *testing.T) {
	s := timeseries.New(randomWalk(21, 300, 0.1))

	result, err := ADF(s, 0)
	require.NoError(t, err)

	assert.False(t, result.IsStationary)
	assert.Greater(t, result.Statistic, -3.43)
}

func TestADFSkipsUndefined(t *testing.T) {
	values := ar1(22, 300, 0.5)
	values[5] = math.NaN()
	values[100] = math.NaN()
	s := timeseries.New(values)

	result, err := ADF(s, 0)
	require.NoError(t, err)
	assert.True(t, result.IsStationary)
}

func TestADFInsufficientData(t *testing.T) {
	s := timeseries.New([]float64{1, 2, 3, 4, 5})

	_, err := ADF(s, 0)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestKPSSStationary(t *testing.T) {
	// A bounded deterministic oscillation is stationary by construction.
	values := make([]float64, 300)
	for i := range values {
		values[i] = math.Sin(0.9*float64(i)) + 0.5*math.Sin(2.1*float64(i))
	}
	s := timeseries.New(values)

	result, err := KPSS(s, "c", 0)
	require.NoError(t, err)

	assert.True(t, result.IsStationary)
	assert.Less(t, result.Statistic, 0.463)
}

func TestKPSSRandomWalk(t *testing.T) {
	s := timeseries.New(randomWalk(23, 300, 0))

	result, err := KPSS(s, "c", 0)
	require.NoError(t, err)

	assert.False(t, result.IsStationary)
	assert.Greater(t, result.Statistic, 0.463)
}

func TestKPSSTrendRegression(t *testing.T) {
	// Linear trend plus noise: non-stationary in level, stationary around
	// the trend.
	rng := rand.New(rand.NewSource(24))
	values := make([]float64, 300)
	for i := range values {
		values[i] = 0.5*float64(i) + rng.NormFloat64()
	}
	s := timeseries.New(values)

	level, err := KPSS(s, "c", 0)
	require.NoError(t, err)
	assert.False(t, level.IsStationary)

	trend, err := KPSS(s, "ct", 0)
	require.NoError(t, err)
	assert.True(t, trend.IsStationary)
}

func TestNDiffs(t *testing.T) {
	stationary := timeseries.New(ar1(25, 300, 0.5))
	assert.Equal(t, 0, NDiffs(stationary, 2, "adf"))

	walk := timeseries.New(randomWalk(26, 300, 0.2))
	assert.Equal(t, 1, NDiffs(walk, 2, "adf"))
}

func TestNDiffsKPSSDefault(t *testing.T) {
	walk := timeseries.New(randomWalk(27, 400, 0))

	d := NDiffs(walk, 2, "")
	assert.GreaterOrEqual(t, d, 1)
	assert.LessOrEqual(t, d, 2)
}
