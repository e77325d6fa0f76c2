package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statkit/goarma/timeseries"
)

// whiteNoise returns n standard normal draws from a fixed seed.
func whiteNoise(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// ar1 simulates an AR(1) process with the given coefficient.
func ar1(seed int64, n int, phi float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := 1; i < n; i++ {
		out[i] = phi*out[i-1] + rng.NormFloat64()
	}
	return out
}

func TestACFLagZero(t *testing.T) {
	s := timeseries.New(whiteNoise(1, 100))

	acf, err := ACF(s, 10)
	require.NoError(t, err)

	require.Len(t, acf, 11)
	assert.Equal(t, 1.0, acf[0])
}

func TestACFWhiteNoise(t *testing.T) {
	s := timeseries.New(whiteNoise(2, 500))

	acf, err := ACF(s, 10)
	require.NoError(t, err)

	for k := 1; k <= 10; k++ {
		assert.Less(t, math.Abs(acf[k]), 0.2, "lag %d", k)
	}
}

func TestACFAR1(t *testing.T) {
	phi := 0.7
	s := timeseries.New(ar1(3, 1000, phi))

	acf, err := ACF(s, 5)
	require.NoError(t, err)

	assert.InDelta(t, phi, acf[1], 0.15)
	// Geometric decay: each lag shrinks roughly by phi.
	assert.Greater(t, acf[1], acf[2])
	assert.Greater(t, acf[2], acf[3])

	t.Logf("ACF: %v", acf)
}

func TestACFSkipsUndefined(t *testing.T) {
	values := whiteNoise(4, 200)
	values[10] = math.NaN()
	values[50] = math.NaN()
	s := timeseries.New(values)

	acf, err := ACF(s, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acf[0])
}

func TestACFNoVariance(t *testing.T) {
	s := timeseries.New([]float64{5, 5, 5, 5, 5})

	_, err := ACF(s, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestACFSmallMagnitudeSeries(t *testing.T) {
	// A genuinely varying series must not be rejected as constant just
	// because its absolute scale is tiny.
	values := whiteNoise(18, 200)
	for i := range values {
		values[i] *= 1e-7
	}
	s := timeseries.New(values)

	acf, err := ACF(s, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acf[0])
	for k := 1; k <= 10; k++ {
		assert.Less(t, math.Abs(acf[k]), 0.3, "lag %d", k)
	}
}

func TestACFAllZeros(t *testing.T) {
	s := timeseries.New(make([]float64, 50))

	_, err := ACF(s, 5)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestACFMaxLagTooLarge(t *testing.T) {
	s := timeseries.New([]float64{1, 2, 3, 4, 5})

	_, err := ACF(s, 5)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ACF(s, -1)
	assert.Error(t, err)
}

func TestPACFWhiteNoise(t *testing.T) {
	n := 400
	s := timeseries.New(whiteNoise(5, n))

	pacf, err := PACF(s, 10)
	require.NoError(t, err)

	require.Len(t, pacf, 11)
	assert.Equal(t, 1.0, pacf[0])

	bound := 2.0 / math.Sqrt(float64(n))
	exceeded := 0
	for k := 1; k <= 10; k++ {
		if math.Abs(pacf[k]) > bound {
			exceeded++
		}
	}
	// Roughly 5% of white-noise lags should exceed the bound by chance.
	assert.LessOrEqual(t, exceeded, 2)
}

func TestPACFAR1Cutoff(t *testing.T) {
	phi := 0.7
	s := timeseries.New(ar1(6, 1000, phi))

	pacf, err := PACF(s, 6)
	require.NoError(t, err)

	assert.InDelta(t, phi, pacf[1], 0.15)
	// Partial autocorrelation of an AR(1) cuts off after lag 1.
	for k := 2; k <= 6; k++ {
		assert.Less(t, math.Abs(pacf[k]), 0.15, "lag %d", k)
	}
}

func TestDurbinLevinson(t *testing.T) {
	// Geometric autocorrelation decay is an AR(1) signature: the partial
	// autocorrelation cuts off exactly after lag 1.
	pacf, err := durbinLevinson([]float64{1, 0.5, 0.25, 0.125})
	require.NoError(t, err)

	assert.Equal(t, 1.0, pacf[0])
	assert.InDelta(t, 0.5, pacf[1], 1e-12)
	assert.InDelta(t, 0.0, pacf[2], 1e-12)
	assert.InDelta(t, 0.0, pacf[3], 1e-12)
}

func TestDurbinLevinsonSingular(t *testing.T) {
	// Unit autocorrelation at lag 1 drives the lag-2 denominator
	// 1 - phi_{1,1}*acf(1) to exactly zero.
	_, err := durbinLevinson([]float64{1, 1, 0.5})
	assert.ErrorIs(t, err, ErrSingularRecursion)
}

func TestPACFInvalidMaxLag(t *testing.T) {
	s := timeseries.New(whiteNoise(7, 50))

	_, err := PACF(s, 0)
	assert.Error(t, err)
}

func TestACFProfile(t *testing.T) {
	n := 100
	s := timeseries.New(whiteNoise(8, n))

	profile, err := ACFProfile(s, 10)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, profile.Lags)
	assert.Len(t, profile.Values, 11)
	assert.InDelta(t, 1.96/math.Sqrt(float64(n)), profile.ConfBounds, 1e-10)
}

func TestSignificantLags(t *testing.T) {
	values := []float64{1.0, 0.5, 0.05, -0.3, 0.02}

	sig := SignificantLags(values, 0.1)
	assert.Equal(t, []int{1, 3}, sig)

	assert.Empty(t, SignificantLags([]float64{1.0, 0.01}, 0.1))
}

func TestSuggestOrderAR2(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	n := 1000
	values := make([]float64, n)
	for i := 2; i < n; i++ {
		values[i] = 0.6*values[i-1] - 0.3*values[i-2] + rng.NormFloat64()
	}
	s := timeseries.New(values)

	suggestion, err := SuggestOrder(s, 20)
	require.NoError(t, err)

	// An AR(2) PACF cuts off after lag 2; the suggestion is advisory, so
	// only sanity-check the neighbourhood.
	assert.GreaterOrEqual(t, suggestion.P, 1)
	assert.LessOrEqual(t, suggestion.P, 4)
	t.Logf("suggested p=%d q=%d", suggestion.P, suggestion.Q)
}

func TestSuggestOrderWhiteNoise(t *testing.T) {
	s := timeseries.New(whiteNoise(10, 500))

	suggestion, err := SuggestOrder(s, 20)
	require.NoError(t, err)

	// White noise should not suggest long consecutive runs.
	assert.LessOrEqual(t, suggestion.P, 2)
	assert.LessOrEqual(t, suggestion.Q, 2)
}
