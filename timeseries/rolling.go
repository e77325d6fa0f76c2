package timeseries

import (
	"fmt"
	"math"
	"sort"
)

// AggFunc aggregates a non-empty window of defined values into a scalar.
type AggFunc func(window []float64) float64

// Built-in aggregators for Rolling, RollingCentered, and Expanding.
var (
	Mean AggFunc = func(w []float64) float64 {
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		return sum / float64(len(w))
	}

	Sum AggFunc = func(w []float64) float64 {
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		return sum
	}

	Min AggFunc = func(w []float64) float64 {
		min := w[0]
		for _, v := range w[1:] {
			if v < min {
				min = v
			}
		}
		return min
	}

	Max AggFunc = func(w []float64) float64 {
		max := w[0]
		for _, v := range w[1:] {
			if v > max {
				max = v
			}
		}
		return max
	}

	Median AggFunc = func(w []float64) float64 {
		sorted := make([]float64, len(w))
		copy(sorted, w)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 0 {
			return (sorted[n/2-1] + sorted[n/2]) / 2
		}
		return sorted[n/2]
	}

	Std AggFunc = func(w []float64) float64 {
		if len(w) < 2 {
			return 0
		}
		mean := Mean(w)
		sumSq := 0.0
		for _, v := range w {
			d := v - mean
			sumSq += d * d
		}
		return math.Sqrt(sumSq / float64(len(w)-1))
	}
)

// Rolling applies fn to each look-back window of window consecutive defined
// points. The window at index t covers indices t-window+1..t; the output is
// undefined until window points are available and wherever the window
// contains an undefined point.
func (s *Series) Rolling(window int, fn AggFunc) (*Series, error) {
	if window < 1 || window > len(s.Values) {
		return nil, fmt.Errorf("%w: window %d for series of length %d", ErrInvalidWindow, window, len(s.Values))
	}
	return s.roll(window, window-1, fn), nil
}

// RollingCentered applies fn to each window of window consecutive defined
// points centered on the output index. The window size must be odd.
func (s *Series) RollingCentered(window int, fn AggFunc) (*Series, error) {
	if window < 1 || window > len(s.Values) {
		return nil, fmt.Errorf("%w: window %d for series of length %d", ErrInvalidWindow, window, len(s.Values))
	}
	if window%2 == 0 {
		return nil, fmt.Errorf("%w: centered window must be odd, got %d", ErrInvalidWindow, window)
	}
	return s.roll(window, window/2, fn), nil
}

// roll computes a windowed aggregate where the window covering output index t
// ends at t+window-1-offset.
func (s *Series) roll(window, offset int, fn AggFunc) *Series {
	n := len(s.Values)
	values := make([]float64, n)

	buf := make([]float64, 0, window)
	for t := 0; t < n; t++ {
		values[t] = math.NaN()

		lo := t - offset
		hi := lo + window // exclusive
		if lo < 0 || hi > n {
			continue
		}

		buf = buf[:0]
		for i := lo; i < hi; i++ {
			if math.IsNaN(s.Values[i]) {
				buf = buf[:0]
				break
			}
			buf = append(buf, s.Values[i])
		}
		if len(buf) == window {
			values[t] = fn(buf)
		}
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_rolling",
	}
}

// Expanding applies fn to all defined points from the start up to and
// including index t. Index 0 yields fn applied to the singleton. The output
// at t is undefined when the observation at t is itself undefined.
func (s *Series) Expanding(fn AggFunc) *Series {
	n := len(s.Values)
	values := make([]float64, n)

	defined := make([]float64, 0, n)
	for t := 0; t < n; t++ {
		if math.IsNaN(s.Values[t]) {
			values[t] = math.NaN()
			continue
		}
		defined = append(defined, s.Values[t])
		values[t] = fn(defined)
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_expanding",
	}
}

// EWM computes the exponentially weighted mean with smoothing factor alpha:
//
//	ewm[0] = x[0]
//	ewm[t] = alpha*x[t] + (1-alpha)*ewm[t-1]
//
// Undefined observations yield undefined outputs and do not advance the
// recursion. With alpha = 1 the result equals the input series.
func (s *Series) EWM(alpha float64) (*Series, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}

	values := make([]float64, len(s.Values))
	prev := math.NaN()
	for t, x := range s.Values {
		if math.IsNaN(x) {
			values[t] = math.NaN()
			continue
		}
		if math.IsNaN(prev) {
			prev = x
		} else {
			prev = alpha*x + (1-alpha)*prev
		}
		values[t] = prev
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_ewm",
	}, nil
}

// EWMAdjusted computes the bias-adjusted exponentially weighted mean, where
// the weighted sum is divided by the running sum of weights:
//
//	ewm[t] = sum_{i=0..t} (1-alpha)^i * x[t-i] / sum_{i=0..t} (1-alpha)^i
//
// over the defined points seen so far. Early outputs are unbiased toward the
// seed value, unlike the recursive form.
func (s *Series) EWMAdjusted(alpha float64) (*Series, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}

	values := make([]float64, len(s.Values))
	decay := 1 - alpha
	num, den := 0.0, 0.0
	started := false
	for t, x := range s.Values {
		if math.IsNaN(x) {
			values[t] = math.NaN()
			continue
		}
		if !started {
			num, den = x, 1
			started = true
		} else {
			num = x + decay*num
			den = 1 + decay*den
		}
		values[t] = num / den
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_ewm",
	}, nil
}

// MovingAverage is a convenience for the common rolling mean.
func (s *Series) MovingAverage(window int) (*Series, error) {
	return s.Rolling(window, Mean)
}
