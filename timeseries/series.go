// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidOrder is returned when a differencing order is out of range.
	ErrInvalidOrder = errors.New("timeseries: invalid differencing order")
	// ErrInvalidWindow is returned when a window size is out of range.
	ErrInvalidWindow = errors.New("timeseries: invalid window size")
	// ErrInvalidAlpha is returned when a smoothing factor is outside (0, 1].
	ErrInvalidAlpha = errors.New("timeseries: alpha must be in (0, 1]")
)

// Series represents a time series with timestamps and values.
//
// Undefined observations are carried as NaN so that derived series (after
// differencing or windowing) keep the length and time index of their source.
// Every statistic on a Series is computed over the defined region only.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values with a synthetic hourly index.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
// Timestamps must be strictly increasing with no duplicates.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timeseries: timestamps and values must have the same length")
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, fmt.Errorf("timeseries: timestamps must be strictly increasing at index %d", i)
		}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series, including undefined points.
func (s *Series) Len() int {
	return len(s.Values)
}

// IsDefined reports whether the observation at index i exists and is defined.
func (s *Series) IsDefined(i int) bool {
	return i >= 0 && i < len(s.Values) && !math.IsNaN(s.Values[i])
}

// NumDefined returns the number of defined observations.
func (s *Series) NumDefined() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// DefinedValues returns the defined observations in order.
func (s *Series) DefinedValues() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean calculates the arithmetic mean over the defined region.
func (s *Series) Mean() float64 {
	defined := s.DefinedValues()
	if len(defined) == 0 {
		return math.NaN()
	}
	return stat.Mean(defined, nil)
}

// Variance calculates the sample variance over the defined region.
func (s *Series) Variance() float64 {
	defined := s.DefinedValues()
	if len(defined) < 2 {
		return math.NaN()
	}
	return stat.Variance(defined, nil)
}

// Std calculates the sample standard deviation over the defined region.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum defined value in the series.
func (s *Series) Min() float64 {
	min := math.NaN()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum defined value in the series.
func (s *Series) Max() float64 {
	max := math.NaN()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// Median returns the median of the defined region.
func (s *Series) Median() float64 {
	defined := s.DefinedValues()
	if len(defined) == 0 {
		return math.NaN()
	}
	sort.Float64s(defined)
	return stat.Quantile(0.5, stat.Empirical, defined, nil)
}

// Diff calculates the first difference of the series (order 1).
func (s *Series) Diff() (*Series, error) {
	return s.DiffN(1)
}

// DiffN calculates the order-th difference of the series.
//
// The result has the same length and timestamps as the source; the first
// order points are undefined. A difference of two values is undefined when
// either operand is undefined.
func (s *Series) DiffN(order int) (*Series, error) {
	if order < 1 || order >= len(s.Values) {
		return nil, fmt.Errorf("%w: order %d for series of length %d", ErrInvalidOrder, order, len(s.Values))
	}

	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	for it := 0; it < order; it++ {
		for i := len(values) - 1; i >= 1; i-- {
			values[i] -= values[i-1] // NaN propagates
		}
		values[0] = math.NaN()
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_diff",
	}, nil
}

// SeasonalDiff calculates the seasonal difference with period m. The first m
// points of the result are undefined.
func (s *Series) SeasonalDiff(m int) (*Series, error) {
	if m < 1 || m >= len(s.Values) {
		return nil, fmt.Errorf("%w: seasonal period %d for series of length %d", ErrInvalidOrder, m, len(s.Values))
	}

	values := make([]float64, len(s.Values))
	for i := 0; i < m; i++ {
		values[i] = math.NaN()
	}
	for i := m; i < len(s.Values); i++ {
		values[i] = s.Values[i] - s.Values[i-m]
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_seasonal_diff",
	}, nil
}

// Lag returns the series shifted forward by k steps. The first k points of
// the result are undefined.
func (s *Series) Lag(k int) *Series {
	values := make([]float64, len(s.Values))
	for i := range values {
		if i < k {
			values[i] = math.NaN()
		} else {
			values[i] = s.Values[i-k]
		}
	}
	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_lag",
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name,
	}
}

// Log applies the natural logarithm transformation. Non-positive values
// become undefined.
func (s *Series) Log() *Series {
	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			values[i] = math.Log(v)
		} else {
			values[i] = math.NaN()
		}
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_log",
	}
}

// Normalize standardizes the series (z-score over the defined region).
func (s *Series) Normalize() *Series {
	mean := s.Mean()
	std := s.Std()

	if std == 0 || math.IsNaN(std) {
		return s.Copy()
	}

	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		values[i] = (v - mean) / std // NaN stays NaN
	}

	return &Series{
		Timestamps: copyTimestamps(s.Timestamps),
		Values:     values,
		Name:       s.Name + "_normalized",
	}
}

func copyTimestamps(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out
}
