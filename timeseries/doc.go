// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing time series data,
// along with functions for data loading, transformation, and aggregation.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Or with explicit timestamps (which must be strictly increasing):
//
//	series, err := timeseries.NewWithTimestamps(timestamps, values)
//
// # Undefined Observations
//
// Derived series keep the length and time index of their source: the first
// point of a differenced series, or the warm-up region of a rolling window,
// is undefined and carried as NaN. Use IsDefined, NumDefined, and
// DefinedValues to work with the defined region; all statistics on a Series
// (Mean, Variance, ...) already exclude undefined points.
//
// # Transformations
//
// Transform the time series:
//
//	diff, err := series.Diff()       // First difference
//	diff2, err := series.DiffN(2)    // Second difference
//	sdiff, err := series.SeasonalDiff(12)
//
//	logged := series.Log()           // Natural log
//	normalized := series.Normalize() // Z-score normalization
//
// # Windowed Aggregation
//
// Apply an aggregator over rolling, centered, or expanding windows:
//
//	ma, err := series.Rolling(7, timeseries.Mean)
//	med, err := series.RollingCentered(5, timeseries.Median)
//	cum := series.Expanding(timeseries.Sum)
//
// Exponentially weighted means come in the recursive and the bias-adjusted
// variants:
//
//	ewm, err := series.EWM(0.3)
//	adj, err := series.EWMAdjusted(0.3)
//
// # Loading from CSV
//
//	series, err := timeseries.LoadCSVColumn("data.csv", "value")
//
// Missing values ("", "NA", "NaN", "null") load as undefined observations.
package timeseries
