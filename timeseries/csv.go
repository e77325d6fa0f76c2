package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "value")
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has a header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "value",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader.
//
// Empty, "NA", "NaN", and "null" values are kept as undefined observations
// rather than dropped, so the time index of the file is preserved.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	valueIdx, dateIdx := -1, -1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case h == opts.ValueColumn:
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case opts.DateColumn == "" && (h == "ds" || h == "date" || h == "Date"):
				if dateIdx == -1 {
					dateIdx = i
				}
			}
		}
		if valueIdx == -1 {
			// Default to last column when the named column is absent.
			valueIdx = len(header) - 1
		}
	} else {
		dateIdx = 0
		valueIdx = 1
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if valueIdx >= len(record) {
			continue
		}

		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		switch valStr {
		case "", "NA", "NaN", "null":
			values = append(values, math.NaN())
		default:
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				values = append(values, math.NaN())
			} else {
				values = append(values, val)
			}
		}

		if dateIdx >= 0 && dateIdx < len(record) {
			dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
			if ts, err := time.Parse(opts.DateFormat, dateStr); err == nil {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("timeseries: no data found in CSV")
	}

	if len(timestamps) == len(values) {
		if s, err := NewWithTimestamps(timestamps, values); err == nil {
			return s, nil
		}
		// Unusable date column, fall back to a synthetic index.
	}
	return New(values), nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	return LoadCSV(filename, opts)
}

// SaveCSV saves a time series to a CSV file with a "ds,value" header.
// Undefined observations are written as "NA".
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	writer.WriteString("ds,value\n")
	for i, v := range series.Values {
		if len(series.Timestamps) == len(series.Values) {
			writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
		} else {
			writer.WriteString(strconv.Itoa(i + 1))
		}
		writer.WriteString(",")
		if math.IsNaN(v) {
			writer.WriteString("NA")
		} else {
			writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return nil
}
