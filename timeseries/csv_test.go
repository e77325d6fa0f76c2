package timeseries

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	data := `ds,value
2024-01-01,1.5
2024-01-02,2.5
2024-01-03,3.5
`
	s, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, s.Values)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), s.Timestamps[1])
}

func TestLoadCSVMissingValues(t *testing.T) {
	data := `ds,value
2024-01-01,1
2024-01-02,NA
2024-01-03,
2024-01-04,NaN
2024-01-05,5
`
	s, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	// Missing values stay in place as undefined observations.
	require.Equal(t, 5, s.Len())
	assert.Equal(t, 2, s.NumDefined())
	assert.True(t, s.IsDefined(0))
	assert.False(t, s.IsDefined(1))
	assert.False(t, s.IsDefined(2))
	assert.False(t, s.IsDefined(3))
	assert.True(t, s.IsDefined(4))
}

func TestLoadCSVNamedColumn(t *testing.T) {
	data := `ds,sales,price
2024-01-01,100,9.99
2024-01-02,110,10.49
`
	opts := DefaultCSVOptions()
	opts.ValueColumn = "sales"

	s, err := LoadCSVFromReader(strings.NewReader(data), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 110}, s.Values)
}

func TestLoadCSVFallbackLastColumn(t *testing.T) {
	data := `ds,y
2024-01-01,7
2024-01-02,8
`
	s, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 8}, s.Values)
}

func TestLoadCSVNoHeader(t *testing.T) {
	data := `2024-01-01,3
2024-01-02,4
`
	opts := DefaultCSVOptions()
	opts.HasHeader = false

	s, err := LoadCSVFromReader(strings.NewReader(data), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, s.Values)
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSVFromReader(strings.NewReader("ds,value\n"), nil)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ts := make([]time.Time, 4)
	for i := range ts {
		ts[i] = base.AddDate(0, 0, i)
	}
	orig, err := NewWithTimestamps(ts, []float64{1, math.NaN(), 3, 4})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, SaveCSV(orig, path))

	loaded, err := LoadCSV(path, nil)
	require.NoError(t, err)

	require.Equal(t, orig.Len(), loaded.Len())
	assert.False(t, loaded.IsDefined(1))
	assert.Equal(t, orig.DefinedValues(), loaded.DefinedValues())
	assert.Equal(t, ts[2], loaded.Timestamps[2])
}
