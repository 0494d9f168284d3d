package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDist() *Distribution {
	return &Distribution{P10: 0.02, P25: 0.08, Median: 0.15, P75: 0.22, P90: 0.30}
}

func TestAnchorsMapExactly(t *testing.T) {
	d := testDist()

	cases := map[float64]float64{
		0.02: 10,
		0.08: 25,
		0.15: 50,
		0.22: 75,
		0.30: 90,
	}
	for value, want := range cases {
		r := Compare(value, d)
		assert.True(t, r.Available)
		assert.InDelta(t, want, r.Percentile, 1e-9, "value %v", value)
	}
}

func TestInterpolationIsMonotonic(t *testing.T) {
	d := testDist()

	prev := -1.0
	for v := 0.0; v <= 0.35; v += 0.005 {
		r := Compare(v, d)
		require.GreaterOrEqual(t, r.Percentile, prev, "percentile dipped at value %v", v)
		prev = r.Percentile
	}
}

func TestClampingOutsideAnchors(t *testing.T) {
	d := testDist()

	assert.Equal(t, 0.0, Compare(-0.5, d).Percentile)
	assert.Equal(t, 0.0, Compare(0.0199, d).Percentile)
	assert.Equal(t, 100.0, Compare(0.31, d).Percentile)
	assert.Equal(t, 100.0, Compare(99.0, d).Percentile)
}

func TestMidpointInterpolation(t *testing.T) {
	d := testDist()

	// Halfway between median (0.15 -> 50) and p75 (0.22 -> 75).
	r := Compare(0.185, d)
	assert.InDelta(t, 62.5, r.Percentile, 1e-9)
	assert.Equal(t, "Above Median", r.Label)
}

func TestLabels(t *testing.T) {
	d := testDist()

	cases := map[float64]string{
		0.31:  "Top 10%",  // clamps to 100
		0.30:  "Top 10%",  // exactly p90
		0.25:  "Top 25%",  // between p75 and p90
		0.15:  "Above Median",
		0.10:  "Below Median",
		0.02:  "Bottom 25%", // exactly p10 -> percentile 10
		0.001: "Bottom 25%",
	}
	for value, want := range cases {
		assert.Equal(t, want, Compare(value, d).Label, "value %v", value)
	}
}

func TestMissingDistributionIsUnavailableNotError(t *testing.T) {
	r := Compare(0.15, nil)
	assert.False(t, r.Available)
	assert.Equal(t, "No benchmark data", r.Label)
	assert.Zero(t, r.Percentile)
}

func TestDegenerateFlatSegment(t *testing.T) {
	d := &Distribution{P10: 1, P25: 1, Median: 1, P75: 2, P90: 3}
	r := Compare(1, d)
	assert.True(t, r.Available)
	// Flat run collapses to its lowest anchor.
	assert.InDelta(t, 10.0, r.Percentile, 1e-9)
}

func TestValidateRejectsUnorderedAnchors(t *testing.T) {
	bad := &Distribution{P10: 0.5, P25: 0.2, Median: 0.3, P75: 0.4, P90: 0.6}
	assert.Error(t, bad.Validate())
	assert.NoError(t, testDist().Validate())
}

func TestLoadIndustryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "technology.hjson")
	content := `{
  // Derived from sector aggregates; refreshed quarterly.
  industry: Technology
  ratios: {
    returnOnEquity: { p10: 0.02, p25: 0.10, median: 0.15, p75: 0.20, p90: 0.30 }
    currentRatio: { p10: 0.8, p25: 1.1, median: 1.5, p75: 2.0, p90: 2.8 }
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	set, err := LoadIndustryFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Technology", set.Industry)

	roe := set.Lookup("returnOnEquity")
	require.NotNil(t, roe)
	assert.Equal(t, 0.15, roe.Median)
	assert.Nil(t, set.Lookup("noSuchRatio"))

	sets, err := LoadDirectory(dir)
	require.NoError(t, err)
	require.Contains(t, sets, "technology")
}
