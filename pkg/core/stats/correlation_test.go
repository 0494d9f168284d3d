package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quarterlySeries builds one observation per quarter starting 2024-01-01.
func quarterlySeries(vals ...float64) []DataPoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]DataPoint, len(vals))
	for i, v := range vals {
		series[i] = DataPoint{Date: start.AddDate(0, 3*i, 0), Value: v}
	}
	return series
}

func TestSelfCorrelationIsOne(t *testing.T) {
	s := quarterlySeries(1, 2, 3, 4, 5)

	result, err := Correlate(s, s)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Coefficient, 1e-10)
	assert.InDelta(t, 0.0, result.PValue, 1e-10)
	assert.Equal(t, "Highly significant (p < 0.001)", result.Significance)
	assert.Equal(t, 5, result.SampleSize)
}

func TestExactNegationIsMinusOne(t *testing.T) {
	s := quarterlySeries(1, 2, 3, 4, 5)
	neg := quarterlySeries(-1, -2, -3, -4, -5)

	result, err := Correlate(s, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, result.Coefficient, 1e-10)
	assert.InDelta(t, 0.0, result.PValue, 1e-10)
}

func TestGDPAgainstUnemploymentQuarters(t *testing.T) {
	gdp := quarterlySeries(25000, 25200, 25400, 25600)
	unemployment := quarterlySeries(3.5, 3.4, 3.6, 3.7)

	result, err := Correlate(gdp, unemployment)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, result.Coefficient, 1e-10)
	// t = 0.8 * sqrt(2 / 0.36) over 2 df gives p exactly 0.2.
	assert.InDelta(t, 0.2, result.PValue, 1e-6)
	assert.Equal(t, "Not significant (p >= 0.1)", result.Significance)
	assert.Equal(t, 4, result.SampleSize)
}

func TestCorrelateFewerThanThreePairs(t *testing.T) {
	a := quarterlySeries(1, 2)
	b := quarterlySeries(3, 4)

	_, err := Correlate(a, b)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Needed)
	assert.Equal(t, 2, insufficient.Got)
}

func TestCorrelateConstantSeriesIsUndefined(t *testing.T) {
	flat := quarterlySeries(7, 7, 7, 7)
	moving := quarterlySeries(1, 2, 3, 4)

	_, err := Correlate(flat, moving)
	var undefined *UndefinedCorrelationError
	require.ErrorAs(t, err, &undefined)

	_, err = Correlate(moving, flat)
	require.ErrorAs(t, err, &undefined)
}

func TestCorrelateAlignsOnSharedDates(t *testing.T) {
	// Second series misses the first quarter and adds a stray date; only the
	// four shared quarters should pair up.
	a := quarterlySeries(10, 20, 30, 40, 50)
	b := quarterlySeries(0, 1, 2, 3, 4)[1:]
	b = append(b, DataPoint{Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Value: 99})

	result, err := Correlate(a, b)
	require.NoError(t, err)
	assert.Equal(t, 4, result.SampleSize)
	assert.InDelta(t, 1.0, result.Coefficient, 1e-10)
}

func TestCorrelateDisjointDates(t *testing.T) {
	a := quarterlySeries(1, 2, 3)
	b := []DataPoint{
		{Date: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1},
		{Date: time.Date(1999, 4, 1, 0, 0, 0, 0, time.UTC), Value: 2},
		{Date: time.Date(1999, 7, 1, 0, 0, 0, 0, time.UTC), Value: 3},
	}

	_, err := Correlate(a, b)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Got)
}

func TestSignificanceLabels(t *testing.T) {
	cases := map[float64]string{
		0.0005: "Highly significant (p < 0.001)",
		0.005:  "Significant (p < 0.01)",
		0.03:   "Moderately significant (p < 0.05)",
		0.07:   "Marginally significant (p < 0.1)",
		0.1:    "Not significant (p >= 0.1)",
		0.5:    "Not significant (p >= 0.1)",
	}
	for p, want := range cases {
		assert.Equal(t, want, SignificanceLabel(p), "p=%v", p)
	}
}

func TestStudentTCDFKnownValues(t *testing.T) {
	// Zero is always the distribution's center.
	assert.InDelta(t, 0.5, studentTCDF(0, 5), 1e-12)

	// One degree of freedom is the Cauchy distribution: CDF(1) = 0.75.
	assert.InDelta(t, 0.75, studentTCDF(1, 1), 1e-9)

	// Two degrees of freedom has the closed form 1/2 + t / (2*sqrt(t^2+2)).
	assert.InDelta(t, 0.9, studentTCDF(1.8856180831641267, 2), 1e-9)

	// Symmetry.
	assert.InDelta(t, 1.0, studentTCDF(2.5, 7)+studentTCDF(-2.5, 7), 1e-12)
}

func TestCorrelationMatrix(t *testing.T) {
	series := map[string][]DataPoint{
		"gdp":      quarterlySeries(100, 110, 120, 130),
		"payrolls": quarterlySeries(50, 55, 60, 65),
		"flat":     quarterlySeries(1, 1, 1, 1),
	}

	matrix := CorrelationMatrix(series)
	require.Len(t, matrix, 3)

	for name := range series {
		assert.Equal(t, 1.0, matrix[name][name], "diagonal for %s", name)
	}
	assert.InDelta(t, 1.0, matrix["gdp"]["payrolls"], 1e-10)
	assert.InDelta(t, matrix["gdp"]["payrolls"], matrix["payrolls"]["gdp"], 1e-12)

	// The zero-variance series cannot be correlated; the matrix reports 0
	// rather than failing wholesale.
	assert.Equal(t, 0.0, matrix["flat"]["gdp"])
	assert.Equal(t, 0.0, matrix["gdp"]["flat"])
}

func TestInsufficientDataErrorMessage(t *testing.T) {
	err := error(&InsufficientDataError{Op: "correlation", Needed: 3, Got: 1})
	assert.Equal(t, "correlation needs at least 3 data points, got 1", err.Error())

	var target *InsufficientDataError
	assert.True(t, errors.As(err, &target))
}
