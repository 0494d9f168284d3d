package stats

import "math"

// minSamplePairs is the floor for Pearson correlation: below three aligned
// pairs the t-test has no degrees of freedom left and the coefficient itself
// is unreliable.
const minSamplePairs = 3

// Correlate computes the Pearson correlation between two series after
// aligning them on shared dates. The p-value is the two-tailed significance
// under the standard t-test with n-2 degrees of freedom.
func Correlate(a, b []DataPoint) (*CorrelationResult, error) {
	x, y := AlignOnDate(a, b)
	n := len(x)
	if n < minSamplePairs {
		return nil, &InsufficientDataError{Op: "correlation", Needed: minSamplePairs, Got: n}
	}

	r, err := pearson(x, y)
	if err != nil {
		return nil, err
	}

	p := correlationPValue(r, n)

	return &CorrelationResult{
		Coefficient:  r,
		PValue:       p,
		Significance: SignificanceLabel(p),
		SampleSize:   n,
	}, nil
}

// pearson computes the correlation coefficient for paired values.
// A zero-variance series makes the coefficient undefined.
func pearson(x, y []float64) (float64, error) {
	xMean := mean(x)
	yMean := mean(y)

	var num, xVar, yVar float64
	for i := range x {
		dx := x[i] - xMean
		dy := y[i] - yMean
		num += dx * dy
		xVar += dx * dx
		yVar += dy * dy
	}

	if xVar == 0 {
		return 0, &UndefinedCorrelationError{Series: "first"}
	}
	if yVar == 0 {
		return 0, &UndefinedCorrelationError{Series: "second"}
	}
	return num / (math.Sqrt(xVar) * math.Sqrt(yVar)), nil
}

// correlationPValue is the two-tailed p-value for a Pearson coefficient r
// over n pairs, via t = r * sqrt((n-2) / (1-r^2)).
func correlationPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if r >= 1 || r <= -1 {
		// |r| of exactly 1 has an infinite t statistic.
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	return 2 * (1 - studentTCDF(math.Abs(t), df))
}

// SignificanceLabel maps a p-value onto the standard reporting bands.
func SignificanceLabel(p float64) string {
	switch {
	case p < 0.001:
		return "Highly significant (p < 0.001)"
	case p < 0.01:
		return "Significant (p < 0.01)"
	case p < 0.05:
		return "Moderately significant (p < 0.05)"
	case p < 0.1:
		return "Marginally significant (p < 0.1)"
	default:
		return "Not significant (p >= 0.1)"
	}
}

// CorrelationMatrix computes pairwise Pearson coefficients for a set of named
// series. The matrix is symmetric with a unit diagonal; pairs whose
// correlation cannot be computed (too few shared dates, zero variance) are
// reported as 0.
func CorrelationMatrix(seriesByName map[string][]DataPoint) map[string]map[string]float64 {
	matrix := make(map[string]map[string]float64, len(seriesByName))
	for name1, s1 := range seriesByName {
		row := make(map[string]float64, len(seriesByName))
		for name2, s2 := range seriesByName {
			if name1 == name2 {
				row[name2] = 1.0
				continue
			}
			result, err := Correlate(s1, s2)
			if err != nil {
				row[name2] = 0.0
				continue
			}
			row[name2] = result.Coefficient
		}
		matrix[name1] = row
	}
	return matrix
}
