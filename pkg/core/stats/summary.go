package stats

import (
	"math"
	"sort"
)

// Summarize computes a descriptive summary of one series. Variance and
// standard deviation use the sample (n-1) convention; kurtosis is excess
// kurtosis, so a normal distribution scores 0.
func Summarize(series []DataPoint) (*Summary, error) {
	n := len(series)
	if n == 0 {
		return nil, &InsufficientDataError{Op: "summary", Needed: 1, Got: 0}
	}

	vals := values(series)
	m := mean(vals)

	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	variance := 0.0
	if n > 1 {
		var sumSq float64
		for _, v := range vals {
			d := v - m
			sumSq += d * d
		}
		variance = sumSq / float64(n-1)
	}
	stdDev := math.Sqrt(variance)

	var skewness, kurtosis float64
	if stdDev != 0 {
		var sumCubed, sumFourth float64
		for _, v := range vals {
			z := (v - m) / stdDev
			sumCubed += z * z * z
			sumFourth += z * z * z * z
		}
		skewness = sumCubed / float64(n)
		kurtosis = sumFourth/float64(n) - 3
	}

	return &Summary{
		Count:             n,
		Mean:              m,
		Median:            median,
		StandardDeviation: stdDev,
		Variance:          variance,
		Min:               sorted[0],
		Max:               sorted[n-1],
		Skewness:          skewness,
		Kurtosis:          kurtosis,
	}, nil
}
