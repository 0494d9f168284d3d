package stats

import "math"

// slopeThreshold separates a real directional trend from sideways drift.
const slopeThreshold = 0.01

// AnalyzeTrend fits a linear trend over the observation index and describes
// the series' directional movement.
func AnalyzeTrend(series []DataPoint) (*TrendResult, error) {
	if len(series) < minSamplePairs {
		return nil, &InsufficientDataError{Op: "trend analysis", Needed: minSamplePairs, Got: len(series)}
	}

	vals := values(series)
	n := float64(len(vals))

	// 1. Slope of value over time index.
	xMean := (n - 1) / 2
	yMean := mean(vals)
	var num, den float64
	for i, v := range vals {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	slope := num / den

	// 2. Direction and strength. Strength scales the slope by the largest
	// absolute value in the series, capped at 1.
	direction := TrendSideways
	if slope > slopeThreshold {
		direction = TrendUpward
	} else if slope < -slopeThreshold {
		direction = TrendDownward
	}

	maxAbs := 0.0
	for _, v := range vals {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	strength := 0.0
	if maxAbs > 0 {
		strength = math.Min(math.Abs(slope)/maxAbs, 1.0)
	}

	// 3. Period-over-period changes and their dispersion.
	changes := make([]float64, 0, len(vals)-1)
	for i := 1; i < len(vals); i++ {
		changes = append(changes, vals[i]-vals[i-1])
	}
	avgChange := mean(changes)
	var sumSq float64
	for _, c := range changes {
		d := c - avgChange
		sumSq += d * d
	}
	volatility := math.Sqrt(sumSq / float64(len(changes)))

	return &TrendResult{
		Direction:     direction,
		Strength:      strength,
		Slope:         slope,
		AverageChange: avgChange,
		Volatility:    volatility,
	}, nil
}
