// Package benchmark ranks a company's ratio value against an industry
// distribution described by five quantile anchors.
package benchmark

import "fmt"

// Distribution holds the five known quantile points for one ratio within one
// industry. Supplied by the benchmark collaborator (database or resource
// tables); absence is an expected condition, not an error.
type Distribution struct {
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// Validate rejects distributions whose anchors are out of order.
func (d *Distribution) Validate() error {
	if d == nil {
		return fmt.Errorf("distribution is nil")
	}
	if d.P10 > d.P25 || d.P25 > d.Median || d.Median > d.P75 || d.P75 > d.P90 {
		return fmt.Errorf("distribution anchors not monotonic: %+v", *d)
	}
	return nil
}

// Ranking is a computed percentile standing. Available is false when no
// distribution was supplied; callers render that as "unavailable" rather
// than treating it as a zero percentile.
type Ranking struct {
	Percentile float64 `json:"percentile"`
	Label      string  `json:"label"`
	Available  bool    `json:"available"`
}

// Unavailable is the sentinel returned when no distribution exists.
func Unavailable() Ranking {
	return Ranking{Label: "No benchmark data", Available: false}
}

// Compare ranks a company value against the distribution.
// Percentile is piecewise-linear through the five anchors; values below P10
// rank 0 and values above P90 rank 100. The anchors themselves map exactly
// to 10/25/50/75/90.
func Compare(value float64, dist *Distribution) Ranking {
	if dist == nil {
		return Unavailable()
	}
	p := percentileOf(value, dist)
	return Ranking{
		Percentile: p,
		Label:      labelFor(p),
		Available:  true,
	}
}

var anchors = []float64{10, 25, 50, 75, 90}

func percentileOf(value float64, d *Distribution) float64 {
	points := []float64{d.P10, d.P25, d.Median, d.P75, d.P90}

	if value < points[0] {
		return 0
	}
	if value > points[len(points)-1] {
		return 100
	}
	for i := 0; i < len(points)-1; i++ {
		lo, hi := points[i], points[i+1]
		if value < lo || value > hi {
			continue
		}
		if hi == lo {
			// Degenerate segment: every value in it sits at the lower anchor.
			return anchors[i]
		}
		frac := (value - lo) / (hi - lo)
		return anchors[i] + frac*(anchors[i+1]-anchors[i])
	}
	return 100
}

func labelFor(p float64) string {
	switch {
	case p >= 90:
		return "Top 10%"
	case p >= 75:
		return "Top 25%"
	case p >= 50:
		return "Above Median"
	case p >= 25:
		return "Below Median"
	default:
		return "Bottom 25%"
	}
}
