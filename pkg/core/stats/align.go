package stats

import (
	"sort"
	"time"
)

const dateKeyLayout = "2006-01-02"

func dateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// AlignOnDate intersects two series on their calendar dates and returns the
// paired values in ascending date order. Dates present in only one series are
// dropped silently: a pair needs both observations to contribute.
func AlignOnDate(a, b []DataPoint) (x, y []float64) {
	bByDate := make(map[string]float64, len(b))
	for _, p := range b {
		bByDate[dateKey(p.Date)] = p.Value
	}

	aligned := make([]DataPoint, 0, len(a))
	for _, p := range a {
		if _, ok := bByDate[dateKey(p.Date)]; ok {
			aligned = append(aligned, p)
		}
	}
	sort.Slice(aligned, func(i, j int) bool { return aligned[i].Date.Before(aligned[j].Date) })

	x = make([]float64, len(aligned))
	y = make([]float64, len(aligned))
	for i, p := range aligned {
		x[i] = p.Value
		y[i] = bByDate[dateKey(p.Date)]
	}
	return x, y
}

func values(series []DataPoint) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Value
	}
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}
