package stats

// MovingAverages computes trailing means for each requested window size.
// Each smoothed point carries the date of the last observation in its window.
// Window sizes larger than the series are skipped; a window of zero or less
// is ignored.
func MovingAverages(series []DataPoint, windowSizes []int) (map[int]MovingAverageResult, error) {
	if len(series) == 0 {
		return nil, &InsufficientDataError{Op: "moving averages", Needed: 1, Got: 0}
	}

	results := make(map[int]MovingAverageResult)
	for _, window := range windowSizes {
		if window <= 0 || window > len(series) {
			continue
		}

		smoothed := make([]DataPoint, 0, len(series)-window+1)
		sum := 0.0
		for i, p := range series {
			sum += p.Value
			if i >= window {
				sum -= series[i-window].Value
			}
			if i >= window-1 {
				smoothed = append(smoothed, DataPoint{
					Date:  p.Date,
					Value: sum / float64(window),
				})
			}
		}

		results[window] = MovingAverageResult{
			WindowSize: window,
			Values:     smoothed,
		}
	}
	return results, nil
}
