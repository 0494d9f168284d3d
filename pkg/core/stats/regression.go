package stats

import "math"

// LinearRegression fits y on x by ordinary least squares after aligning the
// two series on shared dates. Zero variance in x makes the slope undefined.
func LinearRegression(xSeries, ySeries []DataPoint) (*RegressionResult, error) {
	x, y := AlignOnDate(xSeries, ySeries)
	n := len(x)
	if n < minSamplePairs {
		return nil, &InsufficientDataError{Op: "regression", Needed: minSamplePairs, Got: n}
	}
	return fitLeastSquares(x, y)
}

func fitLeastSquares(x, y []float64) (*RegressionResult, error) {
	n := float64(len(x))
	xMean := mean(x)
	yMean := mean(y)

	var num, den float64
	for i := range x {
		dx := x[i] - xMean
		num += dx * (y[i] - yMean)
		den += dx * dx
	}
	if den == 0 {
		return nil, &UndefinedCorrelationError{Series: "x"}
	}

	slope := num / den
	intercept := yMean - slope*xMean

	predicted := make([]float64, len(x))
	residuals := make([]float64, len(x))
	var ssRes, ssTot float64
	for i := range x {
		predicted[i] = slope*x[i] + intercept
		residuals[i] = y[i] - predicted[i]
		ssRes += residuals[i] * residuals[i]
		dy := y[i] - yMean
		ssTot += dy * dy
	}

	rSquared := 1.0
	if ssTot != 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return &RegressionResult{
		Slope:           slope,
		Intercept:       intercept,
		RSquared:        rSquared,
		StandardError:   math.Sqrt(ssRes / (n - 2)),
		PredictedValues: predicted,
		Residuals:       residuals,
		SampleSize:      len(x),
	}, nil
}
