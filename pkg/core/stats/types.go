// Package stats implements the statistical engine for economic and financial
// time series: Pearson correlation with significance testing, linear
// regression, trend analysis, moving averages, and descriptive summaries.
package stats

import "time"

// DataPoint is one dated observation in a series.
type DataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// CorrelationResult holds a Pearson coefficient with its two-tailed
// significance under the standard t-test (n-2 degrees of freedom).
type CorrelationResult struct {
	Coefficient  float64 `json:"correlationCoefficient"`
	PValue       float64 `json:"pValue"`
	Significance string  `json:"significance"`
	SampleSize   int     `json:"sampleSize"`
}

// RegressionResult holds an ordinary-least-squares fit of y on x.
type RegressionResult struct {
	Slope           float64   `json:"slope"`
	Intercept       float64   `json:"intercept"`
	RSquared        float64   `json:"rSquared"`
	StandardError   float64   `json:"standardError"`
	PredictedValues []float64 `json:"predictedValues"`
	Residuals       []float64 `json:"residuals"`
	SampleSize      int       `json:"sampleSize"`
}

// Trend directions reported by AnalyzeTrend.
const (
	TrendUpward   = "upward"
	TrendDownward = "downward"
	TrendSideways = "sideways"
)

// TrendResult describes the directional movement of a single series.
// Strength is the slope magnitude relative to the largest absolute value in
// the series, capped at 1. Volatility is the standard deviation of
// period-over-period changes.
type TrendResult struct {
	Direction     string  `json:"trendDirection"`
	Strength      float64 `json:"trendStrength"`
	Slope         float64 `json:"slope"`
	AverageChange float64 `json:"averageChange"`
	Volatility    float64 `json:"volatility"`
}

// MovingAverageResult holds the trailing means for one window size. Each
// smoothed point is stamped with the date of the last observation in its
// window.
type MovingAverageResult struct {
	WindowSize int         `json:"windowSize"`
	Values     []DataPoint `json:"values"`
}

// Summary is a descriptive overview of one series. Variance and standard
// deviation are the sample (n-1) statistics; kurtosis is excess kurtosis.
type Summary struct {
	Count             int     `json:"count"`
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standardDeviation"`
	Variance          float64 `json:"variance"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Skewness          float64 `json:"skewness"`
	Kurtosis          float64 `json:"kurtosis"`
}
