package analysis

import (
	"time"

	"econgraph/pkg/core/benchmark"
	"econgraph/pkg/core/ratios"
)

// CompanyAnalysis is the complete ratio profile for one company across its
// statement timeline.
type CompanyAnalysis struct {
	Ticker       string                  `json:"ticker"`
	Industry     string                  `json:"industry,omitempty"`
	LastAnalyzed time.Time               `json:"last_analyzed"`
	Timeline     map[int]*YearlyAnalysis `json:"timeline"` // key: fiscal year
}

// YearlyAnalysis holds every computed ratio for one fiscal year, plus a
// category index for grouped presentation.
type YearlyAnalysis struct {
	FiscalYear int                          `json:"fiscal_year"`
	PeriodEnd  time.Time                    `json:"period_end"`
	Ratios     map[string]RatioView         `json:"ratios"`
	Categories map[ratios.Category][]string `json:"categories"`
}

// RatioView is one ratio prepared for presentation: the raw value, its
// display string, classification metadata, and the industry standing when a
// benchmark distribution exists.
type RatioView struct {
	RatioName     string               `json:"ratio_name"`
	Value         *float64             `json:"value"`
	Formatted     string               `json:"formatted"`
	Category      ratios.Category      `json:"category"`
	GoodDirection ratios.GoodDirection `json:"good_direction"`
	Benchmark     *benchmark.Ranking   `json:"benchmark,omitempty"`
}

// LatestYear returns the most recent fiscal year in the timeline, or 0 when
// the timeline is empty.
func (a *CompanyAnalysis) LatestYear() int {
	latest := 0
	for year := range a.Timeline {
		if year > latest {
			latest = year
		}
	}
	return latest
}

// Latest returns the most recent year's analysis, or nil.
func (a *CompanyAnalysis) Latest() *YearlyAnalysis {
	return a.Timeline[a.LatestYear()]
}
