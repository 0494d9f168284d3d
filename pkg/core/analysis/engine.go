// Package analysis orchestrates ratio computation across a company's
// statement timeline: per-year ratio sets with growth rates, display
// formatting, category grouping, and industry benchmark rankings.
package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"econgraph/pkg/core/benchmark"
	"econgraph/pkg/core/fundamentals"
	"econgraph/pkg/core/ratios"
)

// Engine computes company analyses. Benchmarks are optional; without them
// every ranking comes back unavailable rather than failing the analysis.
type Engine struct {
	library    *ratios.Library
	benchmarks map[string]*benchmark.IndustrySet // key: lower-cased industry
}

// NewEngine creates an analysis engine. benchmarks may be nil.
func NewEngine(benchmarks map[string]*benchmark.IndustrySet) *Engine {
	return &Engine{
		library:    ratios.NewLibrary(),
		benchmarks: benchmarks,
	}
}

// Analyze runs the full ratio suite over the statements, oldest to newest.
// Growth ratios for each year read the immediately preceding statement.
// Market data applies only to the most recent year; pricing historical
// statements with today's quote would distort every valuation ratio.
func (e *Engine) Analyze(ticker, industry string, statements []*fundamentals.FinancialStatement, market *fundamentals.MarketData) (*CompanyAnalysis, error) {
	if len(statements) == 0 {
		return nil, fmt.Errorf("no statements provided for %s", ticker)
	}
	for _, s := range statements {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid statement for %s: %w", ticker, err)
		}
	}

	ordered := make([]*fundamentals.FinancialStatement, len(statements))
	copy(ordered, statements)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].FiscalYear < ordered[j].FiscalYear })

	result := &CompanyAnalysis{
		Ticker:       ticker,
		Industry:     industry,
		LastAnalyzed: time.Now().UTC(),
		Timeline:     make(map[int]*YearlyAnalysis, len(ordered)),
	}

	industrySet := e.benchmarks[strings.ToLower(industry)]

	for i, stmt := range ordered {
		in := ratios.Inputs{Statement: stmt}
		if i > 0 {
			in.Prior = ordered[i-1]
		}
		if i == len(ordered)-1 {
			in.Market = market
		}

		yearly := &YearlyAnalysis{
			FiscalYear: stmt.FiscalYear,
			PeriodEnd:  stmt.PeriodEnd,
			Ratios:     make(map[string]RatioView),
			Categories: make(map[ratios.Category][]string),
		}

		for name, res := range e.library.ComputeAll(in) {
			def, _ := ratios.Lookup(name)
			view := RatioView{
				RatioName:     name,
				Value:         res.Value,
				Formatted:     ratios.FormatValue(res.Value, name),
				Category:      def.Category,
				GoodDirection: def.GoodDirection,
			}
			if res.Value != nil {
				if dist := industrySet.Lookup(name); dist != nil {
					ranking := benchmark.Compare(*res.Value, dist)
					view.Benchmark = &ranking
				}
			}
			yearly.Ratios[name] = view
			yearly.Categories[def.Category] = append(yearly.Categories[def.Category], name)
		}
		for _, names := range yearly.Categories {
			sort.Strings(names)
		}

		result.Timeline[stmt.FiscalYear] = yearly
	}

	return result, nil
}
