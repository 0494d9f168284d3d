// Package report renders a company analysis as a markdown document, with
// optional HTML conversion for web delivery.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"econgraph/pkg/core/analysis"
	"econgraph/pkg/core/ratios"
)

// categoryOrder fixes the section sequence of the report.
var categoryOrder = []ratios.Category{
	ratios.CategoryProfitability,
	ratios.CategoryLiquidity,
	ratios.CategoryLeverage,
	ratios.CategoryValuation,
	ratios.CategoryCashFlow,
	ratios.CategoryGrowth,
	ratios.CategoryOther,
}

var categoryTitles = map[ratios.Category]string{
	ratios.CategoryProfitability: "Profitability",
	ratios.CategoryLiquidity:     "Liquidity",
	ratios.CategoryLeverage:      "Leverage",
	ratios.CategoryValuation:     "Valuation",
	ratios.CategoryCashFlow:      "Cash Flow",
	ratios.CategoryGrowth:        "Growth",
	ratios.CategoryOther:         "Other",
}

// Markdown renders the latest year of the analysis as a markdown report:
// one table per ratio category, with benchmark standings where available.
func Markdown(a *analysis.CompanyAnalysis) (string, error) {
	latest := a.Latest()
	if latest == nil {
		return "", fmt.Errorf("analysis for %s has no timeline", a.Ticker)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Financial Analysis - FY%d\n\n", a.Ticker, latest.FiscalYear)
	if a.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n\n", a.Industry)
	}
	fmt.Fprintf(&b, "Generated %s from %d fiscal years of statements.\n",
		a.LastAnalyzed.Format("2006-01-02"), len(a.Timeline))

	for _, cat := range categoryOrder {
		names := latest.Categories[cat]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", categoryTitles[cat])
		b.WriteString("| Ratio | Value | Industry Standing |\n")
		b.WriteString("|---|---|---|\n")
		for _, name := range names {
			view := latest.Ratios[name]
			standing := "-"
			if view.Benchmark != nil && view.Benchmark.Available {
				standing = fmt.Sprintf("%s (P%.0f)", view.Benchmark.Label, view.Benchmark.Percentile)
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", displayName(name), view.Formatted, standing)
		}
	}

	if section := growthHistory(a); section != "" {
		b.WriteString(section)
	}

	return b.String(), nil
}

// growthHistory adds a year-over-year revenue growth table when the timeline
// spans more than one year.
func growthHistory(a *analysis.CompanyAnalysis) string {
	if len(a.Timeline) < 2 {
		return ""
	}
	years := make([]int, 0, len(a.Timeline))
	for y := range a.Timeline {
		years = append(years, y)
	}
	sort.Ints(years)

	var b strings.Builder
	b.WriteString("\n## Revenue Growth History\n\n")
	b.WriteString("| Fiscal Year | Growth |\n")
	b.WriteString("|---|---|\n")
	for _, y := range years {
		view := a.Timeline[y].Ratios["revenueGrowthRate"]
		fmt.Fprintf(&b, "| FY%d | %s |\n", y, view.Formatted)
	}
	return b.String()
}

// displayName splits a camelCase ratio name into words for the report.
func displayName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(r - 'a' + 'A')
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HTML converts the markdown report to HTML. Tables need the GFM extension.
func HTML(a *analysis.CompanyAnalysis) ([]byte, error) {
	markdown, err := Markdown(a)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}
	return buf.Bytes(), nil
}
