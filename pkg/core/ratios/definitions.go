// Package ratios computes named financial ratios from normalized statements
// and classifies and formats them for presentation.
package ratios

// =============================================================================
// RATIO METADATA
// One static table is the single source of truth for category, format and
// direction. Categorization and formatting both read it; nothing else
// pattern-matches on ratio names.
// =============================================================================

// Category groups ratios for presentation.
type Category string

const (
	CategoryProfitability Category = "profitability"
	CategoryLiquidity     Category = "liquidity"
	CategoryLeverage      Category = "leverage"
	CategoryValuation     Category = "valuation"
	CategoryCashFlow      Category = "cash_flow"
	CategoryGrowth        Category = "growth"
	CategoryOther         Category = "other"
)

// FormatHint selects the display rendering for a ratio value.
type FormatHint string

const (
	FormatPercent  FormatHint = "percent"  // value*100, 1 decimal, "%"
	FormatMultiple FormatHint = "multiple" // 1 decimal, "x"
	FormatCurrency FormatHint = "currency" // en-US, "$", no cents
	FormatDecimal  FormatHint = "decimal"  // 2 decimals
)

// GoodDirection states which way a ratio should move for a healthier company.
type GoodDirection string

const (
	HigherIsBetter GoodDirection = "higher_is_better"
	LowerIsBetter  GoodDirection = "lower_is_better"
)

// Threshold carries optional good/warning cutoffs for UI badging.
type Threshold struct {
	Good    float64 `json:"good"`
	Warning float64 `json:"warning"`
}

// Definition is the static metadata record for one ratio.
type Definition struct {
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	FormatHint    FormatHint    `json:"format_hint"`
	GoodDirection GoodDirection `json:"good_direction"`
	Threshold     *Threshold    `json:"threshold,omitempty"`
}

var definitions = map[string]Definition{
	// Profitability
	"returnOnEquity":          {"returnOnEquity", CategoryProfitability, FormatPercent, HigherIsBetter, &Threshold{Good: 0.15, Warning: 0.05}},
	"returnOnAssets":          {"returnOnAssets", CategoryProfitability, FormatPercent, HigherIsBetter, nil},
	"returnOnInvestedCapital": {"returnOnInvestedCapital", CategoryProfitability, FormatPercent, HigherIsBetter, nil},
	"grossProfitMargin":       {"grossProfitMargin", CategoryProfitability, FormatPercent, HigherIsBetter, nil},
	"operatingProfitMargin":   {"operatingProfitMargin", CategoryProfitability, FormatPercent, HigherIsBetter, nil},
	"netProfitMargin":         {"netProfitMargin", CategoryProfitability, FormatPercent, HigherIsBetter, nil},
	"ebitdaMargin":            {"ebitdaMargin", CategoryProfitability, FormatPercent, HigherIsBetter, nil},
	"freeCashFlowMargin":      {"freeCashFlowMargin", CategoryProfitability, FormatPercent, HigherIsBetter, nil},

	// Liquidity
	"currentRatio":           {"currentRatio", CategoryLiquidity, FormatDecimal, HigherIsBetter, &Threshold{Good: 1.5, Warning: 1.0}},
	"quickRatio":             {"quickRatio", CategoryLiquidity, FormatDecimal, HigherIsBetter, &Threshold{Good: 1.0, Warning: 0.5}},
	"cashRatio":              {"cashRatio", CategoryLiquidity, FormatDecimal, HigherIsBetter, nil},
	"operatingCashFlowRatio": {"operatingCashFlowRatio", CategoryLiquidity, FormatDecimal, HigherIsBetter, nil},

	// Leverage
	"debtToEquity":        {"debtToEquity", CategoryLeverage, FormatDecimal, LowerIsBetter, &Threshold{Good: 1.0, Warning: 2.0}},
	"debtToAssets":        {"debtToAssets", CategoryLeverage, FormatDecimal, LowerIsBetter, nil},
	"interestCoverage":    {"interestCoverage", CategoryLeverage, FormatDecimal, HigherIsBetter, &Threshold{Good: 3.0, Warning: 1.5}},
	"debtServiceCoverage": {"debtServiceCoverage", CategoryLeverage, FormatDecimal, HigherIsBetter, nil},
	"equityMultiplier":    {"equityMultiplier", CategoryLeverage, FormatDecimal, LowerIsBetter, nil},

	// Valuation
	"priceToEarnings":               {"priceToEarnings", CategoryValuation, FormatMultiple, LowerIsBetter, nil},
	"priceToSales":                  {"priceToSales", CategoryValuation, FormatMultiple, LowerIsBetter, nil},
	"priceToBook":                   {"priceToBook", CategoryValuation, FormatMultiple, LowerIsBetter, nil},
	"pegRatio":                      {"pegRatio", CategoryValuation, FormatDecimal, LowerIsBetter, nil},
	"enterpriseValueToEbitda":       {"enterpriseValueToEbitda", CategoryValuation, FormatMultiple, LowerIsBetter, nil},
	"enterpriseValueToSales":        {"enterpriseValueToSales", CategoryValuation, FormatMultiple, LowerIsBetter, nil},
	"enterpriseValueToFreeCashFlow": {"enterpriseValueToFreeCashFlow", CategoryValuation, FormatMultiple, LowerIsBetter, nil},

	// Cash flow
	"freeCashFlow":               {"freeCashFlow", CategoryCashFlow, FormatCurrency, HigherIsBetter, nil},
	"freeCashFlowPerShare":       {"freeCashFlowPerShare", CategoryCashFlow, FormatCurrency, HigherIsBetter, nil},
	"freeCashFlowYield":          {"freeCashFlowYield", CategoryCashFlow, FormatPercent, HigherIsBetter, nil},
	"cashFlowReturnOnInvestment": {"cashFlowReturnOnInvestment", CategoryCashFlow, FormatPercent, HigherIsBetter, nil},
	"cashConversionCycle":        {"cashConversionCycle", CategoryCashFlow, FormatDecimal, LowerIsBetter, nil},

	// Growth
	"revenueGrowthRate":      {"revenueGrowthRate", CategoryGrowth, FormatPercent, HigherIsBetter, nil},
	"earningsGrowthRate":     {"earningsGrowthRate", CategoryGrowth, FormatPercent, HigherIsBetter, nil},
	"freeCashFlowGrowthRate": {"freeCashFlowGrowthRate", CategoryGrowth, FormatPercent, HigherIsBetter, nil},
	"bookValueGrowthRate":    {"bookValueGrowthRate", CategoryGrowth, FormatPercent, HigherIsBetter, nil},
}

// Lookup returns the static definition for a ratio name.
func Lookup(name string) (Definition, bool) {
	def, ok := definitions[name]
	return def, ok
}

// Categorize maps a ratio name to its category. Unrecognized names group
// under CategoryOther so UI grouping never fails on a new ratio.
func Categorize(name string) Category {
	if def, ok := definitions[name]; ok {
		return def.Category
	}
	return CategoryOther
}

// Names returns all ratio names in the library, in no particular order.
func Names() []string {
	out := make([]string, 0, len(definitions))
	for name := range definitions {
		out = append(out, name)
	}
	return out
}
