package ratios

import (
	"econgraph/pkg/core/fundamentals"
)

// =============================================================================
// FORMULA LIBRARY
// Pure, deterministic mapping from a normalized statement (plus optional
// market data and prior-period statement) to ratio values. A missing concept
// or a non-positive denominator yields a nil value, never an error and never
// Inf/NaN. Only an unrecognized ratio name is an error.
// =============================================================================

// Result is one computed ratio. Value nil means "unavailable".
type Result struct {
	RatioName          string   `json:"ratio_name"`
	Value              *float64 `json:"value"`
	NumeratorConcept   string   `json:"numerator_concept,omitempty"`
	DenominatorConcept string   `json:"denominator_concept,omitempty"`
}

// Inputs bundles everything a single computation may draw on.
// Prior is required only by growth ratios and PEG; Market only by
// valuation and yield ratios.
type Inputs struct {
	Statement *fundamentals.FinancialStatement
	Prior     *fundamentals.FinancialStatement
	Market    *fundamentals.MarketData
}

// Library computes named ratios. Stateless and safe for concurrent use.
type Library struct{}

// NewLibrary creates a formula library instance.
func NewLibrary() *Library {
	return &Library{}
}

type formula struct {
	numerator   string
	denominator string
	compute     func(in Inputs) *float64
}

// Compute evaluates one ratio by name.
// Requesting a name outside the library returns *UnknownRatioError.
func (l *Library) Compute(name string, in Inputs) (Result, error) {
	f, ok := formulas[name]
	if !ok {
		return Result{}, &UnknownRatioError{Name: name}
	}
	res := Result{
		RatioName:          name,
		NumeratorConcept:   f.numerator,
		DenominatorConcept: f.denominator,
	}
	if in.Statement != nil {
		res.Value = f.compute(in)
	}
	return res, nil
}

// ComputeAll evaluates every ratio in the library against the same inputs.
func (l *Library) ComputeAll(in Inputs) map[string]Result {
	out := make(map[string]Result, len(formulas))
	for name := range formulas {
		res, _ := l.Compute(name, in)
		out[name] = res
	}
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

func fptr(v float64) *float64 { return &v }

// div returns numerator/denominator, or nil when the denominator is not a
// usable positive base. Division by zero signals "unavailable", not an error.
func div(numerator, denominator float64) *float64 {
	if denominator <= 0 {
		return nil
	}
	return fptr(numerator / denominator)
}

func concept(s *fundamentals.FinancialStatement, name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	return s.Concept(name)
}

// grossProfit uses the reported figure, deriving Revenue-COGS when absent.
func grossProfit(s *fundamentals.FinancialStatement) (float64, bool) {
	if gp, ok := concept(s, fundamentals.ConceptGrossProfit); ok {
		return gp, true
	}
	rev, okR := concept(s, fundamentals.ConceptRevenue)
	cogs, okC := concept(s, fundamentals.ConceptCostOfGoodsSold)
	if okR && okC {
		return rev - cogs, true
	}
	return 0, false
}

// ebitda uses the reported figure, deriving OperatingIncome+D&A when absent.
func ebitda(s *fundamentals.FinancialStatement) (float64, bool) {
	if e, ok := concept(s, fundamentals.ConceptEBITDA); ok {
		return e, true
	}
	op, okO := concept(s, fundamentals.ConceptOperatingIncome)
	da, okD := concept(s, fundamentals.ConceptDepreciationAmortization)
	if okO && okD {
		return op + da, true
	}
	return 0, false
}

// freeCashFlow uses the reported figure, deriving OCF-CapEx when absent.
func freeCashFlow(s *fundamentals.FinancialStatement) (float64, bool) {
	if fcf, ok := concept(s, fundamentals.ConceptFreeCashFlow); ok {
		return fcf, true
	}
	ocf, okO := concept(s, fundamentals.ConceptOperatingCashFlow)
	capex, okC := concept(s, fundamentals.ConceptCapitalExpenditures)
	if okO && okC {
		return ocf - capex, true
	}
	return 0, false
}

func sharesOutstanding(in Inputs) (float64, bool) {
	if sh, ok := concept(in.Statement, fundamentals.ConceptSharesOutstanding); ok && sh > 0 {
		return sh, true
	}
	if in.Market != nil && in.Market.SharesOutstanding > 0 {
		return in.Market.SharesOutstanding, true
	}
	return 0, false
}

func earningsPerShare(in Inputs) (float64, bool) {
	if eps, ok := concept(in.Statement, fundamentals.ConceptEarningsPerShare); ok {
		return eps, true
	}
	ni, okN := concept(in.Statement, fundamentals.ConceptNetIncome)
	sh, okS := sharesOutstanding(in)
	if okN && okS {
		return ni / sh, true
	}
	return 0, false
}

func marketCap(in Inputs) (float64, bool) {
	if in.Market == nil {
		return 0, false
	}
	mc := in.Market.MarketCap()
	return mc, mc > 0
}

// enterpriseValue = market cap + total debt - cash.
func enterpriseValue(in Inputs) (float64, bool) {
	mc, ok := marketCap(in)
	if !ok {
		return 0, false
	}
	debt, okD := concept(in.Statement, fundamentals.ConceptTotalDebt)
	cash, okC := concept(in.Statement, fundamentals.ConceptCashAndEquivalents)
	if !okD || !okC {
		return 0, false
	}
	return mc + debt - cash, true
}

// statementRatio divides two concepts of the current statement.
func statementRatio(num, den string) func(Inputs) *float64 {
	return func(in Inputs) *float64 {
		n, okN := concept(in.Statement, num)
		d, okD := concept(in.Statement, den)
		if !okN || !okD {
			return nil
		}
		return div(n, d)
	}
}

// growthRate computes (current-prior)/prior across two statements.
// Nil when the prior period is absent, either value is missing, or the prior
// value is zero.
func growthRate(read func(*fundamentals.FinancialStatement) (float64, bool)) func(Inputs) *float64 {
	return func(in Inputs) *float64 {
		if in.Prior == nil {
			return nil
		}
		curr, okC := read(in.Statement)
		prior, okP := read(in.Prior)
		if !okC || !okP || prior == 0 {
			return nil
		}
		return fptr((curr - prior) / prior)
	}
}

func readConcept(name string) func(*fundamentals.FinancialStatement) (float64, bool) {
	return func(s *fundamentals.FinancialStatement) (float64, bool) {
		return concept(s, name)
	}
}

// =============================================================================
// THE FORMULAS
// Arithmetic follows the EconGraph ratio model; PEG and the cash conversion
// cycle use the standard textbook definitions.
// =============================================================================

const daysPerYear = 365.0

var formulas = map[string]formula{
	// --- Profitability ---
	"returnOnEquity": {fundamentals.ConceptNetIncome, fundamentals.ConceptShareholdersEquity,
		statementRatio(fundamentals.ConceptNetIncome, fundamentals.ConceptShareholdersEquity)},
	"returnOnAssets": {fundamentals.ConceptNetIncome, fundamentals.ConceptTotalAssets,
		statementRatio(fundamentals.ConceptNetIncome, fundamentals.ConceptTotalAssets)},
	"returnOnInvestedCapital": {fundamentals.ConceptOperatingIncome, "InvestedCapital", func(in Inputs) *float64 {
		op, okO := concept(in.Statement, fundamentals.ConceptOperatingIncome)
		debt, okD := concept(in.Statement, fundamentals.ConceptTotalDebt)
		eq, okE := concept(in.Statement, fundamentals.ConceptShareholdersEquity)
		if !okO || !okD || !okE {
			return nil
		}
		return div(op, debt+eq)
	}},
	"grossProfitMargin": {fundamentals.ConceptGrossProfit, fundamentals.ConceptRevenue, func(in Inputs) *float64 {
		gp, ok := grossProfit(in.Statement)
		rev, okR := concept(in.Statement, fundamentals.ConceptRevenue)
		if !ok || !okR {
			return nil
		}
		return div(gp, rev)
	}},
	"operatingProfitMargin": {fundamentals.ConceptOperatingIncome, fundamentals.ConceptRevenue,
		statementRatio(fundamentals.ConceptOperatingIncome, fundamentals.ConceptRevenue)},
	"netProfitMargin": {fundamentals.ConceptNetIncome, fundamentals.ConceptRevenue,
		statementRatio(fundamentals.ConceptNetIncome, fundamentals.ConceptRevenue)},
	"ebitdaMargin": {fundamentals.ConceptEBITDA, fundamentals.ConceptRevenue, func(in Inputs) *float64 {
		e, ok := ebitda(in.Statement)
		rev, okR := concept(in.Statement, fundamentals.ConceptRevenue)
		if !ok || !okR {
			return nil
		}
		return div(e, rev)
	}},
	"freeCashFlowMargin": {fundamentals.ConceptFreeCashFlow, fundamentals.ConceptRevenue, func(in Inputs) *float64 {
		fcf, ok := freeCashFlow(in.Statement)
		rev, okR := concept(in.Statement, fundamentals.ConceptRevenue)
		if !ok || !okR {
			return nil
		}
		return div(fcf, rev)
	}},

	// --- Liquidity ---
	"currentRatio": {fundamentals.ConceptCurrentAssets, fundamentals.ConceptCurrentLiabilities,
		statementRatio(fundamentals.ConceptCurrentAssets, fundamentals.ConceptCurrentLiabilities)},
	"quickRatio": {"QuickAssets", fundamentals.ConceptCurrentLiabilities, func(in Inputs) *float64 {
		ca, okA := concept(in.Statement, fundamentals.ConceptCurrentAssets)
		inv, okI := concept(in.Statement, fundamentals.ConceptInventory)
		cl, okL := concept(in.Statement, fundamentals.ConceptCurrentLiabilities)
		if !okA || !okI || !okL {
			return nil
		}
		return div(ca-inv, cl)
	}},
	"cashRatio": {fundamentals.ConceptCashAndEquivalents, fundamentals.ConceptCurrentLiabilities,
		statementRatio(fundamentals.ConceptCashAndEquivalents, fundamentals.ConceptCurrentLiabilities)},
	"operatingCashFlowRatio": {fundamentals.ConceptOperatingCashFlow, fundamentals.ConceptCurrentLiabilities,
		statementRatio(fundamentals.ConceptOperatingCashFlow, fundamentals.ConceptCurrentLiabilities)},

	// --- Leverage ---
	"debtToEquity": {fundamentals.ConceptTotalDebt, fundamentals.ConceptShareholdersEquity,
		statementRatio(fundamentals.ConceptTotalDebt, fundamentals.ConceptShareholdersEquity)},
	"debtToAssets": {fundamentals.ConceptTotalDebt, fundamentals.ConceptTotalAssets,
		statementRatio(fundamentals.ConceptTotalDebt, fundamentals.ConceptTotalAssets)},
	"interestCoverage": {fundamentals.ConceptOperatingIncome, fundamentals.ConceptInterestExpense,
		statementRatio(fundamentals.ConceptOperatingIncome, fundamentals.ConceptInterestExpense)},
	"debtServiceCoverage": {fundamentals.ConceptOperatingCashFlow, fundamentals.ConceptTotalDebt,
		statementRatio(fundamentals.ConceptOperatingCashFlow, fundamentals.ConceptTotalDebt)},
	"equityMultiplier": {fundamentals.ConceptTotalAssets, fundamentals.ConceptShareholdersEquity,
		statementRatio(fundamentals.ConceptTotalAssets, fundamentals.ConceptShareholdersEquity)},

	// --- Valuation ---
	"priceToEarnings": {"Price", fundamentals.ConceptEarningsPerShare, func(in Inputs) *float64 {
		if in.Market == nil {
			return nil
		}
		eps, ok := earningsPerShare(in)
		if !ok {
			return nil
		}
		return div(in.Market.Price, eps)
	}},
	"priceToSales": {"MarketCapitalization", fundamentals.ConceptRevenue, func(in Inputs) *float64 {
		mc, ok := marketCap(in)
		rev, okR := concept(in.Statement, fundamentals.ConceptRevenue)
		if !ok || !okR {
			return nil
		}
		return div(mc, rev)
	}},
	"priceToBook": {"Price", fundamentals.ConceptBookValuePerShare, func(in Inputs) *float64 {
		if in.Market == nil {
			return nil
		}
		bvps, ok := concept(in.Statement, fundamentals.ConceptBookValuePerShare)
		if !ok {
			eq, okE := concept(in.Statement, fundamentals.ConceptShareholdersEquity)
			sh, okS := sharesOutstanding(in)
			if !okE || !okS {
				return nil
			}
			bvps = eq / sh
		}
		return div(in.Market.Price, bvps)
	}},
	"pegRatio": {"PriceToEarnings", "EarningsGrowthPercent", func(in Inputs) *float64 {
		if in.Market == nil || in.Prior == nil {
			return nil
		}
		eps, okE := earningsPerShare(in)
		if !okE {
			return nil
		}
		pe := div(in.Market.Price, eps)
		growth := growthRate(readConcept(fundamentals.ConceptNetIncome))(in)
		if pe == nil || growth == nil {
			return nil
		}
		return div(*pe, *growth*100)
	}},
	"enterpriseValueToEbitda": {"EnterpriseValue", fundamentals.ConceptEBITDA, func(in Inputs) *float64 {
		ev, ok := enterpriseValue(in)
		e, okE := ebitda(in.Statement)
		if !ok || !okE {
			return nil
		}
		return div(ev, e)
	}},
	"enterpriseValueToSales": {"EnterpriseValue", fundamentals.ConceptRevenue, func(in Inputs) *float64 {
		ev, ok := enterpriseValue(in)
		rev, okR := concept(in.Statement, fundamentals.ConceptRevenue)
		if !ok || !okR {
			return nil
		}
		return div(ev, rev)
	}},
	"enterpriseValueToFreeCashFlow": {"EnterpriseValue", fundamentals.ConceptFreeCashFlow, func(in Inputs) *float64 {
		ev, ok := enterpriseValue(in)
		fcf, okF := freeCashFlow(in.Statement)
		if !ok || !okF {
			return nil
		}
		return div(ev, fcf)
	}},

	// --- Cash flow ---
	"freeCashFlow": {fundamentals.ConceptOperatingCashFlow, fundamentals.ConceptCapitalExpenditures, func(in Inputs) *float64 {
		fcf, ok := freeCashFlow(in.Statement)
		if !ok {
			return nil
		}
		return fptr(fcf)
	}},
	"freeCashFlowPerShare": {fundamentals.ConceptFreeCashFlow, fundamentals.ConceptSharesOutstanding, func(in Inputs) *float64 {
		fcf, ok := freeCashFlow(in.Statement)
		sh, okS := sharesOutstanding(in)
		if !ok || !okS {
			return nil
		}
		return div(fcf, sh)
	}},
	"freeCashFlowYield": {fundamentals.ConceptFreeCashFlow, "MarketCapitalization", func(in Inputs) *float64 {
		fcf, ok := freeCashFlow(in.Statement)
		mc, okM := marketCap(in)
		if !ok || !okM {
			return nil
		}
		return div(fcf, mc)
	}},
	"cashFlowReturnOnInvestment": {fundamentals.ConceptFreeCashFlow, "InvestedCapital", func(in Inputs) *float64 {
		fcf, ok := freeCashFlow(in.Statement)
		debt, okD := concept(in.Statement, fundamentals.ConceptTotalDebt)
		eq, okE := concept(in.Statement, fundamentals.ConceptShareholdersEquity)
		if !ok || !okD || !okE {
			return nil
		}
		return div(fcf, debt+eq)
	}},
	"cashConversionCycle": {"OperatingCycle", fundamentals.ConceptCostOfGoodsSold, func(in Inputs) *float64 {
		// DSO + DIO - DPO, each over a 365-day year
		rev, okR := concept(in.Statement, fundamentals.ConceptRevenue)
		cogs, okC := concept(in.Statement, fundamentals.ConceptCostOfGoodsSold)
		ar, okAR := concept(in.Statement, fundamentals.ConceptAccountsReceivable)
		inv, okI := concept(in.Statement, fundamentals.ConceptInventory)
		ap, okAP := concept(in.Statement, fundamentals.ConceptAccountsPayable)
		if !okR || !okC || !okAR || !okI || !okAP || rev <= 0 || cogs <= 0 {
			return nil
		}
		dso := ar / rev * daysPerYear
		dio := inv / cogs * daysPerYear
		dpo := ap / cogs * daysPerYear
		return fptr(dso + dio - dpo)
	}},

	// --- Growth (need current and prior period) ---
	"revenueGrowthRate":  {fundamentals.ConceptRevenue, "PriorRevenue", growthRate(readConcept(fundamentals.ConceptRevenue))},
	"earningsGrowthRate": {fundamentals.ConceptNetIncome, "PriorNetIncome", growthRate(readConcept(fundamentals.ConceptNetIncome))},
	"freeCashFlowGrowthRate": {fundamentals.ConceptFreeCashFlow, "PriorFreeCashFlow",
		growthRate(freeCashFlow)},
	"bookValueGrowthRate": {fundamentals.ConceptShareholdersEquity, "PriorShareholdersEquity",
		growthRate(readConcept(fundamentals.ConceptShareholdersEquity))},
}
