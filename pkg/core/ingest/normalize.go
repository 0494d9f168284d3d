package ingest

import (
	"fmt"
	"sort"
	"time"

	"econgraph/pkg/core/fundamentals"
)

// =============================================================================
// XBRL TAG NORMALIZATION
// Filers report the same economic concept under different us-gaap tags.
// Each normalized concept lists its candidate tags in preference order; the
// first tag with a usable annual fact wins.
// =============================================================================

type conceptMapping struct {
	concept string
	unit    string
	tags    []string
}

var conceptMappings = []conceptMapping{
	{fundamentals.ConceptRevenue, "USD", []string{
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"Revenues",
		"SalesRevenueNet",
	}},
	{fundamentals.ConceptCostOfGoodsSold, "USD", []string{
		"CostOfRevenue",
		"CostOfGoodsAndServicesSold",
		"CostOfGoodsSold",
	}},
	{fundamentals.ConceptGrossProfit, "USD", []string{"GrossProfit"}},
	{fundamentals.ConceptOperatingIncome, "USD", []string{"OperatingIncomeLoss"}},
	{fundamentals.ConceptInterestExpense, "USD", []string{
		"InterestExpense",
		"InterestExpenseDebt",
	}},
	{fundamentals.ConceptNetIncome, "USD", []string{
		"NetIncomeLoss",
		"ProfitLoss",
	}},
	{fundamentals.ConceptDepreciationAmortization, "USD", []string{
		"DepreciationDepletionAndAmortization",
		"DepreciationAndAmortization",
		"DepreciationAmortizationAndAccretionNet",
	}},
	{fundamentals.ConceptEarningsPerShare, "USD/shares", []string{
		"EarningsPerShareDiluted",
		"EarningsPerShareBasic",
	}},

	{fundamentals.ConceptTotalAssets, "USD", []string{"Assets"}},
	{fundamentals.ConceptCurrentAssets, "USD", []string{"AssetsCurrent"}},
	{fundamentals.ConceptCashAndEquivalents, "USD", []string{
		"CashAndCashEquivalentsAtCarryingValue",
		"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	}},
	{fundamentals.ConceptInventory, "USD", []string{"InventoryNet"}},
	{fundamentals.ConceptCurrentLiabilities, "USD", []string{"LiabilitiesCurrent"}},
	{fundamentals.ConceptTotalDebt, "USD", []string{
		"LongTermDebt",
		"LongTermDebtNoncurrent",
		"DebtInstrumentCarryingAmount",
	}},
	{fundamentals.ConceptShareholdersEquity, "USD", []string{
		"StockholdersEquity",
		"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
	}},
	{fundamentals.ConceptAccountsReceivable, "USD", []string{
		"AccountsReceivableNetCurrent",
		"ReceivablesNetCurrent",
	}},
	{fundamentals.ConceptAccountsPayable, "USD", []string{
		"AccountsPayableCurrent",
		"AccountsPayableAndAccruedLiabilitiesCurrent",
	}},

	{fundamentals.ConceptOperatingCashFlow, "USD", []string{
		"NetCashProvidedByUsedInOperatingActivities",
		"NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
	}},
	{fundamentals.ConceptCapitalExpenditures, "USD", []string{
		"PaymentsToAcquirePropertyPlantAndEquipment",
		"PaymentsToAcquireProductiveAssets",
	}},

	{fundamentals.ConceptSharesOutstanding, "shares", []string{
		"CommonStockSharesOutstanding",
		"WeightedAverageNumberOfDilutedSharesOutstanding",
		"WeightedAverageNumberOfSharesOutstandingBasic",
	}},
}

// Normalizer turns raw company facts into per-fiscal-year statements.
type Normalizer struct{}

// NewNormalizer creates a normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// BuildStatements assembles one statement per fiscal year from annual 10-K
// facts, newest first, at most maxYears statements. Derivable concepts
// (gross profit, free cash flow) are filled in when the filer omitted them.
func (n *Normalizer) BuildStatements(ticker string, facts *CompanyFacts, maxYears int) ([]*fundamentals.FinancialStatement, error) {
	gaap := facts.GAAP()
	if len(gaap) == 0 {
		return nil, fmt.Errorf("no us-gaap facts for %s", ticker)
	}

	// 1. Collect annual values per fiscal year, first matching tag wins.
	type yearValue struct {
		value float64
		unit  string
		end   time.Time
	}
	byYear := make(map[int]map[string]yearValue)

	for _, m := range conceptMappings {
		for _, tag := range m.tags {
			tagged, ok := gaap[tag]
			if !ok {
				continue
			}
			for _, fv := range tagged.Units[m.unit] {
				if !isAnnualFact(fv) {
					continue
				}
				year := fv.FY
				if byYear[year] == nil {
					byYear[year] = make(map[string]yearValue)
				}
				// A value from an earlier tag in the preference list stays.
				if _, seen := byYear[year][m.concept]; seen {
					continue
				}
				end, err := time.Parse("2006-01-02", fv.End)
				if err != nil {
					continue
				}
				byYear[year][m.concept] = yearValue{value: fv.Val, unit: m.unit, end: end}
			}
		}
	}

	if len(byYear) == 0 {
		return nil, fmt.Errorf("no annual facts for %s", ticker)
	}

	// 2. Newest years first, capped at maxYears.
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if maxYears > 0 && len(years) > maxYears {
		years = years[:maxYears]
	}

	// 3. Assemble statements and fill derivable gaps.
	statements := make([]*fundamentals.FinancialStatement, 0, len(years))
	for _, year := range years {
		concepts := byYear[year]

		periodEnd := time.Time{}
		for _, v := range concepts {
			if v.end.After(periodEnd) {
				periodEnd = v.end
			}
		}

		stmt := fundamentals.NewStatement(ticker, year, periodEnd, nil)
		for name, v := range concepts {
			stmt.SetConcept(name, v.value, v.unit)
		}
		deriveMissingConcepts(stmt)

		if err := stmt.Validate(); err != nil {
			return nil, fmt.Errorf("normalized statement for %s FY%d: %w", ticker, year, err)
		}
		statements = append(statements, stmt)
	}

	return statements, nil
}

// isAnnualFact keeps full-year observations from annual reports only;
// quarterly facts would corrupt flow concepts like revenue.
func isAnnualFact(fv FactValue) bool {
	return fv.Form == "10-K" && fv.FP == "FY" && fv.FY > 0
}

// deriveMissingConcepts fills concepts the ratio formulas can derive, so a
// statement from a sparse filer still computes the widest ratio set.
func deriveMissingConcepts(s *fundamentals.FinancialStatement) {
	if !s.HasConcept(fundamentals.ConceptGrossProfit) {
		rev, okR := s.Concept(fundamentals.ConceptRevenue)
		cogs, okC := s.Concept(fundamentals.ConceptCostOfGoodsSold)
		if okR && okC {
			s.SetConcept(fundamentals.ConceptGrossProfit, rev-cogs, "USD")
		}
	}
	if !s.HasConcept(fundamentals.ConceptEBITDA) {
		op, okO := s.Concept(fundamentals.ConceptOperatingIncome)
		da, okD := s.Concept(fundamentals.ConceptDepreciationAmortization)
		if okO && okD {
			s.SetConcept(fundamentals.ConceptEBITDA, op+da, "USD")
		}
	}
	if !s.HasConcept(fundamentals.ConceptFreeCashFlow) {
		ocf, okO := s.Concept(fundamentals.ConceptOperatingCashFlow)
		capex, okC := s.Concept(fundamentals.ConceptCapitalExpenditures)
		if okO && okC {
			s.SetConcept(fundamentals.ConceptFreeCashFlow, ocf-capex, "USD")
		}
	}
	if !s.HasConcept(fundamentals.ConceptBookValuePerShare) {
		eq, okE := s.Concept(fundamentals.ConceptShareholdersEquity)
		sh, okS := s.Concept(fundamentals.ConceptSharesOutstanding)
		if okE && okS && sh > 0 {
			s.SetConcept(fundamentals.ConceptBookValuePerShare, eq/sh, "USD/shares")
		}
	}
}
