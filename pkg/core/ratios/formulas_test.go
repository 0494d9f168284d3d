package ratios

import (
	"errors"
	"math"
	"testing"
	"time"

	"econgraph/pkg/core/fundamentals"
)

// =============================================================================
// TEST FIXTURES
// Values mirror a simple, internally consistent company:
// Revenue 1000, NI 100, Equity 1000, Assets 2000, EBITDA 250, FCF 130.
// =============================================================================

func testStatement() *fundamentals.FinancialStatement {
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	s := fundamentals.NewStatement("TEST", 2023, end, nil)
	set := func(name string, v float64) { s.SetConcept(name, v, "USD") }

	set(fundamentals.ConceptRevenue, 1000)
	set(fundamentals.ConceptCostOfGoodsSold, 600)
	set(fundamentals.ConceptGrossProfit, 400)
	set(fundamentals.ConceptOperatingIncome, 200)
	set(fundamentals.ConceptEBITDA, 250)
	set(fundamentals.ConceptInterestExpense, 50)
	set(fundamentals.ConceptNetIncome, 100)
	set(fundamentals.ConceptDepreciationAmortization, 50)
	set(fundamentals.ConceptTotalAssets, 2000)
	set(fundamentals.ConceptCurrentAssets, 500)
	set(fundamentals.ConceptCashAndEquivalents, 100)
	set(fundamentals.ConceptInventory, 200)
	set(fundamentals.ConceptCurrentLiabilities, 300)
	set(fundamentals.ConceptTotalDebt, 500)
	set(fundamentals.ConceptShareholdersEquity, 1000)
	set(fundamentals.ConceptAccountsReceivable, 150)
	set(fundamentals.ConceptAccountsPayable, 100)
	set(fundamentals.ConceptOperatingCashFlow, 180)
	set(fundamentals.ConceptCapitalExpenditures, 50)
	set(fundamentals.ConceptFreeCashFlow, 130)
	set(fundamentals.ConceptSharesOutstanding, 100)
	set(fundamentals.ConceptBookValuePerShare, 10)
	set(fundamentals.ConceptEarningsPerShare, 1)
	return s
}

func testMarket() *fundamentals.MarketData {
	return &fundamentals.MarketData{Price: 20, SharesOutstanding: 100}
}

func mustCompute(t *testing.T, name string, in Inputs) Result {
	t.Helper()
	lib := NewLibrary()
	res, err := lib.Compute(name, in)
	if err != nil {
		t.Fatalf("Compute(%s) returned error: %v", name, err)
	}
	return res
}

func wantValue(t *testing.T, name string, in Inputs, expected float64) {
	t.Helper()
	res := mustCompute(t, name, in)
	if res.Value == nil {
		t.Fatalf("%s: expected %v, got nil", name, expected)
	}
	if math.Abs(*res.Value-expected) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, expected, *res.Value)
	}
}

func wantNil(t *testing.T, name string, in Inputs) {
	t.Helper()
	res := mustCompute(t, name, in)
	if res.Value != nil {
		t.Errorf("%s: expected nil value, got %v", name, *res.Value)
	}
}

// =============================================================================
// TESTS
// =============================================================================

func TestProfitabilityRatios(t *testing.T) {
	in := Inputs{Statement: testStatement()}

	wantValue(t, "returnOnEquity", in, 0.10)           // 100 / 1000
	wantValue(t, "returnOnAssets", in, 0.05)           // 100 / 2000
	wantValue(t, "returnOnInvestedCapital", in, 200.0/1500.0)
	wantValue(t, "grossProfitMargin", in, 0.40)
	wantValue(t, "operatingProfitMargin", in, 0.20)
	wantValue(t, "netProfitMargin", in, 0.10)
	wantValue(t, "ebitdaMargin", in, 0.25)
	wantValue(t, "freeCashFlowMargin", in, 0.13)
}

func TestLiquidityAndLeverageRatios(t *testing.T) {
	in := Inputs{Statement: testStatement()}

	wantValue(t, "currentRatio", in, 500.0/300.0)
	wantValue(t, "quickRatio", in, 300.0/300.0)
	wantValue(t, "cashRatio", in, 100.0/300.0)
	wantValue(t, "operatingCashFlowRatio", in, 180.0/300.0)
	wantValue(t, "debtToEquity", in, 0.5)
	wantValue(t, "debtToAssets", in, 0.25)
	wantValue(t, "interestCoverage", in, 4.0) // 200 / 50
	wantValue(t, "debtServiceCoverage", in, 180.0/500.0)
	wantValue(t, "equityMultiplier", in, 2.0)
}

func TestValuationRatios(t *testing.T) {
	in := Inputs{Statement: testStatement(), Market: testMarket()}

	// Market cap 2000; EV = 2000 + 500 - 100 = 2400
	wantValue(t, "priceToEarnings", in, 20.0)
	wantValue(t, "priceToSales", in, 2.0)
	wantValue(t, "priceToBook", in, 2.0)
	wantValue(t, "enterpriseValueToEbitda", in, 9.6)
	wantValue(t, "enterpriseValueToSales", in, 2.4)
	wantValue(t, "enterpriseValueToFreeCashFlow", in, 2400.0/130.0)

	// Valuation ratios are unavailable without market data.
	noMarket := Inputs{Statement: testStatement()}
	wantNil(t, "priceToEarnings", noMarket)
	wantNil(t, "enterpriseValueToEbitda", noMarket)
}

func TestCashFlowRatios(t *testing.T) {
	in := Inputs{Statement: testStatement(), Market: testMarket()}

	wantValue(t, "freeCashFlow", in, 130)
	wantValue(t, "freeCashFlowPerShare", in, 1.3)
	wantValue(t, "freeCashFlowYield", in, 130.0/2000.0)
	wantValue(t, "cashFlowReturnOnInvestment", in, 130.0/1500.0)

	// CCC = 150/1000*365 + 200/600*365 - 100/600*365
	ccc := 150.0/1000.0*365 + 200.0/600.0*365 - 100.0/600.0*365
	wantValue(t, "cashConversionCycle", in, ccc)
}

func TestFreeCashFlowDerivedFromComponents(t *testing.T) {
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	s := fundamentals.NewStatement("TEST", 2023, end, nil)
	s.SetConcept(fundamentals.ConceptOperatingCashFlow, 180, "USD")
	s.SetConcept(fundamentals.ConceptCapitalExpenditures, 50, "USD")

	wantValue(t, "freeCashFlow", Inputs{Statement: s}, 130)
}

func TestGrowthRatios(t *testing.T) {
	curr := testStatement()
	end := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)
	prior := fundamentals.NewStatement("TEST", 2022, end, nil)
	prior.SetConcept(fundamentals.ConceptRevenue, 800, "USD")
	prior.SetConcept(fundamentals.ConceptNetIncome, 80, "USD")
	prior.SetConcept(fundamentals.ConceptFreeCashFlow, 100, "USD")
	prior.SetConcept(fundamentals.ConceptShareholdersEquity, 900, "USD")

	in := Inputs{Statement: curr, Prior: prior}
	wantValue(t, "revenueGrowthRate", in, 0.25)
	wantValue(t, "earningsGrowthRate", in, 0.25)
	wantValue(t, "freeCashFlowGrowthRate", in, 0.30)
	wantValue(t, "bookValueGrowthRate", in, 100.0/900.0)

	// No prior period -> unavailable, not an error.
	wantNil(t, "revenueGrowthRate", Inputs{Statement: curr})

	// Zero prior value -> unavailable.
	prior.SetConcept(fundamentals.ConceptRevenue, 0, "USD")
	wantNil(t, "revenueGrowthRate", in)
}

func TestPEGRatio(t *testing.T) {
	curr := testStatement()
	end := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)
	prior := fundamentals.NewStatement("TEST", 2022, end, nil)
	prior.SetConcept(fundamentals.ConceptNetIncome, 80, "USD")

	in := Inputs{Statement: curr, Prior: prior, Market: testMarket()}
	// P/E = 20, earnings growth = 25% -> PEG = 20 / 25 = 0.8
	wantValue(t, "pegRatio", in, 0.8)

	// Negative growth -> PEG unavailable.
	prior.SetConcept(fundamentals.ConceptNetIncome, 200, "USD")
	wantNil(t, "pegRatio", in)
}

func TestZeroDenominatorYieldsNilNotInfinity(t *testing.T) {
	s := testStatement()
	s.SetConcept(fundamentals.ConceptEBITDA, 0, "USD")
	s.SetConcept(fundamentals.ConceptShareholdersEquity, 0, "USD")
	in := Inputs{Statement: s, Market: testMarket()}

	wantNil(t, "enterpriseValueToEbitda", in)
	wantNil(t, "returnOnEquity", in)
	wantNil(t, "debtToEquity", in)

	lib := NewLibrary()
	for _, name := range Names() {
		res, err := lib.Compute(name, in)
		if err != nil {
			t.Fatalf("Compute(%s): %v", name, err)
		}
		if res.Value != nil && (math.IsInf(*res.Value, 0) || math.IsNaN(*res.Value)) {
			t.Errorf("%s produced non-finite value %v", name, *res.Value)
		}
	}
}

func TestMissingConceptYieldsNil(t *testing.T) {
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	s := fundamentals.NewStatement("SPARSE", 2023, end, nil)
	s.SetConcept(fundamentals.ConceptNetIncome, 100, "USD")

	wantNil(t, "returnOnEquity", Inputs{Statement: s})
	wantNil(t, "currentRatio", Inputs{Statement: s})
}

func TestUnknownRatioFailsLoudly(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.Compute("bogusRatio", Inputs{Statement: testStatement()})
	if err == nil {
		t.Fatal("expected error for unknown ratio name")
	}
	var unknown *UnknownRatioError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownRatioError, got %T", err)
	}
	if unknown.Name != "bogusRatio" {
		t.Errorf("error should carry the requested name, got %q", unknown.Name)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	lib := NewLibrary()
	in := Inputs{Statement: testStatement(), Market: testMarket()}

	first, _ := lib.Compute("returnOnEquity", in)
	second, _ := lib.Compute("returnOnEquity", in)
	if *first.Value != *second.Value {
		t.Errorf("repeated computation differs: %v vs %v", *first.Value, *second.Value)
	}
}

func TestComputeAllCoversLibrary(t *testing.T) {
	lib := NewLibrary()
	out := lib.ComputeAll(Inputs{Statement: testStatement(), Market: testMarket()})
	if len(out) != len(Names()) {
		t.Fatalf("ComputeAll returned %d results, want %d", len(out), len(Names()))
	}
	for name, res := range out {
		if res.RatioName != name {
			t.Errorf("result keyed %s carries name %s", name, res.RatioName)
		}
	}
}
