package ingest

import (
	"testing"

	"econgraph/pkg/core/fundamentals"
)

func annual(year int, end string, val float64) FactValue {
	return FactValue{End: end, Val: val, FY: year, FP: "FY", Form: "10-K"}
}

func testFacts() *CompanyFacts {
	return &CompanyFacts{
		CIK:        320193,
		EntityName: "Acme Corp",
		Facts: map[string]map[string]TaggedFact{
			"us-gaap": {
				"RevenueFromContractWithCustomerExcludingAssessedTax": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 1000),
						annual(2022, "2022-12-31", 800),
						// Quarterly fact must be ignored.
						{End: "2023-06-30", Val: 240, FY: 2023, FP: "Q2", Form: "10-Q"},
					}},
				},
				// Lower-preference revenue tag carrying a different number;
				// the contract-revenue tag above must win.
				"Revenues": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 999),
					}},
				},
				"CostOfRevenue": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 600),
						annual(2022, "2022-12-31", 500),
					}},
				},
				"NetIncomeLoss": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 100),
						annual(2022, "2022-12-31", 70),
					}},
				},
				"Assets": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 2000),
					}},
				},
				"StockholdersEquity": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 900),
					}},
				},
				"NetCashProvidedByUsedInOperatingActivities": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 180),
					}},
				},
				"PaymentsToAcquirePropertyPlantAndEquipment": {
					Units: map[string][]FactValue{"USD": {
						annual(2023, "2023-12-30", 60),
					}},
				},
				"CommonStockSharesOutstanding": {
					Units: map[string][]FactValue{"shares": {
						annual(2023, "2023-12-30", 90),
					}},
				},
			},
		},
	}
}

func TestBuildStatements(t *testing.T) {
	n := NewNormalizer()
	statements, err := n.BuildStatements("ACME", testFacts(), 0)
	if err != nil {
		t.Fatalf("BuildStatements failed: %v", err)
	}
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}

	// Newest first.
	if statements[0].FiscalYear != 2023 || statements[1].FiscalYear != 2022 {
		t.Errorf("statement order = %d, %d; want 2023, 2022", statements[0].FiscalYear, statements[1].FiscalYear)
	}

	latest := statements[0]
	if latest.Ticker != "ACME" {
		t.Errorf("ticker = %q, want ACME", latest.Ticker)
	}

	// Preferred tag wins over the fallback Revenues value of 999.
	rev, ok := latest.Concept(fundamentals.ConceptRevenue)
	if !ok || rev != 1000 {
		t.Errorf("revenue = %v (%v), want 1000", rev, ok)
	}

	// Quarterly facts never leak into annual statements.
	if rev2022, _ := statements[1].Concept(fundamentals.ConceptRevenue); rev2022 != 800 {
		t.Errorf("FY2022 revenue = %v, want 800", rev2022)
	}
}

func TestBuildStatementsDerivesConcepts(t *testing.T) {
	n := NewNormalizer()
	statements, err := n.BuildStatements("ACME", testFacts(), 1)
	if err != nil {
		t.Fatalf("BuildStatements failed: %v", err)
	}
	if len(statements) != 1 {
		t.Fatalf("got %d statements, want 1 (maxYears=1)", len(statements))
	}
	latest := statements[0]

	// GrossProfit = 1000 - 600, FreeCashFlow = 180 - 60, BVPS = 900 / 90.
	if gp, ok := latest.Concept(fundamentals.ConceptGrossProfit); !ok || gp != 400 {
		t.Errorf("derived gross profit = %v (%v), want 400", gp, ok)
	}
	if fcf, ok := latest.Concept(fundamentals.ConceptFreeCashFlow); !ok || fcf != 120 {
		t.Errorf("derived free cash flow = %v (%v), want 120", fcf, ok)
	}
	if bvps, ok := latest.Concept(fundamentals.ConceptBookValuePerShare); !ok || bvps != 10 {
		t.Errorf("derived book value per share = %v (%v), want 10", bvps, ok)
	}

	// EBITDA needs operating income, which this filer omits.
	if _, ok := latest.Concept(fundamentals.ConceptEBITDA); ok {
		t.Error("EBITDA derived without operating income")
	}
}

func TestBuildStatementsNoGAAPFacts(t *testing.T) {
	n := NewNormalizer()
	facts := &CompanyFacts{Facts: map[string]map[string]TaggedFact{}}
	if _, err := n.BuildStatements("ACME", facts, 0); err == nil {
		t.Error("expected error for empty facts")
	}
}

func TestBuildStatementsPeriodEnd(t *testing.T) {
	n := NewNormalizer()
	statements, err := n.BuildStatements("ACME", testFacts(), 1)
	if err != nil {
		t.Fatalf("BuildStatements failed: %v", err)
	}
	// 52/53-week filers end near but not on Dec 31.
	if got := statements[0].PeriodEnd.Format("2006-01-02"); got != "2023-12-30" {
		t.Errorf("period end = %s, want 2023-12-30", got)
	}
}
