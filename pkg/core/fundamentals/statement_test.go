package fundamentals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testStatement() *FinancialStatement {
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	s := NewStatement("ACME", 2023, end, nil)
	s.SetConcept(ConceptRevenue, 1000, "USD")
	s.SetConcept(ConceptNetIncome, 100, "USD")
	return s
}

func TestConceptLookup(t *testing.T) {
	s := testStatement()

	rev, ok := s.Concept(ConceptRevenue)
	if !ok || rev != 1000 {
		t.Errorf("Concept(Revenue) = %v (%v), want 1000", rev, ok)
	}
	if _, ok := s.Concept(ConceptEBITDA); ok {
		t.Error("Concept(EBITDA) found a value that was never set")
	}
	if !s.HasConcept(ConceptNetIncome) || s.HasConcept("NoSuchConcept") {
		t.Error("HasConcept misreports presence")
	}
}

func TestConceptNullValue(t *testing.T) {
	s := testStatement()
	s.Items = append(s.Items, FinancialLineItem{
		ConceptName: ConceptInventory,
		Value:       decimal.NullDecimal{}, // reported tag, null value
		Unit:        "USD",
	})
	// Force a fresh index so the appended item is visible.
	s2 := NewStatement(s.Ticker, s.FiscalYear, s.PeriodEnd, s.Items)

	if _, ok := s2.Concept(ConceptInventory); ok {
		t.Error("null-valued line item should read as absent")
	}
}

func TestSetConceptReplaces(t *testing.T) {
	s := testStatement()
	s.SetConcept(ConceptRevenue, 1200, "USD")

	rev, _ := s.Concept(ConceptRevenue)
	if rev != 1200 {
		t.Errorf("revenue after replace = %v, want 1200", rev)
	}

	// Replacement must not grow the item list.
	count := 0
	for _, item := range s.Items {
		if item.ConceptName == ConceptRevenue {
			count++
		}
	}
	if count != 1 {
		t.Errorf("revenue appears %d times, want 1", count)
	}
}

func TestFirstOccurrenceWins(t *testing.T) {
	items := []FinancialLineItem{
		{ConceptName: ConceptRevenue, Value: decimal.NewNullDecimal(decimal.NewFromInt(500)), Unit: "USD"},
		{ConceptName: ConceptRevenue, Value: decimal.NewNullDecimal(decimal.NewFromInt(999)), Unit: "USD"},
	}
	s := NewStatement("ACME", 2023, time.Time{}, items)

	rev, _ := s.Concept(ConceptRevenue)
	if rev != 500 {
		t.Errorf("duplicate concept resolved to %v, want first occurrence 500", rev)
	}
}

func TestValidate(t *testing.T) {
	if err := testStatement().Validate(); err != nil {
		t.Errorf("valid statement rejected: %v", err)
	}

	var nilStatement *FinancialStatement
	if err := nilStatement.Validate(); err == nil {
		t.Error("nil statement accepted")
	}

	noTicker := testStatement()
	noTicker.Ticker = ""
	if err := noTicker.Validate(); err == nil {
		t.Error("statement without ticker accepted")
	}

	badYear := testStatement()
	badYear.FiscalYear = 1492
	if err := badYear.Validate(); err == nil {
		t.Error("statement with fiscal year 1492 accepted")
	}

	badItem := testStatement()
	badItem.Items = append(badItem.Items, FinancialLineItem{ConceptName: ""})
	if err := badItem.Validate(); err == nil {
		t.Error("statement with unnamed line item accepted")
	}
}

func TestMarketCap(t *testing.T) {
	m := &MarketData{Price: 20, SharesOutstanding: 100}
	if got := m.MarketCap(); got != 2000 {
		t.Errorf("MarketCap() = %v, want 2000", got)
	}
	var nilMarket *MarketData
	if got := nilMarket.MarketCap(); got != 0 {
		t.Errorf("nil MarketCap() = %v, want 0", got)
	}
}
