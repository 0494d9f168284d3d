package fundamentals

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewStatement builds a statement from normalized line items.
func NewStatement(ticker string, fiscalYear int, periodEnd time.Time, items []FinancialLineItem) *FinancialStatement {
	return &FinancialStatement{
		CompanyID:   uuid.New(),
		StatementID: uuid.New(),
		Ticker:      ticker,
		FiscalYear:  fiscalYear,
		PeriodEnd:   periodEnd,
		Items:       items,
	}
}

func (s *FinancialStatement) buildIndex() {
	s.index = make(map[string]int, len(s.Items))
	for i, item := range s.Items {
		// First occurrence wins; ingestion dedupes per concept anyway.
		if _, seen := s.index[item.ConceptName]; !seen {
			s.index[item.ConceptName] = i
		}
	}
}

// Concept returns the value for a normalized concept name.
// The second return is false when the concept is absent or its value is null.
func (s *FinancialStatement) Concept(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	if s.index == nil {
		s.buildIndex()
	}
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	v := s.Items[i].Value
	if !v.Valid {
		return 0, false
	}
	return v.Decimal.InexactFloat64(), true
}

// HasConcept reports whether a non-null value exists for the concept.
func (s *FinancialStatement) HasConcept(name string) bool {
	_, ok := s.Concept(name)
	return ok
}

// SetConcept appends or replaces a line item. Used by the ingestion layer
// while assembling a statement; callers downstream treat statements as
// read-only.
func (s *FinancialStatement) SetConcept(name string, value float64, unit string) {
	item := FinancialLineItem{
		ConceptName: name,
		Value:       decimal.NewNullDecimal(decimal.NewFromFloat(value)),
		Unit:        unit,
		PeriodEnd:   s.PeriodEnd,
	}
	if s.index == nil {
		s.buildIndex()
	}
	if i, ok := s.index[name]; ok {
		s.Items[i] = item
		return
	}
	s.Items = append(s.Items, item)
	s.index[name] = len(s.Items) - 1
}

// Validate rejects malformed statements at the library boundary so untyped
// upstream data never reaches arithmetic.
func (s *FinancialStatement) Validate() error {
	if s == nil {
		return fmt.Errorf("statement is nil")
	}
	if s.Ticker == "" {
		return fmt.Errorf("statement has no ticker")
	}
	if s.FiscalYear < 1900 || s.FiscalYear > 2200 {
		return fmt.Errorf("statement fiscal year %d out of range", s.FiscalYear)
	}
	for _, item := range s.Items {
		if item.ConceptName == "" {
			return fmt.Errorf("line item with empty concept name in %s FY%d", s.Ticker, s.FiscalYear)
		}
	}
	return nil
}
