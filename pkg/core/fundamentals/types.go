// Package fundamentals defines the normalized financial statement model
// consumed by the ratio and analysis engines. Statements arrive from the
// ingestion collaborator with concept names already normalized.
package fundamentals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// NORMALIZED CONCEPT IDENTIFIERS
// The ingestion layer guarantees these exact spellings. Ratio formulas are
// written against this vocabulary only.
// =============================================================================

const (
	// Income statement
	ConceptRevenue                  = "Revenue"
	ConceptCostOfGoodsSold          = "CostOfGoodsSold"
	ConceptGrossProfit              = "GrossProfit"
	ConceptOperatingIncome          = "OperatingIncome"
	ConceptEBITDA                   = "EBITDA"
	ConceptInterestExpense          = "InterestExpense"
	ConceptNetIncome                = "NetIncome"
	ConceptDepreciationAmortization = "DepreciationAmortization"
	ConceptEarningsPerShare         = "EarningsPerShare"

	// Balance sheet
	ConceptTotalAssets        = "TotalAssets"
	ConceptCurrentAssets      = "CurrentAssets"
	ConceptCashAndEquivalents = "CashAndEquivalents"
	ConceptInventory          = "Inventory"
	ConceptCurrentLiabilities = "CurrentLiabilities"
	ConceptTotalDebt          = "TotalDebt"
	ConceptShareholdersEquity = "ShareholdersEquity"
	ConceptAccountsReceivable = "AccountsReceivable"
	ConceptAccountsPayable    = "AccountsPayable"
	ConceptBookValuePerShare  = "BookValuePerShare"

	// Cash flow statement
	ConceptOperatingCashFlow   = "OperatingCashFlow"
	ConceptCapitalExpenditures = "CapitalExpenditures"
	ConceptFreeCashFlow        = "FreeCashFlow"

	// Supplemental
	ConceptSharesOutstanding = "SharesOutstanding"
)

// =============================================================================
// STATEMENT MODEL
// =============================================================================

// FinancialLineItem is a single reported fact from a filing.
// Value is null when the filer omitted the concept for the period.
// Immutable once ingested.
type FinancialLineItem struct {
	ConceptName string              `json:"concept_name"`
	Value       decimal.NullDecimal `json:"value"`
	Unit        string              `json:"unit"`
	PeriodEnd   time.Time           `json:"period_end"`
}

// FinancialStatement is an ordered collection of line items for one
// company/filing/period. Owned by the ingestion pipeline; read-only here.
type FinancialStatement struct {
	CompanyID   uuid.UUID           `json:"company_id"`
	StatementID uuid.UUID           `json:"statement_id"`
	Ticker      string              `json:"ticker"`
	FiscalYear  int                 `json:"fiscal_year"`
	PeriodEnd   time.Time           `json:"period_end"`
	Items       []FinancialLineItem `json:"items"`

	// concept name -> item index, built lazily on first lookup
	index map[string]int
}

// MarketData carries the market inputs valuation ratios need beyond the
// statement itself. Optional: statement-only ratios compute without it.
type MarketData struct {
	Price             float64 `json:"price" validate:"gte=0"`
	SharesOutstanding float64 `json:"shares_outstanding" validate:"gte=0"`
}

// MarketCap is price times shares outstanding.
func (m *MarketData) MarketCap() float64 {
	if m == nil {
		return 0
	}
	return m.Price * m.SharesOutstanding
}
