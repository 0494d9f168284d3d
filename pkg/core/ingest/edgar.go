// Package ingest fetches company financial facts from SEC EDGAR and
// normalizes them into the statement model the ratio engine consumes.
// API Documentation: https://www.sec.gov/developer
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// SEC EDGAR API endpoints
	SECCompanyFactsURL = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	SECTickerMapURL    = "https://www.sec.gov/files/company_tickers.json"
	SECArchivesURL     = "https://www.sec.gov/Archives/edgar/data/%s/%s"

	// Required User-Agent per SEC guidelines
	UserAgent = "EconGraph/1.0 (contact@econgraph.dev)"
)

// =============================================================================
// SEC XBRL COMPANY FACTS TYPES
// =============================================================================

// CompanyFacts is the top-level companyfacts API response: every XBRL fact
// the company has reported, grouped by taxonomy and tag.
type CompanyFacts struct {
	CIK        int                              `json:"cik"`
	EntityName string                           `json:"entityName"`
	Facts      map[string]map[string]TaggedFact `json:"facts"` // taxonomy -> tag -> fact
}

// TaggedFact holds every reported value for one XBRL tag, keyed by unit.
type TaggedFact struct {
	Label       string                 `json:"label"`
	Description string                 `json:"description"`
	Units       map[string][]FactValue `json:"units"` // "USD", "shares", ...
}

// FactValue is one reported observation of a tag.
type FactValue struct {
	Start string  `json:"start,omitempty"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"` // "FY", "Q1".."Q4"
	Form  string  `json:"form"`
	Filed string  `json:"filed"`
	Frame string  `json:"frame,omitempty"`
}

// GAAP returns the us-gaap facts, the taxonomy all ratio concepts map from.
func (f *CompanyFacts) GAAP() map[string]TaggedFact {
	return f.Facts["us-gaap"]
}

// =============================================================================
// SEC EDGAR CLIENT
// =============================================================================

// EDGARClient handles SEC EDGAR API requests.
type EDGARClient struct {
	httpClient *http.Client
}

// NewEDGARClient creates a new SEC EDGAR API client.
func NewEDGARClient() *EDGARClient {
	return &EDGARClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchCompanyFacts retrieves every reported XBRL fact for a company.
//
// CIK should be zero-padded to 10 digits (e.g., "0000320193" for Apple).
// If not padded, this function pads it automatically.
func (c *EDGARClient) FetchCompanyFacts(cik string) (*CompanyFacts, error) {
	cik = fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))

	url := fmt.Sprintf(SECCompanyFactsURL, cik)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// SEC requires User-Agent header
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var facts CompanyFacts
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse SEC response: %w", err)
	}

	return &facts, nil
}

// LookupCIKByTicker finds the CIK for a given ticker symbol using the SEC's
// ticker mapping file.
func (c *EDGARClient) LookupCIKByTicker(ticker string) (string, error) {
	req, err := http.NewRequest("GET", SECTickerMapURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SEC ticker API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ticker mapping: %w", err)
	}

	// Response structure: { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "..."}, ... }
	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &mapping); err != nil {
		return "", fmt.Errorf("failed to parse ticker mapping: %w", err)
	}

	ticker = strings.ToUpper(ticker)
	for _, entry := range mapping {
		if entry.Ticker == ticker {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}

	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}

// FetchFactsByTicker resolves a ticker to its CIK and fetches company facts.
func (c *EDGARClient) FetchFactsByTicker(ticker string) (*CompanyFacts, error) {
	cik, err := c.LookupCIKByTicker(ticker)
	if err != nil {
		return nil, err
	}
	return c.FetchCompanyFacts(cik)
}
