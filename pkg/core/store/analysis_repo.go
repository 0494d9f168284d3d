package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"econgraph/pkg/core/analysis"
)

// AnalysisRepo stores computed company analyses, upserted by ticker.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS financial_analysis (
//	  ticker TEXT PRIMARY KEY,
//	  industry TEXT,
//	  analysis_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type AnalysisRepo struct{}

// NewAnalysisRepo creates a repository instance.
func NewAnalysisRepo() *AnalysisRepo {
	return &AnalysisRepo{}
}

// Save upserts the analysis for its ticker. A single JSONB blob keeps the
// per-year ratio structure queryable without mirroring it in columns.
func (r *AnalysisRepo) Save(ctx context.Context, a *analysis.CompanyAnalysis) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO financial_analysis (ticker, industry, analysis_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker)
		DO UPDATE SET
			industry = EXCLUDED.industry,
			analysis_json = EXCLUDED.analysis_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, a.Ticker, a.Industry, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save analysis for %s: %w", a.Ticker, err)
	}
	return nil
}

// Load retrieves the stored analysis for a ticker.
func (r *AnalysisRepo) Load(ctx context.Context, ticker string) (*analysis.CompanyAnalysis, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT analysis_json FROM financial_analysis WHERE ticker = $1`

	var jsonData []byte
	if err := pool.QueryRow(ctx, query, ticker).Scan(&jsonData); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no analysis found for ticker %s", ticker)
		}
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	var result analysis.CompanyAnalysis
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis for %s: %w", ticker, err)
	}
	return &result, nil
}
