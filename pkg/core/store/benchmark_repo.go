package store

import (
	"context"
	"fmt"
	"strings"

	"econgraph/pkg/core/benchmark"
)

// BenchmarkRepo reads and writes industry benchmark distributions.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS benchmark_distributions (
//	  industry TEXT NOT NULL,
//	  ratio_name TEXT NOT NULL,
//	  p10 DOUBLE PRECISION NOT NULL,
//	  p25 DOUBLE PRECISION NOT NULL,
//	  median DOUBLE PRECISION NOT NULL,
//	  p75 DOUBLE PRECISION NOT NULL,
//	  p90 DOUBLE PRECISION NOT NULL,
//	  PRIMARY KEY (industry, ratio_name)
//	);
type BenchmarkRepo struct{}

// NewBenchmarkRepo creates a repository instance.
func NewBenchmarkRepo() *BenchmarkRepo {
	return &BenchmarkRepo{}
}

// LoadIndustry reads every distribution for one industry. An industry with
// no rows returns an empty set, not an error; missing benchmarks are an
// expected condition downstream.
func (r *BenchmarkRepo) LoadIndustry(ctx context.Context, industry string) (*benchmark.IndustrySet, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT ratio_name, p10, p25, median, p75, p90
		FROM benchmark_distributions
		WHERE industry = $1
	`

	rows, err := pool.Query(ctx, query, strings.ToLower(industry))
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks for %s: %w", industry, err)
	}
	defer rows.Close()

	set := &benchmark.IndustrySet{
		Industry: industry,
		Ratios:   make(map[string]*benchmark.Distribution),
	}
	for rows.Next() {
		var name string
		var d benchmark.Distribution
		if err := rows.Scan(&name, &d.P10, &d.P25, &d.Median, &d.P75, &d.P90); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark row: %w", err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("stored benchmark %s/%s: %w", industry, name, err)
		}
		set.Ratios[name] = &d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read benchmark rows: %w", err)
	}
	return set, nil
}

// SaveIndustry upserts every distribution in the set.
func (r *BenchmarkRepo) SaveIndustry(ctx context.Context, set *benchmark.IndustrySet) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO benchmark_distributions (industry, ratio_name, p10, p25, median, p75, p90)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (industry, ratio_name)
		DO UPDATE SET
			p10 = EXCLUDED.p10,
			p25 = EXCLUDED.p25,
			median = EXCLUDED.median,
			p75 = EXCLUDED.p75,
			p90 = EXCLUDED.p90;
	`

	industry := strings.ToLower(set.Industry)
	for name, d := range set.Ratios {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("benchmark %s/%s: %w", set.Industry, name, err)
		}
		if _, err := pool.Exec(ctx, query, industry, name, d.P10, d.P25, d.Median, d.P75, d.P90); err != nil {
			return fmt.Errorf("failed to save benchmark %s/%s: %w", set.Industry, name, err)
		}
	}
	return nil
}
