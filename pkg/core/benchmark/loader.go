package benchmark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// IndustrySet maps ratio names to their distributions for one industry.
// Resource files live in resources/benchmarks/<industry>.hjson; HJSON keeps
// the tables human-editable with inline commentary on data provenance.
type IndustrySet struct {
	Industry string                   `json:"industry"`
	Ratios   map[string]*Distribution `json:"ratios"`
}

// Lookup returns the distribution for a ratio, or nil when the industry
// table does not cover it.
func (s *IndustrySet) Lookup(ratioName string) *Distribution {
	if s == nil {
		return nil
	}
	return s.Ratios[ratioName]
}

// LoadIndustryFile parses one industry benchmark table from an HJSON file.
func LoadIndustryFile(path string) (*IndustrySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark file: %w", err)
	}

	var set IndustrySet
	if err := hjson.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark file %s: %w", path, err)
	}
	if set.Industry == "" {
		return nil, fmt.Errorf("benchmark file %s missing industry name", path)
	}
	for name, dist := range set.Ratios {
		if err := dist.Validate(); err != nil {
			return nil, fmt.Errorf("benchmark %s/%s: %w", set.Industry, name, err)
		}
	}
	return &set, nil
}

// LoadDirectory loads every *.hjson industry table under dir, keyed by
// lower-cased industry name.
func LoadDirectory(dir string) (map[string]*IndustrySet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark directory: %w", err)
	}

	sets := make(map[string]*IndustrySet)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hjson") {
			continue
		}
		set, err := LoadIndustryFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sets[strings.ToLower(set.Industry)] = set
	}
	return sets, nil
}
