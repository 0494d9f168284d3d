package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"gopkg.in/yaml.v2"

	apiratios "econgraph/pkg/api/ratios"
	apistats "econgraph/pkg/api/stats"
	"econgraph/pkg/core/analysis"
	"econgraph/pkg/core/benchmark"
	"econgraph/pkg/core/store"
)

// ServiceConfig is the YAML service configuration (config/econgraph.yaml).
type ServiceConfig struct {
	Port         int    `yaml:"port"`
	BenchmarkDir string `yaml:"benchmark_dir"`
	UseDatabase  bool   `yaml:"use_database"`
}

func loadConfig() ServiceConfig {
	cfg := ServiceConfig{
		Port:         8080,
		BenchmarkDir: "resources/benchmarks",
	}
	data, err := os.ReadFile("config/econgraph.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("no config file, using defaults")
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Warn().Err(err).Msg("failed to parse config, using defaults")
	}
	return cfg
}

// loadBenchmarks reads the industry tables, trying the executable's
// directory when the working directory has none.
func loadBenchmarks(dir string) map[string]*benchmark.IndustrySet {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		dir = filepath.Join(filepath.Dir(exePath), dir)
	}
	sets, err := benchmark.LoadDirectory(dir)
	if err != nil {
		log.Warn().Str("dir", dir).Err(err).Msg("benchmark tables unavailable; rankings disabled")
		return nil
	}
	log.Info().Int("industries", len(sets)).Str("dir", dir).Msg("benchmark tables loaded")
	return sets
}

// overlayStoredBenchmarks replaces file-loaded industry tables with their
// database versions where rows exist. Curated database rows win over the
// bundled defaults.
func overlayStoredBenchmarks(sets map[string]*benchmark.IndustrySet) map[string]*benchmark.IndustrySet {
	repo := store.NewBenchmarkRepo()
	for industry := range sets {
		stored, err := repo.LoadIndustry(context.Background(), industry)
		if err != nil {
			log.Warn().Str("industry", industry).Err(err).Msg("failed to load stored benchmarks")
			continue
		}
		if len(stored.Ratios) > 0 {
			log.Info().Str("industry", industry).Int("ratios", len(stored.Ratios)).Msg("using stored benchmark table")
			sets[industry] = stored
		}
	}
	return sets
}

func main() {
	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true},
	}

	godotenv.Load()
	cfg := loadConfig()

	benchmarks := loadBenchmarks(cfg.BenchmarkDir)
	engine := analysis.NewEngine(benchmarks)

	var repo *store.AnalysisRepo
	if cfg.UseDatabase {
		if err := store.InitDB(context.Background()); err != nil {
			log.Error().Err(err).Msg("database unavailable; running without persistence")
		} else {
			repo = store.NewAnalysisRepo()
			defer store.Close()
			benchmarks = overlayStoredBenchmarks(benchmarks)
			engine = analysis.NewEngine(benchmarks)
		}
	}

	apiratios.InitHandler(engine, repo)

	mux := http.NewServeMux()
	apiratios.RegisterRoutes(mux)
	apistats.RegisterRoutes(mux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("API server starting")
	log.Info().Msg("  - POST /api/ratios/report")
	log.Info().Msg("  - GET  /api/ratios/definitions")
	log.Info().Msg("  - POST /api/stats/correlation")
	log.Info().Msg("  - POST /api/stats/regression")
	log.Info().Msg("  - POST /api/stats/trend")
	log.Info().Msg("  - POST /api/stats/summary")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
