// Command analyze runs the full pipeline for one ticker: fetch annual facts
// from SEC EDGAR, normalize them into statements, compute the ratio analysis
// with benchmark rankings, and print a report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"

	"econgraph/pkg/core/analysis"
	"econgraph/pkg/core/benchmark"
	"econgraph/pkg/core/fundamentals"
	"econgraph/pkg/core/ingest"
	"econgraph/pkg/core/report"
)

func main() {
	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true},
	}

	ticker := flag.String("ticker", "", "ticker symbol to analyze (required)")
	industry := flag.String("industry", "", "industry for benchmark rankings")
	years := flag.Int("years", 5, "number of fiscal years to analyze")
	price := flag.Float64("price", 0, "current share price for valuation ratios")
	shares := flag.Float64("shares", 0, "shares outstanding for valuation ratios")
	benchDir := flag.String("benchmarks", "resources/benchmarks", "benchmark table directory")
	format := flag.String("format", "markdown", "output format: markdown or html")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	if *ticker == "" {
		flag.Usage()
		os.Exit(2)
	}

	godotenv.Load()

	benchmarks, err := benchmark.LoadDirectory(*benchDir)
	if err != nil {
		log.Warn().Str("dir", *benchDir).Err(err).Msg("benchmark tables unavailable; rankings disabled")
	}

	log.Info().Str("ticker", *ticker).Int("years", *years).Msg("fetching company facts from EDGAR")
	client := ingest.NewEDGARClient()
	facts, err := client.FetchFactsByTicker(*ticker)
	if err != nil {
		log.Fatal().Err(err).Msg("EDGAR fetch failed")
	}

	statements, err := ingest.NewNormalizer().BuildStatements(*ticker, facts, *years)
	if err != nil {
		log.Fatal().Err(err).Msg("statement normalization failed")
	}
	log.Info().Int("statements", len(statements)).Msg("statements normalized")

	var market *fundamentals.MarketData
	if *price > 0 {
		market = &fundamentals.MarketData{Price: *price, SharesOutstanding: *shares}
	}

	engine := analysis.NewEngine(benchmarks)
	result, err := engine.Analyze(*ticker, *industry, statements, market)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	var output []byte
	switch *format {
	case "html":
		output, err = report.HTML(result)
	default:
		var md string
		md, err = report.Markdown(result)
		output = []byte(md)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("report rendering failed")
	}

	if *out == "" {
		fmt.Println(string(output))
		return
	}
	if err := os.WriteFile(*out, output, 0644); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
	log.Info().Str("file", *out).Msg("report written")
}
