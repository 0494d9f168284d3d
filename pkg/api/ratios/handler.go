// Package ratios exposes the ratio analysis engine over HTTP.
package ratios

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"econgraph/pkg/core/analysis"
	"econgraph/pkg/core/fundamentals"
	"econgraph/pkg/core/ingest"
	"econgraph/pkg/core/ratios"
	"econgraph/pkg/core/store"
)

var (
	engine       *analysis.Engine
	edgarClient  *ingest.EDGARClient
	normalizer   *ingest.Normalizer
	analysisRepo *store.AnalysisRepo
	validate     = validator.New()
)

// InitHandler wires the handler's collaborators. repo may be nil when the
// service runs without Postgres; analyses are then served but not persisted.
func InitHandler(e *analysis.Engine, repo *store.AnalysisRepo) {
	engine = e
	edgarClient = ingest.NewEDGARClient()
	normalizer = ingest.NewNormalizer()
	analysisRepo = repo
}

// StatementInput is one fiscal year of normalized concepts supplied inline.
type StatementInput struct {
	FiscalYear int                `json:"fiscalYear" validate:"required,gte=1900,lte=2200"`
	PeriodEnd  string             `json:"periodEnd" validate:"omitempty,datetime=2006-01-02"`
	Concepts   map[string]float64 `json:"concepts" validate:"required,min=1"`
}

// MarketInput carries the optional market data for valuation ratios.
type MarketInput struct {
	Price             float64 `json:"price" validate:"gte=0"`
	SharesOutstanding float64 `json:"sharesOutstanding" validate:"gte=0"`
}

// ReportRequest asks for a ratio analysis, either from inline statements or
// by fetching the ticker's filings from SEC EDGAR.
type ReportRequest struct {
	Ticker     string           `json:"ticker" validate:"required,min=1,max=10"`
	Industry   string           `json:"industry" validate:"omitempty,max=64"`
	Years      int              `json:"years" validate:"gte=0,lte=20"`
	Statements []StatementInput `json:"statements" validate:"omitempty,dive"`
	Market     *MarketInput     `json:"market"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// cors applies the shared CORS policy and handles preflight.
func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// HandleReport computes the full ratio analysis for a company.
// POST /api/ratios/report
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	ticker := strings.ToUpper(req.Ticker)
	log.Info().Str("ticker", ticker).Int("inline_statements", len(req.Statements)).Msg("ratio report requested")

	statements, err := resolveStatements(ticker, req)
	if err != nil {
		log.Warn().Str("ticker", ticker).Err(err).Msg("statement resolution failed")
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var market *fundamentals.MarketData
	if req.Market != nil {
		market = &fundamentals.MarketData{
			Price:             req.Market.Price,
			SharesOutstanding: req.Market.SharesOutstanding,
		}
	}

	result, err := engine.Analyze(ticker, req.Industry, statements, market)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if analysisRepo != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := analysisRepo.Save(ctx, result); err != nil {
			// Persistence is best-effort; the computed analysis still ships.
			log.Error().Str("ticker", ticker).Err(err).Msg("failed to persist analysis")
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// resolveStatements uses inline statements when provided, otherwise fetches
// the ticker's annual filings from EDGAR.
func resolveStatements(ticker string, req ReportRequest) ([]*fundamentals.FinancialStatement, error) {
	if len(req.Statements) > 0 {
		statements := make([]*fundamentals.FinancialStatement, 0, len(req.Statements))
		for _, in := range req.Statements {
			end, _ := time.Parse("2006-01-02", in.PeriodEnd)
			stmt := fundamentals.NewStatement(ticker, in.FiscalYear, end, nil)
			for name, value := range in.Concepts {
				stmt.SetConcept(name, value, "USD")
			}
			statements = append(statements, stmt)
		}
		return statements, nil
	}

	facts, err := edgarClient.FetchFactsByTicker(ticker)
	if err != nil {
		return nil, err
	}
	years := req.Years
	if years == 0 {
		years = 5
	}
	return normalizer.BuildStatements(ticker, facts, years)
}

// HandleDefinitions lists the ratio metadata table: names, categories,
// format hints and directions.
// GET /api/ratios/definitions
func HandleDefinitions(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	defs := make([]ratios.Definition, 0)
	for _, name := range ratios.Names() {
		def, _ := ratios.Lookup(name)
		defs = append(defs, def)
	}
	writeJSON(w, http.StatusOK, defs)
}

// RegisterRoutes attaches the ratio endpoints to the mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/ratios/report", HandleReport)
	mux.HandleFunc("/api/ratios/definitions", HandleDefinitions)
}
