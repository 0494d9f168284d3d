// Package stats exposes the statistical engine over HTTP.
package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"econgraph/pkg/core/stats"
)

var validate = validator.New()

// SeriesPoint is one dated observation in a request body.
type SeriesPoint struct {
	Date  string  `json:"date" validate:"required,datetime=2006-01-02"`
	Value float64 `json:"value"`
}

// PairRequest carries two series for correlation or regression.
type PairRequest struct {
	Series1 []SeriesPoint `json:"series1" validate:"required,min=1,dive"`
	Series2 []SeriesPoint `json:"series2" validate:"required,min=1,dive"`
}

// SeriesRequest carries one series for trend, summary and moving averages.
type SeriesRequest struct {
	Series  []SeriesPoint `json:"series" validate:"required,min=1,dive"`
	Windows []int         `json:"windows" validate:"omitempty,dive,gte=1"`
}

func toDataPoints(points []SeriesPoint) []stats.DataPoint {
	out := make([]stats.DataPoint, len(points))
	for i, p := range points {
		// Validation already guaranteed the layout.
		d, _ := time.Parse("2006-01-02", p.Date)
		out[i] = stats.DataPoint{Date: d, Value: p.Value}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStatsError maps the engine's typed failures onto status codes:
// recoverable data problems are 422, everything else is a 500.
func writeStatsError(w http.ResponseWriter, err error) {
	var insufficient *stats.InsufficientDataError
	var undefined *stats.UndefinedCorrelationError
	switch {
	case errors.As(err, &insufficient), errors.As(err, &undefined):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func decodePair(w http.ResponseWriter, r *http.Request) (*PairRequest, bool) {
	var req PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return nil, false
	}
	return &req, true
}

func decodeSeries(w http.ResponseWriter, r *http.Request) (*SeriesRequest, bool) {
	var req SeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return nil, false
	}
	return &req, true
}

// HandleCorrelation computes Pearson correlation with significance.
// POST /api/stats/correlation
func HandleCorrelation(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	req, ok := decodePair(w, r)
	if !ok {
		return
	}

	result, err := stats.Correlate(toDataPoints(req.Series1), toDataPoints(req.Series2))
	if err != nil {
		log.Warn().Err(err).Msg("correlation failed")
		writeStatsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleRegression fits y on x by ordinary least squares.
// POST /api/stats/regression
func HandleRegression(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	req, ok := decodePair(w, r)
	if !ok {
		return
	}

	result, err := stats.LinearRegression(toDataPoints(req.Series1), toDataPoints(req.Series2))
	if err != nil {
		log.Warn().Err(err).Msg("regression failed")
		writeStatsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleTrend analyzes directional movement of one series.
// POST /api/stats/trend
func HandleTrend(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	req, ok := decodeSeries(w, r)
	if !ok {
		return
	}

	result, err := stats.AnalyzeTrend(toDataPoints(req.Series))
	if err != nil {
		writeStatsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSummary computes descriptive statistics for one series, plus moving
// averages when windows are requested.
// POST /api/stats/summary
func HandleSummary(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	req, ok := decodeSeries(w, r)
	if !ok {
		return
	}

	series := toDataPoints(req.Series)
	summary, err := stats.Summarize(series)
	if err != nil {
		writeStatsError(w, err)
		return
	}

	response := struct {
		*stats.Summary
		MovingAverages map[int]stats.MovingAverageResult `json:"movingAverages,omitempty"`
	}{Summary: summary}

	if len(req.Windows) > 0 {
		response.MovingAverages, err = stats.MovingAverages(series, req.Windows)
		if err != nil {
			writeStatsError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes attaches the stats endpoints to the mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats/correlation", HandleCorrelation)
	mux.HandleFunc("/api/stats/regression", HandleRegression)
	mux.HandleFunc("/api/stats/trend", HandleTrend)
	mux.HandleFunc("/api/stats/summary", HandleSummary)
}
