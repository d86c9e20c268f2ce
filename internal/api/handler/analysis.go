package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

// analysisHandler parses the query parameters, runs one analysis and writes its result.
func analysisHandler[T any](service analyzing.Analyzer, analysis string, run func(ctx context.Context, params domain.Params) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseParams(r.URL.Query(), service.Defaults())
		if err != nil {
			writeError(w, r, analysis, err)
			return
		}

		result, err := run(r.Context(), params)
		if err != nil {
			writeError(w, r, analysis, err)
			return
		}

		log.ForContext(r.Context()).WithField("analysis", analysis).Debug("handler: analysis completed")
		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetSeries(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "series", service.Series)
}

func GetCorrelation(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "correlation", service.Correlation)
}

func GetCohortCorrelation(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "cohort_correlation", service.CohortCorrelation)
}

func GetCorrelationMatrix(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "correlation_matrix", service.CorrelationMatrix)
}

func GetConversions(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "conversion", service.Conversions)
}

func GetConversionCurve(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "conversion_curve", service.ConversionCurve)
}

func GetRanking(service analyzing.Analyzer) http.HandlerFunc {
	return analysisHandler(service, "ranking", service.Ranking)
}

// EstimateLift reads the lift request from the body and the analysis parameters from the query.
func EstimateLift(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		params, err := parseParams(r.URL.Query(), service.Defaults())
		if err != nil {
			writeError(w, r, "lift", err)
			return
		}

		estimate, err := service.Lift(r.Context(), params, req)
		if err != nil {
			writeError(w, r, "lift", err)
			return
		}

		writeJSON(w, r, http.StatusOK, estimate)
	}
}
