package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

// CreateReport runs every analysis and stores the result when storage is enabled. Sections
// that fail carry their own status and the report is still returned.
func CreateReport(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseParams(r.URL.Query(), service.Defaults())
		if err != nil {
			writeError(w, r, "report", err)
			return
		}

		report, err := service.Report(r.Context(), params)
		if err != nil {
			writeError(w, r, "report", err)
			return
		}

		log.ForContext(r.Context()).WithField("report_id", report.ID).Info("reports: report created")
		writeJSON(w, r, http.StatusOK, report)
	}
}

func GetReport(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "report id is required", nil)
			return
		}

		report, err := service.GetReport(r.Context(), id)
		if err != nil {
			writeError(w, r, "report", err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}
