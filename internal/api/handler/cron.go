package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

const (
	CronJobTypeReportRetention = "report-retention"
	CronJobTypeAll             = "all"
)

// CronJob is a background job that can also be run on demand.
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices maps a job type to its service. Nil entries are jobs not available in this deployment.
type CronJobServices map[string]CronJob

// RunCronJob starts a job manually.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type is required", nil)
			return
		}

		logger := log.ForContext(r.Context()).WithField("cron_type", cronType)

		if cronType == CronJobTypeAll {
			for _, job := range services {
				if job != nil {
					job.TriggerManualSync()
				}
			}
		} else {
			job, ok := services[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type", map[string]string{"type": cronType})
				return
			}
			if job == nil {
				apiErrors.WriteError(w, apiErrors.ErrStorageDisabled, "cron job not available", map[string]string{"type": cronType})
				return
			}
			job.TriggerManualSync()
		}

		logger.Info("cron: manual run triggered")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "cron job started",
			"type":    cronType,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job == nil {
				status[name] = map[string]any{"available": false}
				continue
			}
			status[name] = job.GetStatus()
		}
		writeJSON(w, r, http.StatusOK, status)
	}
}
