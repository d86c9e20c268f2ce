package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON encodes before writing the status, so a body that cannot be encoded becomes a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: failed to encode response")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not encode response", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("handler: failed to write response")
	}
}

// writeError logs failures that are not a normal analysis outcome and sends the mapped API error.
func writeError(w http.ResponseWriter, r *http.Request, analysis string, err error) {
	apiErr := apiErrors.FromError(err)
	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"analysis": analysis,
		"error":    err.Error(),
	})
	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error("handler: request failed")
	} else {
		logger.Info("handler: request rejected")
	}
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
