package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

// IssueToken exchanges an API key for a bearer token.
func IssueToken(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		token, err := service.IssueToken(req.APIKey)
		if err != nil {
			var authErr *authenticating.AuthError
			if errors.As(err, &authErr) {
				log.ForContext(r.Context()).WithError(err).Warn("token: request rejected")
				apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not issue token", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, token)
	}
}
