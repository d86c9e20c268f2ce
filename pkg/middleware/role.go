package middleware

import (
	"net/http"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

// ScopeMiddleware restricts a route to the given token scopes. Requests without claims
// pass only when authentication is disabled.
func ScopeMiddleware(validator TokenValidator, allowed ...domain.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validator.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("middleware: access attempt without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
				return
			}

			for _, scope := range allowed {
				if claims.Scope == scope {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.ForContext(r.Context()).Warnf("middleware: access denied for scope %q on %s", claims.Scope, r.URL.Path)
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "you are not allowed to access this resource", nil)
		})
	}
}

func AdminOnly(validator TokenValidator) func(http.Handler) http.Handler {
	return ScopeMiddleware(validator, domain.ScopeAdmin)
}
