package handler

import (
	"net/http"

	"github.com/vfg2006/revenue-insights-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/revenue-insights-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Token(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/token",
			Method:  http.MethodPost,
			Handler: IssueToken(service),
		},
	}
}

func Datasets(service analyzing.Analyzer, validator middleware.TokenValidator, maxUploadBytes int64) []router.Route {
	anyScope := middlewares{middleware.ScopeMiddleware(validator, domain.ScopeAdmin, domain.ScopeAnalyst)}

	return []router.Route{
		{
			Path:        "/v1/datasets",
			Method:      http.MethodPost,
			Handler:     UploadDataset(service, maxUploadBytes),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/datasets/current",
			Method:      http.MethodGet,
			Handler:     GetCurrentDataset(service),
			Middlewares: anyScope,
		},
	}
}

func Analyses(service analyzing.Analyzer, validator middleware.TokenValidator) []router.Route {
	anyScope := middlewares{middleware.ScopeMiddleware(validator, domain.ScopeAdmin, domain.ScopeAnalyst)}

	return []router.Route{
		{
			Path:        "/v1/analysis/series",
			Method:      http.MethodGet,
			Handler:     GetSeries(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/correlation",
			Method:      http.MethodGet,
			Handler:     GetCorrelation(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/correlation/cohorts",
			Method:      http.MethodGet,
			Handler:     GetCohortCorrelation(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/correlation/matrix",
			Method:      http.MethodGet,
			Handler:     GetCorrelationMatrix(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/conversions",
			Method:      http.MethodGet,
			Handler:     GetConversions(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/conversions/curve",
			Method:      http.MethodGet,
			Handler:     GetConversionCurve(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/ranking",
			Method:      http.MethodGet,
			Handler:     GetRanking(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/analysis/lift",
			Method:      http.MethodPost,
			Handler:     EstimateLift(service),
			Middlewares: anyScope,
		},
	}
}

func Reports(service analyzing.Analyzer, validator middleware.TokenValidator) []router.Route {
	anyScope := middlewares{middleware.ScopeMiddleware(validator, domain.ScopeAdmin, domain.ScopeAnalyst)}

	return []router.Route{
		{
			Path:        "/v1/analysis/report",
			Method:      http.MethodGet,
			Handler:     CreateReport(service),
			Middlewares: anyScope,
		},
		{
			Path:        "/v1/reports/:id",
			Method:      http.MethodGet,
			Handler:     GetReport(service),
			Middlewares: anyScope,
		},
	}
}

func CronJobs(services CronJobServices, validator middleware.TokenValidator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly(validator)},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOnly(validator)},
		},
	}
}
