package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/pkg/utils"
)

// parseParams overrides the configured defaults with the query string.
func parseParams(query url.Values, defaults domain.Params) (domain.Params, error) {
	params := defaults
	var err error

	if v := query.Get("granularity"); v != "" {
		if params.Granularity, err = domain.ParseGranularity(v); err != nil {
			return params, err
		}
	}
	if v := query.Get("method"); v != "" {
		if params.CorrelationMethod, err = domain.ParseCorrelationMethod(v); err != nil {
			return params, err
		}
	}
	if v := query.Get("matrix_method"); v != "" {
		if params.MatrixMethod, err = domain.ParseCorrelationMethod(v); err != nil {
			return params, err
		}
	}

	ints := []struct {
		name   string
		target *int
	}{
		{"short", &params.ShortHorizon},
		{"long", &params.LongHorizon},
		{"rank_threshold", &params.RankThreshold},
		{"window", &params.Window},
		{"optimisation_window", &params.OptimisationWindow},
	}
	for _, p := range ints {
		v := strings.TrimSpace(query.Get(p.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, domain.NewInvalidParameter(p.name, fmt.Sprintf("%q is not an integer", v))
		}
		*p.target = n
	}

	floats := []struct {
		name   string
		target *float64
	}{
		{"threshold", &params.ConversionThreshold},
		{"predictive_threshold", &params.PredictiveThreshold},
	}
	for _, p := range floats {
		v := strings.TrimSpace(query.Get(p.name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, domain.NewInvalidParameter(p.name, fmt.Sprintf("%q is not a number", v))
		}
		if err := domain.ValidateFinite(p.name, f); err != nil {
			return params, err
		}
		*p.target = f
	}

	if v := query.Get("horizons"); v != "" {
		horizons, err := utils.ParseIntList(v)
		if err != nil {
			return params, domain.NewInvalidParameter("horizons", err.Error())
		}
		params.Horizons = horizons
	}

	if v := query.Get("cutoff"); v != "" {
		cutoff, err := utils.ParseDate(v)
		if err != nil {
			return params, domain.NewInvalidParameter("cutoff", err.Error())
		}
		params.Cutoff = cutoff
	}

	return params, nil
}
