package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type CorrelationMethod string

const (
	MethodPearson  CorrelationMethod = "pearson"
	MethodSpearman CorrelationMethod = "spearman"
)

func ParseCorrelationMethod(value string) (CorrelationMethod, error) {
	switch m := CorrelationMethod(strings.ToLower(strings.TrimSpace(value))); m {
	case MethodPearson, MethodSpearman:
		return m, nil
	}
	return "", NewInvalidParameter("method", fmt.Sprintf("unknown correlation method %q", value))
}

// Params is the full parameter set of one analysis run.
type Params struct {
	Granularity         Granularity       `json:"granularity"`
	ShortHorizon        int               `json:"short_horizon"`
	LongHorizon         int               `json:"long_horizon"`
	Cutoff              time.Time         `json:"cutoff,omitempty"`
	ConversionThreshold float64           `json:"conversion_threshold"`
	RankThreshold       int               `json:"rank_threshold"`
	CorrelationMethod   CorrelationMethod `json:"correlation_method"`
	Horizons            []int             `json:"horizons"`
	MatrixMethod        CorrelationMethod `json:"matrix_method"`
	PredictiveThreshold float64           `json:"predictive_threshold"`
	OptimisationWindow  int               `json:"optimisation_window"`
	Window              int               `json:"window"`
}

// ValidateFinite rejects NaN and infinities, which cannot be compared or serialised.
func ValidateFinite(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewInvalidParameter(name, fmt.Sprintf("%s must be a finite number, got %v", name, value))
	}
	return nil
}

// ValidateHorizons checks the short/long pair used by correlation and ranking.
func ValidateHorizons(short, long int) error {
	if short < 1 {
		return NewInvalidParameter("short", fmt.Sprintf("short horizon must be at least 1, got %d", short))
	}
	if short >= long {
		return NewInvalidParameter("long", fmt.Sprintf("short horizon %d must be lower than long horizon %d", short, long))
	}
	return nil
}
