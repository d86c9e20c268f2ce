package domain

import (
	"errors"
	"time"
)

const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
	StatusInvalidParameter = "invalid_parameter"
	StatusError            = "error"
)

// StatusOf maps an analysis error to the status of a report section.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInsufficientData):
		return StatusInsufficientData
	case errors.Is(err, ErrInvalidParameter):
		return StatusInvalidParameter
	default:
		return StatusError
	}
}

// ReportSection isolates the outcome of one analysis inside a report.
type ReportSection[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Result  *T     `json:"result,omitempty"`
}

func NewReportSection[T any](result *T, err error) ReportSection[T] {
	if err != nil {
		return ReportSection[T]{Status: StatusOf(err), Message: err.Error()}
	}
	return ReportSection[T]{Status: StatusOK, Result: result}
}

type Report struct {
	ID                string                             `json:"id"`
	DatasetID         string                             `json:"dataset_id"`
	Params            Params                             `json:"params"`
	Customers         int                                `json:"customers"`
	Correlation       ReportSection[CorrelationResult]   `json:"correlation"`
	CohortCorrelation ReportSection[[]CohortCorrelation] `json:"cohort_correlation"`
	Matrix            ReportSection[CorrelationMatrix]   `json:"correlation_matrix"`
	Conversion        ReportSection[ConversionResult]    `json:"conversion"`
	Curve             ReportSection[ConversionCurve]     `json:"conversion_curve"`
	Ranking           ReportSection[RankingResult]       `json:"ranking"`
	GeneratedAt       time.Time                          `json:"generated_at"`
}

// StoredReport is the persisted form of a report.
type StoredReport struct {
	ID          string    `json:"id"`
	DatasetID   string    `json:"dataset_id"`
	Payload     []byte    `json:"-"`
	GeneratedAt time.Time `json:"generated_at"`
}
