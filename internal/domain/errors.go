package domain

import (
	"errors"
	"fmt"
)

var (
	// Input
	ErrMalformedRow = errors.New("malformed row")

	// Analysis
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Dataset and storage
	ErrNoDataset       = errors.New("no dataset loaded")
	ErrReportNotFound  = errors.New("report not found")
	ErrStorageDisabled = errors.New("report storage disabled")
	ErrStorage         = errors.New("report storage failure")
)

const (
	CodeInsufficientData = "ANA_001"
	CodeInvalidParameter = "ANA_002"
	CodeNoDataset        = "DATA_001"
	CodeReportNotFound   = "DATA_002"
)

// AnalysisError carries the analysis that failed and the API code for the failure.
type AnalysisError struct {
	Err      error  // base error
	Code     string // API error code
	Analysis string // analysis or parameter involved
	Details  string
}

func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func NewInsufficientData(analysis, details string) *AnalysisError {
	return &AnalysisError{
		Err:      ErrInsufficientData,
		Code:     CodeInsufficientData,
		Analysis: analysis,
		Details:  details,
	}
}

func NewInvalidParameter(parameter, details string) *AnalysisError {
	return &AnalysisError{
		Err:      ErrInvalidParameter,
		Code:     CodeInvalidParameter,
		Analysis: parameter,
		Details:  details,
	}
}

// IsAnalysisError reports whether err is a recoverable analysis outcome rather than a failure.
func IsAnalysisError(err error) bool {
	return errors.Is(err, ErrInsufficientData) || errors.Is(err, ErrInvalidParameter)
}

// ErrorCode returns the API code carried by err, or an empty string.
func ErrorCode(err error) string {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Code
	}
	switch {
	case errors.Is(err, ErrNoDataset):
		return CodeNoDataset
	case errors.Is(err, ErrReportNotFound):
		return CodeReportNotFound
	}
	return ""
}
