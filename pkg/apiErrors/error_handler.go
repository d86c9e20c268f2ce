package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Authentication
	ErrInvalidCredentials    = "AUTH_001" // unknown api key
	ErrInvalidToken          = "AUTH_006"
	ErrExpiredToken          = "AUTH_007"
	ErrInsufficientPrivilege = "AUTH_008"

	// Validation
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"
	ErrPayloadTooLarge     = "VAL_004"
	ErrNotFound            = "VAL_005"
	ErrMethodNotAllowed    = "VAL_006"

	// Analysis
	ErrInsufficientData = domain.CodeInsufficientData
	ErrInvalidParameter = domain.CodeInvalidParameter

	// Data
	ErrNoDataset      = domain.CodeNoDataset
	ErrReportNotFound = domain.CodeReportNotFound

	// Server
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrStorageDisabled   = "SRV_005"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrPayloadTooLarge:       http.StatusRequestEntityTooLarge,
	ErrNotFound:              http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInsufficientData:      http.StatusUnprocessableEntity,
	ErrInvalidParameter:      http.StatusBadRequest,
	ErrNoDataset:             http.StatusNotFound,
	ErrReportNotFound:        http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrStorageDisabled:       http.StatusNotImplemented,
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError maps domain errors to their API code, anything else is an internal error.
func FromError(err error) APIError {
	if err == nil {
		return APIError{Code: ErrInternalServer, Message: "unknown error"}
	}

	apiErr := APIError{Code: ErrInternalServer, Message: err.Error()}
	if code := domain.ErrorCode(err); code != "" {
		apiErr.Code = code
	} else if errors.Is(err, domain.ErrStorageDisabled) {
		apiErr.Code = ErrStorageDisabled
	} else if errors.Is(err, domain.ErrStorage) {
		apiErr.Code = ErrDatabaseOperation
		apiErr.Message = "report storage is unavailable"
	}

	var analysisErr *domain.AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Analysis != "" {
		apiErr.Details = map[string]string{"analysis": analysisErr.Analysis}
	}
	return apiErr
}

// Write sends err using the code FromError picks for it.
func Write(w http.ResponseWriter, err error) {
	apiErr := FromError(err)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
