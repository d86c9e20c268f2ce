package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

const multipartMemory = 8 << 20

// UploadDataset replaces the current dataset. It accepts a multipart form with a "file"
// field or the raw file as body, in which case ?format= or ?name= tells CSV from XLSX.
func UploadDataset(service analyzing.Analyzer, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		name, format, body, err := uploadedFile(r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "file is too large", map[string]int64{"max_bytes": tooLarge.Limit})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		defer body.Close()

		logger.WithField("format", format).Infof("datasets: loading %q", name)

		summary, err := service.Load(r.Context(), name, body, format)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "file is too large", map[string]int64{"max_bytes": tooLarge.Limit})
				return
			}
			logger.WithError(err).Warn("datasets: upload rejected")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		writeJSON(w, r, http.StatusCreated, summary)
	}
}

func uploadedFile(r *http.Request) (string, domain.FileFormat, io.ReadCloser, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return "", "", nil, err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", "", nil, errors.New(`multipart field "file" is required`)
		}
		return header.Filename, domain.FileFormatFromName(header.Filename), file, nil
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}
	format := domain.FileFormatFromName(name)
	if v := r.URL.Query().Get("format"); v != "" {
		format = domain.FileFormat(strings.ToLower(v))
	}
	if format != domain.FileFormatCSV && format != domain.FileFormatXLSX {
		return "", "", nil, errors.New("format must be csv or xlsx")
	}
	return name, format, r.Body, nil
}

func GetCurrentDataset(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Current()
		if err != nil {
			writeError(w, r, "dataset", err)
			return
		}
		writeJSON(w, r, http.StatusOK, summary)
	}
}
