package analyzing

import (
	"context"
	"io"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

// TransactionLoader parses an uploaded file into transactions.
type TransactionLoader interface {
	Load(r io.Reader, format domain.FileFormat) (*domain.LoadResult, error)
}

// Analyzer owns the current dataset and runs the analyses on it.
type Analyzer interface {
	// Load parses a file and makes it the current dataset
	Load(ctx context.Context, name string, r io.Reader, format domain.FileFormat) (*domain.DatasetSummary, error)
	// Replace makes already parsed transactions the current dataset
	Replace(ctx context.Context, name string, result *domain.LoadResult) (*domain.DatasetSummary, error)
	Current() (*domain.DatasetSummary, error)
	Defaults() domain.Params

	Series(ctx context.Context, params domain.Params) (*domain.SeriesSet, error)
	Correlation(ctx context.Context, params domain.Params) (*domain.CorrelationResult, error)
	CohortCorrelation(ctx context.Context, params domain.Params) ([]domain.CohortCorrelation, error)
	CorrelationMatrix(ctx context.Context, params domain.Params) (*domain.CorrelationMatrix, error)
	Conversions(ctx context.Context, params domain.Params) (*domain.ConversionResult, error)
	ConversionCurve(ctx context.Context, params domain.Params) (*domain.ConversionCurve, error)
	Ranking(ctx context.Context, params domain.Params) (*domain.RankingResult, error)
	Lift(ctx context.Context, params domain.Params, req domain.LiftRequest) (*domain.LiftEstimate, error)

	// Report runs every analysis, a failing analysis only marks its own section
	Report(ctx context.Context, params domain.Params) (*domain.Report, error)
	GetReport(ctx context.Context, id string) (*domain.Report, error)
}
