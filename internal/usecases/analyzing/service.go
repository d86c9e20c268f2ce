package analyzing

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/revenue-insights-api/infrastructure/repository"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/converting"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/correlating"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/lifting"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
	"github.com/vfg2006/revenue-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report steps, in the order they run.
const (
	StepAggregate   = "aggregate"
	StepCorrelation = "correlation"
	StepCohorts     = "cohort_correlation"
	StepMatrix      = "correlation_matrix"
	StepConversion  = "conversion"
	StepCurve       = "conversion_curve"
	StepRanking     = "ranking"
	StepStore       = "store"
)

var ReportSteps = []string{StepAggregate, StepCorrelation, StepCohorts, StepMatrix, StepConversion, StepCurve, StepRanking, StepStore}

type Service struct {
	loader         TransactionLoader
	defaults       domain.Params
	minHistoryDays int
	current        atomic.Pointer[dataset]
	reports        repository.ReportRepository
	observer       func(step string)
	now            func() time.Time
}

func NewService(loader TransactionLoader, defaults domain.Params, minHistoryDays int) *Service {
	return &Service{
		loader:         loader,
		defaults:       defaults,
		minHistoryDays: minHistoryDays,
		observer:       func(string) {},
		now:            time.Now,
	}
}

// WithReports enables report persistence.
func (s *Service) WithReports(reports repository.ReportRepository) *Service {
	s.reports = reports
	return s
}

// WithObserver registers a callback invoked after each report step.
func (s *Service) WithObserver(fn func(step string)) *Service {
	if fn != nil {
		s.observer = fn
	}
	return s
}

func (s *Service) Defaults() domain.Params {
	params := s.defaults
	params.Horizons = append([]int(nil), s.defaults.Horizons...)
	return params
}

func (s *Service) Load(ctx context.Context, name string, r io.Reader, format domain.FileFormat) (*domain.DatasetSummary, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("no loader configured")
	}

	result, err := s.loader.Load(r, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return s.Replace(ctx, name, result)
}

func (s *Service) Replace(ctx context.Context, name string, result *domain.LoadResult) (*domain.DatasetSummary, error) {
	id, err := utils.GenerateID("ds")
	if err != nil {
		return nil, fmt.Errorf("generate dataset id: %w", err)
	}

	summary := summarize(result)
	summary.ID = id
	summary.Name = name
	summary.LoadedAt = s.now().UTC()

	if summary.Transactions == 0 {
		summary.Warnings = append(summary.Warnings, "no valid transactions in the dataset")
	} else if days := int(summary.To.Sub(summary.From).Hours() / 24); days < s.minHistoryDays {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("dataset covers %d days, at least %d days are recommended for long horizon analyses", days, s.minHistoryDays))
	}

	s.current.Store(newDataset(summary, result.Transactions))

	log.ForContext(ctx).WithFields(log.Fields{
		"dataset_id": summary.ID,
		"rows":       summary.RowsRead,
		"dropped":    summary.Dropped,
	}).Infof("analyzing: dataset %q loaded with %d customers", name, summary.Customers)

	return &summary, nil
}

func summarize(result *domain.LoadResult) domain.DatasetSummary {
	summary := domain.DatasetSummary{
		RowsRead: result.RowsRead,
		Dropped:  result.Dropped,
		Warnings: append([]string(nil), result.Warnings...),
	}

	customers := make(map[string]struct{})
	for _, tx := range result.Transactions {
		if !tx.Valid() {
			continue
		}
		summary.Transactions++
		customers[tx.CustomerID] = struct{}{}
		if summary.From.IsZero() || tx.Timestamp.Before(summary.From) {
			summary.From = tx.Timestamp
		}
		if tx.Timestamp.After(summary.To) {
			summary.To = tx.Timestamp
		}
	}
	summary.Customers = len(customers)
	return summary
}

func (s *Service) Current() (*domain.DatasetSummary, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, domain.ErrNoDataset
	}
	summary := ds.summary
	return &summary, nil
}

func (s *Service) seriesSet(ctx context.Context, params domain.Params) (*dataset, *domain.SeriesSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	ds := s.current.Load()
	if ds == nil {
		return nil, nil, domain.ErrNoDataset
	}

	set, err := ds.seriesFor(params.Granularity)
	if err != nil {
		return nil, nil, err
	}
	return ds, set, nil
}

func (s *Service) Series(ctx context.Context, params domain.Params) (*domain.SeriesSet, error) {
	_, set, err := s.seriesSet(ctx, params)
	return set, err
}

func (s *Service) Correlation(ctx context.Context, params domain.Params) (*domain.CorrelationResult, error) {
	_, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	return correlating.Correlate(set, params.ShortHorizon, params.LongHorizon, params.CorrelationMethod)
}

func (s *Service) CohortCorrelation(ctx context.Context, params domain.Params) ([]domain.CohortCorrelation, error) {
	_, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	return correlating.CorrelateCohorts(set, params.ShortHorizon, params.LongHorizon, params.CorrelationMethod)
}

func (s *Service) CorrelationMatrix(ctx context.Context, params domain.Params) (*domain.CorrelationMatrix, error) {
	_, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	return correlating.Matrix(set, params.Horizons, params.MatrixMethod, params.PredictiveThreshold)
}

func (s *Service) Conversions(ctx context.Context, params domain.Params) (*domain.ConversionResult, error) {
	_, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	return converting.Detect(set, params.Cutoff, params.ConversionThreshold, params.Window)
}

func (s *Service) ConversionCurve(ctx context.Context, params domain.Params) (*domain.ConversionCurve, error) {
	_, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	return converting.Curve(set, params.Horizons, params.OptimisationWindow)
}

func (s *Service) Ranking(ctx context.Context, params domain.Params) (*domain.RankingResult, error) {
	_, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(set, params.ShortHorizon, params.LongHorizon, params.RankThreshold)
}

// Lift uses the short vs long horizon correlation of the current dataset.
func (s *Service) Lift(ctx context.Context, params domain.Params, req domain.LiftRequest) (*domain.LiftEstimate, error) {
	correlation, err := s.Correlation(ctx, params)
	if err != nil {
		return nil, err
	}
	return lifting.Estimate(req, correlation.Coefficient, params.Granularity.ApproxDays(params.LongHorizon))
}

func (s *Service) Report(ctx context.Context, params domain.Params) (*domain.Report, error) {
	// The parameters are echoed in the report, which has to stay encodable.
	if err := domain.ValidateFinite("threshold", params.ConversionThreshold); err != nil {
		return nil, err
	}
	if err := domain.ValidateFinite("predictive_threshold", params.PredictiveThreshold); err != nil {
		return nil, err
	}

	ds, set, err := s.seriesSet(ctx, params)
	if err != nil {
		return nil, err
	}
	s.observer(StepAggregate)

	id, err := utils.GenerateID("rp")
	if err != nil {
		return nil, fmt.Errorf("generate report id: %w", err)
	}

	report := &domain.Report{
		ID:          id,
		DatasetID:   ds.summary.ID,
		Params:      params,
		Customers:   len(set.Series),
		GeneratedAt: s.now().UTC(),
	}

	steps := []struct {
		name string
		run  func()
	}{
		{StepCorrelation, func() {
			result, err := correlating.Correlate(set, params.ShortHorizon, params.LongHorizon, params.CorrelationMethod)
			report.Correlation = domain.NewReportSection(result, err)
		}},
		{StepCohorts, func() {
			result, err := correlating.CorrelateCohorts(set, params.ShortHorizon, params.LongHorizon, params.CorrelationMethod)
			report.CohortCorrelation = domain.NewReportSection(&result, err)
		}},
		{StepMatrix, func() {
			result, err := correlating.Matrix(set, params.Horizons, params.MatrixMethod, params.PredictiveThreshold)
			report.Matrix = domain.NewReportSection(result, err)
		}},
		{StepConversion, func() {
			result, err := converting.Detect(set, params.Cutoff, params.ConversionThreshold, params.Window)
			report.Conversion = domain.NewReportSection(result, err)
		}},
		{StepCurve, func() {
			result, err := converting.Curve(set, params.Horizons, params.OptimisationWindow)
			report.Curve = domain.NewReportSection(result, err)
		}},
		{StepRanking, func() {
			result, err := ranking.Rank(set, params.ShortHorizon, params.LongHorizon, params.RankThreshold)
			report.Ranking = domain.NewReportSection(result, err)
		}},
	}

	logger := log.ForContext(ctx).WithField("report_id", report.ID)
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step.run()
		s.observer(step.name)
	}

	s.store(ctx, report, logger)
	s.observer(StepStore)

	logger.Infof("analyzing: report generated for %d customers", report.Customers)
	return report, nil
}

// store persists the report when storage is configured. A storage failure does not fail the report.
func (s *Service) store(ctx context.Context, report *domain.Report, logger log.Logger) {
	if s.reports == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		logger.WithError(err).Error("analyzing: could not encode report")
		return
	}

	err = s.reports.Save(ctx, &domain.StoredReport{
		ID:          report.ID,
		DatasetID:   report.DatasetID,
		Payload:     payload,
		GeneratedAt: report.GeneratedAt,
	})
	if err != nil {
		logger.WithError(err).Error("analyzing: could not store report")
	}
}

func (s *Service) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	if s.reports == nil {
		return nil, domain.ErrStorageDisabled
	}

	stored, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{}
	if err := json.Unmarshal(stored.Payload, report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return report, nil
}
