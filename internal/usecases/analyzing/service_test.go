package analyzing

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type loaderFunc func(r io.Reader, format domain.FileFormat) (*domain.LoadResult, error)

func (f loaderFunc) Load(r io.Reader, format domain.FileFormat) (*domain.LoadResult, error) {
	return f(r, format)
}

func tx(customer string, m time.Month, amount int64) domain.Transaction {
	return domain.Transaction{
		CustomerID: customer,
		Timestamp:  time.Date(2023, m, 10, 12, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(amount),
	}
}

func fixture() *domain.LoadResult {
	return &domain.LoadResult{
		Transactions: []domain.Transaction{
			tx("A", time.January, 10), tx("A", time.February, 10), tx("A", time.March, 10),
			tx("B", time.January, 5), tx("B", time.February, 20), tx("B", time.March, 0),
			tx("C", time.January, 1), tx("C", time.March, 30),
			tx("D", time.January, 8),
		},
		RowsRead: 10,
		Dropped:  1,
		Warnings: []string{"line 11: malformed row: empty customer"},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	params, err := config.DefaultAnalysis().Params()
	require.NoError(t, err)

	service := NewService(nil, params, 90)
	service.now = func() time.Time { return time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC) }
	return service
}

func TestService_NoDataset(t *testing.T) {
	service := newTestService(t)

	_, err := service.Current()
	assert.ErrorIs(t, err, domain.ErrNoDataset)

	_, err = service.Correlation(context.Background(), service.Defaults())
	assert.ErrorIs(t, err, domain.ErrNoDataset)

	_, err = service.Report(context.Background(), service.Defaults())
	assert.ErrorIs(t, err, domain.ErrNoDataset)
}

func TestService_Replace(t *testing.T) {
	service := newTestService(t)

	summary, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(summary.ID, "ds_"))
	assert.Equal(t, "revenue.csv", summary.Name)
	assert.Equal(t, 10, summary.RowsRead)
	assert.Equal(t, 9, summary.Transactions)
	assert.Equal(t, 1, summary.Dropped)
	assert.Equal(t, 4, summary.Customers)
	assert.Equal(t, time.Date(2023, time.January, 10, 12, 0, 0, 0, time.UTC), summary.From)
	assert.Equal(t, time.Date(2023, time.March, 10, 12, 0, 0, 0, time.UTC), summary.To)
	require.Len(t, summary.Warnings, 2)
	assert.Contains(t, summary.Warnings[1], "covers 59 days")

	current, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, summary.ID, current.ID)
}

func TestService_Load(t *testing.T) {
	params, err := config.DefaultAnalysis().Params()
	require.NoError(t, err)

	var gotFormat domain.FileFormat
	loader := loaderFunc(func(r io.Reader, format domain.FileFormat) (*domain.LoadResult, error) {
		gotFormat = format
		return fixture(), nil
	})
	service := NewService(loader, params, 30)

	summary, err := service.Load(context.Background(), "revenue.xlsx", strings.NewReader(""), domain.FileFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, domain.FileFormatXLSX, gotFormat)
	assert.Equal(t, 4, summary.Customers)
	assert.Len(t, summary.Warnings, 1)
}

func TestService_LoadErrorKeepsPreviousDataset(t *testing.T) {
	params, err := config.DefaultAnalysis().Params()
	require.NoError(t, err)

	loader := loaderFunc(func(r io.Reader, format domain.FileFormat) (*domain.LoadResult, error) {
		return nil, errors.New("missing column user_id")
	})
	service := NewService(loader, params, 90)
	previous, err := service.Replace(context.Background(), "first.csv", fixture())
	require.NoError(t, err)

	_, err = service.Load(context.Background(), "second.csv", strings.NewReader(""), domain.FileFormatCSV)
	require.Error(t, err)

	current, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, previous.ID, current.ID)
}

func TestService_Analyses(t *testing.T) {
	service := newTestService(t)
	_, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	ctx := context.Background()
	params := service.Defaults()

	set, err := service.Series(ctx, params)
	require.NoError(t, err)
	assert.Len(t, set.Series, 4)

	again, err := service.Series(ctx, params)
	require.NoError(t, err)
	assert.Same(t, set, again)

	correlation, err := service.Correlation(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 4, correlation.Included)

	matrix, err := service.CorrelationMatrix(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, matrix.Horizons)

	ranking, err := service.Ranking(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 4, ranking.Summary.Customers)

	_, err = service.Conversions(ctx, params)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	params.Cutoff = time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC)
	conversions, err := service.Conversions(ctx, params)
	require.NoError(t, err)
	assert.Len(t, conversions.Customers, 4)

	curve, err := service.ConversionCurve(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 4, curve.Payers)

	lift, err := service.Lift(ctx, params, domain.LiftRequest{AdSpend: "$100k - $300k", RoasPeriod: "D90", RegularRoas: 2})
	require.NoError(t, err)
	assert.Equal(t, correlation.Coefficient, lift.Correlation)
	assert.Equal(t, 90, lift.LongestHorizon)
}

func TestService_ReportIsolatesSections(t *testing.T) {
	service := newTestService(t)
	_, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	var steps []string
	service.WithObserver(func(step string) { steps = append(steps, step) })

	report, err := service.Report(context.Background(), service.Defaults())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(report.ID, "rp_"))
	assert.Equal(t, 4, report.Customers)
	assert.Equal(t, domain.StatusOK, report.Correlation.Status)
	assert.Equal(t, domain.StatusOK, report.Matrix.Status)
	assert.Equal(t, domain.StatusOK, report.Ranking.Status)
	assert.Equal(t, domain.StatusInvalidParameter, report.Conversion.Status)
	assert.Nil(t, report.Conversion.Result)
	assert.Equal(t, ReportSteps, steps)
}

func TestService_ReportRejectsNonFiniteThresholds(t *testing.T) {
	service := newTestService(t)
	_, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	params := service.Defaults()
	params.PredictiveThreshold = math.NaN()
	_, err = service.Report(context.Background(), params)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	params = service.Defaults()
	params.ConversionThreshold = math.Inf(1)
	_, err = service.Report(context.Background(), params)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestService_ReportPersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)

	service := newTestService(t).WithReports(repo)
	_, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	var stored *domain.StoredReport
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, report *domain.StoredReport) error {
		stored = report
		return nil
	})

	report, err := service.Report(context.Background(), service.Defaults())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, report.ID, stored.ID)
	assert.Equal(t, report.DatasetID, stored.DatasetID)

	repo.EXPECT().GetByID(gomock.Any(), report.ID).Return(stored, nil)

	loaded, err := service.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, loaded.ID)
	assert.Equal(t, report.Correlation.Status, loaded.Correlation.Status)
	require.NotNil(t, loaded.Correlation.Result)
	assert.Equal(t, report.Correlation.Result.Coefficient, loaded.Correlation.Result.Coefficient)
}

func TestService_ReportStorageFailureDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)

	service := newTestService(t).WithReports(repo)
	_, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	report, err := service.Report(context.Background(), service.Defaults())
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
}

func TestService_GetReport(t *testing.T) {
	service := newTestService(t)

	_, err := service.GetReport(context.Background(), "rp_missing")
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	service.WithReports(repo)

	repo.EXPECT().GetByID(gomock.Any(), "rp_missing").Return(nil, domain.ErrReportNotFound)

	_, err = service.GetReport(context.Background(), "rp_missing")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestService_CancelledContext(t *testing.T) {
	service := newTestService(t)
	_, err := service.Replace(context.Background(), "revenue.csv", fixture())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = service.Report(ctx, service.Defaults())
	assert.ErrorIs(t, err, context.Canceled)
}
