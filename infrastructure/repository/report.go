// Package repository persists analysis reports.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/revenue-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

const reportTable = "analysis_reports"

type ReportRepository interface {
	Save(ctx context.Context, report *domain.StoredReport) error
	GetByID(ctx context.Context, id string) (*domain.StoredReport, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

type reportRepository struct {
	conn postgres.Queryer
}

func NewReportRepository(conn postgres.Queryer) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func saveReportQuery(report *domain.StoredReport) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert(reportTable).
		Columns("id", "dataset_id", "payload", "generated_at").
		Values(report.ID, report.DatasetID, report.Payload, report.GeneratedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			generated_at = EXCLUDED.generated_at`).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *reportRepository) Save(ctx context.Context, report *domain.StoredReport) error {
	query, args, err := saveReportQuery(report).ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save report %s: %w: %w", report.ID, domain.ErrStorage, err)
	}
	return nil
}

func getReportQuery(id string) squirrel.SelectBuilder {
	return squirrel.
		Select("id", "dataset_id", "payload", "generated_at").
		From(reportTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.StoredReport, error) {
	query, args, err := getReportQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	report := &domain.StoredReport{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&report.ID,
		&report.DatasetID,
		&report.Payload,
		&report.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("get report %s: %w: %w", id, domain.ErrStorage, err)
	}
	return report, nil
}

func deleteReportsQuery(before time.Time) squirrel.DeleteBuilder {
	return squirrel.
		Delete(reportTable).
		Where(squirrel.Lt{"generated_at": before}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *reportRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := deleteReportsQuery(before).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete reports: %w: %w", domain.ErrStorage, err)
	}
	return result.RowsAffected()
}
