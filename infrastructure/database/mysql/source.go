// Package mysql reads revenue events straight from a MySQL or MariaDB table.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

var identifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type Source struct {
	db      *sql.DB
	table   string
	columns config.Loader
}

// Open connects to dsn, accepting mysql:// and mariadb:// URLs as well as native DSNs.
func Open(ctx context.Context, dsn, table string, columns config.Loader) (*Source, error) {
	for _, name := range []string{table, columns.CustomerColumn, columns.TimestampColumn, columns.AmountColumn} {
		if !identifier.MatchString(name) {
			return nil, errors.Errorf("invalid identifier %q", name)
		}
	}

	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}

	return &Source{db: db, table: table, columns: columns}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user, pass := "", ""
		if u.User != nil {
			user = u.User.Username()
			pass, _ = u.User.Password()
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", errors.New("incomplete dsn, user, host and database are required")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

func (s *Source) query() squirrel.SelectBuilder {
	return squirrel.
		Select(s.columns.CustomerColumn, s.columns.TimestampColumn, s.columns.AmountColumn).
		From(s.table).
		OrderBy(s.columns.TimestampColumn, s.columns.CustomerColumn)
}

// Load reads every row of the table. Rows with null or negative values are dropped.
func (s *Source) Load(ctx context.Context) (*domain.LoadResult, error) {
	query, args, err := s.query().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", s.table)
	}
	defer rows.Close()

	result := &domain.LoadResult{Transactions: []domain.Transaction{}}
	for rows.Next() {
		var (
			customer sql.NullString
			ts       sql.NullTime
			amount   decimal.NullDecimal
		)
		if err := rows.Scan(&customer, &ts, &amount); err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		result.RowsRead++

		tx := domain.Transaction{
			CustomerID: strings.TrimSpace(customer.String),
			Timestamp:  ts.Time.UTC(),
			Amount:     amount.Decimal,
		}
		if !customer.Valid || !ts.Valid || !tx.Valid() {
			result.Dropped++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}

	if result.Dropped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d rows with null or negative values dropped: %s", result.Dropped, domain.ErrMalformedRow))
	}
	return result, nil
}
