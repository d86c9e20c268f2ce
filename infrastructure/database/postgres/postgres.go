// Package postgres opens the pool backing report storage.
package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

const (
	maxOpenConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

var _ Queryer = (*Connection)(nil)

type Connection struct {
	*sql.DB
}

// NewConnection opens the pool and waits at most pingTimeout for the server to answer.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	if !cfg.Enabled {
		return nil, domain.ErrStorageDisabled
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.Driver)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s database at %s", cfg.Driver, cfg.URL)
	}

	return &Connection{DB: db}, nil
}
