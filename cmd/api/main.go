package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-insights-api/infrastructure/loader"
	"github.com/vfg2006/revenue-insights-api/infrastructure/repository"
	"github.com/vfg2006/revenue-insights-api/internal/api"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/scheduler"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
)

func main() {
	// amounts are sent as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("log level set to %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defaults, err := cfg.Analysis.Params()
	if err != nil {
		logrus.Fatal(err)
	}

	analyzer := analyzing.NewService(loader.New(cfg.Loader), defaults, cfg.Analysis.MinHistoryDays)
	authenticator := authenticating.NewService(cfg.Auth)
	if !authenticator.Enabled() {
		logrus.Warn("AUTH_SECRET is empty, the API is open to anyone who can reach it")
	}

	var retention *scheduler.ReportRetentionService
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		reportRepo := repository.NewReportRepository(pgConn)
		analyzer.WithReports(reportRepo)

		retention = scheduler.NewReportRetentionService(reportRepo, cfg)
		if err := retention.Start(ctx); err != nil {
			logrus.WithError(err).Error("could not start report retention scheduler")
		}
	} else {
		logrus.Info("report storage disabled, reports are not persisted")
	}

	server, err := api.New(cfg, analyzer, authenticator, retention)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
