// Command report runs every revenue analysis on a file or a MySQL table and prints the report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-insights-api/infrastructure/database/mysql"
	"github.com/vfg2006/revenue-insights-api/infrastructure/loader"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-insights-api/pkg/log"
	"github.com/vfg2006/revenue-insights-api/pkg/utils"
)

type options struct {
	file      string
	dsn       string
	table     string
	output    string
	format    string
	quiet     bool
	logLevel  string
	analysis  config.Analysis
	columns   config.Loader
	cutoff    string
	horizons  string
	liftSpend string
	liftRoas  float64
	liftDays  string
}

type output struct {
	Dataset *domain.DatasetSummary `json:"dataset"`
	Report  *domain.Report         `json:"report"`
	Lift    *domain.LiftEstimate   `json:"lift,omitempty"`
}

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logrus.Fatal(err)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{analysis: config.DefaultAnalysis(), columns: config.DefaultLoader()}
	a := &opts.analysis

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "CSV or XLSX file with the revenue events")
	fs.StringVar(&opts.dsn, "dsn", os.Getenv("REVENUE_DSN"), "MySQL/MariaDB DSN, used when -file is empty")
	fs.StringVar(&opts.table, "table", "revenue_events", "table read from -dsn")
	fs.StringVar(&opts.output, "out", "", "write the report to this file instead of stdout")
	fs.StringVar(&opts.format, "format", "json", "output format: json or yaml")
	fs.BoolVar(&opts.quiet, "quiet", false, "hide the progress bar")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	fs.StringVar(&a.Granularity, "granularity", a.Granularity, "day, week or month")
	fs.IntVar(&a.ShortHorizon, "short", a.ShortHorizon, "short horizon in buckets")
	fs.IntVar(&a.LongHorizon, "long", a.LongHorizon, "long horizon in buckets")
	fs.StringVar(&a.CorrelationMethod, "method", a.CorrelationMethod, "pearson or spearman")
	fs.StringVar(&opts.cutoff, "cutoff", "", "optimisation cutoff date, YYYY-MM-DD")
	fs.Float64Var(&a.ConversionThreshold, "threshold", a.ConversionThreshold, "relative growth increase that counts as a conversion")
	fs.IntVar(&a.ConversionWindow, "window", a.ConversionWindow, "buckets compared on each side of the cutoff, 0 for all")
	fs.IntVar(&a.RankThreshold, "rank-threshold", a.RankThreshold, "rank positions that count as a move")
	fs.StringVar(&opts.horizons, "horizons", "", "comma separated horizons for the matrix and the curve")
	fs.StringVar(&a.MatrixMethod, "matrix-method", a.MatrixMethod, "pearson or spearman")
	fs.Float64Var(&a.PredictiveThreshold, "predictive-threshold", a.PredictiveThreshold, "correlation that makes a horizon predictive")
	fs.IntVar(&a.OptimisationWindow, "optimisation-window", a.OptimisationWindow, "buckets an ad platform optimises on")
	fs.IntVar(&a.MinHistoryDays, "min-history-days", a.MinHistoryDays, "warn below this many days of data")

	fs.StringVar(&opts.columns.CustomerColumn, "customer-column", opts.columns.CustomerColumn, "customer id column")
	fs.StringVar(&opts.columns.TimestampColumn, "timestamp-column", opts.columns.TimestampColumn, "timestamp column")
	fs.StringVar(&opts.columns.AmountColumn, "amount-column", opts.columns.AmountColumn, "amount column")

	fs.StringVar(&opts.liftSpend, "lift-spend", "", "monthly ad spend bracket, adds a lift estimate when set")
	fs.Float64Var(&opts.liftRoas, "lift-roas", 1, "regular ROAS for the lift estimate")
	fs.StringVar(&opts.liftDays, "lift-period", "D90", "ROAS period for the lift estimate")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.file == "" && opts.dsn == "" {
		return nil, fmt.Errorf("either -file or -dsn is required")
	}
	opts.format = strings.ToLower(opts.format)
	if opts.format != "json" && opts.format != "yaml" {
		return nil, fmt.Errorf("unknown format %q, expected json or yaml", opts.format)
	}
	if opts.horizons != "" {
		horizons, err := utils.ParseIntList(opts.horizons)
		if err != nil {
			return nil, fmt.Errorf("horizons: %w", err)
		}
		a.MatrixHorizons = horizons
	}

	return opts, nil
}

func (o *options) params() (domain.Params, error) {
	params, err := o.analysis.Params()
	if err != nil {
		return params, err
	}
	if params.Cutoff, err = utils.ParseDate(o.cutoff); err != nil {
		return params, fmt.Errorf("cutoff: %w", err)
	}
	return params, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	log.Setup(opts.logLevel)

	params, err := opts.params()
	if err != nil {
		return err
	}

	service := analyzing.NewService(loader.New(opts.columns), params, opts.analysis.MinHistoryDays)

	summary, err := loadDataset(ctx, service, opts)
	if err != nil {
		return err
	}
	for _, warning := range summary.Warnings {
		logrus.Warn(warning)
	}

	if !opts.quiet {
		bar := progressbar.NewOptions(len(analyzing.ReportSteps),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("analysing"),
			progressbar.OptionClearOnFinish(),
		)
		service.WithObserver(func(step string) {
			bar.Describe(step)
			_ = bar.Add(1)
		})
	}

	report, err := service.Report(ctx, params)
	if err != nil {
		return err
	}

	out := output{Dataset: summary, Report: report}
	if opts.liftSpend != "" {
		out.Lift, err = service.Lift(ctx, params, domain.LiftRequest{
			AdSpend:     opts.liftSpend,
			RoasPeriod:  opts.liftDays,
			RegularRoas: opts.liftRoas,
		})
		if err != nil {
			return fmt.Errorf("lift: %w", err)
		}
	}

	return write(out, opts, stdout)
}

func loadDataset(ctx context.Context, service *analyzing.Service, opts *options) (*domain.DatasetSummary, error) {
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return service.Load(ctx, opts.file, f, domain.FileFormatFromName(opts.file))
	}

	source, err := mysql.Open(ctx, opts.dsn, opts.table, opts.columns)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	result, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return service.Replace(ctx, opts.table, result)
}

func write(out output, opts *options, stdout io.Writer) error {
	var (
		content []byte
		err     error
	)
	if opts.format == "yaml" {
		content, err = utils.Yaml(out)
	} else {
		content, err = utils.PrettyJson(out)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if opts.output != "" {
		return os.WriteFile(opts.output, content, 0o644)
	}
	_, err = stdout.Write(content)
	return err
}
