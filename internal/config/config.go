package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/pkg/utils"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Analysis        Analysis        `mapstructure:",squash"`
	Loader          Loader          `mapstructure:",squash"`
	ReportRetention ReportRetention `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host          string   `mapstructure:"host"`
	Port          string   `mapstructure:"port"`
	MaxUploadMB   int64    `mapstructure:"max_upload_mb"`
	AllowedOrigin []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	Enabled  bool   `mapstructure:"database_enabled"`
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret         string        `mapstructure:"auth_secret"`
	AdminKeyHash   string        `mapstructure:"auth_admin_key_hash"`
	AnalystKeyHash string        `mapstructure:"auth_analyst_key_hash"`
	TokenTTL       time.Duration `mapstructure:"auth_token_ttl"`
}

// Analysis holds the defaults applied when a request does not set a parameter.
type Analysis struct {
	Granularity         string  `mapstructure:"analysis_granularity"`
	ShortHorizon        int     `mapstructure:"analysis_short_horizon"`
	LongHorizon         int     `mapstructure:"analysis_long_horizon"`
	ConversionThreshold float64 `mapstructure:"analysis_conversion_threshold"`
	ConversionWindow    int     `mapstructure:"analysis_conversion_window"`
	RankThreshold       int     `mapstructure:"analysis_rank_threshold"`
	CorrelationMethod   string  `mapstructure:"analysis_correlation_method"`
	MatrixHorizons      []int   `mapstructure:"analysis_matrix_horizons"`
	MatrixMethod        string  `mapstructure:"analysis_matrix_method"`
	PredictiveThreshold float64 `mapstructure:"analysis_predictive_threshold"`
	OptimisationWindow  int     `mapstructure:"analysis_optimisation_window"`
	MinHistoryDays      int     `mapstructure:"analysis_min_history_days"`
}

// Loader names the columns of uploaded files.
type Loader struct {
	CustomerColumn   string `mapstructure:"loader_customer_column"`
	TimestampColumn  string `mapstructure:"loader_timestamp_column"`
	AmountColumn     string `mapstructure:"loader_amount_column"`
	ActivationColumn string `mapstructure:"loader_activation_column"`
	TouchpointColumn string `mapstructure:"loader_touchpoint_column"`
}

type ReportRetention struct {
	CronSchedule string `mapstructure:"report_retention_cron"`
	Days         int    `mapstructure:"report_retention_days"`
	Enabled      bool   `mapstructure:"report_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("MAX_UPLOAD_MB", 64)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/revenue?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "") // empty disables authentication
	viper.SetDefault("AUTH_ADMIN_KEY_HASH", "")
	viper.SetDefault("AUTH_ANALYST_KEY_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("ANALYSIS_GRANULARITY", "month")
	viper.SetDefault("ANALYSIS_SHORT_HORIZON", 1)
	viper.SetDefault("ANALYSIS_LONG_HORIZON", 3)
	viper.SetDefault("ANALYSIS_CONVERSION_THRESHOLD", 0.5)
	viper.SetDefault("ANALYSIS_CONVERSION_WINDOW", 0)
	viper.SetDefault("ANALYSIS_RANK_THRESHOLD", 1)
	viper.SetDefault("ANALYSIS_CORRELATION_METHOD", "pearson")
	viper.SetDefault("ANALYSIS_MATRIX_HORIZONS", "1,3,7,14,30,60,90,180")
	viper.SetDefault("ANALYSIS_MATRIX_METHOD", "spearman")
	viper.SetDefault("ANALYSIS_PREDICTIVE_THRESHOLD", 0.85)
	viper.SetDefault("ANALYSIS_OPTIMISATION_WINDOW", 3)
	viper.SetDefault("ANALYSIS_MIN_HISTORY_DAYS", 90)

	viper.SetDefault("LOADER_CUSTOMER_COLUMN", "user_id")
	viper.SetDefault("LOADER_TIMESTAMP_COLUMN", "timestamp")
	viper.SetDefault("LOADER_AMOUNT_COLUMN", "value")
	viper.SetDefault("LOADER_ACTIVATION_COLUMN", "is_activation")
	viper.SetDefault("LOADER_TOUCHPOINT_COLUMN", "first_touchpoint")

	viper.SetDefault("REPORT_RETENTION_CRON", "0 3 * * *") // every day at 3am
	viper.SetDefault("REPORT_RETENTION_DAYS", 30)
	viper.SetDefault("REPORT_RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("config: using environment variables, viper could not read .env: ", err)
	} else {
		logrus.Info("config: .env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if _, err := config.Analysis.Params(); err != nil {
		return nil, fmt.Errorf("invalid analysis defaults: %w", err)
	}

	return config, nil
}

// Params converts the analysis defaults into a parameter set.
func (a Analysis) Params() (domain.Params, error) {
	granularity, err := domain.ParseGranularity(a.Granularity)
	if err != nil {
		return domain.Params{}, err
	}
	method, err := domain.ParseCorrelationMethod(a.CorrelationMethod)
	if err != nil {
		return domain.Params{}, err
	}
	matrixMethod, err := domain.ParseCorrelationMethod(a.MatrixMethod)
	if err != nil {
		return domain.Params{}, err
	}
	if err := domain.ValidateHorizons(a.ShortHorizon, a.LongHorizon); err != nil {
		return domain.Params{}, err
	}

	return domain.Params{
		Granularity:         granularity,
		ShortHorizon:        a.ShortHorizon,
		LongHorizon:         a.LongHorizon,
		ConversionThreshold: a.ConversionThreshold,
		RankThreshold:       a.RankThreshold,
		CorrelationMethod:   method,
		Horizons:            append([]int(nil), a.MatrixHorizons...),
		MatrixMethod:        matrixMethod,
		PredictiveThreshold: a.PredictiveThreshold,
		OptimisationWindow:  a.OptimisationWindow,
		Window:              a.ConversionWindow,
	}, nil
}

// Columns returns the loader column names, lower-cased for header matching.
func (l Loader) Columns() []string {
	columns := []string{l.CustomerColumn, l.TimestampColumn, l.AmountColumn, l.ActivationColumn, l.TouchpointColumn}
	for i := range columns {
		columns[i] = strings.ToLower(strings.TrimSpace(columns[i]))
	}
	return columns
}

// DefaultAnalysis is used by tools that run without a .env, such as the report CLI.
func DefaultAnalysis() Analysis {
	horizons, _ := utils.ParseIntList("1,3,7,14,30,60,90,180")
	return Analysis{
		Granularity:         string(domain.GranularityMonth),
		ShortHorizon:        1,
		LongHorizon:         3,
		ConversionThreshold: 0.5,
		RankThreshold:       1,
		CorrelationMethod:   string(domain.MethodPearson),
		MatrixHorizons:      horizons,
		MatrixMethod:        string(domain.MethodSpearman),
		PredictiveThreshold: 0.85,
		OptimisationWindow:  3,
		MinHistoryDays:      90,
	}
}

func DefaultLoader() Loader {
	return Loader{
		CustomerColumn:   "user_id",
		TimestampColumn:  "timestamp",
		AmountColumn:     "value",
		ActivationColumn: "is_activation",
		TouchpointColumn: "first_touchpoint",
	}
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not get working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env loaded from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found")
}
