package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	DBDriver      string // mysql | sqlite
	DBLogLevel    string
	DBAutoMigrate bool

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	RedisAddr string // empty disables idempotency and the report cache
	RedisDB   int

	IdempTTLSecs int

	LoanPeriodDays int
	FinePerDay     float64
	FineTimezone   string

	ReportCacheTTLSecs     int
	OverdueRefreshSchedule string

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	ShutdownTimeoutSecs int
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "library")
	v.SetDefault("MYSQL_USER", "library")
	v.SetDefault("MYSQL_PASS", "library")
	v.SetDefault("SQLITE_PATH", "library.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("LOAN_PERIOD_DAYS", 14)
	v.SetDefault("FINE_PER_DAY", 1.00)
	v.SetDefault("FINE_TIMEZONE", "UTC")
	v.SetDefault("REPORT_CACHE_TTL_SECONDS", 60)
	v.SetDefault("OVERDUE_REFRESH_SCHEDULE", "")
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:       v.GetString("APP_PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBLogLevel:    v.GetString("DB_LOG_LEVEL"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		MySQLHost:     v.GetString("MYSQL_HOST"),
		MySQLPort:     v.GetString("MYSQL_PORT"),
		MySQLDB:       v.GetString("MYSQL_DB"),
		MySQLUser:     v.GetString("MYSQL_USER"),
		MySQLPass:     v.GetString("MYSQL_PASS"),
		SQLitePath:    v.GetString("SQLITE_PATH"),

		RedisAddr:    v.GetString("REDIS_ADDR"),
		RedisDB:      v.GetInt("REDIS_DB"),
		IdempTTLSecs: v.GetInt("IDEMPOTENCY_TTL_SECONDS"),

		LoanPeriodDays: v.GetInt("LOAN_PERIOD_DAYS"),
		FinePerDay:     v.GetFloat64("FINE_PER_DAY"),
		FineTimezone:   v.GetString("FINE_TIMEZONE"),

		ReportCacheTTLSecs:     v.GetInt("REPORT_CACHE_TTL_SECONDS"),
		OverdueRefreshSchedule: v.GetString("OVERDUE_REFRESH_SCHEDULE"),

		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		ShutdownTimeoutSecs: v.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (mysql|sqlite)", c.DBDriver)
	}
	if c.LoanPeriodDays <= 0 {
		return fmt.Errorf("invalid LOAN_PERIOD_DAYS %d", c.LoanPeriodDays)
	}
	if c.FinePerDay < 0 {
		return fmt.Errorf("invalid FINE_PER_DAY %v", c.FinePerDay)
	}
	if _, err := c.FineLocation(); err != nil {
		return fmt.Errorf("invalid FINE_TIMEZONE %q: %w", c.FineTimezone, err)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	if c.ReportCacheTTLSecs < 0 {
		return fmt.Errorf("invalid REPORT_CACHE_TTL_SECONDS %d", c.ReportCacheTTLSecs)
	}
	return nil
}

func (c *Config) FineLocation() (*time.Location, error) {
	if c.FineTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.FineTimezone)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath + "?_busy_timeout=5000&_foreign_keys=on"
	}
	return c.MySQLDSN()
}
