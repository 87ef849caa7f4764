package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"
	_ "time/tzdata" // LEDGER_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	DBDriver   string // mysql | postgres | sqlite
	DBLogLevel string // silent | error | warn | info

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string
	SQLitePath  string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	LedgerTimezone      string
	SchedulerEnabled    bool
	SchedulerAccrualAt  string // HH:MM
	SchedulerReminderAt string // HH:MM

	NotifyTimeoutMS    int
	RiskCacheTTLSecs   int
	AccrualLockTTLSecs int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "microcredit")
	v.SetDefault("MYSQL_USER", "microcredit")
	v.SetDefault("MYSQL_PASS", "microcredit")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("SQLITE_PATH", "microcredit.db")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("LEDGER_TIMEZONE", "Africa/Maputo")
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("SCHEDULER_ACCRUAL_AT", "00:00")
	v.SetDefault("SCHEDULER_REMINDER_AT", "08:00")
	v.SetDefault("NOTIFY_TIMEOUT_MS", 2000)
	v.SetDefault("RISK_CACHE_TTL_SECONDS", 60)
	v.SetDefault("ACCRUAL_LOCK_TTL_SECONDS", 30)
}

// Load reads config.yaml from the working directory when present; environment
// variables win over the file.
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("config: %v", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:    v.GetString("APP_PORT"),
		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBLogLevel: strings.ToLower(v.GetString("DB_LOG_LEVEL")),

		MySQLHost: v.GetString("MYSQL_HOST"),
		MySQLPort: v.GetString("MYSQL_PORT"),
		MySQLDB:   v.GetString("MYSQL_DB"),
		MySQLUser: v.GetString("MYSQL_USER"),
		MySQLPass: v.GetString("MYSQL_PASS"),

		PostgresDSN: v.GetString("POSTGRES_DSN"),
		SQLitePath:  v.GetString("SQLITE_PATH"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisDB:   v.GetInt("REDIS_DB"),

		IdempTTLSecs: v.GetInt("IDEMPOTENCY_TTL_SECONDS"),

		LedgerTimezone:      v.GetString("LEDGER_TIMEZONE"),
		SchedulerEnabled:    v.GetBool("SCHEDULER_ENABLED"),
		SchedulerAccrualAt:  v.GetString("SCHEDULER_ACCRUAL_AT"),
		SchedulerReminderAt: v.GetString("SCHEDULER_REMINDER_AT"),

		NotifyTimeoutMS:    v.GetInt("NOTIFY_TIMEOUT_MS"),
		RiskCacheTTLSecs:   v.GetInt("RISK_CACHE_TTL_SECONDS"),
		AccrualLockTTLSecs: v.GetInt("ACCRUAL_LOCK_TTL_SECONDS"),
	}
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
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid LEDGER_TIMEZONE %q: %w", c.LedgerTimezone, err)
	}
	for key, at := range map[string]string{
		"SCHEDULER_ACCRUAL_AT":  c.SchedulerAccrualAt,
		"SCHEDULER_REMINDER_AT": c.SchedulerReminderAt,
	} {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("invalid %s %q: want HH:MM", key, at)
		}
	}
	return nil
}

// Location is the zone whose calendar days the ledger counts.
func (c *Config) Location() (*time.Location, error) {
	if c.LedgerTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.LedgerTimezone)
}

func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutMS) * time.Millisecond
}

func (c *Config) RiskCacheTTL() time.Duration {
	return time.Duration(c.RiskCacheTTLSecs) * time.Second
}

func (c *Config) AccrualLockTTL() time.Duration {
	return time.Duration(c.AccrualLockTTLSecs) * time.Second
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
