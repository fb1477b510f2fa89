package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Reconcile    ReconcileConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Reconcile.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPBALANCE_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPBALANCE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPBALANCE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPBALANCE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SHOPBALANCE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPBALANCE_DB_DSN"`
	Driver string `envconfig:"SHOPBALANCE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPBALANCE_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPBALANCE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPBALANCE_DB_USER"`
	LegacyPassword string `envconfig:"SHOPBALANCE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPBALANCE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPBALANCE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPBALANCE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPBALANCE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPBALANCE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPBALANCE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPBALANCE_REDIS_URL"`
	Address      string        `envconfig:"SHOPBALANCE_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPBALANCE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPBALANCE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPBALANCE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPBALANCE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPBALANCE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPBALANCE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPBALANCE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPBALANCE_AUTO_MIGRATE" default:"false"`
}

// ReconcileConfig drives the daily balance rebuild and its scheduler.
type ReconcileConfig struct {
	ReportTimezone    string        `envconfig:"SHOPBALANCE_REPORT_TIMEZONE" default:"UTC"`
	RemittanceFormula string        `envconfig:"SHOPBALANCE_REMITTANCE_FORMULA" default:"gross"`
	CronInterval      time.Duration `envconfig:"SHOPBALANCE_CRON_INTERVAL" default:"24h"`
	CronLockTTL       time.Duration `envconfig:"SHOPBALANCE_CRON_LOCK_TTL" default:"1h"`
	LookbackDays      int           `envconfig:"SHOPBALANCE_LOOKBACK_DAYS" default:"1"`
}

// Location resolves the timezone used to bucket orders into report days.
func (r ReconcileConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(r.ReportTimezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading report timezone %q: %w", name, err)
	}
	return loc, nil
}

func (r ReconcileConfig) validate() error {
	if _, err := r.Location(); err != nil {
		return err
	}
	if r.LookbackDays < 1 {
		return fmt.Errorf("%s must be at least 1", EnvLookbackDays)
	}
	switch strings.ToLower(strings.TrimSpace(r.RemittanceFormula)) {
	case RemittanceFormulaGross, RemittanceFormulaNetOfPackaging:
		return nil
	}
	return fmt.Errorf("unsupported %s %q", EnvRemittanceFormula, r.RemittanceFormula)
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
