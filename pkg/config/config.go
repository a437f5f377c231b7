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
	Receipts     ReceiptsConfig
	CORS         CORSConfig
	Idempotency  IdempotencyConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MIXTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"MIXTRACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MIXTRACK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"MIXTRACK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"MIXTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MIXTRACK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MIXTRACK_DB_DSN"`
	Driver string `envconfig:"MIXTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MIXTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"MIXTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MIXTRACK_DB_USER"`
	LegacyPassword string `envconfig:"MIXTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"MIXTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"MIXTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MIXTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MIXTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MIXTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MIXTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"MIXTRACK_DB_SLOW_QUERY" default:"200ms"`
}

// IsSQLite reports whether the configured driver is sqlite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"MIXTRACK_REDIS_URL"`
	Address      string        `envconfig:"MIXTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"MIXTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"MIXTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MIXTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MIXTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MIXTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MIXTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MIXTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MIXTRACK_AUTO_MIGRATE" default:"false"`
}

type ReceiptsConfig struct {
	Kinds []string `envconfig:"MIXTRACK_RECEIPT_KINDS" default:"raspberry,strawberry"`
}

type CORSConfig struct {
	Origins []string `envconfig:"MIXTRACK_CORS_ORIGINS" default:"http://localhost:3000"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"MIXTRACK_IDEMPOTENCY_TTL" default:"24h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MIXTRACK_CRON_INTERVAL" default:"1h"`
	Schedule string        `envconfig:"MIXTRACK_CRON_SCHEDULE"`
	LockTTL  time.Duration `envconfig:"MIXTRACK_CRON_LOCK_TTL" default:"30m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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
