package config

const EnvPrefix = "MIXTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv       = "MIXTRACK_APP_ENV"
	EnvPort         = "MIXTRACK_APP_PORT"
	EnvLogLevel     = "MIXTRACK_LOG_LEVEL"
	EnvLogFormat    = "MIXTRACK_LOG_FORMAT"
	EnvLogWarnStack = "MIXTRACK_LOG_WARN_STACK"

	EnvDBDSN    = "MIXTRACK_DB_DSN"
	EnvDBDriver = "MIXTRACK_DB_DRIVER"
	EnvDBHost   = "MIXTRACK_DB_HOST"
	EnvDBPort   = "MIXTRACK_DB_PORT"
	EnvDBUser   = "MIXTRACK_DB_USER"
	EnvDBPass   = "MIXTRACK_DB_PASSWORD"
	EnvDBName   = "MIXTRACK_DB_NAME"

	EnvRedisURL  = "MIXTRACK_REDIS_URL"
	EnvRedisAddr = "MIXTRACK_REDIS_ADDR"

	EnvAutoMigrate    = "MIXTRACK_AUTO_MIGRATE"
	EnvReceiptKinds   = "MIXTRACK_RECEIPT_KINDS"
	EnvCORSOrigins    = "MIXTRACK_CORS_ORIGINS"
	EnvIdempotencyTTL = "MIXTRACK_IDEMPOTENCY_TTL"

	EnvCronInterval = "MIXTRACK_CRON_INTERVAL"
	EnvCronSchedule = "MIXTRACK_CRON_SCHEDULE"
	EnvCronLockTTL  = "MIXTRACK_CRON_LOCK_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
