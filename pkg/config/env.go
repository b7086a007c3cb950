package config

const EnvPrefix = "SPORTOMIC"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "SPORTOMIC_APP_ENV"
	EnvPort     = "SPORTOMIC_APP_PORT"
	EnvLogLevel = "SPORTOMIC_LOG_LEVEL"

	EnvDBDSN      = "SPORTOMIC_DB_DSN"
	EnvDBDriver   = "SPORTOMIC_DB_DRIVER"
	EnvDBHost     = "SPORTOMIC_DB_HOST"
	EnvDBUser     = "SPORTOMIC_DB_USER"
	EnvDBPassword = "SPORTOMIC_DB_PASSWORD"
	EnvDBName     = "SPORTOMIC_DB_NAME"
	EnvDBMaxOpen  = "SPORTOMIC_DB_MAX_OPEN_CONNS"

	EnvRedisURL = "SPORTOMIC_REDIS_URL"

	EnvAllowedOrigins = "SPORTOMIC_ALLOWED_ORIGINS"
	EnvMaxImportBytes = "SPORTOMIC_MAX_IMPORT_BYTES"

	EnvDashboardParallelism = "SPORTOMIC_DASHBOARD_PARALLELISM"
	EnvIngestConcurrency    = "SPORTOMIC_INGEST_CONCURRENCY"

	EnvTelemetryEnabled = "SPORTOMIC_TELEMETRY_ENABLED"
)

// legacyDBEnvVars must all be set when no DSN is given for postgres.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
