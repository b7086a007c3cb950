package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	HTTP         HTTPConfig
	Dashboard    DashboardConfig
	Ingest       IngestConfig
	FeatureFlags FeatureFlagsConfig
	Telemetry    TelemetryConfig
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
	Env          string `envconfig:"SPORTOMIC_APP_ENV" required:"true"`
	Port         string `envconfig:"SPORTOMIC_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"SPORTOMIC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SPORTOMIC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SPORTOMIC_DB_DSN"`
	Driver string `envconfig:"SPORTOMIC_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SPORTOMIC_DB_HOST"`
	LegacyPort     int    `envconfig:"SPORTOMIC_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SPORTOMIC_DB_USER"`
	LegacyPassword string `envconfig:"SPORTOMIC_DB_PASSWORD"`
	LegacyName     string `envconfig:"SPORTOMIC_DB_NAME"`
	LegacySSLMode  string `envconfig:"SPORTOMIC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SPORTOMIC_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SPORTOMIC_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SPORTOMIC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SPORTOMIC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	ConnectTimeout  time.Duration `envconfig:"SPORTOMIC_DB_CONNECT_TIMEOUT" default:"8s"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

// RedisConfig is optional. With no URL or address, idempotent import replay is off.
type RedisConfig struct {
	URL          string        `envconfig:"SPORTOMIC_REDIS_URL"`
	Address      string        `envconfig:"SPORTOMIC_REDIS_ADDR"`
	Password     string        `envconfig:"SPORTOMIC_REDIS_PASSWORD"`
	DB           int           `envconfig:"SPORTOMIC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SPORTOMIC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SPORTOMIC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SPORTOMIC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SPORTOMIC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SPORTOMIC_REDIS_WRITE_TIMEOUT" default:"5s"`
	ImportTTL    time.Duration `envconfig:"SPORTOMIC_REDIS_IMPORT_TTL" default:"24h"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type HTTPConfig struct {
	AllowedOrigins  []string      `envconfig:"SPORTOMIC_ALLOWED_ORIGINS" default:"https://two02412066-sportomic.onrender.com,http://localhost:5173"`
	ReadTimeout     time.Duration `envconfig:"SPORTOMIC_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SPORTOMIC_HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SPORTOMIC_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	MaxImportBytes  int64         `envconfig:"SPORTOMIC_MAX_IMPORT_BYTES" default:"10485760"`
}

// Origins returns the trimmed, non-empty allowed origins.
func (h HTTPConfig) Origins() []string {
	out := make([]string, 0, len(h.AllowedOrigins))
	for _, origin := range h.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type DashboardConfig struct {
	Parallelism int `envconfig:"SPORTOMIC_DASHBOARD_PARALLELISM" default:"4"`
}

type IngestConfig struct {
	Concurrency int `envconfig:"SPORTOMIC_INGEST_CONCURRENCY" default:"4"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SPORTOMIC_AUTO_MIGRATE" default:"false"`
}

type TelemetryConfig struct {
	Enabled        bool    `envconfig:"SPORTOMIC_TELEMETRY_ENABLED" default:"false"`
	CollectorAddr  string  `envconfig:"SPORTOMIC_OTEL_COLLECTOR_ADDR" default:"localhost:4317"`
	SampleRatio    float64 `envconfig:"SPORTOMIC_OTEL_SAMPLE_RATIO" default:"1"`
	ServiceName    string  `envconfig:"SPORTOMIC_OTEL_SERVICE_NAME" default:"sportomic-api"`
	ServiceVersion string  `envconfig:"SPORTOMIC_SERVICE_VERSION" default:"dev"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DriverSQLite)
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
