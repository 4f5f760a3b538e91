package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "MERCATA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MERCATA_DB_DSN"
	EnvDBHost = "MERCATA_DB_HOST"
	EnvDBUser = "MERCATA_DB_USER"
	EnvDBName = "MERCATA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Commission   CommissionConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Cron         CronConfig
	RateLimit    RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Commission.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MERCATA_APP_ENV" required:"true"`
	Port         string `envconfig:"MERCATA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MERCATA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MERCATA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MERCATA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MERCATA_DB_DSN"`
	Driver string `envconfig:"MERCATA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MERCATA_DB_HOST"`
	LegacyPort     int    `envconfig:"MERCATA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MERCATA_DB_USER"`
	LegacyPassword string `envconfig:"MERCATA_DB_PASSWORD"`
	LegacyName     string `envconfig:"MERCATA_DB_NAME"`
	LegacySSLMode  string `envconfig:"MERCATA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MERCATA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MERCATA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MERCATA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MERCATA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MERCATA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MERCATA_REDIS_ADDR"`
	Password     string        `envconfig:"MERCATA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MERCATA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MERCATA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MERCATA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MERCATA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MERCATA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MERCATA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CommissionConfig carries the global vendor commission rate as a percentage
// (e.g. "20" means 20%). It is injected into the commission calculator and
// the forwarding workflow at construction time.
type CommissionConfig struct {
	RatePercent string `envconfig:"MERCATA_VENDOR_COMMISSION_RATE_PERCENT" default:"20"`
}

func (c CommissionConfig) validate() error {
	rate, err := decimal.NewFromString(c.RatePercent)
	if err != nil {
		return fmt.Errorf("invalid commission rate %q: %w", c.RatePercent, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("commission rate %q out of range [0,100]", c.RatePercent)
	}
	return nil
}

// Rate returns the configured percentage as a decimal fraction (20 -> 0.20).
func (c CommissionConfig) Rate() decimal.Decimal {
	return c.Percent().Div(decimal.NewFromInt(100))
}

// Percent returns the configured rate as a percentage (20 -> 20).
func (c CommissionConfig) Percent() decimal.Decimal {
	rate, err := decimal.NewFromString(c.RatePercent)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MERCATA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MERCATA_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"MERCATA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"MERCATA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"MERCATA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic       string `envconfig:"MERCATA_PUBSUB_ORDERS_TOPIC" default:"mercata-order-events"`
	CommissionTopic   string `envconfig:"MERCATA_PUBSUB_COMMISSION_TOPIC" default:"mercata-commission-events"`
	NotificationTopic string `envconfig:"MERCATA_PUBSUB_NOTIFICATION_TOPIC" default:"mercata-notification-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"MERCATA_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"MERCATA_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"MERCATA_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MERCATA_CRON_INTERVAL" default:"1h"`
}

// RateLimitConfig throttles checkout traffic per client IP and buyer email.
// A zero window disables the limiter.
type RateLimitConfig struct {
	CheckoutWindow     time.Duration `envconfig:"MERCATA_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutIPLimit    int           `envconfig:"MERCATA_RATE_LIMIT_CHECKOUT_IP" default:"30"`
	CheckoutEmailLimit int           `envconfig:"MERCATA_RATE_LIMIT_CHECKOUT_EMAIL" default:"10"`
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
