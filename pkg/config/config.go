package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Quota         QuotaConfig
	SurvivalPack  SurvivalPackConfig
	Gemini        GeminiConfig
	Rates         RatesConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHAR_APP_ENV" required:"true"`
	Port         string `envconfig:"SHAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SHAR_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"SHAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHAR_REDIS_URL" required:"true"`
	Password     string        `envconfig:"SHAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SHAR_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SHAR_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SHAR_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SHAR_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHAR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SHAR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SHAR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SHAR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SHAR_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SHAR_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SHAR_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// QuotaConfig sets the daily ceilings for assistant calls. Day boundaries are
// evaluated in UTC.
type QuotaConfig struct {
	BaseDailyLimit     int `envconfig:"SHAR_QUOTA_BASE_DAILY_LIMIT" default:"5"`
	EntitledDailyLimit int `envconfig:"SHAR_QUOTA_ENTITLED_DAILY_LIMIT" default:"20"`
}

// SurvivalPackConfig controls the paid-tier entitlement window.
type SurvivalPackConfig struct {
	Duration time.Duration `envconfig:"SHAR_SURVIVAL_PACK_DURATION" default:"168h"`
}

type GeminiConfig struct {
	APIKey  string        `envconfig:"SHAR_GEMINI_API_KEY"`
	Model   string        `envconfig:"SHAR_GEMINI_MODEL" default:"gemini-3-flash-preview"`
	Timeout time.Duration `envconfig:"SHAR_GEMINI_TIMEOUT" default:"30s"`
}

type RatesConfig struct {
	BaseURL  string        `envconfig:"SHAR_RATES_BASE_URL" default:"https://myanmar-currency-api.github.io/api"`
	CacheTTL time.Duration `envconfig:"SHAR_RATES_CACHE_TTL" default:"10m"`
	Timeout  time.Duration `envconfig:"SHAR_RATES_TIMEOUT" default:"10s"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"SHAR_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	AlertsTopic string `envconfig:"SHAR_PUBSUB_ALERTS_TOPIC" default:"shar-alert-events"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHAR_AUTO_MIGRATE" default:"false"`
}
