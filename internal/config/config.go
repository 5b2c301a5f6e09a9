package config

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const jwtSecretBytes = 32

// Storage drivers
const (
	StoreDriverKv       = "kv"
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// Key-value drivers
const (
	KvDriverMemory = "memory"
	KvDriverSqlite = "sqlite"
	KvDriverRedis  = "redis"
)

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Swagger         bool          `env:"HTTP_SWAGGER" envDefault:"true"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type StorageCfg struct {
	Driver          string        `env:"STORE_DRIVER" envDefault:"kv"`
	KvDriver        string        `env:"KV_DRIVER" envDefault:"sqlite"`
	RequirementsKey string        `env:"STORE_REQUIREMENTS_KEY" envDefault:"ilandspaces_customers_v3"`
	SessionKey      string        `env:"STORE_SESSION_KEY" envDefault:"ilandspaces_admin_session_v3"`
	ConnectTimeout  time.Duration `env:"STORE_CONNECT_TIMEOUT" envDefault:"5s"`
}

type SqliteCfg struct {
	Path string `env:"SQLITE_PATH" envDefault:"data/leads.db"`
}

type RedisCfg struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"leads:"`
}

type PostgresCfg struct {
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	Database    string `env:"POSTGRES_DB" envDefault:"leads"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"10"`
}

// DSN builds pgx connection string
func (c PostgresCfg) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SslMode, c.PoolMaxConn,
	)
}

type MongoCfg struct {
	User        string `env:"MONGO_USER"`
	Password    string `env:"MONGO_PASSWORD"`
	Host        string `env:"MONGO_HOST" envDefault:"localhost"`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	Database    string `env:"MONGO_DB" envDefault:"leads"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

// URI builds mongo connection uri, credentials are added only if user is set
func (c MongoCfg) URI() string {
	creds := ""
	if c.User != "" {
		creds = fmt.Sprintf("%s:%s@", c.User, c.Password)
	}
	return fmt.Sprintf("mongodb://%s%s:%d/?maxPoolSize=%d", creds, c.Host, c.Port, c.MaxPoolSize)
}

type JwtCfg struct {
	Issuer     string        `env:"AUTH_JWT_ISSUER" envDefault:"leads-api"`
	Secret     string        `env:"AUTH_JWT_SECRET"`
	TimeToLive time.Duration `env:"AUTH_JWT_TIME_TO_LIVE" envDefault:"0s"`
}

type AuthCfg struct {
	AdminEmail        string        `env:"AUTH_ADMIN_EMAIL" envDefault:"admin@company.com"`
	AdminPassword     string        `env:"AUTH_ADMIN_PASSWORD" envDefault:"12345"`
	AdminPasswordHash string        `env:"AUTH_ADMIN_PASSWORD_HASH"`
	LoginDelay        time.Duration `env:"AUTH_LOGIN_DELAY" envDefault:"1s"`
	JwtCfg            JwtCfg
}

type SubmissionCfg struct {
	Delay        time.Duration `env:"SUBMISSION_DELAY" envDefault:"800ms"`
	ChallengeTTL time.Duration `env:"SUBMISSION_CHALLENGE_TTL" envDefault:"10m"`
}

type ExportCfg struct {
	FilePrefix string `env:"EXPORT_FILE_PREFIX" envDefault:"ilandspaces_leads"`
	DateLayout string `env:"EXPORT_DATE_LAYOUT" envDefault:"1/2/2006"`
	Timezone   string `env:"EXPORT_TIMEZONE" envDefault:"UTC"`
}

// Location loads configured export timezone
func (c ExportCfg) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type NotifyCfg struct {
	AmqpURL      string `env:"AMQP_URL"`
	AmqpExchange string `env:"AMQP_EXCHANGE" envDefault:"leads.requirements"`
}

type Config struct {
	HTTPCfg       HTTPCfg
	LogCfg        LogCfg
	StorageCfg    StorageCfg
	SqliteCfg     SqliteCfg
	RedisCfg      RedisCfg
	PostgresCfg   PostgresCfg
	MongoCfg      MongoCfg
	AuthCfg       AuthCfg
	SubmissionCfg SubmissionCfg
	ExportCfg     ExportCfg
	NotifyCfg     NotifyCfg
}

// Build reads configuration from environment, variables from files are loaded first without overriding set ones
func Build(envFiles ...string) (Config, error) {
	var cfg Config

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return cfg, fmt.Errorf("failed to load env files - %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	if cfg.AuthCfg.JwtCfg.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return cfg, err
		}
		cfg.AuthCfg.JwtCfg.Secret = secret
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.StorageCfg.Driver {
	case StoreDriverKv, StoreDriverPostgres, StoreDriverMongo:
	default:
		return fmt.Errorf("unknown store driver %s", cfg.StorageCfg.Driver)
	}

	switch cfg.StorageCfg.KvDriver {
	case KvDriverMemory, KvDriverSqlite, KvDriverRedis:
	default:
		return fmt.Errorf("unknown key-value driver %s", cfg.StorageCfg.KvDriver)
	}

	if _, err := cfg.ExportCfg.Location(); err != nil {
		return fmt.Errorf("unknown export timezone %s - %w", cfg.ExportCfg.Timezone, err)
	}
	return nil
}

// randomSecret is used when no secret is configured, sessions don't survive restart then
func randomSecret() (string, error) {
	b := make([]byte, jwtSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret - %w", err)
	}
	return fmt.Sprintf("%x", b), nil
}
