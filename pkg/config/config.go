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
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Stock        StockConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"WARUNGPOS_APP_ENV" required:"true"`
	Port         string `envconfig:"WARUNGPOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WARUNGPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WARUNGPOS_LOG_WARN_STACK" default:"false"`

	// CORSOrigins lists extra allowed origins beyond the local dev defaults.
	CORSOrigins []string `envconfig:"WARUNGPOS_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WARUNGPOS_DB_DSN"`
	Driver string `envconfig:"WARUNGPOS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WARUNGPOS_DB_HOST"`
	Port     int    `envconfig:"WARUNGPOS_DB_PORT" default:"5432"`
	User     string `envconfig:"WARUNGPOS_DB_USER"`
	Password string `envconfig:"WARUNGPOS_DB_PASSWORD"`
	Name     string `envconfig:"WARUNGPOS_DB_NAME"`
	SSLMode  string `envconfig:"WARUNGPOS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WARUNGPOS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WARUNGPOS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WARUNGPOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WARUNGPOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WARUNGPOS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WARUNGPOS_REDIS_ADDR"`
	Password     string        `envconfig:"WARUNGPOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WARUNGPOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WARUNGPOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WARUNGPOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WARUNGPOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WARUNGPOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WARUNGPOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	// CartTTL caps how long an abandoned cashier cart survives in Redis.
	CartTTL time.Duration `envconfig:"WARUNGPOS_SESSION_CART_TTL" default:"24h"`
}

type StockConfig struct {
	// LowStockThreshold drives the admin low-stock alert listing.
	LowStockThreshold int `envconfig:"WARUNGPOS_STOCK_LOW_THRESHOLD" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WARUNGPOS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WARUNGPOS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
