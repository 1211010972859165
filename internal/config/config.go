package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Keys as seen by viper; environment variables are the upper-cased forms.
const (
	KeyEnv               = "app_env"
	KeyRunAddress        = "run_address"
	KeyShutdownTimeout   = "shutdown_timeout"
	KeyLogLevel          = "log_level"
	KeyStorageDriver     = "storage_driver"
	KeyDatabaseURI       = "database_uri"
	KeySQLitePath        = "sqlite_path"
	KeyMigrationsPath    = "migrations_path"
	KeyRedisAddr         = "redis_addr"
	KeyRedisPassword     = "redis_password"
	KeyRedisDB           = "redis_db"
	KeyCacheTTL          = "cache_ttl"
	KeyAuthTokens        = "auth_tokens"
	KeyGeocoderURL       = "geocoder_url"
	KeyGeocoderUserAgent = "geocoder_user_agent"
	KeyGeocoderTimeout   = "geocoder_timeout"
)

type Config struct {
	Env      string
	Server   server
	Logger   logger
	Storage  storage
	DB       db
	Cache    cache
	Auth     auth
	Geocoder geocoder
}

type server struct {
	RunAddress      string
	ShutdownTimeout time.Duration
}

type logger struct {
	LogLevel string
}

type storage struct {
	Driver     string
	SQLitePath string
	Migrations string
}

type db struct {
	DatabaseURI string
}

type cache struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type auth struct {
	// Tokens maps a user id to the bcrypt hash of its API secret.
	Tokens map[string]string
}

type geocoder struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// Enabled reports whether a Redis cache is configured.
func (c cache) Enabled() bool { return c.RedisAddr != "" }

// MigrationsDir returns the migration directory of the configured driver.
func (s storage) MigrationsDir() string {
	return filepath.Join(s.Migrations, s.Driver)
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnv, EnvLocal)
	v.SetDefault(KeyRunAddress, ":8080")
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStorageDriver, DriverSQLite)
	v.SetDefault(KeySQLitePath, "blogcanvas.db")
	v.SetDefault(KeyMigrationsPath, "migrations")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyCacheTTL, 5*time.Minute)
	v.SetDefault(KeyGeocoderURL, "https://nominatim.openstreetmap.org")
	v.SetDefault(KeyGeocoderUserAgent, "blogcanvas-geocoder/1.0")
	v.SetDefault(KeyGeocoderTimeout, 10*time.Second)
}

// Load reads the configuration from v, which must already carry its sources.
func Load(v *viper.Viper) (*Config, error) {
	tokens, err := ParseTokens(v.GetString(KeyAuthTokens))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: v.GetString(KeyEnv),
		Server: server{
			RunAddress:      v.GetString(KeyRunAddress),
			ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		},
		Logger: logger{LogLevel: v.GetString(KeyLogLevel)},
		Storage: storage{
			Driver:     strings.ToLower(v.GetString(KeyStorageDriver)),
			SQLitePath: v.GetString(KeySQLitePath),
			Migrations: v.GetString(KeyMigrationsPath),
		},
		DB: db{DatabaseURI: v.GetString(KeyDatabaseURI)},
		Cache: cache{
			RedisAddr:     v.GetString(KeyRedisAddr),
			RedisPassword: v.GetString(KeyRedisPassword),
			RedisDB:       v.GetInt(KeyRedisDB),
			TTL:           v.GetDuration(KeyCacheTTL),
		},
		Auth: auth{Tokens: tokens},
		Geocoder: geocoder{
			URL:       v.GetString(KeyGeocoderURL),
			UserAgent: v.GetString(KeyGeocoderUserAgent),
			Timeout:   v.GetDuration(KeyGeocoderTimeout),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown environment %q", KeyEnv, c.Env))
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.DB.DatabaseURI == "" {
			errs = append(errs, fmt.Errorf("%s is required for the postgres driver", KeyDatabaseURI))
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, fmt.Errorf("%s is required for the sqlite driver", KeySQLitePath))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: unknown driver %q", KeyStorageDriver, c.Storage.Driver))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyCacheTTL))
	}
	return errors.Join(errs...)
}

// ParseTokens reads "user:hash,user:hash". Bcrypt hashes never contain ':' or ','.
func ParseTokens(s string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, hash, ok := strings.Cut(pair, ":")
		if !ok || user == "" || hash == "" {
			return nil, fmt.Errorf("%s: malformed entry %q", KeyAuthTokens, pair)
		}
		tokens[user] = hash
	}
	return tokens, nil
}

// New builds a viper instance over the environment with defaults applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return v
}

// MustLoad loads .env when present, then the environment.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load(New())
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}
