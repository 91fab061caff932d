package internal

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Session       SessionConfig       `mapstructure:"session"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Security      SecurityConfig      `mapstructure:"security"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type AppConfig struct {
	Env string `mapstructure:"env" validate:"required,oneof=development production test"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes    int64         `mapstructure:"max_upload_bytes"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	Source          string        `mapstructure:"source" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// SessionConfig drives both the server-side session record and the cookie
// handed to the browser.
type SessionConfig struct {
	Secret         string        `mapstructure:"secret" validate:"required,min=32"`
	TTL            time.Duration `mapstructure:"ttl" validate:"required,min=1m"`
	Store          string        `mapstructure:"store" validate:"required,oneof=database redis"`
	PruneInterval  time.Duration `mapstructure:"prune_interval"`
	CookieName     string        `mapstructure:"cookie_name" validate:"required"`
	CookieDomain   string        `mapstructure:"cookie_domain"`
	CookiePath     string        `mapstructure:"cookie_path"`
	CookieSecure   bool          `mapstructure:"cookie_secure"`
	CookieHTTPOnly bool          `mapstructure:"cookie_http_only"`
	CookieSameSite string        `mapstructure:"cookie_same_site" validate:"omitempty,oneof=lax strict none"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"min=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SecurityConfig struct {
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"required,min=4,max=15"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json text"`
}

// LoadConfigFromEnv builds the configuration from plain environment variables.
func LoadConfigFromEnv() *Config {
	env := getEnv("APP_ENV", EnvProduction)
	return &Config{
		App: AppConfig{Env: env},
		Server: ServerConfig{
			Port:              getEnvAsInt("PORT", 5000),
			BaseURL:           getEnv("BASE_URL", ""),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", ""),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout:   getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
			MaxUploadBytes:    int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DATABASE_DRIVER", "postgres"),
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DATABASE_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Session: SessionConfig{
			Secret:         getEnv("SESSION_SECRET", ""),
			TTL:            getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
			Store:          getEnv("SESSION_STORE", "database"),
			PruneInterval:  getEnvAsDuration("SESSION_PRUNE_INTERVAL", 15*time.Minute),
			CookieName:     getEnv("SESSION_COOKIE_NAME", "connect.sid"),
			CookieDomain:   getEnv("SESSION_COOKIE_DOMAIN", ""),
			CookiePath:     getEnv("SESSION_COOKIE_PATH", "/"),
			CookieSecure:   getEnvAsBool("SESSION_COOKIE_SECURE", env == EnvProduction),
			CookieHTTPOnly: getEnvAsBool("SESSION_COOKIE_HTTP_ONLY", true),
			CookieSameSite: getEnv("SESSION_COOKIE_SAME_SITE", defaultSameSite(env)),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "sess:"),
		},
		Security: SecurityConfig{
			BCryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: getEnvAsBool("METRICS_ENABLED", false),
				Path:    getEnv("METRICS_PATH", "/metrics"),
			},
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

func defaultSameSite(env string) string {
	if env == EnvProduction {
		return "none"
	}
	return "lax"
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

var configValidator = validator.New()

func (c *Config) Validate() error {
	var errs []string

	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Sprintf("%s: failed on '%s'", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if c.Session.Store == "redis" && c.Redis.Addr == "" {
		errs = append(errs, "redis config: addr is required when session store is redis")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	for _, origin := range c.Origins() {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil {
			return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid allowed origin %s: scheme and host required", origin)
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

// Origins returns the trimmed, non-empty entries of AllowedOrigins.
func (c *ServerConfig) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SessionConfig) Validate() error {
	if len(c.Secret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	if c.SameSite() == http.SameSiteNoneMode && !c.CookieSecure {
		return errors.New("cookie_same_site=none requires cookie_secure=true")
	}
	return nil
}

func (c *SessionConfig) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
