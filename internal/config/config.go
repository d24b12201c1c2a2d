package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Production = "production"

type ServerOptions struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseOptions struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"staffsync"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (d DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type RecordStoreOptions struct {
	// Backend is "postgres" (self-hosted tables through gorm) or "http"
	// (the vendor's hosted record API).
	Backend   string        `env:"RECORD_STORE_BACKEND" envDefault:"postgres"`
	URL       string        `env:"RECORD_STORE_URL"`
	ProjectID string        `env:"APPER_PROJECT_ID"`
	PublicKey string        `env:"APPER_PUBLIC_KEY"`
	Timeout   time.Duration `env:"RECORD_STORE_TIMEOUT" envDefault:"0s"`
}

type KafkaOptions struct {
	Broker            string `env:"KAFKA_BROKER"`
	NotificationGroup string `env:"KAFKA_NOTIFICATION_GROUP" envDefault:"staffsync-notifications"`
}

type DirectoryOptions struct {
	DefaultPageSize       int           `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	ListPageSize          int           `env:"LIST_PAGE_SIZE" envDefault:"10"`
	SearchDebounce        time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`
	NotFoundRedirectDelay time.Duration `env:"NOT_FOUND_REDIRECT_DELAY" envDefault:"10s"`
	ThemePrefersDark      bool          `env:"THEME_PREFERS_DARK" envDefault:"false"`
}

// SessionOptions bound the lifetime of in-memory session state. The idle
// timeout matches the session cookie's max age.
type SessionOptions struct {
	IdleTimeout  time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"168h"`
	ReapInterval time.Duration `env:"SESSION_REAP_INTERVAL" envDefault:"5m"`
}

type Configuration struct {
	AppEnv          string `env:"APP_ENV" envDefault:"development"`
	AuthTokenSecret string `env:"AUTH_TOKEN_SECRET"`
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	MetricsPath     string `env:"METRICS_PATH" envDefault:"/metrics"`

	Server      ServerOptions
	Database    DatabaseOptions
	RecordStore RecordStoreOptions
	Kafka       KafkaOptions
	Directory   DirectoryOptions
	Session     SessionOptions
}

// LoadEnv loads whichever of the given dotenv files exist. Missing files
// are not an error.
func LoadEnv(envFiles ...string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads .env files and then the process environment.
func Load() (*Configuration, error) {
	if _, err := LoadEnv(".env", ".env.local"); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Configuration, error) {
	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) IsProduction() bool {
	return c.AppEnv == Production
}

func (c *Configuration) Validate() error {
	switch c.RecordStore.Backend {
	case "postgres":
	case "http":
		if c.RecordStore.URL == "" {
			return errors.New("RECORD_STORE_URL is required when RECORD_STORE_BACKEND is http")
		}
	default:
		return fmt.Errorf("RECORD_STORE_BACKEND must be 'postgres' or 'http', got '%s'", c.RecordStore.Backend)
	}
	if c.AuthTokenSecret == "" {
		return errors.New("AUTH_TOKEN_SECRET is required")
	}
	if c.Directory.DefaultPageSize <= 0 || c.Directory.ListPageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if c.Session.IdleTimeout <= 0 || c.Session.ReapInterval <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT and SESSION_REAP_INTERVAL must be positive")
	}
	if c.Directory.SearchDebounce < 0 {
		return errors.New("SEARCH_DEBOUNCE must not be negative")
	}
	return nil
}
