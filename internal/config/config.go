package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config agrupa todo lo que cmd/api necesita para levantar el servicio.
type Config struct {
	Port          string
	AppEnv        string
	PublicBaseURL string

	DBDSN         string
	DBAutoMigrate bool

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	SupabaseJWTSecret  string

	Timezone *time.Location

	LogLevel  string
	LogFormat string
	AppName   string

	WaitlistRelayURL   string
	WaitlistRatePerSec float64
	WaitlistBurst      int

	AgentSearchCacheTTL time.Duration
	MaxUploadBytes      int64

	EnableDocs bool
}

// fileConfig es el formato del YAML opcional (PETTABL_CONFIG).
// Sus valores son defaults: cualquier env var definida gana.
type fileConfig struct {
	Port          string `yaml:"port"`
	AppEnv        string `yaml:"app_env"`
	AppName       string `yaml:"app_name"`
	PublicBaseURL string `yaml:"public_base_url"`

	Database struct {
		DSN         string `yaml:"dsn"`
		AutoMigrate bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Supabase struct {
		URL        string `yaml:"url"`
		AnonKey    string `yaml:"anon_key"`
		ServiceKey string `yaml:"service_key"`
		JWTSecret  string `yaml:"jwt_secret"`
	} `yaml:"supabase"`

	Timezone string `yaml:"timezone"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Waitlist struct {
		RelayURL   string  `yaml:"relay_url"`
		RatePerSec float64 `yaml:"rate_per_sec"`
		Burst      int     `yaml:"burst"`
	} `yaml:"waitlist"`

	AgentSearchCacheSeconds int   `yaml:"agent_search_cache_seconds"`
	MaxUploadBytes          int64 `yaml:"max_upload_bytes"`
	EnableAPIDocs           bool  `yaml:"enable_api_docs"`
}

const (
	defaultPort           = "8080"
	defaultMaxUploadBytes = 10 << 20
)

// Load lee .env (si existe), luego el YAML de PETTABL_CONFIG (si existe) y por último env.
func Load() (*Config, error) {
	// .env es opcional; en prod las vars vienen del entorno.
	_ = godotenv.Load()

	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv("PETTABL_CONFIG")); path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return nil, err
		}
		fc = loaded
	}

	tzName := getEnv("TIMEZONE", fc.Timezone)
	loc := time.UTC
	if strings.TrimSpace(tzName) != "" {
		l, err := time.LoadLocation(strings.TrimSpace(tzName))
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
		}
		loc = l
	}

	cfg := &Config{
		Port:          getEnv("PORT", orDefault(fc.Port, defaultPort)),
		AppEnv:        normalizeEnv(getEnv("APP_ENV", orDefault(fc.AppEnv, "production"))),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", fc.PublicBaseURL), "/"),

		DBDSN:         getEnv("DB_DSN", fc.Database.DSN),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", fc.Database.AutoMigrate),

		SupabaseURL:        strings.TrimRight(getEnv("SUPABASE_URL", fc.Supabase.URL), "/"),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", fc.Supabase.AnonKey),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", fc.Supabase.ServiceKey),
		SupabaseJWTSecret:  getEnv("SUPABASE_JWT_SECRET", fc.Supabase.JWTSecret),

		Timezone: loc,

		LogLevel:  getEnv("LOG_LEVEL", fc.Log.Level),
		LogFormat: getEnv("LOG_FORMAT", fc.Log.Format),
		AppName:   getEnv("APP_NAME", orDefault(fc.AppName, "pettabl")),

		WaitlistRelayURL:   getEnv("WAITLIST_RELAY_URL", fc.Waitlist.RelayURL),
		WaitlistRatePerSec: getEnvFloat("WAITLIST_RATE_PER_SEC", orDefaultFloat(fc.Waitlist.RatePerSec, 1)),
		WaitlistBurst:      getEnvInt("WAITLIST_BURST", orDefaultInt(fc.Waitlist.Burst, 5)),

		AgentSearchCacheTTL: time.Duration(getEnvInt("AGENT_SEARCH_CACHE_SECONDS", orDefaultInt(fc.AgentSearchCacheSeconds, 30))) * time.Second,
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", int(orDefaultInt64(fc.MaxUploadBytes, defaultMaxUploadBytes)))),

		EnableDocs: getEnvBool("ENABLE_API_DOCS", fc.EnableAPIDocs),
	}

	if cfg.SupabaseServiceKey != "" && cfg.SupabaseURL == "" {
		return nil, errors.New("SUPABASE_URL is required when SUPABASE_SERVICE_KEY is set")
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("decode config file: %w", err)
	}
	return fc, nil
}

// DocsEnabled: swagger solo en development.
func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

// SupabaseConfigured indica si hay proyecto Supabase para auth y storage.
func (c *Config) SupabaseConfigured() bool {
	return c != nil && c.SupabaseURL != "" && (c.SupabaseAnonKey != "" || c.SupabaseServiceKey != "")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultInt64(v, def int64) int64 {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultFloat(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
