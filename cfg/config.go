package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceSQL  = "sql"
	CatalogSourceFile = "file"
	CatalogSourceHTTP = "http"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type DatabaseConfig struct {
	Driver        string
	Postgres      PostgresConfig
	SQLitePath    string
	MigrationsURL string
}

// DSN is the data source name for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return d.Postgres.DSN()
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type CatalogConfig struct {
	Source         string
	File           string
	BaseURL        string
	ServiceToken   string
	RefreshSeconds int
}

type SearchConfig struct {
	MaxPackages       int
	MaxPerDestination int
	MaxCandidates     int
	MaxResults        int
	DeriveRoutes      bool
}

type AuthConfig struct {
	JWTSecret     string
	JWTTTLMinutes int
}

type Oauth2Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectUrl  string
	GithubClientID     string
	GithubClientSecret string
	GithubRedirectUrl  string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type OtelConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv             string
	AppPort            string
	NodeID             int64
	Database           DatabaseConfig
	RedisConfig        RedisConfig
	CacheEnabled       bool
	CacheTTLMinutes    int
	Catalog            CatalogConfig
	Search             SearchConfig
	Auth               AuthConfig
	Oauth2Config       Oauth2Config
	RateLimit          RateLimitConfig
	CORSAllowedOrigins []string
	Otel               OtelConfig
}

// Load reads the configuration from the environment, after loading .env
// when one exists. Every missing or malformed key is reported at once.
func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	c := &Config{
		AppEnv:          mustEnv("APP_ENV", &errs),
		AppPort:         mustEnv("APP_PORT", &errs),
		NodeID:          int64(getEnvInt("NODE_ID", 1, &errs)),
		CacheEnabled:    getEnvBool("CACHE_ENABLED", true, &errs),
		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 10, &errs),
		RedisConfig: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Catalog: CatalogConfig{
			Source:         mustEnv("CATALOG_SOURCE", &errs),
			RefreshSeconds: getEnvInt("CATALOG_REFRESH_SECONDS", 60, &errs),
		},
		Search: SearchConfig{
			MaxPackages:       getEnvInt("SEARCH_MAX_PACKAGES", 3, &errs),
			MaxPerDestination: getEnvInt("SEARCH_MAX_PER_DESTINATION", 8, &errs),
			MaxCandidates:     getEnvInt("SEARCH_MAX_CANDIDATES", 5000, &errs),
			MaxResults:        getEnvInt("SEARCH_MAX_RESULTS", 10, &errs),
			DeriveRoutes:      getEnvBool("TRANSPORT_DERIVE_ROUTES", false, &errs),
		},
		Auth: AuthConfig{
			JWTSecret:     mustEnv("JWT_SECRET", &errs),
			JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 30, &errs),
		},
		Oauth2Config: Oauth2Config{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectUrl:  getEnv("GOOGLE_REDIRECT_URL", ""),
			GithubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			GithubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
			GithubRedirectUrl:  getEnv("GITHUB_REDIRECT_URL", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 5, &errs),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 10, &errs),
		},
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Otel: OtelConfig{
			Enabled:      getEnvBool("OTEL_ENABLED", false, &errs),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "travelagg"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		},
	}

	switch c.Catalog.Source {
	case CatalogSourceSQL, "":
	case CatalogSourceFile:
		c.Catalog.File = mustEnv("CATALOG_FILE", &errs)
	case CatalogSourceHTTP:
		c.Catalog.BaseURL = mustEnv("CATALOG_BASE_URL", &errs)
		c.Catalog.ServiceToken = getEnv("CATALOG_SERVICE_TOKEN", "")
	default:
		errs = append(errs, fmt.Errorf("invalid env: CATALOG_SOURCE %q (want sql, file or http)", c.Catalog.Source))
	}

	// users and chat always live in SQL, so the database is required whatever the catalog source
	c.Database = loadDatabase(&errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// LoadDatabase reads only the database settings, for tools that do not run
// the API.
func LoadDatabase() (DatabaseConfig, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DatabaseConfig{}, errors.New("failed load cfg: " + err.Error())
	}

	d := loadDatabase(&errs)
	return d, errors.Join(errs...)
}

func loadDatabase(errs *[]error) DatabaseConfig {
	d := DatabaseConfig{
		Driver:        mustEnv("DB_DRIVER", errs),
		MigrationsURL: getEnv("DB_MIGRATIONS_URL", "file://db/migrations"),
	}

	switch d.Driver {
	case "postgres":
		d.Postgres = PostgresConfig{
			Host:     mustEnv("POSTGRES_HOST", errs),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     mustEnv("POSTGRES_USER", errs),
			Password: mustEnv("POSTGRES_PASSWORD", errs),
			DBName:   mustEnv("POSTGRES_DB", errs),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		}
	case "sqlite":
		d.SQLitePath = mustEnv("SQLITE_PATH", errs)
	case "":
	default:
		*errs = append(*errs, fmt.Errorf("invalid env: DB_DRIVER %q (want postgres or sqlite)", d.Driver))
	}
	return d
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
