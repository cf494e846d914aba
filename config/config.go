package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// Command-line flags override the loaded values.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SkipDB           bool

	Keyword        string
	PagesToScrape  int
	MaxConcurrency int
	MaxRetries     int
	RetryBaseDelay time.Duration
	MinPagePause   time.Duration
	MaxPagePause   time.Duration
	MinBatchPause  time.Duration
	MaxBatchPause  time.Duration
	RequestTimeout time.Duration
	DetailTimeout  time.Duration
	BaseURL        string

	CSVOutputPath      string
	JSONOutputPath     string
	InsightsOutputPath string
	ChromeBin          string
	LogLevel           string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "mercadolibre_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SkipDB:           getEnvBool("SKIP_DB", false),

		Keyword:        getEnv("KEYWORD", ""),
		PagesToScrape:  getEnvInt("PAGES_TO_SCRAPE", 1),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		RetryBaseDelay: getEnvDuration("RETRY_BASE_DELAY", 500*time.Millisecond),
		MinPagePause:   getEnvDuration("MIN_PAGE_PAUSE", time.Second),
		MaxPagePause:   getEnvDuration("MAX_PAGE_PAUSE", 3*time.Second),
		MinBatchPause:  getEnvDuration("MIN_BATCH_PAUSE", 2*time.Second),
		MaxBatchPause:  getEnvDuration("MAX_BATCH_PAUSE", 4*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		DetailTimeout:  getEnvDuration("DETAIL_TIMEOUT", 60*time.Second),
		BaseURL:        getEnv("BASE_URL", "https://listado.mercadolibre.com.ar/"),

		CSVOutputPath:      getEnv("CSV_OUTPUT_PATH", "mercadolibre_products.csv"),
		JSONOutputPath:     getEnv("JSON_OUTPUT_PATH", "mercadolibre_products.json"),
		InsightsOutputPath: getEnv("INSIGHTS_OUTPUT_PATH", "mercadolibre_insights.json"),
		ChromeBin:          getEnv("CHROME_BIN", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
