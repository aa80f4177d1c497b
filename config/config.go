package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LLMProvider string
	GroqAPIKey  string
	GroqModel   string
	OpenAIKey   string
	OpenAIModel string
	OllamaHost  string
	OllamaModel string

	MaxRetries       int
	RetryBaseDelayMs int

	BrowserHeadless    bool
	ChromeBin          string
	BrowserOpTimeoutMs int
	ListingsPerSite    int

	ReportDir     string
	CSVOutputPath string
	LogDir        string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		LLMProvider: getEnv("LLM_PROVIDER", "groq"),
		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		GroqModel:   getEnv("GROQ_MODEL", "mixtral-8x7b-32768"),
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OllamaHost:  getEnv("OLLAMA_HOST", "http://localhost:11434/v1"),
		OllamaModel: getEnv("OLLAMA_MODEL", "llama3"),

		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
		RetryBaseDelayMs: getEnvInt("RETRY_BASE_DELAY_MS", 1000),

		BrowserHeadless:    getEnvBool("BROWSER_HEADLESS", true),
		ChromeBin:          getEnv("CHROME_BIN", ""),
		BrowserOpTimeoutMs: getEnvInt("BROWSER_OP_TIMEOUT_MS", 10000),
		ListingsPerSite:    getEnvInt("LISTINGS_PER_SITE", 5),

		ReportDir:     getEnv("REPORT_DIR", "./output"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/raw_listings.csv"),
		LogDir:        getEnv("LOG_DIR", "./logs"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "shopquery"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "shopquery123"),
		PostgresDB:       getEnv("POSTGRES_DB", "shopquery_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
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
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
