package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is built once at startup and
// passed to components; nothing reads the environment after LoadConfig returns.
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Log      LogConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN         string // sqlite file path, or a postgres:// URL
	DialTimeout time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for PDF pages, default 300
	MaxPages      int    // pages beyond this cap are skipped; 0 = no limit
	Preprocess    bool   // grayscale/upscale images before OCR
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider        string // "gemini" | "openai" | "ollama"
	Model           string
	APIKey          string
	BaseURL         string
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
	Timeout         time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string // "debug" | "info" | "warn" | "error"
	Path  string // empty -> stdout
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is honored when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			DSN:         getEnv("DATABASE_PATH", "invoices.db"),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_CMD", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_CMD", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("MAX_PAGES_PER_PDF", 10),
			Preprocess:    getEnvAsBool("OCR_PREPROCESS", false),
		},
		LLM: LLMConfig{
			Provider:        getEnv("LLM_PROVIDER", "gemini"),
			Model:           getEnv("LLM_MODEL", "gemini-2.0-flash-exp"),
			APIKey:          getEnv("GOOGLE_API_KEY", os.Getenv("OPENAI_API_KEY")),
			BaseURL:         getEnv("LLM_BASE_URL", ""),
			Temperature:     getEnvAsFloat32("LLM_TEMPERATURE", 0),
			TopP:            getEnvAsFloat32("LLM_TOP_P", 0.95),
			TopK:            getEnvAsInt("LLM_TOP_K", 64),
			MaxOutputTokens: getEnvAsInt("LLM_MAX_OUTPUT_TOKENS", 8192),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Path:  getEnv("LOG_FILE", ""),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DATABASE_PATH is required", ErrInvalidInput)
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
		if c.LLM.APIKey == "" {
			return NewAppError("CONFIG_ERROR", "API key is required for provider "+c.LLM.Provider, ErrInvalidInput)
		}
	case "ollama":
		// local provider, no key
	default:
		return NewAppError("CONFIG_ERROR", "unknown LLM_PROVIDER "+c.LLM.Provider, ErrInvalidInput)
	}
	if c.OCR.MaxPages < 0 {
		return NewAppError("CONFIG_ERROR", "MAX_PAGES_PER_PDF must be >= 0", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
