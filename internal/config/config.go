package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultWordsURL = "https://docs.google.com/spreadsheets/d/1o9IzlEOipQm4TAnqqMe1MfxDvE6LFJYUEkYt2TeJ5Oc/export?format=csv"

// Config holds all application configuration
type Config struct {
	HTTPAddr       string
	ClientOrigin   string
	LogLevel       string
	SessionIdleTTL time.Duration
	Words          WordsConfig
	Bot            BotConfig
	Database       DatabaseConfig
}

// WordsConfig holds word list sources
type WordsConfig struct {
	URL          string
	LocalFile    string
	FetchTimeout time.Duration
}

// BotConfig holds Telegram settings; the bot is disabled without a token
type BotConfig struct {
	Token    string
	Password string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	fetchTimeout, err := getDuration("WORDS_FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	idleTTL, err := getDuration("SESSION_IDLE_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SessionIdleTTL: idleTTL,
		Words: WordsConfig{
			URL:          getEnv("WORDS_CSV_URL", defaultWordsURL),
			LocalFile:    getEnv("WORDS_LOCAL_FILE", "words.csv"),
			FetchTimeout: fetchTimeout,
		},
		Bot: BotConfig{
			Token:    os.Getenv("BOT_TOKEN"),
			Password: os.Getenv("BOT_PASSWORD"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordmatch"),
			User:     getEnv("DB_USER", "wordmatch"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate conditional fields
	if cfg.BotEnabled() && cfg.Bot.Password == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required when BOT_TOKEN is set")
	}
	if cfg.SessionIdleTTL <= 0 || cfg.Words.FetchTimeout <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TTL and WORDS_FETCH_TIMEOUT must be positive")
	}
	if cfg.Words.URL == "" && cfg.Words.LocalFile == "" {
		return nil, fmt.Errorf("WORDS_CSV_URL or WORDS_LOCAL_FILE is required")
	}

	return cfg, nil
}

// BotEnabled reports whether the Telegram bot should run
func (c *Config) BotEnabled() bool {
	return c.Bot.Token != ""
}

// DatabaseEnabled reports whether results are persisted to PostgreSQL
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Password != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
