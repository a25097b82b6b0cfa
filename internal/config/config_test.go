package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv empties every variable Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "CLIENT_ORIGIN", "LOG_LEVEL", "SESSION_IDLE_TTL",
		"WORDS_CSV_URL", "WORDS_LOCAL_FILE", "WORDS_FETCH_TIMEOUT",
		"BOT_TOKEN", "BOT_PASSWORD",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "")
	d, err := getDuration("TEST_DURATION", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)

	t.Setenv("TEST_DURATION", "250ms")
	d, err = getDuration("TEST_DURATION", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	t.Setenv("TEST_DURATION", "soon")
	_, err = getDuration("TEST_DURATION", time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_DURATION")
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:5173", cfg.ClientOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.SessionIdleTTL)
	assert.Equal(t, defaultWordsURL, cfg.Words.URL)
	assert.Equal(t, "words.csv", cfg.Words.LocalFile)
	assert.Equal(t, 10*time.Second, cfg.Words.FetchTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "wordmatch", cfg.Database.Name)
	assert.Equal(t, "wordmatch", cfg.Database.User)
	assert.False(t, cfg.BotEnabled())
	assert.False(t, cfg.DatabaseEnabled())
}

func TestLoad_OptionalParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("BOT_PASSWORD", "test_password")
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("WORDS_LOCAL_FILE", "/srv/words.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.BotEnabled())
	assert.True(t, cfg.DatabaseEnabled())
	assert.Equal(t, "test_token", cfg.Bot.Token)
	assert.Equal(t, "test_password", cfg.Bot.Password)
	assert.Equal(t, "/srv/words.csv", cfg.Words.LocalFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		contains string
	}{
		{
			name:     "bot token without password",
			env:      map[string]string{"BOT_TOKEN": "test_token"},
			contains: "BOT_PASSWORD",
		},
		{
			name:     "invalid fetch timeout",
			env:      map[string]string{"WORDS_FETCH_TIMEOUT": "ten"},
			contains: "WORDS_FETCH_TIMEOUT",
		},
		{
			name:     "zero idle ttl",
			env:      map[string]string{"SESSION_IDLE_TTL": "0s"},
			contains: "must be positive",
		},
		{
			name:     "invalid idle ttl",
			env:      map[string]string{"SESSION_IDLE_TTL": "forever"},
			contains: "SESSION_IDLE_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
