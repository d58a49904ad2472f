package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
)

const (
	defaultModel           = "gemini-1.5-flash"
	defaultAnalysisTimeout = 30 * time.Second
	defaultSessionTTL      = 24 * time.Hour
)

type Config struct {
	Gemini        GeminiConfig
	HTTPAddr      string
	TelegramToken string
	Redis         RedisConfig
	Logger        logger.Config
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RedisConfig is optional; an empty Host keeps bot sessions in memory.
type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// BotEnabled reports whether the Telegram surface should start.
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, fmt.Sprintf("%s: %v", key, err))
	}
	if d <= 0 {
		return 0, apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, key+" must be positive")
	}
	return d, nil
}

// Load reads configuration from the environment. A missing Gemini API key is
// a configuration error; the process must not start without it.
func Load() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, apperrors.NewConfigurationError(apperrors.CodeMissingCredential,
			"GEMINI_API_KEY (or GOOGLE_API_KEY) is not set")
	}

	timeout, err := parseDuration("ANALYSIS_TIMEOUT", defaultAnalysisTimeout)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := parseDuration("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		return nil, apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "REDIS_DB must be a non-negative integer")
	}

	return &Config{
		Gemini: GeminiConfig{
			APIKey:  apiKey,
			Model:   getEnvOrDefault("GEMINI_MODEL", defaultModel),
			Timeout: timeout,
		},
		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", ":8080"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Redis: RedisConfig{
			Host:       os.Getenv("REDIS_HOST"),
			Port:       getEnvOrDefault("REDIS_PORT", "6379"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         redisDB,
			SessionTTL: sessionTTL,
		},
		Logger: logger.Config{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
