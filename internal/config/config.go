package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type DatabaseConfig struct {
	Driver      string
	URL         string
	LogLevel    string
	AutoMigrate bool
}

type AuthConfig struct {
	JWTSecret          []byte
	SessionTTL         time.Duration
	GitHubClientID     string
	GitHubClientSecret string
	OAuthRedirectURL   string
	FrontendURL        string
}

type LLMConfig struct {
	Provider string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	GeminiAPIKey  string
	GeminiModelID string

	AnthropicAPIKey string
	AnthropicModel  string

	RatePerMinute int
}

// Config is everything the server reads from its environment.
type Config struct {
	Port        string
	CORSOrigins string
	LogLevel    string
	LogFormat   string

	Database DatabaseConfig
	Auth     AuthConfig
	LLM      LLMConfig

	RedisURL string
	CacheTTL time.Duration
}

// Load reads the environment, optionally seeded from a .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using process environment")
	}

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3001")

	return &Config{
		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", frontendURL),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			URL:         os.Getenv("DB_URL"),
			LogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate: getBool("AUTO_MIGRATE", false),
		},
		Auth: AuthConfig{
			JWTSecret:          []byte(os.Getenv("JWT_SECRET")),
			SessionTTL:         getDuration("SESSION_TTL", 7*24*time.Hour),
			GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			OAuthRedirectURL:   os.Getenv("OAUTH_REDIRECT_URL"),
			FrontendURL:        frontendURL,
		},
		LLM: LLMConfig{
			Provider:        getEnv("LLM_PROVIDER", "openai"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
			OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
			GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
			GroqModel:       os.Getenv("GROQ_MODEL_NAME"),
			GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			GeminiModelID:   os.Getenv("GEMINI_MODEL_ID"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
			RatePerMinute:   getInt("AI_RATE_PER_MINUTE", 10),
		},
		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: getDuration("CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
