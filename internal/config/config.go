package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultDatabaseURL is the embedded file-backed store used when DATABASE_URL is unset.
	DefaultDatabaseURL = "sqlite:///./quiz_history.db"

	legacyPostgresScheme = "postgres://"
	postgresScheme       = "postgresql://"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Redis    RedisConfig
	Scraper  ScraperConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	URL string
}

// LLMConfig selects and configures the text-completion backend.
// Credentials are checked when a quiz is generated, not at startup.
type LLMConfig struct {
	Provider        string
	Model           string
	Temperature     float64
	Timeout         time.Duration
	GeminiAPIKey    string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OllamaServerURL string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	QuizTTL  time.Duration
}

type ScraperConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type LoggerConfig struct {
	Env   string
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 0)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.cors_allow_origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("database.url", "")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 0)
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.quiz_ttl", time.Hour)
	v.SetDefault("scraper.timeout", 10*time.Second)
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
}

func bindEnv(v *viper.Viper) {
	bindings := map[string]string{
		"server.port":               "SERVER_PORT",
		"server.read_timeout":       "SERVER_READ_TIMEOUT",
		"server.write_timeout":      "SERVER_WRITE_TIMEOUT",
		"server.cors_allow_origins": "CORS_ALLOW_ORIGINS",
		"database.url":              "DATABASE_URL",
		"llm.provider":              "LLM_PROVIDER",
		"llm.model":                 "LLM_MODEL",
		"llm.timeout":               "LLM_TIMEOUT",
		"llm.gemini.api_key":        "GEMINI_API_KEY",
		"llm.openai.api_key":        "OPENAI_API_KEY",
		"llm.openai.base_url":       "OPENAI_BASE_URL",
		"llm.ollama.server_url":     "OLLAMA_SERVER_URL",
		"redis.address":             "REDIS_ADDRESS",
		"redis.password":            "REDIS_PASSWORD",
		"redis.db":                  "REDIS_DB",
		"redis.quiz_ttl":            "QUIZ_CACHE_TTL",
		"scraper.timeout":           "SCRAPER_TIMEOUT",
		"scraper.user_agent":        "SCRAPER_USER_AGENT",
		"logger.env":                "ENV",
		"logger.level":              "LOG_LEVEL",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}

// LoadConfig reads .env, an optional config.yaml and the environment, in
// increasing order of precedence.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:             v.GetInt("server.port"),
			ReadTimeout:      v.GetDuration("server.read_timeout"),
			WriteTimeout:     v.GetDuration("server.write_timeout"),
			CORSAllowOrigins: v.GetString("server.cors_allow_origins"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(v.GetString("llm.provider")),
			Model:           v.GetString("llm.model"),
			Temperature:     v.GetFloat64("llm.temperature"),
			Timeout:         v.GetDuration("llm.timeout"),
			GeminiAPIKey:    v.GetString("llm.gemini.api_key"),
			OpenAIAPIKey:    v.GetString("llm.openai.api_key"),
			OpenAIBaseURL:   v.GetString("llm.openai.base_url"),
			OllamaServerURL: v.GetString("llm.ollama.server_url"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			QuizTTL:  v.GetDuration("redis.quiz_ttl"),
		},
		Scraper: ScraperConfig{
			Timeout:   v.GetDuration("scraper.timeout"),
			UserAgent: v.GetString("scraper.user_agent"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
	}
}

// GetDatabaseURL returns the configured connection string, falling back to the
// embedded store and rewriting the legacy postgres:// scheme.
func (c *Config) GetDatabaseURL() string {
	return NormalizeDatabaseURL(c.Database.URL)
}

func NormalizeDatabaseURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return DefaultDatabaseURL
	}
	if strings.HasPrefix(url, legacyPostgresScheme) {
		return postgresScheme + strings.TrimPrefix(url, legacyPostgresScheme)
	}
	return url
}
