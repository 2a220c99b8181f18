package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Log     LogConfig
	Tracing TracingConfig
}

type ServerConfig struct {
	Port            string
	Environment     string
	GinMode         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type GeminiConfig struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	// APIKeyEnv is checked in order; the first non-empty variable wins.
	APIKeyEnv []string
}

// APIKey reads the credential from the environment on every call so a key
// exported after startup is picked up.
func (g GeminiConfig) APIKey() string {
	for _, name := range g.APIKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

type LogConfig struct {
	Mode string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	env := loadEnv("GO_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Port:        loadEnv("PORT", "8080"),
			Environment: env,
			GinMode:     loadEnv("GIN_MODE", ""),
			AllowedOrigins: loadEnvAsList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
			ShutdownTimeout: time.Duration(loadEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 5)) * time.Second,
		},
		Gemini: GeminiConfig{
			Model:           loadEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:     float32(loadEnvAsFloat("GEMINI_TEMPERATURE", 0.7)),
			TopP:            float32(loadEnvAsFloat("GEMINI_TOP_P", 0.95)),
			MaxOutputTokens: int32(loadEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 2048)),
			APIKeyEnv:       []string{"GEMINI_API_KEY", "API_KEY"},
		},
		Log: LogConfig{
			Mode: loadEnv("LOG_MODE", env),
		},
		Tracing: TracingConfig{
			Enabled:     loadEnvAsBool("OTEL_ENABLED", false),
			ServiceName: loadEnv("OTEL_SERVICE_NAME", "pvf-customer-form"),
		},
	}
}

func loadEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func loadEnvAsInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func loadEnvAsFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func loadEnvAsBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultVal
}

func loadEnvAsList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
