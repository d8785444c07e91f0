package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Storage
	Database     DatabaseConfig
	Conversation ConversationConfig

	// Assistant
	Assistant AssistantConfig
	Telegram  TelegramConfig
	LLM       LLMConfig
}

type EnvironmentConfig struct {
	Name string `validate:"oneof=development production"`
}

type HTTPServerConfig struct {
	Port            int    `validate:"min=1,max=65535"`
	Mode            string `validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string `validate:"oneof=debug info warn error dpanic panic fatal"`
	Mode         string `validate:"oneof=debug development production"`
	Encoding     string `validate:"oneof=console json"`
	ColorEnabled bool
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int `validate:"min=0"`
	MaxClients     int `validate:"min=0"`
}

type DatabaseConfig struct {
	// DSN is a modernc sqlite data source, e.g. "file:tasks.db?_pragma=foreign_keys(1)".
	DSN string `validate:"required"`
}

type ConversationConfig struct {
	Backend          string `validate:"oneof=memory redis"`
	RedisURL         string `validate:"required_if=Backend redis"`
	PairCount        int    `validate:"min=1,max=50"`
	TTL              time.Duration
	MaxConversations int `validate:"min=1"`
}

type AssistantConfig struct {
	Timezone      string `validate:"required"`
	MaxCandidates int    `validate:"min=1,max=20"`
	ListLimit     int    `validate:"min=1,max=100"`
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string `validate:"omitempty,url"`
	WebhookSecret string
	// NgrokAPI is the local ngrok API, consulted when WebhookURL is empty.
	NgrokAPI string `validate:"omitempty,url"`
}

// LLMConfig configures the optional fallback delegate. With no enabled
// provider the assistant answers unmatched utterances with a canned reply.
type LLMConfig struct {
	Providers       []ProviderConfig `validate:"dive"`
	FallbackEnabled bool
	RetryAttempts   int `validate:"min=0,max=10"`
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `validate:"required"`
	Enabled  bool
	Priority int `validate:"min=0"`
	APIKey   string
	BaseURL  string `validate:"omitempty,url"`
	Model    string
	Timeout  time.Duration
}

// Load reads .env (if any), then config.yaml from ./config, . or /etc/app/, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = v.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.MaxClients = v.GetInt("rate_limit.max_clients")

	// Storage
	cfg.Database.DSN = v.GetString("database.dsn")
	if dsn := v.GetString("database_url"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	cfg.Conversation.Backend = v.GetString("conversation.backend")
	cfg.Conversation.RedisURL = v.GetString("conversation.redis_url")
	if redisURL := v.GetString("redis_url"); redisURL != "" {
		cfg.Conversation.RedisURL = redisURL
	}
	cfg.Conversation.PairCount = v.GetInt("conversation.pair_count")
	cfg.Conversation.TTL = v.GetDuration("conversation.ttl")
	cfg.Conversation.MaxConversations = v.GetInt("conversation.max_conversations")

	// Assistant
	cfg.Assistant.Timezone = v.GetString("assistant.timezone")
	cfg.Assistant.MaxCandidates = v.GetInt("assistant.max_candidates")
	cfg.Assistant.ListLimit = v.GetInt("assistant.list_limit")

	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	cfg.Telegram.NgrokAPI = v.GetString("telegram.ngrok_api")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// LLM
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetDuration("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetDuration("llm.max_total_timeout")
	cfg.LLM.Providers = providersFromViper(v)

	return cfg
}

// providersFromViper reads llm.providers. When the file lists none, GEMINI_API_KEY,
// DEEPSEEK_API_KEY and QWEN_API_KEY in the environment each enable that provider.
func providersFromViper(v *viper.Viper) []ProviderConfig {
	var providers []ProviderConfig
	if raw, ok := v.Get("llm.providers").([]interface{}); ok {
		for _, p := range raw {
			m, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			providers = append(providers, ProviderConfig{
				Name:     getStringFromMap(m, "name"),
				Enabled:  getBoolFromMap(m, "enabled"),
				Priority: getIntFromMap(m, "priority"),
				APIKey:   expandEnvVar(v, getStringFromMap(m, "api_key")),
				BaseURL:  getStringFromMap(m, "base_url"),
				Model:    getStringFromMap(m, "model"),
				Timeout:  getDurationFromMap(m, "timeout"),
			})
		}
	}

	if len(providers) > 0 {
		return providers
	}
	for i, name := range envProviders {
		if key := v.GetString(name + "_api_key"); key != "" {
			providers = append(providers, ProviderConfig{
				Name:     name,
				Enabled:  true,
				Priority: i + 1,
				APIKey:   key,
				Model:    v.GetString(name + "_model"),
			})
		}
	}
	return providers
}

// envProviders may be enabled with <NAME>_API_KEY alone, in this priority order.
var envProviders = []string{"gemini", "deepseek", "qwen"}

// Validate checks the struct tags and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Assistant.Timezone); err != nil {
		return fmt.Errorf("invalid config: assistant.timezone: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_min", 60)
	v.SetDefault("rate_limit.max_clients", 1000)

	v.SetDefault("database.dsn", "file:tasks.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	v.SetDefault("conversation.backend", "memory")
	v.SetDefault("conversation.pair_count", 5)
	v.SetDefault("conversation.ttl", "24h")
	v.SetDefault("conversation.max_conversations", 10000)

	v.SetDefault("assistant.timezone", "UTC")
	v.SetDefault("assistant.max_candidates", 7)
	v.SetDefault("assistant.list_limit", 10)

	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 2)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "20s")
}

// expandEnvVar expands values of the form ${VAR_NAME}.
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	name := value[2 : len(value)-1]
	if envValue := v.GetString(strings.ToLower(name)); envValue != "" {
		return envValue
	}
	return os.Getenv(name)
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if str, ok := m[key].(string); ok {
		return str
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	switch val := m[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return 0
}

func getDurationFromMap(m map[string]interface{}, key string) time.Duration {
	d, _ := time.ParseDuration(getStringFromMap(m, key))
	return d
}
