package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"menu-planner/internal/week"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config holds the configuration for the application.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Storage  StorageConfig  `yaml:"storage"`
	HTTP     HTTPConfig     `yaml:"http"`
	Telegram TelegramConfig `yaml:"telegram"`
	Ghost    GhostConfig    `yaml:"ghost"`
	LLM      LLMConfig      `yaml:"llm"`
}

// AppConfig holds the planner defaults.
type AppConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	Title    string     `yaml:"title"`
	StartDay string     `yaml:"start_day"`
}

// StorageConfig selects where menus are persisted.
type StorageConfig struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`
	Key          string `yaml:"key"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// TelegramConfig holds the bot settings.
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	WebhookURL     string  `yaml:"webhook_url"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids"`
	AdminID        int64   `yaml:"admin_id"`
}

// GhostConfig points at the blog the menu is published to.
type GhostConfig struct {
	URL        string `yaml:"url"`
	ContentKey string `yaml:"content_key"`
	AdminKey   string `yaml:"admin_key"`
}

// LLMConfig selects the model used for meal suggestions.
type LLMConfig struct {
	Provider     string `yaml:"provider"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GroqAPIKey   string `yaml:"groq_api_key"`
}

// NewDefault returns a Config with the values used when nothing is set.
func NewDefault() *Config {
	return &Config{
		App: AppConfig{
			LogLevel: slog.LevelInfo,
			Title:    "Cardápio da Semana",
			StartDay: week.DefaultDays()[0].Key,
		},
		Storage: StorageConfig{
			Backend:      BackendFile,
			DataDir:      "data",
			DatabasePath: "data/menu.db",
			Key:          "menu_semana_v2",
		},
		HTTP: HTTPConfig{Port: 8080},
		LLM:  LLMConfig{Provider: ProviderGemini},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and the environment, in that order, and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further overrides
// and call Validate themselves.
func Read(path string) (*Config, error) {
	cfg := NewDefault()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromEnv creates a new Config object from environment variables only.
func NewFromEnv() (*Config, error) {
	return Load("")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(target *string, key string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}

	if v := os.Getenv("MENU_LOG_LEVEL"); v != "" {
		if err := c.App.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("MENU_LOG_LEVEL: %w", err)
		}
	}
	setString(&c.App.Title, "MENU_TITLE")
	setString(&c.App.StartDay, "MENU_START_DAY")

	setString(&c.Storage.Backend, "MENU_STORE")
	setString(&c.Storage.DataDir, "MENU_DATA_DIR")
	setString(&c.Storage.DatabasePath, "MENU_DB_PATH")
	setString(&c.Storage.Key, "MENU_STORAGE_KEY")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.HTTP.Port = port
	}
	setString(&c.HTTP.AuthToken, "MENU_API_TOKEN")

	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.WebhookURL, "TELEGRAM_WEBHOOK_URL")
	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS: %w", err)
		}
		c.Telegram.AllowedUserIDs = ids
	}
	if v := os.Getenv("TELEGRAM_ADMIN_ID"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_ADMIN_ID: %w", err)
		}
		c.Telegram.AdminID = id
	}

	setString(&c.Ghost.URL, "GHOST_API_URL")
	setString(&c.Ghost.ContentKey, "GHOST_CONTENT_API_KEY")
	setString(&c.Ghost.AdminKey, "GHOST_ADMIN_API_KEY")
	if c.Ghost.AdminKey == "" {
		// Fallback to content key if only one is provided
		c.Ghost.AdminKey = c.Ghost.ContentKey
	}

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.LLM.GroqAPIKey, "GROQ_API_KEY")
	return nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	days := week.Keys(week.DefaultDays())
	startDays := make([]any, len(days))
	for i, k := range days {
		startDays[i] = k
	}

	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.StartDay, validation.Required, validation.In(startDays...)),
	); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Backend, validation.Required, validation.In(BackendFile, BackendSQLite)),
		validation.Field(&c.Storage.DataDir, validation.When(c.Storage.Backend == BackendFile, validation.Required)),
		validation.Field(&c.Storage.DatabasePath, validation.When(c.Storage.Backend == BackendSQLite, validation.Required)),
		validation.Field(&c.Storage.Key, validation.Required),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := validation.ValidateStruct(&c.LLM,
		validation.Field(&c.LLM.Provider, validation.In(ProviderGemini, ProviderGroq)),
	); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// ValidateTelegram checks the settings the bot needs.
func (c *Config) ValidateTelegram() error {
	return validation.ValidateStruct(&c.Telegram,
		validation.Field(&c.Telegram.BotToken, validation.Required),
		validation.Field(&c.Telegram.WebhookURL, validation.Required),
		validation.Field(&c.Telegram.AllowedUserIDs, validation.Required),
	)
}

// ValidateGhost checks the settings publishing needs.
func (c *Config) ValidateGhost() error {
	return validation.ValidateStruct(&c.Ghost,
		validation.Field(&c.Ghost.URL, validation.Required),
		validation.Field(&c.Ghost.AdminKey, validation.Required),
	)
}

// ValidateLLM checks that the selected provider has an API key.
func (c *Config) ValidateLLM() error {
	return validation.ValidateStruct(&c.LLM,
		validation.Field(&c.LLM.GeminiAPIKey, validation.When(c.LLM.Provider == ProviderGemini, validation.Required)),
		validation.Field(&c.LLM.GroqAPIKey, validation.When(c.LLM.Provider == ProviderGroq, validation.Required)),
	)
}
