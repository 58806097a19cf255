package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Prompt     PromptConfig     `mapstructure:"prompt"`
	LogLevel   string           `mapstructure:"log_level"`
	LogMode    string           `mapstructure:"log_mode"`
	LogDir     string           `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Referer     string        `mapstructure:"referer"`
	Title       string        `mapstructure:"title"`
}

// PromptConfig prompt 模板設定
type PromptConfig struct {
	TemplatePath string `mapstructure:"template_path"`
	Placeholder  string `mapstructure:"placeholder"`
}

// Addr 伺服器監聽位址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LoadConfig 載入設定。
// .env 由 main 事先載入，這裡只讀環境變數與可選的 config.yaml。
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"openrouter.api_key":     "OPENROUTER_API_KEY",
		"openrouter.model":       "OPENROUTER_MODEL",
		"openrouter.base_url":    "OPENROUTER_BASE_URL",
		"openrouter.max_tokens":  "MODEL_MAX_TOKENS",
		"openrouter.temperature": "MODEL_TEMPERATURE",
		"openrouter.timeout":     "OPENROUTER_TIMEOUT",
		"server.port":            "PORT",
		"prompt.template_path":   "PROMPT_TEMPLATE_PATH",
		"log_level":              "LOG_LEVEL",
		"log_mode":               "LOG_MODE",
		"log_dir":                "LOG_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 設定設定檔名稱和路徑
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "RecipeBot API")

	// 伺服器設定
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "45s")
	v.SetDefault("server.max_body_bytes", 64*1024)

	// OpenRouter 設定
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "anthropic/claude-3-haiku")
	v.SetDefault("openrouter.max_tokens", 1000)
	v.SetDefault("openrouter.temperature", 0.7)
	v.SetDefault("openrouter.timeout", "30s")
	v.SetDefault("openrouter.referer", "http://localhost:8000")
	v.SetDefault("openrouter.title", "RecipeBot API")

	// Prompt 設定
	v.SetDefault("prompt.template_path", "templates/prompt-template.txt")
	v.SetDefault("prompt.placeholder", "{ingredients}")

	// 日誌設定
	v.SetDefault("log_level", "info")
	v.SetDefault("log_mode", "")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.OpenRouter.APIKey) == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}

	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid server max body bytes")
	}

	// 驗證 OpenRouter 設定
	if config.OpenRouter.Timeout <= 0 {
		return fmt.Errorf("invalid openrouter timeout")
	}
	if config.OpenRouter.Model == "" {
		return fmt.Errorf("openrouter model is required")
	}

	// 驗證 prompt 設定
	if config.Prompt.TemplatePath == "" {
		return fmt.Errorf("prompt template path is required")
	}
	if config.Prompt.Placeholder == "" {
		return fmt.Errorf("prompt placeholder is required")
	}

	return nil
}
