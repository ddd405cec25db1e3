package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	ProjectDir   string `json:"project_dir"`
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	LLMProvider    string `json:"llm_provider"`
	OpenAIAPIKey   string `json:"-"`
	OpenAIModel    string `json:"openai_model"`
	DeepSeekAPIKey string `json:"-"`
	DeepSeekModel  string `json:"deepseek_model"`

	GoogleSearchAPIKey string `json:"-"`
	GoogleCSEID        string `json:"google_cse_id"`

	LongportAppKey      string `json:"-"`
	LongportAppSecret   string `json:"-"`
	LongportAccessToken string `json:"-"`

	HistoryDays  int  `json:"history_days"`
	NewsLimit    int  `json:"news_limit"`
	CacheEnabled bool `json:"cache_enabled"`
	Debug        bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	return &Config{
		ProjectDir:   currentDir,
		DataDir:      filepath.Join(currentDir, "data"),
		DataCacheDir: filepath.Join(currentDir, "data", "cache"),

		LLMProvider:   "openai",
		OpenAIModel:   "gpt-4o-mini",
		DeepSeekModel: "deepseek-chat",

		HistoryDays:  365,
		NewsLimit:    10,
		CacheEnabled: true,
		Debug:        false,
	}
}

// LoadFromEnv overlays environment variables on top of the defaults.
// Secrets are only ever read from the environment, never persisted.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLMProvider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		cfg.DeepSeekAPIKey = v
	}
	if v := os.Getenv("DEEPSEEK_MODEL"); v != "" {
		cfg.DeepSeekModel = v
	}
	if v := os.Getenv("GOOGLE_SEARCH_API_KEY"); v != "" {
		cfg.GoogleSearchAPIKey = v
	}
	if v := os.Getenv("GOOGLE_CSE_ID"); v != "" {
		cfg.GoogleCSEID = v
	}
	if v := os.Getenv("LONGPORT_APP_KEY"); v != "" {
		cfg.LongportAppKey = v
	}
	if v := os.Getenv("LONGPORT_APP_SECRET"); v != "" {
		cfg.LongportAppSecret = v
	}
	if v := os.Getenv("LONGPORT_ACCESS_TOKEN"); v != "" {
		cfg.LongportAccessToken = v
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryDays = n
		}
	}
	if v := os.Getenv("NEWS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NewsLimit = n
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CacheEnabled = b
		}
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	return cfg
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when llm_provider is openai")
		}
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			return fmt.Errorf("DEEPSEEK_API_KEY is required when llm_provider is deepseek")
		}
	default:
		return fmt.Errorf("unsupported llm_provider: %s", c.LLMProvider)
	}

	return nil
}

// HasLongport reports whether Longport API credentials are configured.
func (c *Config) HasLongport() bool {
	return c.LongportAppKey != "" && c.LongportAppSecret != "" && c.LongportAccessToken != ""
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir, c.DataCacheDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
