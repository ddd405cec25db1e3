package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected default provider openai, got %s", cfg.LLMProvider)
	}
	if cfg.HistoryDays != 365 {
		t.Fatalf("expected 365 history days, got %d", cfg.HistoryDays)
	}
	if !cfg.CacheEnabled {
		t.Fatal("expected cache enabled by default")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "deepseek")
	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("NEWS_LIMIT", "5")
	t.Setenv("CACHE_ENABLED", "false")

	cfg := LoadFromEnv()

	if cfg.LLMProvider != "deepseek" {
		t.Fatalf("expected provider deepseek, got %s", cfg.LLMProvider)
	}
	if cfg.DeepSeekAPIKey != "test-key" {
		t.Fatalf("expected deepseek key override, got %q", cfg.DeepSeekAPIKey)
	}
	if cfg.NewsLimit != 5 {
		t.Fatalf("expected news limit 5, got %d", cfg.NewsLimit)
	}
	if cfg.CacheEnabled {
		t.Fatal("expected cache disabled")
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing OpenAI key")
	}

	cfg.LLMProvider = "unsupported"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.DataCacheDir = filepath.Join(dir, "data", "cache")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
}
