package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"appealgen/internal/agent"
	"appealgen/internal/cache"
	"appealgen/internal/extract"
	"appealgen/internal/knowledge"
	"appealgen/internal/llm"
	"appealgen/internal/model"
	"appealgen/internal/pipeline"
	"appealgen/internal/worker"
)

// buildConfig merges defaults, the config file and the per-command flags
func buildConfig(provider, modelName string, noCache bool) *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetFloat64("rate_limiting.requests_per_second"); v > 0 {
		cfg.RateLimiting.RequestsPerSecond = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}

	// Flags win over the config file
	if provider != "" {
		cfg.LLM.Provider = provider
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// resolveCredentials fills API keys and endpoints from the environment
func resolveCredentials(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "mistral":
		cfg.LLM.APIKey = os.Getenv("MISTRAL_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("MISTRAL_API_KEY environment variable not set")
		}
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// buildProvider creates the LLM provider, wrapped in the completion cache
// when caching is enabled.
func buildProvider(cfg *model.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(home, ".appealgen", "cache")
		}
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		provider = llm.NewCachedProvider(provider, store, cfg.Cache.DiskTTL, cfg.LLM.Model)
	}

	return provider, nil
}

// buildPipeline assembles the full stack: provider, rate limiter, knowledge
// base and the stage pipeline.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, llm.Provider, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := knowledge.NewCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("load rejection codes: %w", err)
	}
	templates, err := knowledge.NewTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("load letter templates: %w", err)
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	executor := agent.NewExecutor(provider, limiter)

	return pipeline.New(executor, catalog, templates, cfg.Output.Verbose), provider, nil
}

// buildExtractor creates the field extractor over the same provider stack.
func buildExtractor(provider llm.Provider) *extract.Extractor {
	return extract.NewExtractor(provider)
}
