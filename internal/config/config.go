// Package config provides configuration loading for the search engine and
// its command-line tools. Supports YAML files, environment variables, and
// programmatic overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the engine.
type Config struct {
	Data          DataConfig          `yaml:"data"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Retrieval     RetrievalConfig     `yaml:"retrieval"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DataConfig holds the paths to the input snapshots the loader reads.
type DataConfig struct {
	DealsPath    string `yaml:"deals_path"`
	ProductsPath string `yaml:"products_path"`
}

// EmbeddingConfig holds embedding backend settings.
type EmbeddingConfig struct {
	// Backend selects the embedder: "local" (feature-hashed, no network
	// dependency) or "http" (a remote embedding service).
	Backend   string `yaml:"backend"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	CachePath string `yaml:"cache_path"`
}

// RetrievalConfig holds ranking/query settings.
type RetrievalConfig struct {
	DefaultTopK     int `yaml:"default_top_k"`
	StreamBatchSize int `yaml:"stream_batch_size"`
	WorkerPoolSize  int `yaml:"worker_pool_size"`
}

// CacheConfig holds result-cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path skips the file and returns defaults with
// overrides applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for local
// development.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			DealsPath:    "./data/deals.json",
			ProductsPath: "./data/products.json",
		},
		Embedding: EmbeddingConfig{
			Backend:   "local",
			Model:     "local-hashed-ngram-v1",
			Dimension: 384,
			CachePath: "./data/embeddings.cache",
		},
		Retrieval: RetrievalConfig{
			DefaultTopK:     40,
			StreamBatchSize: 5,
			WorkerPoolSize:  3,
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6380",
				DB:       0,
				PoolSize: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Data.DealsPath == "" {
		return fmt.Errorf("data.deals_path is required")
	}
	if c.Data.ProductsPath == "" {
		return fmt.Errorf("data.products_path is required")
	}

	if c.Embedding.Backend != "local" && c.Embedding.Backend != "http" {
		return fmt.Errorf("invalid embedding backend: %s", c.Embedding.Backend)
	}
	if c.Embedding.Dimension < 1 {
		return fmt.Errorf("embedding.dimension must be positive")
	}

	if c.Retrieval.DefaultTopK < 1 {
		return fmt.Errorf("retrieval.default_top_k must be positive")
	}
	if c.Retrieval.WorkerPoolSize < 1 {
		return fmt.Errorf("retrieval.worker_pool_size must be positive")
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEALSEARCH_DEALS_PATH"); v != "" {
		cfg.Data.DealsPath = v
	}
	if v := os.Getenv("DEALSEARCH_PRODUCTS_PATH"); v != "" {
		cfg.Data.ProductsPath = v
	}

	if v := os.Getenv("DEALSEARCH_EMBEDDING_BACKEND"); v != "" {
		cfg.Embedding.Backend = v
	}
	if v := os.Getenv("DEALSEARCH_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("DEALSEARCH_EMBEDDING_DIMENSION"); v != "" {
		if dim, err := strconv.Atoi(v); err == nil {
			cfg.Embedding.Dimension = dim
		}
	}
	if v := os.Getenv("DEALSEARCH_EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := os.Getenv("DEALSEARCH_EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("DEALSEARCH_EMBEDDING_CACHE_PATH"); v != "" {
		cfg.Embedding.CachePath = v
	}

	if v := os.Getenv("DEALSEARCH_DEFAULT_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.DefaultTopK = n
		}
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

// ResolveRelativePath resolves a path relative to the config file location.
func ResolveRelativePath(configPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	configDir := filepath.Dir(configPath)
	return filepath.Join(configDir, targetPath)
}
