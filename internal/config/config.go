package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres, holds the prediction session records
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	MigrationsPath string `toml:"migrations_path"`

	// redis, used by the request rate limiter
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus metrics server
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// prediction model artifacts
	ExerciseModelsPath string `toml:"exercise_models_path"`
	DietModelsPath     string `toml:"diet_models_path"`

	// assistant / RAG
	KnowledgeBasePath   string `toml:"knowledge_base_path"`
	QdrantURL           string `toml:"qdrant_url"`
	QdrantCollection    string `toml:"qdrant_collection"`
	LLMBaseURL          string `toml:"llm_base_url"`
	LLMModelName        string `toml:"llm_model_name"`
	EmbeddingModelName  string `toml:"embedding_model_name"`
	AiRateLimitPerMin   int    `toml:"ai_rate_limit_per_min"`

	// dish detector inference service; optional, the endpoint is
	// disabled when empty or unreachable
	DishDetectorURL string `toml:"dish_detector_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func Load(env, path string) (*Config, error) {
	configFileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var configs Toml
	if _, err := toml.Decode(string(configFileContent), &configs); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := configs.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.Environment = env
	return cfg, nil
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}
