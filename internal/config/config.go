package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Server          ServerConfig          `yaml:"server"`
	Dataset         DatasetConfig         `yaml:"dataset"`
	Database        DatabaseConfig        `yaml:"database"`
	Events          EventsConfig          `yaml:"events"`
	Recommendations RecommendationsConfig `yaml:"recommendations"`
	Logging         LoggingConfig         `yaml:"logging"`
}

type ServerConfig struct {
	Port               int `yaml:"port"`
	MetricsPort        int `yaml:"metrics_port"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

type DatasetConfig struct {
	Source string `yaml:"source"` // csv or postgres
	Path   string `yaml:"path"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
}

type RecommendationsConfig struct {
	Names []string `yaml:"names"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultRecommendations is the curated top three.
var DefaultRecommendations = []string{"Reese's Peanut Butter cup", "Twix", "Starburst"}

func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 240,
		},
		Dataset: DatasetConfig{
			Source: SourceCSV,
			Path:   "data/candy-data.csv",
		},
		Recommendations: RecommendationsConfig{
			Names: append([]string(nil), DefaultRecommendations...),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path required for csv source")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url required for postgres source")
		}
	default:
		return fmt.Errorf("unknown dataset.source %q", c.Dataset.Source)
	}
	if n := len(c.Recommendations.Names); n < 1 || n > 3 {
		return fmt.Errorf("recommendations.names needs 1 to 3 names, got %d", n)
	}
	return nil
}

// SlogLevel maps logging.level onto slog, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CANDY_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("CANDY_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("CANDY_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("CANDY_DATASET_SOURCE"); v != "" {
		cfg.Dataset.Source = v
	}
	if v := os.Getenv("CANDY_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("CANDY_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("CANDY_NATS_URL"); v != "" {
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv("CANDY_RECOMMENDATIONS"); v != "" {
		var names []string
		for _, n := range strings.Split(v, "|") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		cfg.Recommendations.Names = names
	}
	if v := os.Getenv("CANDY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CANDY_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
