package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Folds       int
	GridPoints  int
	DataPath    string
	MetricsPort int
	LogLevel    string
	FitTimeout  time.Duration
}

type ConfigFile struct {
	Evaluation struct {
		Folds      int    `yaml:"folds"`
		GridPoints int    `yaml:"gridPoints"`
		FitTimeout string `yaml:"fitTimeout"`
	} `yaml:"evaluation"`

	System struct {
		DataPath    string `yaml:"dataPath"`
		MetricsPort int    `yaml:"metricsPort"`
		LogLevel    string `yaml:"logLevel"`
	} `yaml:"system"`
}

// Load reads settings from the YAML file named by CONFIG_FILE, falling back
// to environment variables. A local .env file is folded into the environment
// first; environment variables win over file values either way.
func Load() (Settings, error) {
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromYAML(configPath)
	}
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	fitTimeout, err := time.ParseDuration(config.Evaluation.FitTimeout)
	if err != nil {
		fitTimeout = 2 * time.Minute
	}

	settings := Settings{
		Folds:       getIntFromEnvOrConfig("EVAL_FOLDS", config.Evaluation.Folds, 5),
		GridPoints:  getIntFromEnvOrConfig("ROC_GRID_POINTS", config.Evaluation.GridPoints, 100),
		DataPath:    getEnvOrDefault("DATA_PATH", config.System.DataPath),
		MetricsPort: getIntFromEnvOrConfig("METRICS_PORT", config.System.MetricsPort, 8080),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", defaultString(config.System.LogLevel, "info")),
		FitTimeout:  getDurationOrDefault("FIT_TIMEOUT", fitTimeout),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return settings, nil
}

func loadFromEnv() (Settings, error) {
	settings := Settings{
		Folds:       getIntOrDefault("EVAL_FOLDS", 5),
		GridPoints:  getIntOrDefault("ROC_GRID_POINTS", 100),
		DataPath:    os.Getenv("DATA_PATH"), // optional, empty disables persistence
		MetricsPort: getIntOrDefault("METRICS_PORT", 8080),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		FitTimeout:  getDurationOrDefault("FIT_TIMEOUT", 2*time.Minute),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return settings, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntFromEnvOrConfig(key string, configValue, defaultValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

func defaultString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// validateSettings performs range validation of configuration values
func validateSettings(settings *Settings) error {
	if settings.Folds < 2 || settings.Folds > 100 {
		return fmt.Errorf("fold count must be between 2 and 100, got %d", settings.Folds)
	}
	if settings.GridPoints < 2 || settings.GridPoints > 10000 {
		return fmt.Errorf("ROC grid must have between 2 and 10000 points, got %d", settings.GridPoints)
	}
	if settings.MetricsPort < 1024 || settings.MetricsPort > 65535 {
		return fmt.Errorf("metrics port must be between 1024 and 65535, got %d", settings.MetricsPort)
	}
	switch settings.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", settings.LogLevel)
	}
	if settings.FitTimeout < time.Second || settings.FitTimeout > time.Hour {
		return fmt.Errorf("fit timeout must be between 1s and 1h, got %v", settings.FitTimeout)
	}
	return nil
}
