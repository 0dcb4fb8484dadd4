package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultAPIURL = "https://api.aidolon.ai"

type Cfg struct {
	API    API    `yaml:"api"`
	Logger Logger `yaml:"logger"`
	Mock   Mock   `yaml:"mock"`
}

// API is where the CLI sends requests
type API struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

type Logger struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// Mock configures the mock API server
type Mock struct {
	Addr          string   `yaml:"addr"`
	RatePerMinute int      `yaml:"rate_per_minute"`
	RateBurst     int      `yaml:"rate_burst"`
	MaxSessions   int      `yaml:"max_sessions"`
	Tokens        []string `yaml:"tokens"`
	StorePath     string   `yaml:"store_path"`
}

func defaults() *Cfg {
	return &Cfg{
		API: API{URL: DefaultAPIURL},
		Logger: Logger{
			Env:   "dev",
			Level: "info",
		},
		Mock: Mock{
			Addr:          ":8080",
			RatePerMinute: 600,
			RateBurst:     50,
			MaxSessions:   10,
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty), then a
// .env file in the working directory, then the environment. Later
// sources win.
func Load(path string) (*Cfg, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.API.URL = env("AIDOLON_API_URL", cfg.API.URL)
	cfg.API.Key = env("AIDOLON_API_KEY", cfg.API.Key)
	cfg.Logger.Env = env("LOG_ENV", cfg.Logger.Env)
	cfg.Logger.Level = env("LOG_LEVEL", cfg.Logger.Level)
	cfg.Mock.Addr = env("MOCK_ADDR", cfg.Mock.Addr)
	cfg.Mock.RatePerMinute = envInt("MOCK_RATE_PER_MINUTE", cfg.Mock.RatePerMinute)
	cfg.Mock.RateBurst = envInt("MOCK_RATE_BURST", cfg.Mock.RateBurst)
	cfg.Mock.MaxSessions = envInt("MOCK_MAX_SESSIONS", cfg.Mock.MaxSessions)
	cfg.Mock.Tokens = envList("MOCK_TOKENS", cfg.Mock.Tokens)
	cfg.Mock.StorePath = env("MOCK_STORE_PATH", cfg.Mock.StorePath)

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
