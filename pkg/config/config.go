package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    logger.Config   `yaml:"logger"`
	Nuvende   NuvendeConfig   `yaml:"nuvende"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     RedisConfig     `yaml:"redis"`
	Security  SecurityConfig  `yaml:"security"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
}

// NuvendeConfig holds the credential set for the Nuvende PIX API. The
// secrets are normally supplied through the environment rather than the
// YAML file; see applyEnvOverrides.
type NuvendeConfig struct {
	BaseURL      string        `yaml:"base_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	PixKey       string        `yaml:"pix_key"`
	AccountID    string        `yaml:"account_id"`
	Timeout      time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	// Backend selects the token store: "memory" (default) or "redis".
	Backend string `yaml:"backend"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SecurityConfig struct {
	APIKey string `yaml:"api_key"`
}

type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size"`
	CheckOrigin     bool          `yaml:"check_origin"`
	PingPeriod      time.Duration `yaml:"ping_period"`
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config.yaml"
	}

	configData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(configData, &config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		"NUVENDE_BASE_URL":      &c.Nuvende.BaseURL,
		"NUVENDE_CLIENT_ID":     &c.Nuvende.ClientID,
		"NUVENDE_CLIENT_SECRET": &c.Nuvende.ClientSecret,
		"NUVENDE_PIX_KEY":       &c.Nuvende.PixKey,
		"NUVENDE_ACCOUNT_ID":    &c.Nuvende.AccountID,
		"API_KEY":               &c.Security.APIKey,
		"REDIS_ADDR":            &c.Redis.Addr,
	}

	for key, target := range overrides {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Nuvende.Timeout == 0 {
		c.Nuvende.Timeout = 30 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.WebSocket.ReadBufferSize == 0 {
		c.WebSocket.ReadBufferSize = 1024
	}
	if c.WebSocket.WriteBufferSize == 0 {
		c.WebSocket.WriteBufferSize = 1024
	}
	if c.WebSocket.PingPeriod == 0 {
		c.WebSocket.PingPeriod = 54 * time.Second
	}
}

func (c *Config) validate() error {
	switch {
	case c.Nuvende.BaseURL == "":
		return fmt.Errorf("nuvende.base_url is required")
	case c.Nuvende.ClientID == "":
		return fmt.Errorf("nuvende.client_id is required")
	case c.Nuvende.ClientSecret == "":
		return fmt.Errorf("nuvende.client_secret is required")
	case c.Nuvende.PixKey == "":
		return fmt.Errorf("nuvende.pix_key is required")
	case c.Nuvende.AccountID == "":
		return fmt.Errorf("nuvende.account_id is required")
	}

	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be \"memory\" or \"redis\", got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when cache.backend is \"redis\"")
	}

	return nil
}
