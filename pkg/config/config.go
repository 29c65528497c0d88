package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Climate struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"climate"`
	Satellite struct {
		BaseURL    string        `yaml:"base_url"`
		Community  string        `yaml:"community"`
		WindowDays int           `yaml:"window_days"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"satellite"`
	Vision struct {
		BaseURL  string        `yaml:"base_url"`
		Model    string        `yaml:"model"`
		APIToken string        `yaml:"api_token"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"vision"`
	Market struct {
		DataDir     string        `yaml:"data_dir"`
		HistoryDays int           `yaml:"history_days"`
		SeriesTTL   time.Duration `yaml:"series_ttl"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"market"`
	Synthesis struct {
		BaseURL     string        `yaml:"base_url"`
		Model       string        `yaml:"model"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout"`
		Temperature float64       `yaml:"temperature"`
		MaxTokens   int           `yaml:"max_tokens"`
	} `yaml:"synthesis"`
	Cache struct {
		TTL struct {
			Climate   time.Duration `yaml:"climate"`
			Satellite time.Duration `yaml:"satellite"`
		} `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. A local .env file is honoured if present.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.Synthesis.APIKey = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		c.Synthesis.Model = v
	}
	if v := os.Getenv("HF_API_TOKEN"); v != "" {
		c.Vision.APIToken = v
	}
	if v := os.Getenv("HF_VISION_MODEL"); v != "" {
		c.Vision.Model = v
	}
	if v := os.Getenv("MARKET_DATA_DIR"); v != "" {
		c.Market.DataDir = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 2 * time.Minute
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Climate.BaseURL == "" {
		c.Climate.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if c.Climate.Timeout <= 0 {
		c.Climate.Timeout = 15 * time.Second
	}
	if c.Satellite.BaseURL == "" {
		c.Satellite.BaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"
	}
	if c.Satellite.Community == "" {
		c.Satellite.Community = "AG"
	}
	if c.Satellite.WindowDays <= 0 {
		c.Satellite.WindowDays = 14
	}
	if c.Satellite.Timeout <= 0 {
		c.Satellite.Timeout = 30 * time.Second
	}
	if c.Vision.BaseURL == "" {
		c.Vision.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if c.Vision.Model == "" {
		c.Vision.Model = "ozair23/mobilenet_v2_1.0_224-finetuned-plantdisease"
	}
	if c.Vision.Timeout <= 0 {
		c.Vision.Timeout = 30 * time.Second
	}
	if c.Market.DataDir == "" {
		c.Market.DataDir = "data"
	}
	if c.Market.HistoryDays <= 0 {
		c.Market.HistoryDays = 14
	}
	if c.Market.SeriesTTL <= 0 {
		c.Market.SeriesTTL = 10 * time.Minute
	}
	if c.Market.Timeout <= 0 {
		c.Market.Timeout = 15 * time.Second
	}
	if c.Synthesis.BaseURL == "" {
		c.Synthesis.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Synthesis.Model == "" {
		c.Synthesis.Model = "llama-3.3-70b-versatile"
	}
	if c.Synthesis.Timeout <= 0 {
		c.Synthesis.Timeout = 60 * time.Second
	}
	if c.Synthesis.Temperature <= 0 {
		c.Synthesis.Temperature = 0.3
	}
	if c.Synthesis.MaxTokens <= 0 {
		c.Synthesis.MaxTokens = 2000
	}
	if c.Cache.TTL.Climate <= 0 {
		c.Cache.TTL.Climate = 10 * time.Minute
	}
	if c.Cache.TTL.Satellite <= 0 {
		c.Cache.TTL.Satellite = time.Hour
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "leafnet"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
// API credentials are intentionally not required here: the orchestrator
// rejects requests that need a missing credential, the rest of the API
// keeps working without one.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.DataDir == "" {
		return fmt.Errorf("market.data_dir is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	return nil
}
