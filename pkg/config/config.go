package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// remote source modes
const (
	ModeScraper = "scraper"
	ModeDirect  = "direct"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsread.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Remote RemoteConfig `yaml:"remote" json:"remote" jsonschema:"description=Remote article and summary source"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for direct summarization"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration for direct summarization"`

	Sync struct {
		GracePeriod time.Duration `yaml:"grace_period" json:"grace_period" jsonschema:"default=5s,description=How long a category stays active after its last subscriber leaves"`
		ReadWait    time.Duration `yaml:"read_wait" json:"read_wait" jsonschema:"default=5s,description=Default wait for the first loaded snapshot in one-shot reads"`
	} `yaml:"sync" json:"sync" jsonschema:"description=Sync coordinator configuration"`

	Network NetworkConfig `yaml:"network" json:"network" jsonschema:"description=Connectivity monitor configuration"`

	Download DownloadConfig `yaml:"download" json:"download" jsonschema:"description=Media downloader configuration"`
}

// RemoteConfig holds settings of the remote source
type RemoteConfig struct {
	Mode         string        `yaml:"mode" json:"mode" jsonschema:"default=scraper,enum=scraper,enum=direct,description=Remote source mode"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=Scraper endpoint URL (scraper mode)"`
	SiteURL      string        `yaml:"site_url" json:"site_url" jsonschema:"default=https://dantri.com.vn,description=News site base URL used to build category pages"`
	FeedTemplate string        `yaml:"feed_template" json:"feed_template" jsonschema:"default=https://dantri.com.vn/rss/{category}.rss,description=Category RSS URL template (direct mode)"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Remote request timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsread/1.0,description=User agent for remote requests"`
}

// LLMConfig holds LLM configuration for article summarization
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsread/1.0,description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// NetworkConfig holds connectivity monitor settings
type NetworkConfig struct {
	CheckInterval time.Duration `yaml:"check_interval" json:"check_interval" jsonschema:"default=5s,description=Connectivity polling interval"`
	ProbeAddr     string        `yaml:"probe_addr" json:"probe_addr" jsonschema:"description=Optional host:port dialed to confirm internet capability"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout" json:"probe_timeout" jsonschema:"default=3s,description=Timeout of the probe dial"`
}

// DownloadConfig holds media downloader settings
type DownloadConfig struct {
	Dir       string        `yaml:"dir" json:"dir" jsonschema:"default=downloads,description=Directory for downloaded media"`
	Workers   int           `yaml:"workers" json:"workers" jsonschema:"default=2,description=Concurrent downloads"`
	QueueSize int           `yaml:"queue_size" json:"queue_size" jsonschema:"default=100,description=Pending download queue size"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5m,description=Timeout of a single download"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills unset values
func setDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newsread.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for remote source
	if cfg.Remote.Mode == "" {
		cfg.Remote.Mode = ModeScraper
	}
	if cfg.Remote.SiteURL == "" {
		cfg.Remote.SiteURL = "https://dantri.com.vn"
	}
	if cfg.Remote.FeedTemplate == "" {
		cfg.Remote.FeedTemplate = "https://dantri.com.vn/rss/{category}.rss"
	}
	if cfg.Remote.Timeout == 0 {
		cfg.Remote.Timeout = 30 * time.Second
	}
	if cfg.Remote.UserAgent == "" {
		cfg.Remote.UserAgent = "Newsread/1.0"
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	// set defaults for extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Newsread/1.0"
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}

	// set defaults for sync
	if cfg.Sync.GracePeriod == 0 {
		cfg.Sync.GracePeriod = 5 * time.Second
	}
	if cfg.Sync.ReadWait == 0 {
		cfg.Sync.ReadWait = 5 * time.Second
	}

	// set defaults for network
	if cfg.Network.CheckInterval == 0 {
		cfg.Network.CheckInterval = 5 * time.Second
	}
	if cfg.Network.ProbeTimeout == 0 {
		cfg.Network.ProbeTimeout = 3 * time.Second
	}

	// set defaults for downloads
	if cfg.Download.Dir == "" {
		cfg.Download.Dir = "downloads"
	}
	if cfg.Download.Workers == 0 {
		cfg.Download.Workers = 2
	}
	if cfg.Download.QueueSize == 0 {
		cfg.Download.QueueSize = 100
	}
	if cfg.Download.Timeout == 0 {
		cfg.Download.Timeout = 5 * time.Minute
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	switch cfg.Remote.Mode {
	case ModeScraper:
		if cfg.Remote.Endpoint == "" {
			return fmt.Errorf("remote.endpoint is required in %s mode", ModeScraper)
		}
	case ModeDirect:
		// direct mode summarizes through the LLM
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required in %s mode", ModeDirect)
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required in %s mode", ModeDirect)
		}
	default:
		return fmt.Errorf("remote.mode must be %q or %q, got %q", ModeScraper, ModeDirect, cfg.Remote.Mode)
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.Remote.Timeout < time.Second {
		return fmt.Errorf("remote timeout must be at least 1 second")
	}
	if cfg.Extraction.MinTextLength < 0 {
		return fmt.Errorf("extraction min_text_length must be non-negative")
	}
	if cfg.Sync.GracePeriod < 0 {
		return fmt.Errorf("sync grace_period must be non-negative")
	}
	if cfg.Network.CheckInterval < 100*time.Millisecond {
		return fmt.Errorf("network check_interval must be at least 100ms")
	}
	if cfg.Download.Workers < 1 {
		return fmt.Errorf("download workers must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetReadWait returns the default wait for one-shot snapshot reads
func (c *Config) GetReadWait() time.Duration {
	return c.Sync.ReadWait
}

// GetExtractionConfig returns content extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
