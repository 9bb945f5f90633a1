package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Collector   CollectorConfig `toml:"collector"`
	Gazette     GazetteConfig   `toml:"gazette"`
	Mail        MailConfig      `toml:"mail"`
	Logging     LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// SchedulerConfig controls the refresh orchestrator
type SchedulerConfig struct {
	IntervalMinutes int    `toml:"interval_minutes"` // Shared period for corpus and market refresh jobs (minimum 5)
	DispatchCron    string `toml:"dispatch_cron"`    // Cron expression for the daily report dispatch
}

// CollectorConfig controls the news/market feed collector
type CollectorConfig struct {
	FeedURL        string        `toml:"feed_url"`        // RSS search endpoint
	Topics         []string      `toml:"topics"`          // Queries for the news corpus refresh
	MarketTopics   []string      `toml:"market_topics"`   // Queries for the market-data refresh
	Language       string        `toml:"language"`        // hl parameter, e.g. "en-LK"
	Region         string        `toml:"region"`          // gl parameter, e.g. "LK"
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	RequestDelay   time.Duration `toml:"request_delay"`   // Minimum delay between feed requests
	UserAgents     []string      `toml:"user_agents"`     // Rotated per request
}

// GazetteConfig controls the external gazette scrape
type GazetteConfig struct {
	URL            string        `toml:"url"`             // Gazette index page
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	CacheTTL       time.Duration `toml:"cache_ttl"`       // How long a scrape result is reused
}

// MailConfig holds SMTP settings for the daily dispatch
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	UseTLS   bool   `toml:"use_tls"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here; only user-facing settings
// should be exposed in auspex.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Scheduler: SchedulerConfig{
			IntervalMinutes: 15,
			DispatchCron:    "0 6 * * *", // 6:00 AM daily
		},
		Collector: CollectorConfig{
			FeedURL: "https://news.google.com/rss/search",
			Topics: []string{
				"Sri Lanka",
				"Sri Lanka Economy",
				"Sri Lanka Politics",
				"Sri Lanka Tourism",
			},
			MarketTopics: []string{
				"Colombo Stock Exchange",
				"CSE Sri Lanka shares",
				"Sri Lanka market earnings",
			},
			Language:       "en-LK",
			Region:         "LK",
			RequestTimeout: 20 * time.Second,
			RequestDelay:   2 * time.Second,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
			},
		},
		Gazette: GazetteConfig{
			URL:            "http://documents.gov.lk/en/gazette.php",
			RequestTimeout: 30 * time.Second,
			CacheTTL:       30 * time.Minute,
		},
		Mail: MailConfig{
			Port:     587,
			FromName: "Auspex",
			UseTLS:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier files. Priority: env > last file > ... > first file > defaults.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AUSPEX_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("AUSPEX_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("AUSPEX_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("AUSPEX_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if interval := os.Getenv("AUSPEX_SCHEDULER_INTERVAL_MINUTES"); interval != "" {
		if m, err := strconv.Atoi(interval); err == nil {
			config.Scheduler.IntervalMinutes = m
		}
	}
	if dispatchCron := os.Getenv("AUSPEX_SCHEDULER_DISPATCH_CRON"); dispatchCron != "" {
		config.Scheduler.DispatchCron = dispatchCron
	}

	if feedURL := os.Getenv("AUSPEX_COLLECTOR_FEED_URL"); feedURL != "" {
		config.Collector.FeedURL = feedURL
	}
	if requestDelay := os.Getenv("AUSPEX_COLLECTOR_REQUEST_DELAY"); requestDelay != "" {
		if rd, err := time.ParseDuration(requestDelay); err == nil {
			config.Collector.RequestDelay = rd
		}
	}
	if requestTimeout := os.Getenv("AUSPEX_COLLECTOR_REQUEST_TIMEOUT"); requestTimeout != "" {
		if rt, err := time.ParseDuration(requestTimeout); err == nil {
			config.Collector.RequestTimeout = rt
		}
	}

	if gazetteURL := os.Getenv("AUSPEX_GAZETTE_URL"); gazetteURL != "" {
		config.Gazette.URL = gazetteURL
	}

	if host := os.Getenv("AUSPEX_MAIL_HOST"); host != "" {
		config.Mail.Host = host
	}
	if port := os.Getenv("AUSPEX_MAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Mail.Port = p
		}
	}
	if username := os.Getenv("AUSPEX_MAIL_USERNAME"); username != "" {
		config.Mail.Username = username
	}
	if password := os.Getenv("AUSPEX_MAIL_PASSWORD"); password != "" {
		config.Mail.Password = password
	}
	if from := os.Getenv("AUSPEX_MAIL_FROM"); from != "" {
		config.Mail.From = from
	}

	if level := os.Getenv("AUSPEX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("AUSPEX_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ValidateInterval checks a refresh interval in minutes against the
// 5-minute floor enforced for recurring jobs.
func ValidateInterval(minutes int) error {
	if minutes < 5 {
		return fmt.Errorf("%w: interval must be at least 5 minutes, got %d", ErrInvalidArgument, minutes)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
