// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Selectors override the DOM selectors of the target site. Empty means built-in default.
type Selectors struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Submit   string `yaml:"submit"`
	Post     string `yaml:"post"`
}

type Config struct {
	//Credentials
	LoginEmail    string `yaml:"login_email" env:"NEXTDOOR_EMAIL"`
	LoginPassword string `yaml:"login_password" env:"NEXTDOOR_PASSWORD"`
	//Webhook
	WebhookURL     string        `yaml:"webhook_url" env:"SCRAPER_N8N_WEBHOOK_URL"`
	WebhookTimeout time.Duration `yaml:"webhook_timeout" env:"WEBHOOK_TIMEOUT"`
	//Bounded waits
	LoginFieldTimeout     time.Duration `yaml:"login_field_timeout" env:"LOGIN_FIELD_TIMEOUT"`
	NavigationTimeout     time.Duration `yaml:"navigation_timeout" env:"NAVIGATION_TIMEOUT"`
	FeedNavigationTimeout time.Duration `yaml:"feed_navigation_timeout" env:"FEED_NAVIGATION_TIMEOUT"`
	FeedContentTimeout    time.Duration `yaml:"feed_content_timeout" env:"FEED_CONTENT_TIMEOUT"`
	RunTimeout            time.Duration `yaml:"run_timeout" env:"RUN_TIMEOUT"`
	//Target site
	LoginURL  string    `yaml:"login_url" env:"LOGIN_URL"`
	FeedURL   string    `yaml:"feed_url" env:"FEED_URL"`
	Selectors Selectors `yaml:"selectors"`
	Headless  bool      `yaml:"headless" env:"HEADLESS"`
	UserAgent string    `yaml:"user_agent" env:"USER_AGENT"`
	Keywords  []string  `yaml:"keywords"`
	//Paths
	CookiesPath   string `yaml:"cookies_path" env:"COOKIES_PATH"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
	LogsDir       string `yaml:"logs_dir" env:"LOGS_DIR"`
	//Optional integrations
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	//Server
	Port     string `yaml:"port" env:"PORT"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		WebhookTimeout:        10 * time.Second,
		LoginFieldTimeout:     60 * time.Second,
		NavigationTimeout:     60 * time.Second,
		FeedNavigationTimeout: 120 * time.Second,
		FeedContentTimeout:    200 * time.Second,
		RunTimeout:            10 * time.Minute,
		LoginURL:              "https://nextdoor.co.uk/login/",
		FeedURL:               "https://nextdoor.co.uk/news_feed/",
		Headless:              true,
		CookiesPath:           "./cookies/session.json",
		ScreenshotDir:         "./screenshots",
		LogsDir:               "./logs",
		Port:                  "8080",
		LogLevel:              "info",
	}
}

// Load reads .env, then the YAML file at path (a missing file is only a warning),
// then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
		log.Warn("⚠️ Config file not found, using defaults and env", "path", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString(&c.LoginEmail, "NEXTDOOR_EMAIL")
	envString(&c.LoginPassword, "NEXTDOOR_PASSWORD")
	envString(&c.WebhookURL, "SCRAPER_N8N_WEBHOOK_URL")
	envString(&c.LoginURL, "LOGIN_URL")
	envString(&c.FeedURL, "FEED_URL")
	envString(&c.CookiesPath, "COOKIES_PATH")
	envString(&c.UserAgent, "USER_AGENT")
	envString(&c.ScreenshotDir, "SCREENSHOT_DIR")
	envString(&c.LogsDir, "LOGS_DIR")
	envString(&c.TelegramToken, "TELEGRAM_BOT_TOKEN")
	envString(&c.DatabaseURL, "DATABASE_URL")
	envString(&c.Port, "PORT")
	envString(&c.LogLevel, "LOG_LEVEL")

	durations := map[string]*time.Duration{
		"WEBHOOK_TIMEOUT":         &c.WebhookTimeout,
		"LOGIN_FIELD_TIMEOUT":     &c.LoginFieldTimeout,
		"NAVIGATION_TIMEOUT":      &c.NavigationTimeout,
		"FEED_NAVIGATION_TIMEOUT": &c.FeedNavigationTimeout,
		"FEED_CONTENT_TIMEOUT":    &c.FeedContentTimeout,
		"RUN_TIMEOUT":             &c.RunTimeout,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Headless = b
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

// Validate checks the fields a run depends on
func (c *Config) Validate() error {
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"webhook_timeout", c.WebhookTimeout},
		{"login_field_timeout", c.LoginFieldTimeout},
		{"navigation_timeout", c.NavigationTimeout},
		{"feed_navigation_timeout", c.FeedNavigationTimeout},
		{"feed_content_timeout", c.FeedContentTimeout},
		{"run_timeout", c.RunTimeout},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", t.name, t.d)
		}
	}
	if c.FeedContentTimeout < c.FeedNavigationTimeout {
		return fmt.Errorf("feed_content_timeout (%s) must not be shorter than feed_navigation_timeout (%s)", c.FeedContentTimeout, c.FeedNavigationTimeout)
	}

	if err := requireAbsoluteURL("login_url", c.LoginURL); err != nil {
		return err
	}
	if err := requireAbsoluteURL("feed_url", c.FeedURL); err != nil {
		return err
	}
	if c.WebhookURL != "" {
		if err := requireAbsoluteURL("webhook_url", c.WebhookURL); err != nil {
			return err
		}
	}

	if c.CookiesPath == "" {
		return errors.New("cookies_path is required")
	}

	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return errors.New("telegram_token and telegram_chat_id must be set together")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// HasCredentials reports whether an interactive login is possible
func (c *Config) HasCredentials() bool {
	return c.LoginEmail != "" && c.LoginPassword != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func requireAbsoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}
