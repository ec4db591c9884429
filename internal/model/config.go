package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// APIConfig points at the portfolio backend that serves /api/data and /api/ai.
type APIConfig struct {
	// BaseURL is the backend root, e.g. https://portfolio.example.dev.
	// Empty disables the remote backend.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`

	// TimeoutSec bounds every backend request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec" validate:"gte=0"`
}

// AIConfig holds settings for the AI responder.
type AIConfig struct {
	// Provider is "remote" (the backend's /api/ai) or "gemini" (direct).
	Provider string `mapstructure:"provider" yaml:"provider" validate:"oneof=remote gemini"`

	// Model is the Gemini model used by the direct provider.
	Model string `mapstructure:"model" yaml:"model"`

	// DailyCredits seeds the remaining-prompts counter.
	DailyCredits int `mapstructure:"daily_credits" yaml:"daily_credits" validate:"gte=0"`
}

// DataConfig selects where the portfolio snapshot comes from.
type DataConfig struct {
	// Source is one of "api", "file" or "sql".
	Source string `mapstructure:"source" yaml:"source" validate:"oneof=api file sql"`

	// File is a YAML or JSON portfolio document (source "file").
	File string `mapstructure:"file" yaml:"file"`

	// Driver is "sqlite" or "pgx" (source "sql").
	Driver string `mapstructure:"driver" yaml:"driver" validate:"oneof=sqlite pgx"`

	// DSN is the database path or connection URL (source "sql").
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// IdentityConfig holds the strings the virtual shell prints about itself.
type IdentityConfig struct {
	User       string `mapstructure:"user" yaml:"user" validate:"required"`
	Host       string `mapstructure:"host" yaml:"host" validate:"required"`
	Domain     string `mapstructure:"domain" yaml:"domain"`
	ResumeURL  string `mapstructure:"resume_url" yaml:"resume_url" validate:"omitempty,url"`
	GitHubURL  string `mapstructure:"github_url" yaml:"github_url" validate:"omitempty,url"`
	Role       string `mapstructure:"role" yaml:"role"`
	Stack      string `mapstructure:"stack" yaml:"stack"`
	Location   string `mapstructure:"location" yaml:"location"`
	AsciiLogo  string `mapstructure:"ascii_logo" yaml:"ascii_logo"`
	Banner     string `mapstructure:"banner" yaml:"banner"`
	StatusLine string `mapstructure:"status_line" yaml:"status_line"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme   string `mapstructure:"theme" yaml:"theme"`
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	// Markdown renders AI replies through glamour.
	Markdown bool `mapstructure:"markdown" yaml:"markdown"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// EnvPrefix is the prefix of environment overrides, e.g.
// PORTFOLIO_API_BASE_URL overrides api.base_url.
const EnvPrefix = "PORTFOLIO"

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/portfolio-term/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "portfolio-term", "config.yaml")
}

// DefaultLogPath returns ~/.cache/portfolio-term/session.log.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "session.log")
	}
	return filepath.Join(dir, "portfolio-term", "session.log")
}

const defaultLogo = `   _____
  / ____|
 | (___
  \___ \
  ____) |
 |_____/`

const defaultBanner = `███████╗██╗   ██╗██████╗  █████╗      ██╗
██╔════╝██║   ██║██╔══██╗██╔══██╗     ██║
███████╗██║   ██║██████╔╝███████║     ██║
╚════██║██║   ██║██╔══██╗██╔══██║██   ██║
███████║╚██████╔╝██║  ██║██║  ██║╚█████╔╝
╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝ ╚════╝ `

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			TimeoutSec: 30,
		},
		AI: AIConfig{
			Provider:     "remote",
			Model:        "gemini-2.0-flash",
			DailyCredits: 5,
		},
		Data: DataConfig{
			Source: "api",
			Driver: "sqlite",
		},
		Identity: IdentityConfig{
			User:       "suraj",
			Host:       "suraj-portfolio",
			Domain:     "portfolio.suraj.dev",
			ResumeURL:  "https://drive.google.com/file/d/1SxTOiE5DdYFrcdTkxsL8pTSWEAm7rlNU/view?usp=drivesdk",
			GitHubURL:  "https://github.com/surajkumar",
			Role:       "Full-Stack Software Engineer",
			Stack:      "Node.js · React · AWS · Docker",
			Location:   "New Delhi, India",
			AsciiLogo:  defaultLogo,
			Banner:     defaultBanner,
			StatusLine: "✓ Open to opportunities",
		},
		Display: DisplayConfig{
			Theme:    "default",
			LogFile:  DefaultLogPath(),
			Markdown: true,
		},
	}
}

// setDefaults registers every default with v so that missing keys resolve
// and environment overrides are discoverable by Unmarshal.
func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout_sec", d.API.TimeoutSec)
	v.SetDefault("ai.provider", d.AI.Provider)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.daily_credits", d.AI.DailyCredits)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.file", d.Data.File)
	v.SetDefault("data.driver", d.Data.Driver)
	v.SetDefault("data.dsn", d.Data.DSN)
	v.SetDefault("identity.user", d.Identity.User)
	v.SetDefault("identity.host", d.Identity.Host)
	v.SetDefault("identity.domain", d.Identity.Domain)
	v.SetDefault("identity.resume_url", d.Identity.ResumeURL)
	v.SetDefault("identity.github_url", d.Identity.GitHubURL)
	v.SetDefault("identity.role", d.Identity.Role)
	v.SetDefault("identity.stack", d.Identity.Stack)
	v.SetDefault("identity.location", d.Identity.Location)
	v.SetDefault("identity.ascii_logo", d.Identity.AsciiLogo)
	v.SetDefault("identity.banner", d.Identity.Banner)
	v.SetDefault("identity.status_line", d.Identity.StatusLine)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.log_file", d.Display.LogFile)
	v.SetDefault("display.markdown", d.Display.Markdown)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with PORTFOLIO_ override file values. If
// the file does not exist, defaults (plus environment) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch c.Data.Source {
	case "file":
		if c.Data.File == "" {
			return fmt.Errorf("data.file is required when data.source is \"file\"")
		}
	case "sql":
		if c.Data.DSN == "" {
			return fmt.Errorf("data.dsn is required when data.source is \"sql\"")
		}
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("ai", cfg.AI)
	v.Set("data", cfg.Data)
	v.Set("identity", cfg.Identity)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
