// Package config is the interactive setup form behind `portfolio-term setup`.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/portfolio-term/internal/model"
)

// Secrets collected by the form. They go to the keyring, not the config file.
type Secrets struct {
	AIToken   string
	GeminiKey string
}

// Setup holds the form state for editing an AppConfig.
type Setup struct {
	cfg model.AppConfig

	formBaseURL   string
	formSource    string
	formFile      string
	formDriver    string
	formDSN       string
	formProvider  string
	formModel     string
	formCredits   string
	formUser      string
	formHost      string
	formResumeURL string
	formGitHubURL string
	formMarkdown  bool

	secrets Secrets
}

// NewSetup prefills the form from cfg.
func NewSetup(cfg *model.AppConfig) *Setup {
	return &Setup{
		cfg:           *cfg,
		formBaseURL:   cfg.API.BaseURL,
		formSource:    cfg.Data.Source,
		formFile:      cfg.Data.File,
		formDriver:    cfg.Data.Driver,
		formDSN:       cfg.Data.DSN,
		formProvider:  cfg.AI.Provider,
		formModel:     cfg.AI.Model,
		formCredits:   strconv.Itoa(cfg.AI.DailyCredits),
		formUser:      cfg.Identity.User,
		formHost:      cfg.Identity.Host,
		formResumeURL: cfg.Identity.ResumeURL,
		formGitHubURL: cfg.Identity.GitHubURL,
		formMarkdown:  cfg.Display.Markdown,
	}
}

// Form builds the huh form bound to the setup fields.
func (s *Setup) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Portfolio data source").
				Description("Where the terminal loads the portfolio from").
				Options(
					huh.NewOption("Backend API - GET /api/data", "api"),
					huh.NewOption("Local file - YAML or JSON document", "file"),
					huh.NewOption("SQL database - SQLite or Postgres", "sql"),
				).
				Value(&s.formSource),
			huh.NewInput().
				Title("Backend URL").
				Description("Serves /api/data and /api/ai (leave empty to skip)").
				Placeholder("https://portfolio.example.dev").
				Value(&s.formBaseURL).
				Validate(validateOptionalURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Portfolio file").
				Placeholder("~/portfolio.yaml").
				Value(&s.formFile).
				Validate(validateRequired("File")),
		).WithHideFunc(func() bool { return s.formSource != "file" }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database driver").
				Options(
					huh.NewOption("SQLite", "sqlite"),
					huh.NewOption("PostgreSQL", "pgx"),
				).
				Value(&s.formDriver),
			huh.NewInput().
				Title("DSN").
				Description("Database path or connection URL").
				Value(&s.formDSN).
				Validate(validateRequired("DSN")),
		).WithHideFunc(func() bool { return s.formSource != "sql" }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("AI provider").
				Options(
					huh.NewOption("Backend - POST /api/ai", "remote"),
					huh.NewOption("Gemini - direct", "gemini"),
				).
				Value(&s.formProvider),
			huh.NewInput().
				Title("Daily AI prompts").
				Value(&s.formCredits).
				Validate(validateCount),
			huh.NewInput().
				Title("Backend token").
				Description("Optional bearer token for the backend").
				EchoMode(huh.EchoModePassword).
				Value(&s.secrets.AIToken),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini model").
				Value(&s.formModel),
			huh.NewInput().
				Title("Gemini API key").
				Description("Stored in the system keyring").
				EchoMode(huh.EchoModePassword).
				Value(&s.secrets.GeminiKey),
		).WithHideFunc(func() bool { return s.formProvider != "gemini" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Shell user").
				Value(&s.formUser).
				Validate(validateRequired("User")),
			huh.NewInput().
				Title("Shell host").
				Value(&s.formHost).
				Validate(validateRequired("Host")),
			huh.NewInput().
				Title("Resume URL").
				Value(&s.formResumeURL).
				Validate(validateOptionalURL),
			huh.NewInput().
				Title("GitHub URL").
				Value(&s.formGitHubURL).
				Validate(validateOptionalURL),
			huh.NewConfirm().
				Title("Render AI answers as markdown?").
				Value(&s.formMarkdown),
		),
	)
}

// Apply returns the edited configuration and the secrets entered.
func (s *Setup) Apply() (*model.AppConfig, Secrets, error) {
	cfg := s.cfg
	credits, err := strconv.Atoi(strings.TrimSpace(s.formCredits))
	if err != nil {
		return nil, Secrets{}, fmt.Errorf("daily prompts: %w", err)
	}

	cfg.API.BaseURL = strings.TrimSpace(s.formBaseURL)
	cfg.Data.Source = s.formSource
	cfg.Data.File = strings.TrimSpace(s.formFile)
	cfg.Data.Driver = s.formDriver
	cfg.Data.DSN = strings.TrimSpace(s.formDSN)
	cfg.AI.Provider = s.formProvider
	cfg.AI.Model = strings.TrimSpace(s.formModel)
	cfg.AI.DailyCredits = credits
	cfg.Identity.User = strings.TrimSpace(s.formUser)
	cfg.Identity.Host = strings.TrimSpace(s.formHost)
	cfg.Identity.ResumeURL = strings.TrimSpace(s.formResumeURL)
	cfg.Identity.GitHubURL = strings.TrimSpace(s.formGitHubURL)
	cfg.Display.Markdown = s.formMarkdown

	if err := cfg.Validate(); err != nil {
		return nil, Secrets{}, err
	}

	secrets := Secrets{
		AIToken:   strings.TrimSpace(s.secrets.AIToken),
		GeminiKey: strings.TrimSpace(s.secrets.GeminiKey),
	}
	return &cfg, secrets, nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must include scheme and host (e.g., https://example.com)")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
