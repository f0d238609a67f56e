/*
PURPOSE:
  Defines the configuration structure and loading logic for Jira Report.
  The resolved Config is built once at startup and passed to the engine.

REQUIREMENTS:
  User-specified:
  - User and API key come from JIRA_API_USER / JIRA_API_KEY.
  - Every required value must be present before any query runs.

  Implementation-discovered:
  - Needs to support YAML parsing for URLs, headers and inline defaults.
  - Environment variables override the file (JIRA_...).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file is not an error (falls back to defaults).
  - Validate() returns one sentinel error per missing value.

USAGE:
  cfg, err := config.Load("jira_report.yaml")
  err = cfg.Validate()

RELATED FILES:
  - internal/config/resolve.go
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new settings.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/jira-report/internal/model"
)

const (
	EnvUser      = "JIRA_API_USER"
	EnvAPIKey    = "JIRA_API_KEY"
	EnvBaseURL   = "JIRA_BASE_URL"
	EnvBrowseURL = "JIRA_BROWSE_URL"
	EnvStatuses  = "JIRA_STATUSES"
	EnvProjects  = "JIRA_PROJECTS"
)

var (
	ErrNoAPIKey    = errors.New("no Jira API key present, can't proceed")
	ErrNoUser      = errors.New("no Jira user present, can't proceed")
	ErrNoBaseURL   = errors.New("no base API URL present, can't proceed")
	ErrNoAuth      = errors.New("no auth, can't proceed")
	ErrNoHeaders   = errors.New("no headers specified, can't proceed")
	ErrNoBrowseURL = errors.New("no browse base URL specified, can't proceed")
	ErrNoStatuses  = errors.New("no statuses, can't proceed")
	ErrNoProjects  = errors.New("no projects, can't proceed")
)

// Config represents the full configuration for Jira Report.
type Config struct {
	User      string            `yaml:"user"`
	APIKey    string            `yaml:"api_key"`
	BaseURL   string            `yaml:"base_url"`
	BrowseURL string            `yaml:"browse_url"`
	Headers   map[string]string `yaml:"headers"`
	Timeout   time.Duration     `yaml:"timeout"`

	StatusesFile string `yaml:"statuses_file"`
	ProjectsFile string `yaml:"projects_file"`

	// Inline defaults, tried before the files and the environment.
	InlineStatuses model.StatusMap `yaml:"statuses"`
	InlineProjects []string        `yaml:"projects"`

	// Filled by Resolve.
	Statuses model.StatusMap `yaml:"-"`
	Projects model.ProjectList `yaml:"-"`
}

// BasicAuth holds the credentials sent with every search request.
type BasicAuth struct {
	User   string
	APIKey string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Headers:      map[string]string{"Accept": "application/json"},
		Timeout:      30 * time.Second,
		StatusesFile: "./.statuses",
		ProjectsFile: "./.projects",
	}
}

// Load reads configuration from a file and applies environment overrides.
// If path is empty, it searches for default files in order.
// If no file found, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range []string{"jira_report.yaml", ".jira_report.yaml"} {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{EnvUser, &c.User},
		{EnvAPIKey, &c.APIKey},
		{EnvBaseURL, &c.BaseURL},
		{EnvBrowseURL, &c.BrowseURL},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Auth returns the basic auth credentials, or nil when either half is missing.
func (c *Config) Auth() *BasicAuth {
	if c.User == "" || c.APIKey == "" {
		return nil
	}
	return &BasicAuth{User: c.User, APIKey: c.APIKey}
}

// SearchURL is the search endpoint below the configured base URL.
func (c *Config) SearchURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/search"
}

// Validate checks that everything needed for a query is present.
func (c *Config) Validate() error {
	switch {
	case c.APIKey == "":
		return ErrNoAPIKey
	case c.User == "":
		return ErrNoUser
	case c.BaseURL == "":
		return ErrNoBaseURL
	case c.Auth() == nil:
		return ErrNoAuth
	case len(c.Headers) == 0:
		return ErrNoHeaders
	case c.BrowseURL == "":
		return ErrNoBrowseURL
	case len(c.Statuses) == 0:
		return ErrNoStatuses
	case len(c.Projects) == 0:
		return ErrNoProjects
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
