package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/jira-report/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvUser, EnvAPIKey, EnvBaseURL, EnvBrowseURL, EnvStatuses, EnvProjects} {
		t.Setenv(name, "")
	}
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.User = "me@example.com"
	cfg.APIKey = "key"
	cfg.BaseURL = "https://example.atlassian.net/rest/api/3/"
	cfg.BrowseURL = "https://example.atlassian.net/browse/"
	cfg.Statuses = model.StatusMap{"open": "Open"}
	cfg.Projects = model.ProjectList{`"WEB"`}
	return cfg
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "jira_report.yaml", `
user: file-user
base_url: https://file.example/rest/api/3
browse_url: https://file.example/browse/
timeout: 5s
statuses:
  open: Open
projects: [WEB]
`)
	t.Setenv(EnvUser, "env-user")
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-user", cfg.User)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://file.example/rest/api/3", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, model.StatusMap{"open": "Open"}, cfg.InlineStatuses)
	assert.Equal(t, []string{"WEB"}, cfg.InlineProjects)
	assert.Equal(t, "application/json", cfg.Headers["Accept"])
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "user: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"api key", func(c *Config) { c.APIKey = "" }, ErrNoAPIKey},
		{"user", func(c *Config) { c.User = "" }, ErrNoUser},
		{"base url", func(c *Config) { c.BaseURL = "" }, ErrNoBaseURL},
		{"headers", func(c *Config) { c.Headers = nil }, ErrNoHeaders},
		{"browse url", func(c *Config) { c.BrowseURL = "" }, ErrNoBrowseURL},
		{"statuses", func(c *Config) { c.Statuses = model.StatusMap{} }, ErrNoStatuses},
		{"projects", func(c *Config) { c.Projects = nil }, ErrNoProjects},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidate_OrderMatchesCredentialsFirst(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrNoAPIKey)
}

func TestAuth(t *testing.T) {
	cfg := validConfig()
	require.NotNil(t, cfg.Auth())
	assert.Equal(t, "me@example.com", cfg.Auth().User)

	cfg.APIKey = ""
	assert.Nil(t, cfg.Auth())
}

func TestSearchURL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "https://example.atlassian.net/rest/api/3/search", cfg.SearchURL())

	cfg.BaseURL = "https://example.atlassian.net/rest/api/3"
	assert.Equal(t, "https://example.atlassian.net/rest/api/3/search", cfg.SearchURL())
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/.statuses", expandHome("~/.statuses"))
	assert.Equal(t, "./.statuses", expandHome("./.statuses"))
}
