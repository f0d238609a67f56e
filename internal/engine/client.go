/*
PURPOSE:
  Query client for the Jira REST search endpoint.
  Issues one GET per status and decodes the result.

REQUIREMENTS:
  User-specified:
  - JQL: project in (<projects>) AND status in ("<status>").
  - Basic auth, Accept: application/json.
  - Anything but HTTP 200 is a failed search. No retries.

  Implementation-discovered:
  - Needs http.Client with a timeout.
  - Context per request so callers can cancel.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Run
  - Uses: internal/config, internal/model, internal/output

ERROR HANDLING:
  - Non-200 returns *StatusError.
  - Transport and decode failures are wrapped.
  - Run turns every error into the "absence" (nil) result.

USAGE:
  c := engine.New(cfg)
  res, err := c.Search(ctx, "In Progress")

RELATED FILES:
  - internal/config/config.go
  - internal/model/types.go
*/

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/daryltucker/jira-report/internal/config"
	"github.com/daryltucker/jira-report/internal/model"
	"github.com/daryltucker/jira-report/internal/output"
)

// StatusError is returned when Jira answers with anything but 200 OK.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira search returned %s: %s", e.Status, e.Body)
}

// Client handles Jira search requests.
type Client struct {
	Config *config.Config
	HTTP   *http.Client
}

// New creates a new Client.
func New(cfg *config.Config) *Client {
	return &Client{
		Config: cfg,
		HTTP:   &http.Client{Timeout: cfg.Timeout},
	}
}

// BuildJQL constructs the search clause for one status.
func BuildJQL(projects model.ProjectList, status string) string {
	return fmt.Sprintf(`project in (%s) AND status in ("%s")`, projects.Join(), status)
}

// Search returns the issues of the configured projects in the given status.
func (c *Client) Search(ctx context.Context, status string) (*model.SearchResult, error) {
	jql := BuildJQL(c.Config.Projects, status)
	u := c.Config.SearchURL() + "?" + url.Values{"jql": {jql}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira request: %w", err)
	}
	for k, v := range c.Config.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	if auth := c.Config.Auth(); auth != nil {
		req.SetBasicAuth(auth.User, auth.APIKey)
	}

	output.Logger.Debug("Searching", "status", status, "jql", jql)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from jira: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var res model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to parse jira response: %w", err)
	}
	output.Logger.Debug("Search done", "status", status, "total", res.Total, "returned", len(res.Issues))
	return &res, nil
}
