/*
PURPOSE:
  Resolves the status map and the project list used to build the
  JQL search clause.

REQUIREMENTS:
  User-specified:
  - Sources in order: inline config, .statuses/.projects files, JIRA_STATUSES/JIRA_PROJECTS.
  - The first non-empty source wins; later sources are never read.
  - Files skip empty lines and lines starting with '#'; other lines are verbatim.
  - Status entries are key:value with exactly one ':'.

  Implementation-discovered:
  - Projects are stored quoted for direct use in the clause.
  - CRLF files must behave like LF files.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (via Config.Resolve)
  - Uses: internal/model, internal/output

ERROR HANDLING:
  - Missing file or unset variable yields an empty result, not an error.
  - Malformed status entry returns *MalformedLineError naming source and line.

USAGE:
  err := cfg.Resolve()
  statuses, err := config.ResolveStatuses(config.StatusSources(nil, ".statuses", config.EnvStatuses))

RELATED FILES:
  - internal/config/config.go
  - internal/model/types.go
*/

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/daryltucker/jira-report/internal/model"
	"github.com/daryltucker/jira-report/internal/output"
)

// MalformedLineError reports a status entry that is not a single key:value pair.
type MalformedLineError struct {
	Source string
	Line   int
	Text   string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s: entry %d %q is not a key:value pair", e.Source, e.Line, e.Text)
}

// Source is one place statuses or projects can come from.
// An absent source returns an empty value and no error.
type Source[T any] struct {
	Name string
	Load func() (T, error)
}

// firstNonEmpty tries the sources in order and returns the first non-empty result.
func firstNonEmpty[T any](sources []Source[T], size func(T) int) (T, error) {
	var zero T
	for _, src := range sources {
		v, err := src.Load()
		if err != nil {
			return zero, fmt.Errorf("failed to resolve %s: %w", src.Name, err)
		}
		if size(v) > 0 {
			output.Logger.Debug("Resolved from source", "source", src.Name, "count", size(v))
			return v, nil
		}
	}
	return zero, nil
}

// StatusSources returns the status sources in priority order: inline, file, env.
func StatusSources(inline model.StatusMap, file, env string) []Source[model.StatusMap] {
	return []Source[model.StatusMap]{
		{Name: "inline statuses", Load: func() (model.StatusMap, error) { return copyStatuses(inline), nil }},
		{Name: file, Load: func() (model.StatusMap, error) { return StatusesFromFile(file) }},
		{Name: "$" + env, Load: func() (model.StatusMap, error) { return StatusesFromEnv(env) }},
	}
}

// ProjectSources returns the project sources in priority order: inline, file, env.
func ProjectSources(inline []string, file, env string) []Source[[]string] {
	return []Source[[]string]{
		{Name: "inline projects", Load: func() ([]string, error) { return append([]string(nil), inline...), nil }},
		{Name: file, Load: func() ([]string, error) { return ProjectsFromFile(file) }},
		{Name: "$" + env, Load: func() ([]string, error) { return ProjectsFromEnv(env), nil }},
	}
}

// ResolveStatuses returns the first non-empty StatusMap from sources.
func ResolveStatuses(sources []Source[model.StatusMap]) (model.StatusMap, error) {
	m, err := firstNonEmpty(sources, func(m model.StatusMap) int { return len(m) })
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = model.StatusMap{}
	}
	return m, nil
}

// ResolveProjects returns the first non-empty project list from sources, quoted.
func ResolveProjects(sources []Source[[]string]) (model.ProjectList, error) {
	ids, err := firstNonEmpty(sources, func(s []string) int { return len(s) })
	if err != nil {
		return nil, err
	}
	projects := make(model.ProjectList, 0, len(ids))
	for _, id := range ids {
		projects = append(projects, model.QuoteProject(id))
	}
	return projects, nil
}

// Resolve fills cfg.Statuses and cfg.Projects.
func (c *Config) Resolve() error {
	statuses, err := ResolveStatuses(StatusSources(c.InlineStatuses, expandHome(c.StatusesFile), EnvStatuses))
	if err != nil {
		return err
	}
	projects, err := ResolveProjects(ProjectSources(c.InlineProjects, expandHome(c.ProjectsFile), EnvProjects))
	if err != nil {
		return err
	}
	c.Statuses = statuses
	c.Projects = projects
	return nil
}

// StatusesFromFile reads key:value lines, skipping blanks and # comments.
// A missing file yields an empty map.
func StatusesFromFile(path string) (model.StatusMap, error) {
	lines, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	m := model.StatusMap{}
	for _, l := range lines {
		key, value, err := splitStatus(path, l.num, l.text)
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

// StatusesFromEnv parses key:value,key:value from the named variable.
func StatusesFromEnv(name string) (model.StatusMap, error) {
	m := model.StatusMap{}
	for i, elem := range envList(name) {
		if elem == "" {
			continue
		}
		key, value, err := splitStatus("$"+name, i+1, elem)
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

// ProjectsFromFile returns one project per line, skipping blanks and # comments.
func ProjectsFromFile(path string) ([]string, error) {
	lines, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	projects := make([]string, 0, len(lines))
	for _, l := range lines {
		projects = append(projects, l.text)
	}
	return projects, nil
}

// ProjectsFromEnv returns the comma-separated projects from the named variable.
func ProjectsFromEnv(name string) []string {
	var projects []string
	for _, elem := range envList(name) {
		if elem != "" {
			projects = append(projects, elem)
		}
	}
	return projects
}

func splitStatus(source string, num int, text string) (string, string, error) {
	if strings.Count(text, ":") != 1 {
		return "", "", &MalformedLineError{Source: source, Line: num, Text: text}
	}
	key, value, _ := strings.Cut(text, ":")
	return key, value, nil
}

func envList(name string) []string {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

type entry struct {
	num  int
	text string
}

// readEntries returns the non-empty, non-comment lines of path, verbatim
// apart from a trailing \r.
func readEntries(path string) ([]entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var entries []entry
	scanner := bufio.NewScanner(f)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		entries = append(entries, entry{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entries, nil
}

func copyStatuses(m model.StatusMap) model.StatusMap {
	out := make(model.StatusMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
