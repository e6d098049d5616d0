// Package scenario loads, validates, and indexes benchmark scenarios.
package scenario

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kvdesign/kvbench/internal/models"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultScenario is used when no scenario is named on the command line.
const DefaultScenario = "Simple E-commerce Schema"

// Catalog is an indexed set of validated scenarios. Lookups are by exact
// name; names are unique within a catalog.
type Catalog struct {
	byName map[string]*models.Scenario
	names  []string
}

// NewCatalog builds a catalog preloaded with the builtin scenarios.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*models.Scenario)}

	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin scenarios: %w", err)
	}

	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading builtin scenario %s: %w", entry.Name(), err)
		}
		if err := c.add(data, entry.Name()); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// LoadDir adds every *.yaml file under dir to the catalog. Each file is
// checked against the schema and then for referential integrity; the first
// invalid file aborts the load.
func (c *Catalog) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	sort.Strings(matches)

	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading scenario %s: %w", path, err)
		}
		if err := c.add(data, path); err != nil {
			return err
		}
	}
	return nil
}

// add validates raw YAML and indexes the resulting scenario.
func (c *Catalog) add(data []byte, source string) error {
	if errs := ValidateBytes(data); len(errs) > 0 {
		return &models.ValidationError{
			Scenario: source,
			Problems: errs,
		}
	}

	var s models.Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing scenario %s: %w", source, err)
	}
	if err := s.Validate(); err != nil {
		return err
	}

	if _, exists := c.byName[s.Name]; exists {
		return fmt.Errorf("duplicate scenario name %q (from %s)", s.Name, source)
	}

	c.byName[s.Name] = &s
	c.names = append(c.names, s.Name)
	sort.Strings(c.names)
	return nil
}

// Lookup returns the scenario with the given name. A miss returns a
// NotFoundError carrying the available names so callers can suggest them.
func (c *Catalog) Lookup(name string) (*models.Scenario, error) {
	if s, ok := c.byName[name]; ok {
		return s, nil
	}

	// Tolerate case differences; names are otherwise exact.
	for candidate, s := range c.byName {
		if strings.EqualFold(candidate, name) {
			return s, nil
		}
	}

	return nil, &models.NotFoundError{
		Kind:      "scenario",
		Name:      name,
		Available: c.Names(),
	}
}

// Names returns all scenario names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Scenarios returns all scenarios ordered by name.
func (c *Catalog) Scenarios() []*models.Scenario {
	out := make([]*models.Scenario, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// Len reports the number of scenarios in the catalog.
func (c *Catalog) Len() int { return len(c.byName) }
