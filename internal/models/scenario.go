package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Complexity indicates how demanding a scenario is.
type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// Scenario is an immutable test case describing an application's
// data-modeling requirements for a key-value/document store.
type Scenario struct {
	Name       string     `yaml:"name" json:"name"`
	Complexity Complexity `yaml:"complexity" json:"complexity"`
	// UserInput is the terse opening request. It deliberately
	// under-specifies the task.
	UserInput   string              `yaml:"user_input" json:"user_input"`
	Application ApplicationDetails  `yaml:"application_details" json:"application_details"`
	Entities    EntityModel         `yaml:"entities_and_relationships" json:"entities_and_relationships"`
	Patterns    AccessPatterns      `yaml:"access_patterns" json:"access_patterns"`
	Scale       PerformanceAndScale `yaml:"performance_and_scale" json:"performance_and_scale"`
}

// ApplicationDetails describes the application being modeled.
type ApplicationDetails struct {
	Type          string `yaml:"type" json:"type"`
	Domain        string `yaml:"domain" json:"domain"`
	BusinessModel string `yaml:"business_model" json:"business_model"`
}

// EntityModel holds the scenario's entities and their relationships.
type EntityModel struct {
	Entities      map[string]string `yaml:"entities" json:"entities"`
	Relationships []string          `yaml:"relationships" json:"relationships"`
}

// AccessPattern is a single read or write pattern, annotated with the entity
// it touches and an informal frequency/latency note.
type AccessPattern struct {
	Entity      string `yaml:"entity" json:"entity"`
	Description string `yaml:"description" json:"description"`
	Frequency   string `yaml:"frequency,omitempty" json:"frequency,omitempty"`
}

// AccessPatterns groups the scenario's read and write patterns, in order.
type AccessPatterns struct {
	Reads  []AccessPattern `yaml:"read_patterns" json:"read_patterns"`
	Writes []AccessPattern `yaml:"write_patterns" json:"write_patterns"`
}

// PerformanceAndScale captures the scenario's scale expectations.
type PerformanceAndScale struct {
	UserBase          string   `yaml:"user_base" json:"user_base"`
	TransactionVolume string   `yaml:"transaction_volume" json:"transaction_volume"`
	GrowthProjection  string   `yaml:"growth_projection" json:"growth_projection"`
	Targets           []string `yaml:"performance_targets" json:"performance_targets"`
}

// LoadScenario loads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks scenario integrity. Every entity referenced by an access
// pattern must be declared in entities_and_relationships; a dangling
// reference fails here, before the scenario can reach the pipeline.
func (s *Scenario) Validate() error {
	var problems []string

	if s.Name == "" {
		problems = append(problems, "name is required")
	}
	if s.UserInput == "" {
		problems = append(problems, "user_input is required")
	}

	switch s.Complexity {
	case ComplexityBeginner, ComplexityIntermediate, ComplexityAdvanced:
	default:
		problems = append(problems, fmt.Sprintf("complexity %q must be beginner, intermediate, or advanced", s.Complexity))
	}

	check := func(kind string, patterns []AccessPattern) {
		for i, p := range patterns {
			if p.Entity == "" {
				problems = append(problems, fmt.Sprintf("%s pattern %d has no entity", kind, i+1))
				continue
			}
			if _, ok := s.Entities.Entities[p.Entity]; !ok {
				problems = append(problems, fmt.Sprintf("%s pattern %d references unknown entity %q", kind, i+1, p.Entity))
			}
		}
	}
	check("read", s.Patterns.Reads)
	check("write", s.Patterns.Writes)

	if len(problems) > 0 {
		return &ValidationError{Scenario: s.Name, Problems: problems}
	}
	return nil
}
