// Package briefing turns a scenario into the two user messages of an
// evaluation conversation: a terse opening prompt and a comprehensive
// follow-up brief. Rendering is pure data transformation and must be
// byte-deterministic for a given scenario; scoring reproducibility depends
// on it.
package briefing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kvdesign/kvbench/internal/models"
)

// Expansion holds the two rendered prompts for a scenario.
type Expansion struct {
	// Opening is the scenario's raw user input, unmodified. It
	// deliberately under-specifies the task so the assistant has room to
	// ask clarifying questions.
	Opening string
	// Brief is the structured rendering of the full requirements,
	// ending with an instruction block that forbids further questions.
	Brief string
}

// Expand renders the opening prompt and follow-up brief for a scenario.
func Expand(s *models.Scenario) Expansion {
	return Expansion{
		Opening: s.UserInput,
		Brief:   renderBrief(s),
	}
}

func renderBrief(s *models.Scenario) string {
	var b strings.Builder

	b.WriteString(s.UserInput)
	b.WriteString("\n\nHere are the complete requirements:\n")

	b.WriteString("\nAPPLICATION DETAILS:\n")
	writeField(&b, "Type", s.Application.Type)
	writeField(&b, "Domain", s.Application.Domain)
	writeField(&b, "Business Model", s.Application.BusinessModel)

	b.WriteString("\nENTITIES & RELATIONSHIPS:\n")
	b.WriteString("Entities:\n")
	for _, name := range sortedEntityNames(s.Entities.Entities) {
		fmt.Fprintf(&b, "- %s: %s\n", name, s.Entities.Entities[name])
	}
	if len(s.Entities.Relationships) > 0 {
		b.WriteString("Relationships:\n")
		for _, rel := range s.Entities.Relationships {
			fmt.Fprintf(&b, "- %s\n", rel)
		}
	}

	b.WriteString("\nACCESS PATTERNS:\n")
	writePatterns(&b, "Read Patterns", s.Patterns.Reads)
	writePatterns(&b, "Write Patterns", s.Patterns.Writes)

	b.WriteString("\nPERFORMANCE & SCALE REQUIREMENTS:\n")
	writeField(&b, "User Base", s.Scale.UserBase)
	writeField(&b, "Transaction Volume", s.Scale.TransactionVolume)
	writeField(&b, "Growth Projection", s.Scale.GrowthProjection)
	if len(s.Scale.Targets) > 0 {
		b.WriteString("Performance Targets:\n")
		for _, target := range s.Scale.Targets {
			fmt.Fprintf(&b, "- %s\n", target)
		}
	}

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("Provide complete guidance now. Output exactly two blocks:\n")
	b.WriteString("1) ```markdown\n# Modeling Session\n...content...\n```\n")
	b.WriteString("2) ```markdown\n# Data Model\n...content...\n```\n")
	b.WriteString("Do not ask additional questions - provide complete guidance now.")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "Not specified"
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func writePatterns(b *strings.Builder, label string, patterns []models.AccessPattern) {
	if len(patterns) == 0 {
		return
	}
	b.WriteString(label + ":\n")
	for _, p := range patterns {
		if p.Frequency != "" {
			fmt.Fprintf(b, "- [%s] %s (%s)\n", p.Entity, p.Description, p.Frequency)
		} else {
			fmt.Fprintf(b, "- [%s] %s\n", p.Entity, p.Description)
		}
	}
}

// sortedEntityNames keeps map rendering deterministic.
func sortedEntityNames(entities map[string]string) []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
