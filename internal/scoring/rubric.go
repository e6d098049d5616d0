// Package scoring grades transcripts against fixed five-dimension rubrics
// using an LLM judge.
package scoring

import "github.com/kvdesign/kvbench/internal/models"

// Dimension is one scored axis of a rubric, with the criteria text injected
// into the judge prompt.
type Dimension struct {
	Name     string
	Criteria string
}

// Rubric is a fixed, ordered set of five dimensions. The session rubric
// judges the process in the transcript; the model rubric judges the final
// design.
type Rubric struct {
	Kind       models.RubricKind
	Dimensions []Dimension
}

// Names returns the dimension names in rubric order.
func (r Rubric) Names() []string {
	out := make([]string, len(r.Dimensions))
	for i, d := range r.Dimensions {
		out[i] = d.Name
	}
	return out
}

// SessionRubric grades the quality of the modeling process: how the
// assistant worked, independent of what it produced.
func SessionRubric() Rubric {
	return Rubric{
		Kind: models.RubricSession,
		Dimensions: []Dimension{
			{
				Name: "requirements_engineering",
				Criteria: "Quality of requirements capture, entity modeling, and scope definition. " +
					"Are business context, scale, and constraints properly documented?",
			},
			{
				Name: "access_pattern_analysis",
				Criteria: "Rigor of access pattern analysis including completeness, rate estimates, " +
					"performance requirements, and prioritization.",
			},
			{
				Name: "methodology_adherence",
				Criteria: "Does the session follow a systematic design methodology? " +
					"Are decision frameworks applied rather than jumping straight to a schema?",
			},
			{
				Name: "technical_reasoning",
				Criteria: "Quality of design justifications, trade-off analysis, risk assessment, " +
					"and optimization considerations.",
			},
			{
				Name: "process_documentation",
				Criteria: "Organization, transparency, traceability, and professional quality " +
					"of the process documentation.",
			},
		},
	}
}

// ModelRubric grades the technical quality of the final data model.
func ModelRubric() Rubric {
	return Rubric{
		Kind: models.RubricModel,
		Dimensions: []Dimension{
			{
				Name: "completeness",
				Criteria: "Does the guidance address ALL scenario elements: " +
					"(1) all entities identified and defined, " +
					"(2) all entity relationships mapped, " +
					"(3) all access patterns identified, " +
					"(4) performance requirements covered, " +
					"(5) scale requirements covered. " +
					"9-10 comprehensive coverage; 7-8 minor gaps; 5-6 core elements but missing details; " +
					"3-4 significant gaps; 1-2 major elements missing.",
			},
			{
				Name: "technical_accuracy",
				Criteria: "Technical correctness of the key-value design: " +
					"(1) primary key design follows best practices, " +
					"(2) secondary index design is appropriate and efficient, " +
					"(3) data type and attribute choices are sound, " +
					"(4) sort key design enables the required access patterns, " +
					"(5) recommendations follow established practice. " +
					"9-10 all recommendations sound; 7-8 minor issues; 5-6 some questionable choices; " +
					"3-4 several errors; 1-2 fundamental misunderstandings.",
			},
			{
				Name: "access_pattern_coverage",
				Criteria: "How well access patterns are optimized: " +
					"(1) query patterns mapped to optimal table and index design, " +
					"(2) the most frequent patterns are prioritized, " +
					"(3) edge cases and rare patterns considered, " +
					"(4) performance implications of each pattern addressed, " +
					"(5) efficient query strategies recommended.",
			},
			{
				Name: "scalability_considerations",
				Criteria: "Scalability and performance planning: " +
					"(1) hot partition prevention, " +
					"(2) capacity planning for expected growth, " +
					"(3) bottleneck identification, " +
					"(4) auto-scaling considerations, " +
					"(5) future growth accommodated in the design.",
			},
			{
				Name: "cost_optimization",
				Criteria: "Cost optimization strategies: " +
					"(1) billing mode analysis, " +
					"(2) secondary index cost implications, " +
					"(3) storage cost strategies, " +
					"(4) read/write cost efficiency, " +
					"(5) multiple cost-saving techniques suggested.",
			},
		},
	}
}
