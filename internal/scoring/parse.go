package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Judges are told the exact output format, but LLMs take liberties with it.
// The parser tolerates the common variants and nothing more: a score it
// cannot read, or one outside [1,10], is a hard failure. There is no
// fallback value.
var (
	slashTenPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*/\s*10\b`)
	outOfTenPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s+out\s+of\s+10\b`)
	bareNumber      = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// dimensionLine matches "some_dimension: rest", tolerating list
	// markers, bold markup, and a trailing "score"/"rating" word in the
	// label.
	dimensionLine = regexp.MustCompile(`^[\s>*#\-\d.]*\**([A-Za-z][A-Za-z_ ]*?)\**\s*[:=]\s*(.*)$`)
)

// ParseScore extracts a single numeric score from judge output text.
// Accepted forms include "8.5", "8.5/10", "Score: 8.5/10", and
// "Rating: 7 out of 10". The result must lie in [1,10]; anything else is an
// error, never a clamped or defaulted value.
func ParseScore(text string) (float64, error) {
	var raw string
	if m := slashTenPattern.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := outOfTenPattern.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := bareNumber.FindString(text); m != "" {
		raw = m
	} else {
		return 0, fmt.Errorf("no score found in %q", strings.TrimSpace(text))
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing score %q: %w", raw, err)
	}
	if score < 1 || score > 10 {
		return 0, fmt.Errorf("score %v out of range [1,10]", score)
	}
	return score, nil
}

// ParseVerdict reads judge output and returns one score and one
// justification per expected dimension. Every dimension must be present
// exactly once with an in-range score, otherwise the whole verdict fails.
func ParseVerdict(raw string, dimensions []string) (map[string]float64, map[string]string, error) {
	canonical := make(map[string]string, len(dimensions))
	for _, d := range dimensions {
		canonical[normalizeLabel(d)] = d
	}

	scores := make(map[string]float64, len(dimensions))
	justifications := make(map[string]string, len(dimensions))

	current := ""
	for _, line := range strings.Split(raw, "\n") {
		m := dimensionLine.FindStringSubmatch(line)
		if m == nil {
			// Continuation prose belongs to the last seen dimension.
			if current != "" && strings.TrimSpace(line) != "" {
				justifications[current] = joinJustification(justifications[current], line)
			}
			continue
		}

		label := normalizeLabel(m[1])
		dim, ok := canonical[label]
		if !ok {
			if strings.HasPrefix(label, "justification") && current != "" {
				justifications[current] = joinJustification(justifications[current], m[2])
			}
			continue
		}

		if _, dup := scores[dim]; dup {
			return nil, nil, fmt.Errorf("dimension %q scored more than once", dim)
		}

		score, err := ParseScore(m[2])
		if err != nil {
			return nil, nil, fmt.Errorf("dimension %q: %w", dim, err)
		}
		scores[dim] = score
		current = dim

		// Anything after the score on the same line is justification.
		if rest := trailingProse(m[2]); rest != "" {
			justifications[dim] = rest
		}
	}

	for _, d := range dimensions {
		if _, ok := scores[d]; !ok {
			return nil, nil, fmt.Errorf("no score found for dimension %q", d)
		}
	}
	return scores, justifications, nil
}

// normalizeLabel lowercases a label and collapses spaces to underscores so
// "Technical Accuracy Score" matches "technical_accuracy".
func normalizeLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.TrimSuffix(l, " score")
	l = strings.TrimSuffix(l, " rating")
	return strings.ReplaceAll(l, " ", "_")
}

// trailingProse strips the leading score expression from a line remainder
// and returns any prose that follows it.
func trailingProse(rest string) string {
	for _, p := range []*regexp.Regexp{slashTenPattern, outOfTenPattern} {
		if loc := p.FindStringIndex(rest); loc != nil {
			return strings.TrimLeft(strings.TrimSpace(rest[loc[1]:]), "-– .")
		}
	}
	if loc := bareNumber.FindStringIndex(rest); loc != nil {
		return strings.TrimLeft(strings.TrimSpace(rest[loc[1]:]), "-– .")
	}
	return ""
}

func joinJustification(existing, addition string) string {
	addition = strings.TrimSpace(addition)
	if existing == "" {
		return addition
	}
	if addition == "" {
		return existing
	}
	return existing + " " + addition
}
