// Package guidance pulls the structured design documents out of an
// assistant's final reply.
package guidance

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Sections are the two documents the final turn asks the assistant to
// produce inside fenced markdown blocks.
type Sections struct {
	// ModelingSession documents the design process that was followed.
	ModelingSession string
	// DataModel is the final schema design.
	DataModel string
}

// HasDataModel reports whether a data model section was found.
func (s Sections) HasDataModel() bool { return s.DataModel != "" }

// Extract parses an assistant reply and returns the fenced markdown blocks
// holding the modeling session and data model documents. Blocks are
// classified by their leading heading; an assistant that skipped the fences
// yields empty sections and callers fall back to the raw reply.
func Extract(reply string) Sections {
	source := []byte(reply)

	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	var sections Sections
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if lang := string(fence.Language(source)); lang != "markdown" && lang != "md" {
			return ast.WalkContinue, nil
		}

		content := fencedContent(fence, source)
		switch classify(content) {
		case "modeling session":
			if sections.ModelingSession == "" {
				sections.ModelingSession = content
			}
		case "data model":
			if sections.DataModel == "" {
				sections.DataModel = content
			}
		}
		return ast.WalkContinue, nil
	})

	return sections
}

// fencedContent reassembles a fenced block's body from its line segments.
func fencedContent(fence *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// classify reads the block's first heading and normalizes it.
func classify(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			return ""
		}
		heading := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
		return heading
	}
	return ""
}
