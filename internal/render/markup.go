package render

import (
	"fmt"
	"strings"

	"github.com/madbrain/mdbook-codetags/internal/catalog"
	"github.com/madbrain/mdbook-codetags/internal/snippet"
)

// Snippet renders the markup block for one built snippet: indented context,
// removed and added lines, then the breadcrumb location.
func Snippet(sn *snippet.Snippet, language string) string {
	var b strings.Builder
	b.WriteString("<pre>")
	fmt.Fprintf(&b, "<code class=\"language-%s\">", language)
	writeLines(&b, "  ", sn.ContextBefore)
	writeLines(&b, "- ", sn.Removed)
	writeLines(&b, "+ ", sn.Added)
	writeLines(&b, "  ", sn.ContextAfter)
	b.WriteString("</code>\n")
	if sn.Location != nil {
		b.WriteString("<div class=\"location\">")
		phrases := Breadcrumbs(sn.Location, sn.PrecedingLocation, len(sn.Removed) > 0)
		b.WriteString(strings.Join(phrases, ", "))
		b.WriteString("</div>\n")
	}
	b.WriteString("</pre>\n")
	return b.String()
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// NotFound is the inline notice for a reference with no built snippet.
// Missing snippets degrade to this notice; they never fail the run.
func NotFound(name string) string {
	return fmt.Sprintf("<p>Code tag %s not found</p>\n", name)
}

// Chapter rewrites one chapter's content, replacing every ^code reference
// line with its snippet markup and passing all other lines through.
func Chapter(content string, snippets snippet.Map, language string) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, line := range splitLines(content) {
		m := catalog.ReferencePattern.FindStringSubmatch(line)
		if m == nil {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}
		if sn, ok := snippets[m[1]]; ok {
			b.WriteString(Snippet(sn, language))
		} else {
			b.WriteString(NotFound(m[1]))
		}
	}
	return b.String()
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
