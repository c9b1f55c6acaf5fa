// Package render turns built snippets back into chapter markup: a diff-style
// code block followed by a breadcrumb phrase describing where the excerpt
// belongs.
package render

import (
	"fmt"

	"github.com/madbrain/mdbook-codetags/internal/scanner"
)

// Breadcrumbs converts a location chain into ordered phrases, root first.
// preceding is the nearest location rendered before this snippet and steers
// the "in"/"add after" wording; hasRemoved marks snippets that supersede
// earlier lines.
func Breadcrumbs(loc, preceding *scanner.Location, hasRemoved bool) []string {
	var result []string
	breadcrumb(&result, loc, preceding, hasRemoved)
	return result
}

// breadcrumb applies the first matching phrase rule for each node, parents
// first. Rule order is significant.
func breadcrumb(result *[]string, loc, preceding *scanner.Location, hasRemoved bool) {
	if loc.Parent != nil {
		breadcrumb(result, loc.Parent, preceding, hasRemoved)
	}
	switch {
	case loc.Kind == scanner.KindFile:
		*result = append(*result, fmt.Sprintf("<em>%s</em>", loc.Name))
	case loc.Kind == scanner.KindNew:
		*result = append(*result, "create new file")
	case loc.Kind == scanner.KindTop:
		*result = append(*result, "add to top of file")
	case loc.Kind == scanner.KindType:
		*result = append(*result, fmt.Sprintf("in %s <em>%s</em>", loc.Keyword, loc.Name))
	case loc.IsFunction() && loc.Equal(preceding):
		*result = append(*result, fmt.Sprintf("in <em>%s</em>()", loc.Name))
	case loc.IsFunction() && hasRemoved:
		*result = append(*result, fmt.Sprintf("%s <em>%s</em>()", loc.Kind, loc.Name))
	case preceding != nil && !preceding.IsFile() && loc.Parent.Equal(preceding):
		*result = append(*result, fmt.Sprintf("in %s <em>%s</em>", preceding.KeywordOrKind(), preceding.Name))
	case loc.Equal(preceding) && !loc.IsFile():
		*result = append(*result, fmt.Sprintf("in %s <em>$name</em>", loc.KeywordOrKind()))
	case preceding != nil && preceding.IsFunction():
		*result = append(*result, fmt.Sprintf("add after <em>%s</em>()", preceding.Name))
	case preceding != nil && !preceding.IsFile():
		*result = append(*result, fmt.Sprintf("add after %s <em>%s</em>", preceding.KeywordOrKind(), preceding.Name))
	}
}
