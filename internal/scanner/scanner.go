package scanner

import (
	"regexp"
	"strings"
)

// Structural heuristics for Java-shaped sources. No grammar: declaration
// lines are recognized by shape, nesting by brace indentation.
var (
	constructorPattern = regexp.MustCompile(`^  ([A-Z][a-z]\w+)\(`)
	functionPattern    = regexp.MustCompile(`(\w+)>*\*? (\w+)\(([^)]*)`)
	variablePattern    = regexp.MustCompile(`^\w+\*? (\w+)(;| = )`)
	typePattern        = regexp.MustCompile(`(public )?(abstract )?(class|enum|interface) ([A-Z]\w+).*`)
)

// Keywords that look like a return type in front of a call expression.
var functionKeywords = map[string]bool{
	"new":    true,
	"return": true,
	"throw":  true,
}

// looksLikeProse suppresses matches inside lines that carry a comment or a
// string literal.
func looksLikeProse(line string) bool {
	return strings.Contains(line, "//") || strings.Contains(line, `"`)
}

// updateLocationBefore tests the declaration patterns in priority order and
// pushes a child location for the first match. At most one pattern applies
// per line.
func (p *Parser) updateLocationBefore(line, nextLine string, hasNext bool) {
	if m := functionPattern.FindStringSubmatch(line); m != nil && !functionKeywords[m[1]] {
		if !looksLikeProse(line) {
			isDeclaration := strings.HasSuffix(line, ";")
			// Multi-line signatures: a trailing comma whose next line
			// ends the statement is still a declaration.
			if strings.HasSuffix(line, ",") && hasNext && strings.HasSuffix(nextLine, ";") {
				isDeclaration = true
			}
			p.location = &Location{
				Parent:                p.location,
				Kind:                  KindMethod,
				Name:                  m[2],
				IsFunctionDeclaration: isDeclaration,
			}
			return
		}
	}
	if m := constructorPattern.FindStringSubmatch(line); m != nil {
		p.location = &Location{Parent: p.location, Kind: KindConstructor, Name: m[1]}
		return
	}
	if m := typePattern.FindStringSubmatch(line); m != nil {
		// A suppressed type match still ends pattern dispatch for the
		// line, so the variable pattern never sees type declarations.
		if !looksLikeProse(line) {
			p.location = &Location{Parent: p.location, Kind: KindType, Keyword: m[3], Name: m[4]}
		}
		return
	}
	if m := variablePattern.FindStringSubmatch(line); m != nil {
		p.location = &Location{Parent: p.location, Kind: KindVariable, Name: m[1]}
	}
}

// updateLocationAfter pops the cursor on closing braces and collapses
// single-line scopes.
func (p *Parser) updateLocationAfter(line string) {
	// Prefix match keeps lines like "} // aside" working.
	switch {
	case strings.HasPrefix(line, "}"):
		p.location = p.location.PopToDepth(0)
	case strings.HasPrefix(line, "  }"):
		p.location = p.location.PopToDepth(1)
	case strings.HasPrefix(line, "    }"):
		p.location = p.location.PopToDepth(2)
	}

	// A declaration has no body: its scope ends on its own line.
	if p.location.IsFunctionDeclaration && p.location.Parent != nil {
		p.location = p.location.Parent
	}

	// Variables are always single-line scopes.
	if p.location.Kind == KindVariable && p.location.Parent != nil {
		p.location = p.location.Parent
	}

	// One-line class in Parser.java; the brace heuristic cannot see it.
	if strings.Contains(line, "class ParseError") && p.location.Parent != nil {
		p.location = p.location.Parent
	}
}
