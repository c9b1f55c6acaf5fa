package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/madbrain/mdbook-codetags/internal/scanner"
)

// Test Plan for breadcrumbs:
// - each node kind renders its phrase, parents first
// - synthetic new/top nodes render the create/add-to-top phrases
// - a function matching the preceding location renders "in name()"
// - a function with removed lines renders "kind name()"
// - a node whose parent is the preceding location points into it
// - a non-function node equal to the preceding renders the $name form
// - otherwise the preceding function or container gets "add after"
// - a file-rooted preceding adds nothing

func fileLoc() *scanner.Location {
	return scanner.NewFileLocation("Lox.java")
}

func classLoc() *scanner.Location {
	return &scanner.Location{Parent: fileLoc(), Kind: scanner.KindType, Keyword: "class", Name: "Lox"}
}

func methodLoc() *scanner.Location {
	return &scanner.Location{Parent: classLoc(), Kind: scanner.KindMethod, Name: "run"}
}

func TestBreadcrumbFileOnly(t *testing.T) {
	got := Breadcrumbs(fileLoc(), nil, false)
	assert.Equal(t, []string{"<em>Lox.java</em>"}, got)
}

func TestBreadcrumbNewFile(t *testing.T) {
	loc := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindNew}
	got := Breadcrumbs(loc, nil, false)
	assert.Equal(t, []string{"<em>Lox.java</em>", "create new file"}, got)
}

func TestBreadcrumbTopOfFile(t *testing.T) {
	loc := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindTop}
	got := Breadcrumbs(loc, nil, false)
	assert.Equal(t, []string{"<em>Lox.java</em>", "add to top of file"}, got)
}

func TestBreadcrumbType(t *testing.T) {
	got := Breadcrumbs(classLoc(), nil, false)
	assert.Equal(t, []string{"<em>Lox.java</em>", "in class <em>Lox</em>"}, got)
}

func TestBreadcrumbFunctionMatchesPreceding(t *testing.T) {
	got := Breadcrumbs(methodLoc(), methodLoc(), false)
	assert.Equal(t, []string{
		"<em>Lox.java</em>",
		"in class <em>Lox</em>",
		"in <em>run</em>()",
	}, got)
}

func TestBreadcrumbFunctionWithRemovedLines(t *testing.T) {
	got := Breadcrumbs(methodLoc(), nil, true)
	assert.Equal(t, []string{
		"<em>Lox.java</em>",
		"in class <em>Lox</em>",
		"method <em>run</em>()",
	}, got)
}

func TestBreadcrumbParentIsPreceding(t *testing.T) {
	// The class phrase repeats: once for the type node itself, once for
	// the method pointing into its preceding parent.
	got := Breadcrumbs(methodLoc(), classLoc(), false)
	assert.Equal(t, []string{
		"<em>Lox.java</em>",
		"in class <em>Lox</em>",
		"in class <em>Lox</em>",
	}, got)
}

func TestBreadcrumbSelfIsPreceding(t *testing.T) {
	counter := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindVariable, Name: "counter"}
	same := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindVariable, Name: "counter"}

	got := Breadcrumbs(counter, same, false)
	assert.Equal(t, []string{"<em>Lox.java</em>", "in variable <em>$name</em>"}, got)
}

func TestBreadcrumbAddAfterFunction(t *testing.T) {
	counter := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindVariable, Name: "counter"}

	got := Breadcrumbs(counter, methodLoc(), false)
	assert.Equal(t, []string{"<em>Lox.java</em>", "add after <em>run</em>()"}, got)
}

func TestBreadcrumbAddAfterContainer(t *testing.T) {
	counter := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindVariable, Name: "counter"}

	got := Breadcrumbs(counter, classLoc(), false)
	assert.Equal(t, []string{"<em>Lox.java</em>", "add after class <em>Lox</em>"}, got)
}

func TestBreadcrumbFilePrecedingAddsNothing(t *testing.T) {
	counter := &scanner.Location{Parent: fileLoc(), Kind: scanner.KindVariable, Name: "counter"}

	got := Breadcrumbs(counter, fileLoc(), false)
	assert.Equal(t, []string{"<em>Lox.java</em>"}, got)
}
