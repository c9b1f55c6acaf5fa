package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madbrain/mdbook-codetags/internal/catalog"
)

// Test Plan for the interval stack parser:
// - marker lines are consumed, content lines are stamped
// - nested regions stamp with the innermost start tag
// - chapterless start markers inherit the open region's chapter
// - block markers stamp an explicit end tag and close on "*/"
// - end marker name mismatch fails the run
// - end marker chapter mismatch fails, except for static-chapter regions
// - end marker or block end with an empty stack fails
// - content outside any region fails
// - unknown start tags fail with catalog context
// - IsPresentAt honors the ordinal precedence rules

func TestParseStampsContentLines(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer", "inner"}})
	file := scanLines(t, cat,
		"//> Test outer",
		"line one",
		"//> inner",
		"line two",
		"//< inner",
		"line three",
		"//< Test outer",
	)

	require.Len(t, file.Lines, 3)
	assert.Equal(t, "line one", file.Lines[0].Content)
	assert.Equal(t, "outer", file.Lines[0].Start.Name)
	assert.Equal(t, "inner", file.Lines[1].Start.Name)
	assert.Equal(t, "outer", file.Lines[2].Start.Name)
	assert.Nil(t, file.Lines[0].End)
}

func TestParseBlockForm(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer", "alpha", "beta"}})
	file := scanLines(t, cat,
		"//> Test outer",
		"before",
		"/* Test alpha < Test beta",
		"replaced",
		"*/",
		"after",
		"//< Test outer",
	)

	require.Len(t, file.Lines, 3)

	replaced := file.Lines[1]
	assert.Equal(t, "alpha", replaced.Start.Name)
	require.NotNil(t, replaced.End)
	assert.Equal(t, "beta", replaced.End.Name)

	after := file.Lines[2]
	assert.Equal(t, "outer", after.Start.Name)
	assert.Nil(t, after.End)
}

func TestParseEndMarkerMismatch(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer", "wrong"}})
	_, err := NewParser(cat).ParseLines([]string{
		"//> Test outer",
		"//< Test wrong",
	}, "Main.java")

	var mismatch *MarkerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "outer", mismatch.Want)
	assert.Equal(t, "wrong", mismatch.Got)
	assert.Equal(t, "Main.java", mismatch.File)
	assert.Equal(t, 2, mismatch.Line)
}

func TestParseEndChapterMismatch(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer"}, "Other": {"thing"}})
	_, err := NewParser(cat).ParseLines([]string{
		"//> Test outer",
		"//< Other outer",
	}, "Main.java")

	var mismatch *ChapterMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Test", mismatch.Want)
	assert.Equal(t, "Other", mismatch.Got)
}

func TestParseStaticChapterSkipsChapterCheck(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer"}})
	file := scanLines(t, cat,
		"//> Test omit",
		"hidden",
		"//< Whatever omit",
	)

	require.Len(t, file.Lines, 1)
	assert.Equal(t, "omit", file.Lines[0].Start.Name)
	assert.Equal(t, 9998, file.Lines[0].Start.Index)
}

func TestParseEndWithEmptyStack(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer"}})

	var stackErr *StackError
	_, err := NewParser(cat).ParseLines([]string{"//< Test outer"}, "Main.java")
	require.ErrorAs(t, err, &stackErr)

	_, err = NewParser(cat).ParseLines([]string{"*/"}, "Main.java")
	require.ErrorAs(t, err, &stackErr)
}

func TestParseContentOutsideRegion(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer"}})
	_, err := NewParser(cat).ParseLines([]string{"stray line"}, "Main.java")

	var stackErr *StackError
	require.ErrorAs(t, err, &stackErr)
	assert.Equal(t, 1, stackErr.Line)
}

func TestParseUnknownStartTag(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"outer"}})
	_, err := NewParser(cat).ParseLines([]string{"//> Test nope"}, "Main.java")

	var unknown *catalog.UnknownTagError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Name)
}

func TestIsPresentAt(t *testing.T) {
	cat := testCatalog(t, map[string][]string{"Test": {"alpha", "beta"}})
	alpha, err := cat.FindTag("Test", "alpha")
	require.NoError(t, err)
	beta, err := cat.FindTag("Test", "beta")
	require.NoError(t, err)

	// A plain alpha line is visible to both regions.
	line := &SourceLine{Start: alpha}
	assert.True(t, line.IsPresentAt(alpha))
	assert.True(t, line.IsPresentAt(beta))

	// A beta line is not yet written from alpha's point of view.
	line = &SourceLine{Start: beta}
	assert.False(t, line.IsPresentAt(alpha))
	assert.True(t, line.IsPresentAt(beta))

	// A line superseded by beta is gone for beta and later regions,
	// still visible for alpha.
	line = &SourceLine{Start: alpha, End: beta}
	assert.True(t, line.IsPresentAt(alpha))
	assert.False(t, line.IsPresentAt(beta))
}
