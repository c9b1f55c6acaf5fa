// Package catalog builds the registry of tagged regions referenced by the
// book's chapters. Each ^code reference in a chapter declares a region name
// plus optional context-line budgets; source markers are later resolved
// against this registry.
package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/madbrain/mdbook-codetags/internal/book"
)

// StaticChapter is the synthetic chapter appended after all real chapters.
// Its tags (omit, not-yet) are resolvable from any chapter.
const StaticChapter = "$static$"

// ReferencePattern matches a ^code reference line in chapter markdown,
// capturing the region name and the optional parenthesized option list.
var ReferencePattern = regexp.MustCompile(`(?m)^\^code\s+([a-z-]+)\s*(?:\(([^)]*)\))?`)

// Tag is one named region declared by a chapter reference.
type Tag struct {
	Chapter     int    // index into Catalog.Chapters
	Name        string
	Index       int    // reference order within the chapter, starting at 0
	NoLocation  bool   // reserved, parsed but not interpreted
	BeforeCount int
	AfterCount  int
}

// Before reports whether t is ordered before other, by chapter index then
// reference index. This ordering decides interval precedence.
func (t *Tag) Before(other *Tag) bool {
	if t.Chapter != other.Chapter {
		return t.Chapter < other.Chapter
	}
	return t.Index < other.Index
}

// Chapter groups the tags referenced by one book chapter.
type Chapter struct {
	Name string
	Tags []*Tag
}

func (c *Chapter) findTag(name string) *Tag {
	for _, t := range c.Tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Catalog holds all chapters in book order, with the synthetic static
// chapter last.
type Catalog struct {
	Chapters []*Chapter
}

// ChapterName returns the name of the chapter at index i.
func (c *Catalog) ChapterName(i int) string {
	return c.Chapters[i].Name
}

func (c *Catalog) findChapter(name string) *Chapter {
	for _, ch := range c.Chapters {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

// FindTag resolves a region name against a chapter. The static chapter is
// consulted first so omit/not-yet override same-named regions everywhere.
// An unresolvable (chapter, name) pair is a fatal authoring error.
func (c *Catalog) FindTag(chapterName, name string) (*Tag, error) {
	chapter := c.findChapter(chapterName)
	if chapter == nil {
		return nil, &UnknownTagError{Chapter: chapterName, Name: name}
	}
	static := c.Chapters[len(c.Chapters)-1]
	if t := static.findTag(name); t != nil {
		return t, nil
	}
	if t := chapter.findTag(name); t != nil {
		return t, nil
	}
	return nil, &UnknownTagError{Chapter: chapterName, Name: name}
}

// Collect scans the book's chapters in document order and builds the
// catalog. Every reference appends a tag, so a name referenced twice keeps
// its first (lowest-index) entry as the lookup result.
func Collect(b *book.Book) (*Catalog, error) {
	c := &Catalog{}
	for _, chapter := range b.Chapters() {
		index := 0
		for _, m := range ReferencePattern.FindAllStringSubmatch(chapter.Content, -1) {
			tag := &Tag{Name: m[1], Index: index}
			if err := parseOptions(tag, m[2]); err != nil {
				return nil, err
			}
			entry := c.findChapter(chapter.Name)
			if entry == nil {
				entry = &Chapter{Name: chapter.Name}
				c.Chapters = append(c.Chapters, entry)
			}
			tag.Chapter = chapterIndex(c, entry)
			entry.Tags = append(entry.Tags, tag)
			index++
		}
	}
	static := len(c.Chapters)
	c.Chapters = append(c.Chapters, &Chapter{Name: StaticChapter, Tags: []*Tag{
		{Chapter: static, Name: "omit", Index: 9998},
		{Chapter: static, Name: "not-yet", Index: 9999},
	}})
	return c, nil
}

func chapterIndex(c *Catalog, entry *Chapter) int {
	for i, ch := range c.Chapters {
		if ch == entry {
			return i
		}
	}
	return -1
}

func parseOptions(tag *Tag, options string) error {
	if options == "" {
		return nil
	}
	for _, opt := range strings.Split(options, ",") {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "no location":
			tag.NoLocation = true
		case strings.HasSuffix(opt, " before"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(opt, " before")))
			if err != nil {
				return &OptionError{Tag: tag.Name, Option: opt, Err: err}
			}
			tag.BeforeCount = n
		case strings.HasSuffix(opt, " after"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(opt, " after")))
			if err != nil {
				return &OptionError{Tag: tag.Name, Option: opt, Err: err}
			}
			tag.AfterCount = n
		}
		// Unrecognized options are ignored.
	}
	return nil
}
