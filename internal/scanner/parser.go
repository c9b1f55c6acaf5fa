package scanner

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/madbrain/mdbook-codetags/internal/catalog"
)

// Region markers embedded in source comments.
var (
	startPattern      = regexp.MustCompile(`^//> ([A-Z][A-Za-z\s]+\s+)?([-a-z0-9]+)$`)
	endPattern        = regexp.MustCompile(`^//< ([A-Z][A-Za-z\s]+\s+)?([-a-z0-9]+)$`)
	startBlockPattern = regexp.MustCompile(`^/\* ([A-Z][A-Za-z\s]+) ([-a-z0-9]+) < ([A-Z][A-Za-z\s]+) ([-a-z0-9]+)$`)
)

// SourceLine is one physical line stamped with its structural location, the
// innermost open region and, when the enclosing interval carries an
// explicit end, the region being superseded at this line.
type SourceLine struct {
	Content  string
	Location *Location
	Start    *catalog.Tag
	End      *catalog.Tag
}

// IsPresentAt reports whether the line counts as visible context for tag:
// lines belonging to an earlier-ordered region are not yet written, and
// lines whose end region is at or after tag are already superseded.
func (l *SourceLine) IsPresentAt(tag *catalog.Tag) bool {
	if tag.Before(l.Start) {
		return false
	}
	if l.End != nil && !tag.Before(l.End) {
		return false
	}
	return true
}

// SourceFile is the stamped line list of one scanned file.
type SourceFile struct {
	Path  string // relative to the source root
	Lines []SourceLine
}

// interval is one frame of the open-region stack.
type interval struct {
	start *catalog.Tag
	end   *catalog.Tag
}

// Parser scans one source file at a time: the structural cursor and the
// interval stack are reset per file.
type Parser struct {
	book     *catalog.Catalog
	states   []interval
	location *Location
	path     string
	lineNo   int
}

// NewParser returns a parser resolving markers against the given catalog.
func NewParser(c *catalog.Catalog) *Parser {
	return &Parser{book: c}
}

// ParseFile reads and scans the file at path, stamping every content line.
// rel is the path relative to the source root, used as the file location
// name and in error context.
func (p *Parser) ParseFile(path, rel string) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	return p.ParseLines(splitLines(string(data)), rel)
}

// ParseLines scans an already-split line list. The structural cursor and
// the interval stack are reset first.
func (p *Parser) ParseLines(lines []string, rel string) (*SourceFile, error) {
	p.location = NewFileLocation(rel)
	p.states = p.states[:0]
	p.path = rel

	file := &SourceFile{Path: rel}
	for i, line := range lines {
		p.lineNo = i + 1
		var nextLine string
		hasNext := i+1 < len(lines)
		if hasNext {
			nextLine = lines[i+1]
		}
		p.updateLocationBefore(line, nextLine, hasNext)
		handled, err := p.updateState(line)
		if err != nil {
			return nil, err
		}
		if !handled {
			if len(p.states) == 0 {
				return nil, &StackError{File: p.path, Line: p.lineNo, Reason: "content line outside any tagged region"}
			}
			state := p.states[len(p.states)-1]
			file.Lines = append(file.Lines, SourceLine{
				Content:  line,
				Location: p.location,
				Start:    state.start,
				End:      state.end,
			})
		}
		p.updateLocationAfter(line)
	}
	return file, nil
}

// updateState recognizes region markers and maintains the interval stack.
// It reports whether the line was a marker (and thus not content).
func (p *Parser) updateState(line string) (bool, error) {
	if m := startPattern.FindStringSubmatch(line); m != nil {
		return true, p.push(m[1], m[2], "", "")
	}
	if m := endPattern.FindStringSubmatch(line); m != nil {
		return true, p.popEnd(strings.TrimSpace(m[1]), m[2])
	}
	if m := startBlockPattern.FindStringSubmatch(line); m != nil {
		return true, p.push(m[1], m[2], m[3], m[4])
	}
	if strings.TrimSpace(line) == "*/" {
		if len(p.states) == 0 {
			return true, &StackError{File: p.path, Line: p.lineNo, Reason: "block end marker with no open region"}
		}
		p.states = p.states[:len(p.states)-1]
		return true, nil
	}
	return false, nil
}

func (p *Parser) push(startChapter, startName, endChapter, endName string) error {
	startChapter = strings.TrimSpace(startChapter)
	if startChapter == "" {
		// A chapterless start marker inherits the chapter of the
		// innermost open region.
		if len(p.states) == 0 {
			return &StackError{File: p.path, Line: p.lineNo,
				Reason: fmt.Sprintf("start marker %q has no chapter and no enclosing region", startName)}
		}
		open := p.states[len(p.states)-1].start
		startChapter = p.book.ChapterName(open.Chapter)
	}
	start, err := p.book.FindTag(startChapter, startName)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", p.path, p.lineNo, err)
	}

	var end *catalog.Tag
	if endName != "" {
		end, err = p.book.FindTag(strings.TrimSpace(endChapter), endName)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", p.path, p.lineNo, err)
		}
	}
	p.states = append(p.states, interval{start: start, end: end})
	return nil
}

func (p *Parser) popEnd(chapterName, name string) error {
	if len(p.states) == 0 {
		return &StackError{File: p.path, Line: p.lineNo,
			Reason: fmt.Sprintf("end marker %q with no open region", name)}
	}
	open := p.states[len(p.states)-1].start
	if chapterName != "" {
		openChapter := p.book.ChapterName(open.Chapter)
		if openChapter != catalog.StaticChapter && openChapter != chapterName {
			return &ChapterMismatchError{File: p.path, Line: p.lineNo, Want: openChapter, Got: chapterName}
		}
	}
	if open.Name != name {
		return &MarkerMismatchError{File: p.path, Line: p.lineNo, Want: open.Name, Got: name}
	}
	p.states = p.states[:len(p.states)-1]
	return nil
}

// splitLines splits file content the way a line reader would: the trailing
// newline does not produce an empty last line, and CR is stripped.
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
