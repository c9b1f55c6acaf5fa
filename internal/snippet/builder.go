// Package snippet accumulates the added/removed line runs of each tagged
// region and computes the surrounding context and location notes.
package snippet

import (
	"github.com/madbrain/mdbook-codetags/internal/catalog"
	"github.com/madbrain/mdbook-codetags/internal/scanner"
)

// Snippet is the extracted excerpt for one tagged region within one file.
type Snippet struct {
	Tag               *catalog.Tag
	File              string
	Location          *scanner.Location
	PrecedingLocation *scanner.Location
	FirstLine         int
	LastLine          int
	ContextBefore     []string
	ContextAfter      []string
	Added             []string
	Removed           []string
}

// New returns an empty snippet for tag.
func New(tag *catalog.Tag) *Snippet {
	return &Snippet{Tag: tag}
}

// AddLine appends a line whose start region is this snippet's tag. The
// first added line fixes the snippet's location and first-line index.
func (s *Snippet) AddLine(lineIndex int, line *scanner.SourceLine) {
	if len(s.Added) == 0 {
		s.Location = line.Location
		s.FirstLine = lineIndex
	}
	s.Added = append(s.Added, line.Content)
	s.LastLine = lineIndex
}

// RemoveLine appends a line superseding this snippet's tag.
func (s *Snippet) RemoveLine(lineIndex int, line *scanner.SourceLine) {
	s.Removed = append(s.Removed, line.Content)
	s.LastLine = lineIndex
}

// ComputeContext fills the context-line lists, infers the preceding
// location and synthesizes a top/new location when no earlier line of the
// file is present at this snippet's tag.
func (s *Snippet) ComputeContext(file *scanner.SourceFile) {
	for i := s.FirstLine - 1; i >= 0; i-- {
		if len(s.ContextBefore) >= s.Tag.BeforeCount {
			break
		}
		line := &file.Lines[i]
		if !line.IsPresentAt(s.Tag) {
			continue
		}
		s.ContextBefore = append([]string{line.Content}, s.ContextBefore...)
	}

	for i := s.LastLine + 1; i < len(file.Lines); i++ {
		if len(s.ContextAfter) >= s.Tag.AfterCount {
			break
		}
		line := &file.Lines[i]
		if line.IsPresentAt(s.Tag) {
			s.ContextAfter = append(s.ContextAfter, line.Content)
		}
	}

	// Keep the most deeply nested location among the five nearest
	// present lines above the snippet.
	checked := 0
	for i := s.FirstLine - 1; i >= 0; i-- {
		if checked > 4 {
			break
		}
		line := &file.Lines[i]
		if !line.IsPresentAt(s.Tag) {
			continue
		}
		checked++
		if s.PrecedingLocation == nil || line.Location.Depth() > s.PrecedingLocation.Depth() {
			s.PrecedingLocation = line.Location
		}
	}

	hasCodeBefore := len(s.ContextBefore) > 0
	for i := s.FirstLine - 1; i >= 0 && !hasCodeBefore; i-- {
		hasCodeBefore = file.Lines[i].IsPresentAt(s.Tag)
	}

	hasCodeAfter := len(s.ContextAfter) > 0
	for i := s.LastLine + 1; i < len(file.Lines) && !hasCodeAfter; i++ {
		hasCodeAfter = file.Lines[i].IsPresentAt(s.Tag)
	}

	if !hasCodeBefore {
		kind := scanner.KindNew
		if hasCodeAfter {
			kind = scanner.KindTop
		}
		s.Location = &scanner.Location{Parent: s.Location, Kind: kind}
	}
}

// Map holds built snippets keyed by region name.
type Map map[string]*Snippet

// BuildFile accumulates one snippet per region touched by the file's
// stamped lines and computes their contexts.
func BuildFile(file *scanner.SourceFile) Map {
	local := make(Map)
	for i := range file.Lines {
		line := &file.Lines[i]
		sn := local[line.Start.Name]
		if sn == nil {
			sn = New(line.Start)
			local[line.Start.Name] = sn
		}
		sn.AddLine(i, line)

		if line.End != nil {
			en := local[line.End.Name]
			if en == nil {
				en = New(line.End)
				local[line.End.Name] = en
			}
			en.RemoveLine(i, line)
		}
	}
	for _, sn := range local {
		sn.File = file.Path
		sn.ComputeContext(file)
	}
	return local
}

// Merge copies other into m. Snippets are keyed by region name only, so a
// later file's snippet overwrites an earlier file's under the same name;
// callers process files in sorted order to keep the winner deterministic.
func (m Map) Merge(other Map) {
	for name, sn := range other {
		m[name] = sn
	}
}
