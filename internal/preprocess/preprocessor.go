// Package preprocess drives a full preprocessing round: catalog collection,
// source-tree scanning, snippet building and chapter rewriting.
package preprocess

import (
	"fmt"
	"path/filepath"

	"github.com/madbrain/mdbook-codetags/internal/book"
	"github.com/madbrain/mdbook-codetags/internal/catalog"
	"github.com/madbrain/mdbook-codetags/internal/config"
	"github.com/madbrain/mdbook-codetags/internal/render"
	"github.com/madbrain/mdbook-codetags/internal/scanner"
	"github.com/madbrain/mdbook-codetags/internal/snippet"
	"github.com/madbrain/mdbook-codetags/internal/walker"
)

// Name is the preprocessor name mdbook addresses us by.
const Name = "codetags"

// SupportsRenderer reports whether output markup is produced for the given
// mdbook renderer.
func SupportsRenderer(renderer string) bool {
	return renderer == "html"
}

// Preprocessor rewrites ^code references in book chapters into rendered
// snippet blocks extracted from the source tree.
type Preprocessor struct {
	cfg config.Configuration
}

// New returns a preprocessor using the given configuration.
func New(cfg config.Configuration) *Preprocessor {
	return &Preprocessor{cfg: cfg}
}

// Run processes the book in place. Scanning errors are fatal for the whole
// run: a mis-scanned file would corrupt location state for later
// references, so no partial output is produced.
func (p *Preprocessor) Run(ctx *book.Context, b *book.Book) error {
	cat, err := catalog.Collect(b)
	if err != nil {
		return err
	}

	srcDir := p.cfg.ResolveSrcRoot(ctx.Root)
	snippets, err := p.Extract(cat, srcDir)
	if err != nil {
		return err
	}

	for _, chapter := range b.Chapters() {
		chapter.Content = render.Chapter(chapter.Content, snippets, p.cfg.Language)
	}
	return nil
}

// Extract scans every annotated source file under srcDir and returns the
// merged snippet map. Files are visited in sorted order; within one name,
// the last file wins.
func (p *Preprocessor) Extract(cat *catalog.Catalog, srcDir string) (snippet.Map, error) {
	files, err := walker.Files(srcDir, p.cfg.Extension)
	if err != nil {
		return nil, fmt.Errorf("walking source tree %s: %w", srcDir, err)
	}

	snippets := make(snippet.Map)
	for _, rel := range files {
		parser := scanner.NewParser(cat)
		file, err := parser.ParseFile(filepath.Join(srcDir, rel), rel)
		if err != nil {
			return nil, err
		}
		snippets.Merge(snippet.BuildFile(file))
	}
	return snippets, nil
}
