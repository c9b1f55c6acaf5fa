package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/madbrain/mdbook-codetags/internal/book"
	"github.com/madbrain/mdbook-codetags/internal/catalog"
	"github.com/madbrain/mdbook-codetags/internal/config"
	"github.com/madbrain/mdbook-codetags/internal/preprocess"
	"github.com/madbrain/mdbook-codetags/internal/render"
)

var (
	extractJSON bool
	extractToon bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [book-dir]",
	Short: "Extract tagged regions from a book's source tree",
	Long: `Extract runs the snippet engine standalone, outside the mdbook round
trip: it loads book.toml, collects the tag catalog from the chapter files
and reports every region extracted from the source tree.

Useful for checking source annotations before building the book.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output as JSON")
	extractCmd.Flags().BoolVar(&extractToon, "toon", false, "Output in LLM-friendly toon format")
}

// bookToml is the subset of book.toml the extract command needs.
type bookToml struct {
	Book struct {
		Src string `toml:"src"`
	} `toml:"book"`
	Preprocessor map[string]map[string]any `toml:"preprocessor"`
}

type regionInfo struct {
	Tag      string `json:"tag"`
	Chapter  string `json:"chapter"`
	File     string `json:"file"`
	Added    int    `json:"added"`
	Removed  int    `json:"removed"`
	Location string `json:"location,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	bookDir := "."
	if len(args) > 0 {
		bookDir = args[0]
	}

	var bt bookToml
	if _, err := toml.DecodeFile(filepath.Join(bookDir, "book.toml"), &bt); err != nil {
		return fmt.Errorf("loading book.toml: %w", err)
	}
	srcDir := bt.Book.Src
	if srcDir == "" {
		srcDir = "src"
	}

	b, err := loadChapters(filepath.Join(bookDir, srcDir))
	if err != nil {
		return err
	}

	cat, err := catalog.Collect(b)
	if err != nil {
		return err
	}

	cfg := config.FromTable(bt.Preprocessor[preprocess.Name])
	snippets, err := preprocess.New(cfg).Extract(cat, cfg.ResolveSrcRoot(bookDir))
	if err != nil {
		return err
	}

	if len(snippets) == 0 {
		fmt.Println("No tagged regions found")
		return nil
	}

	var regions []regionInfo
	for name, sn := range snippets {
		info := regionInfo{
			Tag:     name,
			Chapter: cat.ChapterName(sn.Tag.Chapter),
			File:    sn.File,
			Added:   len(sn.Added),
			Removed: len(sn.Removed),
		}
		if sn.Location != nil {
			phrases := render.Breadcrumbs(sn.Location, sn.PrecedingLocation, len(sn.Removed) > 0)
			info.Location = stripEmphasis(strings.Join(phrases, ", "))
		}
		regions = append(regions, info)
	}
	sort.Slice(regions, func(i, j int) bool {
		ti, tj := snippets[regions[i].Tag].Tag, snippets[regions[j].Tag].Tag
		return ti.Before(tj)
	})

	if extractJSON {
		output, err := json.MarshalIndent(regions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if extractToon {
		output, err := gotoon.Encode(regions)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Found %d region(s):\n\n", len(regions))
	for _, r := range regions {
		fmt.Printf("  %-24s %-20s %s (+%d -%d)\n", r.Tag, r.Chapter, r.File, r.Added, r.Removed)
		if r.Location != "" {
			fmt.Printf("    %s\n", r.Location)
		}
	}
	return nil
}

// loadChapters builds a flat book from the markdown files under srcDir.
// The chapter name is the first level-one heading, falling back to the
// file name; this matches how the book names chapters for marker
// resolution.
func loadChapters(srcDir string) (*book.Book, error) {
	var paths []string
	err := filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") && d.Name() != "SUMMARY.md" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading chapters: %w", err)
	}
	sort.Strings(paths)

	b := &book.Book{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading chapter %s: %w", path, err)
		}
		content := string(data)
		name := chapterTitle(content)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), ".md")
		}
		b.Sections = append(b.Sections, book.Item{Chapter: &book.Chapter{Name: name, Content: content}})
	}
	return b, nil
}

func chapterTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "<em>", "")
	return strings.ReplaceAll(s, "</em>", "")
}
