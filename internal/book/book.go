// Package book models the mdbook preprocessor protocol: the JSON book
// structure received on stdin and written back on stdout.
package book

import (
	"encoding/json"
	"fmt"
	"io"
)

// MdbookVersion is the mdbook release this preprocessor was built against.
const MdbookVersion = "0.4.40"

// Book is the root of the mdbook content tree.
type Book struct {
	Sections []Item `json:"sections"`
}

// Chapter is a single book chapter. Content holds the raw markdown text.
type Chapter struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Number      []int    `json:"number"`
	SubItems    []Item   `json:"sub_items"`
	Path        *string  `json:"path"`
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

// Item is one entry of a section list: a chapter, a part title or a
// separator. Exactly one of the fields is set.
type Item struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// UnmarshalJSON handles the serde enum encoding: separators arrive as the
// bare string "Separator", the other variants as single-key objects.
func (it *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Separator" {
			return fmt.Errorf("unknown book item %q", s)
		}
		it.Separator = true
		return nil
	}
	var obj struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding book item: %w", err)
	}
	switch {
	case obj.Chapter != nil:
		it.Chapter = obj.Chapter
	case obj.PartTitle != nil:
		it.PartTitle = *obj.PartTitle
	default:
		return fmt.Errorf("book item has no recognized variant")
	}
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (it Item) MarshalJSON() ([]byte, error) {
	switch {
	case it.Separator:
		return json.Marshal("Separator")
	case it.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": it.Chapter})
	default:
		return json.Marshal(map[string]string{"PartTitle": it.PartTitle})
	}
}

// Chapters returns every chapter of the book in document order,
// depth-first through sub-items. The pointers alias the book, so edits to
// Content are reflected in the marshalled output.
func (b *Book) Chapters() []*Chapter {
	var result []*Chapter
	collectChapters(b.Sections, &result)
	return result
}

func collectChapters(items []Item, out *[]*Chapter) {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		*out = append(*out, ch)
		collectChapters(ch.SubItems, out)
	}
}

// Context is the preprocessor context mdbook sends alongside the book.
type Context struct {
	Root          string                     `json:"root"`
	Config        map[string]json.RawMessage `json:"config"`
	Renderer      string                     `json:"renderer"`
	MdbookVersion string                     `json:"mdbook_version"`
}

// PreprocessorConfig returns the [preprocessor.<name>] table from the book
// configuration, or nil if absent.
func (c *Context) PreprocessorConfig(name string) map[string]any {
	raw, ok := c.Config["preprocessor"]
	if !ok {
		return nil
	}
	var tables map[string]map[string]any
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil
	}
	return tables[name]
}

// ParseInput decodes the two-element [context, book] array mdbook writes to
// the preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var parts []json.RawMessage
	if err := json.NewDecoder(r).Decode(&parts); err != nil {
		return nil, nil, fmt.Errorf("decoding preprocessor input: %w", err)
	}
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("preprocessor input has %d elements, want 2", len(parts))
	}
	var ctx Context
	if err := json.Unmarshal(parts[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("decoding preprocessor context: %w", err)
	}
	var b Book
	if err := json.Unmarshal(parts[1], &b); err != nil {
		return nil, nil, fmt.Errorf("decoding book: %w", err)
	}
	return &ctx, &b, nil
}

// WriteOutput writes the processed book JSON for mdbook to read back.
func WriteOutput(w io.Writer, b *Book) error {
	if err := json.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("encoding book: %w", err)
	}
	return nil
}
