package scanner

import "fmt"

// MarkerMismatchError reports an end marker whose name does not match the
// innermost open region.
type MarkerMismatchError struct {
	File string
	Line int
	Want string
	Got  string
}

func (e *MarkerMismatchError) Error() string {
	return fmt.Sprintf("%s:%d: end marker %q does not close open region %q", e.File, e.Line, e.Got, e.Want)
}

// ChapterMismatchError reports an end marker naming a chapter other than
// the open region's chapter.
type ChapterMismatchError struct {
	File string
	Line int
	Want string
	Got  string
}

func (e *ChapterMismatchError) Error() string {
	return fmt.Sprintf("%s:%d: end marker names chapter %q, open region belongs to %q", e.File, e.Line, e.Got, e.Want)
}

// StackError reports interval-stack discipline violations: underflow or
// content outside any region.
type StackError struct {
	File   string
	Line   int
	Reason string
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}
