package catalog

import "fmt"

// UnknownTagError reports a region name that resolves in neither the given
// chapter nor the static chapter.
type UnknownTagError struct {
	Chapter string
	Name    string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown code tag %s/%s", e.Chapter, e.Name)
}

// OptionError reports a malformed option in a reference's option list.
type OptionError struct {
	Tag    string
	Option string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("code tag %s: invalid option %q: %v", e.Tag, e.Option, e.Err)
}

func (e *OptionError) Unwrap() error { return e.Err }
