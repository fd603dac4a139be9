package domain

import "fmt"

// FormatError reports a date-time string that matches no recognized feed
// pattern. It surfaces as a construction failure for the owning record.
type FormatError struct {
	Raw string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized date-time format %q", e.Raw)
}

// ValidationError reports a required field that is missing or a numeric
// field that is non-numeric at construction time.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// SourceReadError reports a source file that cannot be opened or whose
// top-level structure is not the expected shape. It is fatal: there is no
// meaningful partial result for an unreadable feed.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read %s feed: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }
