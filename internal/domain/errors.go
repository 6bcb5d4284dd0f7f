package domain

import "fmt"

// SourceReadError reports a missing, unreadable or structurally malformed
// source table. Nothing is written when it occurs.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read crop source %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// FieldParseError reports a numeric field that could not be parsed. It aborts
// the whole run.
type FieldParseError struct {
	Crop  string
	Field string
	Value string
	Line  int
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("crop %s (line %d): parse %s %q: %v", e.Crop, e.Line, e.Field, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

// SinkWriteError reports a destination that could not be written.
type SinkWriteError struct {
	Destination string
	Err         error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("write crop profiles to %s: %v", e.Destination, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// UnknownCategoryWarning records a categorical descriptor that was not in its
// lookup table and was replaced by a default. It is not an error.
type UnknownCategoryWarning struct {
	Crop  string
	Field string
	Value string
}

func (w UnknownCategoryWarning) String() string {
	return fmt.Sprintf("unknown %s description for %s: %q", w.Field, w.Crop, w.Value)
}
