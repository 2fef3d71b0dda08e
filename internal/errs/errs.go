// Package errs implements the recoverable-error taxonomy described in the
// system's error handling design: parse, reference, structural, resource,
// and fatal errors, plus the rolling in-memory log the System overlay reads.
package errs

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Kind classifies a recoverable (or fatal) error.
type Kind int

const (
	// Parse covers unrecognized keywords, bad ranges, malformed coordinates.
	Parse Kind = iota
	// Reference covers a name not found among hotspots/layers/menus/keybinds.
	Reference
	// Structural covers cycles, duplicate indices, range overlaps.
	Structural
	// Resource covers missing bitmap files or unsupported formats.
	Resource
	// Fatal covers errors that stop the event loop (overlay creation failed).
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Reference:
		return "reference"
	case Structural:
		return "structural"
	case Resource:
		return "resource"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind and the profile location
// (section/property) it was raised from, if any.
type Error struct {
	Kind     Kind
	Section  string
	Property string
	cause    error
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, section, property, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Section:  section,
		Property: property,
		cause:    errors.Errorf(format, args...),
	}
}

// Wrap creates an Error of the given kind wrapping an existing error,
// preserving its stack via github.com/pkg/errors.
func Wrap(kind Kind, section, property string, err error, msg string) *Error {
	return &Error{
		Kind:     kind,
		Section:  section,
		Property: property,
		cause:    errors.Wrap(err, msg),
	}
}

func (e *Error) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s [%s.%s]: %v", e.Kind, e.Section, e.Property, e.cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the root cause, unwrapping any pkg/errors wrapping.
func (e *Error) Cause() error { return errors.Cause(e.cause) }

// Log is a bounded, rolling in-memory record of recoverable errors, safe for
// concurrent use by the engine's tick loop and any overlay reader. Only the
// most recent Capacity entries are retained.
type Log struct {
	mu       sync.Mutex
	capacity int
	entries  []*Error
}

// NewLog creates a Log retaining at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 64
	}
	return &Log{capacity: capacity}
}

// Record appends an error, evicting the oldest entry if at capacity.
func (l *Log) Record(err *Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, err)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Recent returns a copy of the n most recent entries (fewer if the log is
// shorter), newest last.
func (l *Log) Recent(n int) []*Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]*Error, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of entries currently retained.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
