// Package errs collects the sentinel and wrapped error values the packer raises.
//
// Every user-visible error carries, where known, the source file name, the affected class name
// and the offending attribute or constant-pool index (§7 of the format specification). Sentinels
// are meant to be matched with errors.Is; the wrapper types carry the contextual fields and are
// unwrapped with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Each corresponds to one row of the error taxonomy.
var (
	// ErrInvalidOption is raised when an option string is not in the recognized set.
	// Raised by the driver before any packing; not recoverable.
	ErrInvalidOption = errors.New("pack200: invalid option")

	// ErrMalformedClass is raised when the class-file visitor reports an unreadable class.
	ErrMalformedClass = errors.New("pack200: malformed class")

	// ErrUnknownAttribute is raised for a non-prototype attribute with action "error".
	ErrUnknownAttribute = errors.New("pack200: unknown attribute")

	// ErrOverflowInCodec is raised when no candidate codec can represent a band's values.
	// This is the only taxonomy error that is a fatal bug in the selector rather than bad input.
	ErrOverflowInCodec = errors.New("pack200: value out of codec range")

	// ErrTruncatedCodec is raised when a codec decode runs out of input mid-value.
	ErrTruncatedCodec = errors.New("pack200: truncated codec stream")

	// ErrTruncatedInput is raised when the input JAR ends mid-entry.
	ErrTruncatedInput = errors.New("pack200: truncated input")

	// ErrIOError wraps an underlying sink or source failure.
	ErrIOError = errors.New("pack200: i/o error")

	// ErrInvalidHeaderFlags is raised when a segment header's flag bits fail validation.
	ErrInvalidHeaderFlags = errors.New("pack200: invalid header flags")

	// ErrInvalidHeaderSize is raised when a header buffer is the wrong size.
	ErrInvalidHeaderSize = errors.New("pack200: invalid header size")

	// ErrInvalidIndexEntrySize is raised when an index entry buffer is too short.
	ErrInvalidIndexEntrySize = errors.New("pack200: invalid index entry size")

	// ErrNoCallableTarget is raised when a Call element in an attribute layout cannot be resolved.
	ErrNoCallableTarget = errors.New("pack200: call has no resolvable callable")

	// ErrLayoutSyntax is raised when an attribute layout string fails to parse.
	ErrLayoutSyntax = errors.New("pack200: invalid attribute layout syntax")

	// ErrSegmentLimit is raised when a single packing file cannot fit in any segment.
	ErrSegmentLimit = errors.New("pack200: file exceeds segment limit")
)

// ClassError wraps a sentinel with the offending source file and class name.
type ClassError struct {
	Err       error
	Source    string
	ClassName string
}

func (e *ClassError) Error() string {
	switch {
	case e.Source != "" && e.ClassName != "":
		return fmt.Sprintf("%v: source=%s class=%s", e.Err, e.Source, e.ClassName)
	case e.ClassName != "":
		return fmt.Sprintf("%v: class=%s", e.Err, e.ClassName)
	default:
		return e.Err.Error()
	}
}

func (e *ClassError) Unwrap() error { return e.Err }

// NewClassError wraps err with the class-level context required by §7.
func NewClassError(err error, source, className string) *ClassError {
	return &ClassError{Err: err, Source: source, ClassName: className}
}

// AttributeError wraps a sentinel with class, attribute and constant-pool index context.
type AttributeError struct {
	Err       error
	ClassName string
	Attribute string
	CPIndex   int
}

func (e *AttributeError) Error() string {
	msg := fmt.Sprintf("%v: class=%s attribute=%s", e.Err, e.ClassName, e.Attribute)
	if e.CPIndex >= 0 {
		msg += fmt.Sprintf(" cp_index=%d", e.CPIndex)
	}

	return msg
}

func (e *AttributeError) Unwrap() error { return e.Err }

// NewAttributeError wraps err with the attribute-level context required by §7.
// Pass a negative cpIndex when no constant-pool index is applicable.
func NewAttributeError(err error, className, attribute string, cpIndex int) *AttributeError {
	return &AttributeError{Err: err, ClassName: className, Attribute: attribute, CPIndex: cpIndex}
}

// EntryError wraps a sentinel with the input entry name (used for TruncatedInput/IOError).
type EntryError struct {
	Err   error
	Entry string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%v: entry=%s", e.Err, e.Entry)
}

func (e *EntryError) Unwrap() error { return e.Err }

// NewEntryError wraps err with the input-entry context required by §7.
func NewEntryError(err error, entry string) *EntryError {
	return &EntryError{Err: err, Entry: entry}
}
