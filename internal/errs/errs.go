// Package errs defines the typed failures returned by the render pipeline.
// Every fallible stage returns an *Error carrying a Kind so callers can
// branch on the failure class while the CLI prints the one-line Message.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure.
type Kind string

const (
	KindInternal             Kind = "INTERNAL"
	KindConfigParse          Kind = "CONFIG_PARSE"
	KindInputNotFound        Kind = "INPUT_NOT_FOUND"
	KindArchiveUnreadable    Kind = "ARCHIVE_UNREADABLE"
	KindNoFramesInArchive    Kind = "NO_FRAMES_IN_ARCHIVE"
	KindNoFramesMatched      Kind = "NO_FRAMES_MATCHED"
	KindFrameIndexOutOfRange Kind = "FRAME_INDEX_OUT_OF_RANGE"
	KindUnsupportedFormat    Kind = "UNSUPPORTED_FORMAT"
	KindEncoderNotFound      Kind = "ENCODER_NOT_FOUND"
	KindEncoderExecution     Kind = "ENCODER_EXECUTION_FAILED"
	KindEncoderNonZeroExit   Kind = "ENCODER_NON_ZERO_EXIT"
	KindOutputPathInvalid    Kind = "OUTPUT_PATH_INVALID"
)

// Error is a categorized failure.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Op is the operation that failed (e.g. "source.resolve").
	Op string
	// Message is the human-readable, single-line description.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error returns the message followed by the cause, if present.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates an error with the given kind and message.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind, op and message to err. It returns a nil error when err
// is nil.
func Wrap(err error, kind Kind, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, op, format string, args ...any) error {
	return Wrap(err, kind, op, fmt.Sprintf(format, args...))
}

// Sentinel returns a comparable value for errors.Is checks against kind.
func Sentinel(kind Kind) error {
	return &Error{Kind: kind}
}

// KindOf extracts the Kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, Sentinel(kind))
}

// OpOf returns the Op of the outermost *Error in the chain.
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
