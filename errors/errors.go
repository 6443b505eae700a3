package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode  Phase = "decode"  // wire to view/value
	PhaseBuild   Phase = "build"   // builder writes
	PhaseConvert Phase = "convert" // typed conversions
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedPod    Kind = "malformed_pod"    // truncated buffer, size/type disagreement
	KindTypeMismatch    Kind = "type_mismatch"    // wrong downcast or scalar getter
	KindInvalidChoice   Kind = "invalid_choice"   // bad choice mode or step
	KindFrameMismatch   Kind = "frame_mismatch"   // end call does not match the open frame
	KindUnclosedFrame   Kind = "unclosed_frame"   // finish with frames still open
	KindBuilderFinished Kind = "builder_finished" // write after finish
	KindInvalidUTF8     Kind = "invalid_utf8"     // textual view of non-text bytes
	KindOutOfBounds     Kind = "out_of_bounds"    // element index past the end
	KindOverflow        Kind = "overflow"         // value does not fit the target type
	KindInvalidData     Kind = "invalid_data"     // caller-supplied value is unusable
	KindUnsupported     Kind = "unsupported"      // operation undefined for this tag
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	WantTag string
	GotTag  string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.WantTag != "" || e.GotTag != "" {
		b.WriteString(": ")
		if e.WantTag != "" && e.GotTag != "" {
			b.WriteString("want ")
			b.WriteString(e.WantTag)
			b.WriteString(", got ")
			b.WriteString(e.GotTag)
		} else if e.WantTag != "" {
			b.WriteString("want ")
			b.WriteString(e.WantTag)
		} else {
			b.WriteString("got ")
			b.WriteString(e.GotTag)
		}
	}

	if e.Detail != "" {
		if e.WantTag != "" || e.GotTag != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind, regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the access path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// WantTag sets the expected wire tag name
func (b *Builder) WantTag(t string) *Builder {
	b.err.WantTag = t
	return b
}

// GotTag sets the actual wire tag name
func (b *Builder) GotTag(t string) *Builder {
	b.err.GotTag = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedPod creates a malformed pod error
func MalformedPod(path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedPod,
		Path:   path,
		Detail: detail,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, want, got string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		WantTag: want,
		GotTag:  got,
	}
}

// InvalidChoice creates an invalid choice configuration error
func InvalidChoice(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidChoice,
		Detail: detail,
	}
}

// FrameMismatch creates a frame mismatch error for builder end calls
func FrameMismatch(want, got string) *Error {
	return &Error{
		Phase:   PhaseBuild,
		Kind:    KindFrameMismatch,
		WantTag: want,
		GotTag:  got,
		Detail:  "end call does not match the open frame",
	}
}

// UnclosedFrame creates an unclosed frame error for finish with open frames
func UnclosedFrame(open int) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindUnclosedFrame,
		Detail: fmt.Sprintf("%d frame(s) still open", open),
	}
}

// BuilderFinished creates an error for writes after finish
func BuilderFinished() *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindBuilderFinished,
		Detail: "builder already finished",
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Path:    path,
		WantTag: targetType,
		Detail:  fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:   value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
