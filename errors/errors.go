package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAssign   Phase = "assign"   // in-place reassignment and detach
	PhaseRelease  Phase = "release"  // release function invocation
	PhaseRegister Phase = "register" // registry insertion
	PhaseLookup   Phase = "lookup"   // registry and symbol lookup
	PhaseOpen     Phase = "open"     // acquiring an OS or runtime handle
	PhaseLoad     Phase = "load"     // dynamic library or module loading
)

// Kind categorizes the error
type Kind string

const (
	KindUseAfterDrop  Kind = "use_after_drop"
	KindDuplicate     Kind = "duplicate"
	KindNotFound      Kind = "not_found"
	KindClosed        Kind = "closed"
	KindInvalidHandle Kind = "invalid_handle"
	KindReleaseFailed Kind = "release_failed"
	KindOpenFailed    Kind = "open_failed"
	KindSymbolMissing Kind = "symbol_missing"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout handlebox
type Error struct {
	Handle any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Type   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Type != "" {
		b.WriteString(": handle type ")
		b.WriteString(e.Type)
	}

	if e.Handle != nil {
		if e.Type != "" {
			b.WriteString(" value ")
		} else {
			b.WriteString(": handle ")
		}
		fmt.Fprintf(&b, "%v", e.Handle)
	}

	if e.Detail != "" {
		if e.Type != "" || e.Handle != nil {
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

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Type sets the Go type name of the handle
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Handle sets the offending handle value
func (b *Builder) Handle(h any) *Builder {
	b.err.Handle = h
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

// UseAfterDrop reports an operation on a box whose reference was already dropped
func UseAfterDrop(op, handleType string) *Error {
	return &Error{
		Phase:  PhaseAssign,
		Kind:   KindUseAfterDrop,
		Op:     op,
		Type:   handleType,
		Detail: "box used after Drop",
	}
}

// Duplicate creates an error for a handle value that is already present
func Duplicate(phase Phase, h any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Handle: h,
		Detail: "handle already registered",
	}
}

// NotFound creates an error for a handle value that is not present
func NotFound(phase Phase, h any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Handle: h,
	}
}

// InvalidHandle creates an error for a null or otherwise unusable handle
func InvalidHandle(phase Phase, op string, h any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Op:     op,
		Handle: h,
		Detail: "handle holds no resource",
	}
}

// Closed creates an error for an operation on a closed container
func Closed(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Op:     op,
		Detail: "already closed",
	}
}

// ReleaseFailed wraps an error returned by a release function
func ReleaseFailed(h any, cause error) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindReleaseFailed,
		Handle: h,
		Cause:  cause,
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
