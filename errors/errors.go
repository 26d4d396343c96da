package errors

import (
	"fmt"
	"strings"
)

// Stage indicates where in the engine lifecycle the error occurred
type Stage string

const (
	StageFactory  Stage = "factory"  // backend selection and construction
	StageInit     Stage = "init"     // engine initialization
	StageConfig   Stage = "config"   // configuration injection
	StageNavigate Stage = "navigate" // level and gallery navigation
	StageCapture  Stage = "capture"  // frame capture
	StageRender   Stage = "render"   // render loop control
	StageDispose  Stage = "dispose"  // teardown
)

// Kind categorizes the error
type Kind string

const (
	KindInitialization Kind = "initialization"  // renderer could not be constructed
	KindUnknownBackend Kind = "unknown_backend" // unregistered backend identifier
	KindNotImplemented Kind = "not_implemented" // backend gap, stub invoked
	KindCapture        Kind = "capture"         // screenshot with no bound surface
	KindNotReady       Kind = "not_ready"       // operation requires a Ready engine
	KindInvalidConfig  Kind = "invalid_config"  // malformed gallery or runtime config
	KindCanceled       Kind = "canceled"        // attempt abandoned before completion
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause   error
	Stage   Stage
	Kind    Kind
	Backend string
	Op      string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Stage))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Backend != "" {
		b.WriteString(" backend=")
		b.WriteString(e.Backend)
	}

	if e.Op != "" {
		b.WriteString(" op=")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
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
		return e.Stage == t.Stage && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(stage Stage, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Stage: stage,
			Kind:  kind,
		},
	}
}

// Backend sets the backend identifier
func (b *Builder) Backend(id string) *Builder {
	b.err.Backend = id
	return b
}

// Op sets the contract operation that failed
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
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

// Initialization creates an initialization error: the underlying renderer
// could not be constructed. Recoverable by retrying Initialize after Dispose.
func Initialization(backend string, cause error) *Error {
	return &Error{
		Stage:   StageInit,
		Kind:    KindInitialization,
		Backend: backend,
		Op:      "Initialize",
		Detail:  "renderer construction failed",
		Cause:   cause,
	}
}

// UnknownBackend creates an unknown backend error: the factory was given an
// unregistered identifier and no fallback was requested.
func UnknownBackend(id string) *Error {
	return &Error{
		Stage:   StageFactory,
		Kind:    KindUnknownBackend,
		Backend: id,
		Detail:  fmt.Sprintf("backend %q is not registered", id),
	}
}

// NotImplemented creates a not-implemented error for a stub backend
func NotImplemented(backend, op string) *Error {
	return &Error{
		Stage:   StageInit,
		Kind:    KindNotImplemented,
		Backend: backend,
		Op:      op,
		Detail:  fmt.Sprintf("backend %q is not implemented", backend),
	}
}

// Capture creates a capture error: a screenshot was requested with no
// surface bound.
func Capture(backend, detail string) *Error {
	return &Error{
		Stage:   StageCapture,
		Kind:    KindCapture,
		Backend: backend,
		Op:      "Screenshot",
		Detail:  detail,
	}
}

// NotReady creates a not-ready error for operations that require a Ready
// engine. Most call sites log-and-skip instead; this is for operations that
// must report failure to their caller.
func NotReady(backend, op string) *Error {
	return &Error{
		Stage:   StageNavigate,
		Kind:    KindNotReady,
		Backend: backend,
		Op:      op,
		Detail:  "engine is not ready",
	}
}

// InvalidConfig creates an invalid configuration error
func InvalidConfig(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Stage:  StageConfig,
		Kind:   KindInvalidConfig,
		Detail: detail,
	}
}

// Canceled creates a cancellation error: an initialization attempt was
// abandoned before the renderer was bound to the surface.
func Canceled(backend string, cause error) *Error {
	return &Error{
		Stage:   StageInit,
		Kind:    KindCanceled,
		Backend: backend,
		Detail:  "attempt abandoned",
		Cause:   cause,
	}
}
