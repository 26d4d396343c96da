package engine

import (
	"context"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/gallery"
)

// BackendID identifies a rendering backend in the factory catalog.
type BackendID string

const (
	// BackendBabylon is the primary, implemented backend.
	BackendBabylon BackendID = "babylon"

	// BackendThree is registered for forward compatibility; selecting it
	// yields a stub that fails every operation with not_implemented.
	BackendThree BackendID = "three"
)

// DefaultBackend is used when no preference is given.
const DefaultBackend = BackendBabylon

// State is an engine's lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Capabilities describes what a backend can do. Static per backend, not
// per instance, so it is available before initialization.
type Capabilities struct {
	VR             bool
	AR             bool
	Shadows        bool
	PostProcessing bool
	MaxTextureSize int
}

// Info is a catalog entry for a registered backend.
type Info struct {
	ID          BackendID
	DisplayName string
	Implemented bool
}

// Engine is the capability surface every rendering backend must satisfy.
// The viewer orchestrator depends only on this contract, never on a
// concrete renderer.
//
// Lifecycle: Uninitialized → Initializing → Ready → Disposed, with
// Initializing → Failed on construction error. Failed behaves like
// Uninitialized for retry purposes. The only path out of Ready is Disposed.
type Engine interface {
	// Initialize binds the engine to a surface, applies the runtime
	// configuration, and constructs the underlying renderer. Safe to call
	// exactly once per instance; a second call while initialized is a
	// logged no-op, not an error. A construction failure is returned to
	// the caller AND broadcast on EventError; both channels fire.
	Initialize(ctx context.Context, surface virtualgallery.Surface, cfg gallery.RuntimeConfig) error

	// SetGalleryData replaces the gallery configuration after
	// initialization. Logged no-op before Ready.
	SetGalleryData(cfg *gallery.Config)

	// SetUserData replaces the artist profile after initialization.
	// Logged no-op before Ready.
	SetUserData(profile *gallery.UserProfile)

	// ChangeLevel switches the active environment to an absolute level
	// identifier and emits EventLevelChange on success. Logged no-op when
	// the engine is not Ready.
	ChangeLevel(ctx context.Context, level int) error

	// ChangeGallery navigates relative to the active gallery within the
	// loaded set (exploration mode) and emits EventGalleryChange.
	ChangeGallery(ctx context.Context, offset int) error

	// Run starts or resumes the render loop.
	Run()

	// Pause suspends rendering without releasing resources. Backends with
	// no native pause distinction accept the call as a no-op.
	Pause()

	// Resume continues rendering after Pause.
	Resume()

	// Screenshot captures the current frame from the bound surface as a
	// PNG. Fails with a capture error if no surface is bound.
	Screenshot(ctx context.Context) ([]byte, error)

	// Dispose releases the underlying renderer, clears the surface
	// binding and all event handlers, and returns the instance to
	// Uninitialized. Idempotent; safe on a never-initialized instance;
	// never panics.
	Dispose()

	// IsInitialized reports whether the engine reached Ready and has not
	// been disposed.
	IsInitialized() bool

	// State returns the current lifecycle state.
	State() State

	// On registers the single handler slot for an event, replacing any
	// previous handler. Off clears it.
	On(event Event, handler Handler)
	Off(event Event)

	// Name returns the backend identifier this engine implements.
	Name() string

	// Capabilities returns the backend's static capability descriptor.
	Capabilities() Capabilities
}
