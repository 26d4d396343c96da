package engine

import (
	"context"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/errors"
	"github.com/bentance/virtualgallery/gallery"
)

// Declared descriptor for the planned backend. Aspirational: it documents
// what the backend is expected to support once built.
var threeCapabilities = Capabilities{
	VR:             false,
	AR:             false,
	Shadows:        true,
	PostProcessing: false,
	MaxTextureSize: 2048,
}

// ThreeEngine occupies the "three" slot in the factory catalog so call
// sites and tests can exercise backend selection before the backend
// exists. Every operation fails with not_implemented except Dispose
// (idempotent no-op), Capabilities (returns the declared descriptor), and
// On/Off (functional: registering handlers before initialization should
// not itself fail).
type ThreeEngine struct {
	events *handlerTable
}

// NewThreeEngine creates the stub.
func NewThreeEngine() *ThreeEngine {
	return &ThreeEngine{events: newHandlerTable()}
}

func (e *ThreeEngine) Name() string { return string(BackendThree) }

func (e *ThreeEngine) Capabilities() Capabilities { return threeCapabilities }

func (e *ThreeEngine) notImplemented(op string) error {
	err := errors.NotImplemented(e.Name(), op)
	e.events.emit(EventError, Payload{Err: err})
	return err
}

func (e *ThreeEngine) Initialize(ctx context.Context, surface virtualgallery.Surface, cfg gallery.RuntimeConfig) error {
	return e.notImplemented("Initialize")
}

func (e *ThreeEngine) SetGalleryData(cfg *gallery.Config) {
	_ = e.notImplemented("SetGalleryData")
}

func (e *ThreeEngine) SetUserData(profile *gallery.UserProfile) {
	_ = e.notImplemented("SetUserData")
}

func (e *ThreeEngine) ChangeLevel(ctx context.Context, level int) error {
	return e.notImplemented("ChangeLevel")
}

func (e *ThreeEngine) ChangeGallery(ctx context.Context, offset int) error {
	return e.notImplemented("ChangeGallery")
}

func (e *ThreeEngine) Run() {
	_ = e.notImplemented("Run")
}

func (e *ThreeEngine) Pause() {
	_ = e.notImplemented("Pause")
}

func (e *ThreeEngine) Resume() {
	_ = e.notImplemented("Resume")
}

func (e *ThreeEngine) Screenshot(ctx context.Context) ([]byte, error) {
	return nil, e.notImplemented("Screenshot")
}

// Dispose is an idempotent no-op; there is never anything to release.
func (e *ThreeEngine) Dispose() {
	e.events.clear()
}

func (e *ThreeEngine) IsInitialized() bool { return false }

func (e *ThreeEngine) State() State { return StateUninitialized }

func (e *ThreeEngine) On(ev Event, h Handler) {
	e.events.set(ev, h)
}

func (e *ThreeEngine) Off(ev Event) {
	e.events.remove(ev)
}

// Compile-time check that ThreeEngine implements Engine
var _ Engine = (*ThreeEngine)(nil)
