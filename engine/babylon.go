package engine

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/png"
	"sync"
	"time"

	"go.uber.org/zap"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/errors"
	"github.com/bentance/virtualgallery/gallery"
	"github.com/bentance/virtualgallery/renderer"
)

// defaultSettleDelay is how long Initialize yields after pushing
// configuration into the runtime, letting its internal state propagate
// before the heavyweight application object is constructed. An ordering
// guarantee, not busy-waiting: the first rendered frame must already
// reflect the supplied configuration.
const defaultSettleDelay = 20 * time.Millisecond

var babylonCapabilities = Capabilities{
	VR:             true,
	AR:             false,
	Shadows:        true,
	PostProcessing: true,
	MaxTextureSize: 4096,
}

// BabylonEngine bridges the Engine contract to the renderer package's
// imperative API. One BabylonEngine owns at most one runtime, one
// application, and one surface binding.
type BabylonEngine struct {
	loader  renderer.Loader
	runtime *renderer.Runtime
	app     *renderer.Application
	surface virtualgallery.Surface
	events  *handlerTable
	settle  time.Duration
	state   State
	epoch   uint64
	mu      sync.Mutex
}

// NewBabylonEngine creates an engine backed by the given loader. A nil
// loader uses the built-in runtime.
func NewBabylonEngine(loader renderer.Loader) *BabylonEngine {
	if loader == nil {
		loader = renderer.DefaultLoader()
	}
	return &BabylonEngine{
		loader: loader,
		events: newHandlerTable(),
		settle: defaultSettleDelay,
	}
}

func (e *BabylonEngine) Name() string { return string(BackendBabylon) }

func (e *BabylonEngine) Capabilities() Capabilities { return babylonCapabilities }

// Initialize runs the startup sequence: push mode/source into the runtime,
// load the built-in gallery in offline exploration mode, push supplied
// gallery and user data, yield for the settling delay, then construct the
// application bound to the surface. Any failure mid-sequence leaves the
// engine in Failed, never partially Ready.
func (e *BabylonEngine) Initialize(ctx context.Context, surface virtualgallery.Surface, cfg gallery.RuntimeConfig) error {
	e.mu.Lock()
	if e.state == StateInitializing || e.state == StateReady {
		state := e.state
		e.mu.Unlock()
		Logger().Warn("initialize ignored: engine already initialized",
			zap.String("backend", e.Name()),
			zap.Stringer("state", state))
		return nil
	}
	e.state = StateInitializing
	e.surface = surface
	epoch := e.epoch
	e.mu.Unlock()

	err := e.initialize(ctx, surface, cfg, epoch)
	if err == nil {
		e.events.emit(EventReady, Payload{})
		return nil
	}

	if stderrors.Is(err, &errors.Error{Stage: errors.StageInit, Kind: errors.KindCanceled}) {
		// Disposed mid-attempt: not a construction failure, nothing to
		// broadcast; the handler table is already cleared.
		return err
	}

	e.fail(epoch)
	initErr := errors.Initialization(e.Name(), err)
	e.events.emit(EventError, Payload{Err: initErr})
	return initErr
}

func (e *BabylonEngine) initialize(ctx context.Context, surface virtualgallery.Surface, cfg gallery.RuntimeConfig, epoch uint64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The runtime is a lazily-resolved dependency, acquired once per
	// adapter construction attempt.
	rt, err := e.loader.Load(ctx)
	if err != nil {
		return err
	}
	if e.aborted(epoch) {
		return errors.Canceled(e.Name(), nil)
	}

	st := rt.State()
	st.SetMode(cfg.Mode)
	st.SetSource(cfg.Source)

	if cfg.Mode == gallery.ModeExplore && cfg.Source == gallery.SourceOffline {
		// Loader failure is a diagnostic, not a startup failure: the
		// renderer must still come up, empty, rather than blocking the
		// whole viewer.
		if err := rt.LoadDefaultGallery(); err != nil {
			Logger().Warn("default gallery loader failed, continuing startup",
				zap.String("backend", e.Name()),
				zap.Error(err))
		}
	}

	if cfg.Source == gallery.SourceOnline {
		st.SetGallery(cfg.GalleryData)
	}
	if cfg.UserData != nil {
		st.SetUser(cfg.UserData)
	}

	select {
	case <-time.After(e.settle):
	case <-ctx.Done():
		return ctx.Err()
	}
	if e.aborted(epoch) {
		return errors.Canceled(e.Name(), nil)
	}

	app, err := rt.NewApplication(ctx, surface, renderer.AppOptions{
		Progress: func(p int) {
			e.events.emit(EventLoadProgress, Payload{Progress: p})
		},
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.epoch != epoch || e.state != StateInitializing {
		e.mu.Unlock()
		app.Dispose()
		return errors.Canceled(e.Name(), nil)
	}
	e.runtime = rt
	e.app = app
	e.state = StateReady
	e.mu.Unlock()
	return nil
}

// aborted reports whether Dispose ran since this attempt began.
func (e *BabylonEngine) aborted(epoch uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.epoch != epoch || e.state != StateInitializing
}

// fail moves the engine to Failed unless the attempt was already aborted.
func (e *BabylonEngine) fail(epoch uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.epoch == epoch && e.state == StateInitializing {
		e.state = StateFailed
	}
}

// ready returns the live application when the engine is Ready, and logs
// the skipped operation otherwise.
func (e *BabylonEngine) ready(op string) *renderer.Application {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady || e.app == nil {
		Logger().Warn("operation ignored: engine not ready",
			zap.String("backend", e.Name()),
			zap.String("op", op),
			zap.Stringer("state", e.state))
		return nil
	}
	return e.app
}

// SetGalleryData replaces the loaded gallery and refreshes the scene.
func (e *BabylonEngine) SetGalleryData(cfg *gallery.Config) {
	app := e.ready("SetGalleryData")
	if app == nil {
		return
	}
	if cfg == nil {
		Logger().Warn("SetGalleryData ignored: nil gallery config",
			zap.String("backend", e.Name()))
		return
	}

	e.mu.Lock()
	rt := e.runtime
	e.mu.Unlock()

	rt.State().SetGallery(cfg)
	if _, err := app.ShiftGallery(0); err != nil {
		Logger().Warn("scene refresh after gallery update failed",
			zap.String("backend", e.Name()),
			zap.Error(err))
	}
}

// SetUserData replaces the artist profile shown alongside the scene.
func (e *BabylonEngine) SetUserData(profile *gallery.UserProfile) {
	app := e.ready("SetUserData")
	if app == nil {
		return
	}

	e.mu.Lock()
	rt := e.runtime
	e.mu.Unlock()

	rt.State().SetUser(profile)
	if err := app.RenderFrame(); err != nil {
		Logger().Warn("frame refresh after profile update failed",
			zap.String("backend", e.Name()),
			zap.Error(err))
	}
}

// ChangeLevel switches to an absolute level identifier. The runtime's
// navigation primitive is offset-only, so the adapter translates the
// absolute target against the current level; the caller never performs
// that mapping.
func (e *BabylonEngine) ChangeLevel(ctx context.Context, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	app := e.ready("ChangeLevel")
	if app == nil {
		return nil
	}

	target := gallery.NormalizeLevel(level)
	newLevel, err := app.ShiftLevel(target - app.CurrentLevel())
	if err != nil {
		return errors.New(errors.StageNavigate, errors.KindNotReady).
			Backend(e.Name()).
			Op("ChangeLevel").
			Cause(err).
			Build()
	}
	e.events.emit(EventLevelChange, Payload{Level: newLevel})
	return nil
}

// ChangeGallery navigates relative to the active gallery in the loaded set.
func (e *BabylonEngine) ChangeGallery(ctx context.Context, offset int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	app := e.ready("ChangeGallery")
	if app == nil {
		return nil
	}

	idx, err := app.ShiftGallery(offset)
	if err != nil {
		return errors.New(errors.StageNavigate, errors.KindNotReady).
			Backend(e.Name()).
			Op("ChangeGallery").
			Cause(err).
			Build()
	}
	e.events.emit(EventGalleryChange, Payload{Gallery: idx})
	return nil
}

// Run starts or resumes the render loop.
func (e *BabylonEngine) Run() {
	if app := e.ready("Run"); app != nil {
		app.Start()
	}
}

// Pause suspends rendering without releasing resources.
func (e *BabylonEngine) Pause() {
	if app := e.ready("Pause"); app != nil {
		app.Stop()
	}
}

// Resume continues rendering after Pause.
func (e *BabylonEngine) Resume() {
	if app := e.ready("Resume"); app != nil {
		app.Start()
	}
}

// Screenshot captures the current frame as a PNG.
func (e *BabylonEngine) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	app := e.app
	e.mu.Unlock()
	if app == nil {
		return nil, errors.Capture(e.Name(), "no surface bound")
	}

	frame, err := app.CaptureFrame()
	if err != nil {
		return nil, errors.New(errors.StageCapture, errors.KindCapture).
			Backend(e.Name()).
			Op("Screenshot").
			Cause(err).
			Build()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, errors.New(errors.StageCapture, errors.KindCapture).
			Backend(e.Name()).
			Op("Screenshot").
			Detail("encode frame").
			Cause(err).
			Build()
	}
	return buf.Bytes(), nil
}

// Dispose tears the engine down: releases the application, clears the
// surface binding and every event handler. Idempotent, safe on a
// never-initialized instance, and safe during a pending Initialize, in
// which case the late-arriving attempt is abandoned before it binds the
// surface.
func (e *BabylonEngine) Dispose() {
	e.mu.Lock()
	e.epoch++
	app := e.app
	e.app = nil
	e.runtime = nil
	e.surface = nil
	e.state = StateDisposed
	e.mu.Unlock()

	if app != nil {
		disposeQuietly(e.Name(), app)
	}
	e.events.clear()
}

// disposeQuietly releases an application, swallowing any teardown panic so
// resource release stays best-effort-complete.
func disposeQuietly(backend string, app *renderer.Application) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("renderer teardown panicked",
				zap.String("backend", backend),
				zap.Any("panic", r))
		}
	}()
	app.Dispose()
}

// IsInitialized reports whether the engine is Ready.
func (e *BabylonEngine) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StateReady
}

// State returns the current lifecycle state.
func (e *BabylonEngine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// On installs the single handler slot for an event, replacing any previous
// handler.
func (e *BabylonEngine) On(ev Event, h Handler) {
	e.events.set(ev, h)
}

// Off clears the handler slot for an event.
func (e *BabylonEngine) Off(ev Event) {
	e.events.remove(ev)
}

// Compile-time check that BabylonEngine implements Engine
var _ Engine = (*BabylonEngine)(nil)
