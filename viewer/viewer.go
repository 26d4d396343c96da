package viewer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/engine"
	"github.com/bentance/virtualgallery/gallery"
	"github.com/bentance/virtualgallery/renderer"
)

// Callbacks are the host-supplied lifecycle handlers. Each maps onto one
// engine event slot; nil callbacks are simply not registered.
type Callbacks struct {
	OnReady       func()
	OnError       func(error)
	OnLevelChange func(level int)
}

// Options configures a Viewer.
type Options struct {
	// Backend selects the rendering backend; empty uses the factory
	// default.
	Backend engine.BackendID

	// FallbackToDefault forwards the factory's fallback-on-unknown policy.
	FallbackToDefault bool

	// Mode and Source form the engine's runtime configuration. Zero
	// values mean ModeDefault and SourceOnline.
	Mode   gallery.Mode
	Source gallery.Source

	// Loader overrides the renderer loader, for tests.
	Loader renderer.Loader

	Callbacks Callbacks
}

// Viewer owns a canvas surface and at most one engine instance, and
// drives the engine through its lifecycle. See the package documentation
// for the gating and teardown rules.
type Viewer struct {
	opts        Options
	surface     virtualgallery.Surface
	galleryData *gallery.Config
	userData    *gallery.UserProfile
	eng         engine.Engine
	cancel      context.CancelFunc
	inFlight    bool
	closed      bool
	mu          sync.Mutex
}

// New creates a Viewer. The zero mode and source default to ModeDefault
// and SourceOnline.
func New(opts Options) *Viewer {
	if opts.Mode == "" {
		opts.Mode = gallery.ModeDefault
	}
	if opts.Source == "" {
		opts.Source = gallery.SourceOnline
	}
	return &Viewer{opts: opts}
}

// SetSurface records the drawable surface. The next TryStart call can
// proceed once a surface is present.
func (v *Viewer) SetSurface(s virtualgallery.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.surface = s
}

// SetGalleryData records the gallery configuration delivered by the data
// collaborator. If the engine is already Ready the data is pushed into it
// directly; otherwise it unblocks the next startup attempt.
func (v *Viewer) SetGalleryData(cfg *gallery.Config) {
	v.mu.Lock()
	v.galleryData = cfg
	eng := v.eng
	v.mu.Unlock()

	if eng != nil && eng.IsInitialized() && cfg != nil {
		eng.SetGalleryData(cfg)
	}
}

// SetUserData records the artist profile.
func (v *Viewer) SetUserData(profile *gallery.UserProfile) {
	v.mu.Lock()
	v.userData = profile
	eng := v.eng
	v.mu.Unlock()

	if eng != nil && eng.IsInitialized() {
		eng.SetUserData(profile)
	}
}

// Engine returns the owned engine, or nil before a successful attempt.
// The engine remains owned by the Viewer; callers must not dispose it.
func (v *Viewer) Engine() engine.Engine {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.eng
}

// TryStart runs one startup attempt if the preconditions hold, and skips
// quietly otherwise. Safe to call repeatedly and concurrently; at most one
// attempt is in flight at a time and at most one engine is ever
// constructed per Viewer mount.
func (v *Viewer) TryStart(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	if v.inFlight || (v.eng != nil && v.eng.IsInitialized()) {
		v.mu.Unlock()
		Logger().Debug("startup attempt skipped: already started or in flight")
		return nil
	}
	if v.surface == nil {
		v.mu.Unlock()
		Logger().Debug("startup attempt skipped: surface not available")
		return nil
	}
	if v.opts.Source == gallery.SourceOnline && v.galleryData == nil {
		v.mu.Unlock()
		Logger().Debug("startup attempt skipped: waiting for gallery data")
		return nil
	}

	v.inFlight = true
	attemptCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	surface := v.surface
	cfg := gallery.RuntimeConfig{
		Mode:        v.opts.Mode,
		Source:      v.opts.Source,
		GalleryData: v.galleryData,
		UserData:    v.userData,
	}
	v.mu.Unlock()

	err := v.attempt(attemptCtx, surface, cfg)

	v.mu.Lock()
	v.inFlight = false
	v.cancel = nil
	closed := v.closed
	eng := v.eng
	if closed {
		v.eng = nil
	}
	v.mu.Unlock()

	if closed {
		if eng != nil {
			eng.Dispose()
		}
		return nil
	}
	return err
}

// attempt constructs and initializes the engine. Factory construction is a
// suspension point; the still-mounted check afterwards keeps a teardown
// that happened meanwhile from binding the surface.
func (v *Viewer) attempt(ctx context.Context, surface virtualgallery.Surface, cfg gallery.RuntimeConfig) error {
	eng, err := engine.CreateEngine(ctx, engine.Options{
		Preferred:         v.opts.Backend,
		FallbackToDefault: v.opts.FallbackToDefault,
		Loader:            v.opts.Loader,
	})
	if err != nil {
		v.reportError(err)
		return err
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		eng.Dispose()
		return nil
	}
	v.eng = eng
	v.mu.Unlock()

	v.register(eng)

	if err := eng.Initialize(ctx, surface, cfg); err != nil {
		// The engine already broadcast the failure on its error event;
		// the caller still observes it here.
		return err
	}

	Logger().Info("engine initialized",
		zap.String("backend", eng.Name()),
		zap.String("mode", string(cfg.Mode)),
		zap.String("source", string(cfg.Source)))
	eng.Run()
	return nil
}

// register installs the host's callbacks into the engine's event slots.
func (v *Viewer) register(eng engine.Engine) {
	cb := v.opts.Callbacks
	if cb.OnReady != nil {
		eng.On(engine.EventReady, func(engine.Payload) { cb.OnReady() })
	}
	if cb.OnError != nil {
		eng.On(engine.EventError, func(p engine.Payload) { cb.OnError(p.Err) })
	}
	if cb.OnLevelChange != nil {
		eng.On(engine.EventLevelChange, func(p engine.Payload) { cb.OnLevelChange(p.Level) })
	}
}

func (v *Viewer) reportError(err error) {
	if v.opts.Callbacks.OnError != nil {
		v.opts.Callbacks.OnError(err)
	}
}

// Close tears the viewer down: any constructed engine is disposed, the
// local reference cleared, and a pending attempt abandoned. Idempotent;
// the Viewer is not reusable afterwards.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	cancel := v.cancel
	eng := v.eng
	v.eng = nil
	v.surface = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if eng != nil {
		eng.Dispose()
	}
}
