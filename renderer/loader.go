package renderer

import (
	"context"

	"github.com/bentance/virtualgallery/gallery"
)

// Loader resolves the scene runtime. The adapter acquires it once at
// construction; tests substitute a fake to observe or fail acquisition.
type Loader interface {
	Load(ctx context.Context) (*Runtime, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*Runtime, error)

func (f LoaderFunc) Load(ctx context.Context) (*Runtime, error) {
	return f(ctx)
}

// DefaultLoader returns the loader for the built-in headless runtime.
func DefaultLoader() Loader {
	return LoaderFunc(func(ctx context.Context) (*Runtime, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewRuntime(), nil
	})
}

// Runtime is a loaded scene runtime. One Runtime backs one engine adapter
// instance; it owns the mode state and constructs Applications.
type Runtime struct {
	state *ModeState
}

// NewRuntime creates a runtime with empty state.
func NewRuntime() *Runtime {
	return &Runtime{state: NewModeState()}
}

// State returns the runtime's reactive state store.
func (r *Runtime) State() *ModeState {
	return r.state
}

// LoadDefaultGallery loads the built-in default gallery into the runtime's
// state. Used in offline exploration mode when no gallery data was
// supplied.
func (r *Runtime) LoadDefaultGallery() error {
	cfg, err := gallery.Default()
	if err != nil {
		return err
	}
	r.state.SetGallery(cfg)
	return nil
}
