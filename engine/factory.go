package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/bentance/virtualgallery/errors"
	"github.com/bentance/virtualgallery/renderer"
)

// Options configures backend selection.
type Options struct {
	// Preferred names the backend to construct. Empty selects
	// DefaultBackend.
	Preferred BackendID

	// FallbackToDefault constructs the default backend when Preferred is
	// unknown, instead of failing with an unknown_backend error. A
	// diagnostic is logged.
	FallbackToDefault bool

	// Loader overrides the renderer loader used by backends that wrap the
	// built-in runtime. Nil uses the default.
	Loader renderer.Loader
}

type catalogEntry struct {
	info      Info
	construct func(ctx context.Context, opts Options) (Engine, error)
}

// The backend catalog is fixed at compile time: an open but centrally
// cataloged set, queryable without constructing anything.
var catalog = []catalogEntry{
	{
		info: Info{ID: BackendBabylon, DisplayName: "Babylon", Implemented: true},
		construct: func(ctx context.Context, opts Options) (Engine, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return NewBabylonEngine(opts.Loader), nil
		},
	},
	{
		info: Info{ID: BackendThree, DisplayName: "Three", Implemented: false},
		construct: func(ctx context.Context, opts Options) (Engine, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return NewThreeEngine(), nil
		},
	},
}

// CreateEngine constructs the adapter for the requested backend. It is the
// single construction point that hides which concrete type backs an
// identifier.
func CreateEngine(ctx context.Context, opts Options) (Engine, error) {
	id := opts.Preferred
	if id == "" {
		id = DefaultBackend
	}

	entry := lookup(id)
	if entry == nil {
		if !opts.FallbackToDefault {
			return nil, errors.UnknownBackend(string(id))
		}
		Logger().Warn("unknown backend requested, falling back to default",
			zap.String("requested", string(id)),
			zap.String("default", string(DefaultBackend)))
		entry = lookup(DefaultBackend)
	}

	return entry.construct(ctx, opts)
}

// AvailableEngines returns the static catalog of known backends and their
// implementation status.
func AvailableEngines() []Info {
	infos := make([]Info, 0, len(catalog))
	for _, e := range catalog {
		infos = append(infos, e.info)
	}
	return infos
}

// IsEngineAvailable reports whether id names a registered backend. A pure
// catalog lookup; nothing is constructed.
func IsEngineAvailable(id BackendID) bool {
	return lookup(id) != nil
}

func lookup(id BackendID) *catalogEntry {
	for i := range catalog {
		if catalog[i].info.ID == id {
			return &catalog[i]
		}
	}
	return nil
}
