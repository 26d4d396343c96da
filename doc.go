// Package virtualgallery provides the engine abstraction core for a
// browser-style virtual-gallery viewer.
//
// The library lets a hosting component drive an arbitrary 3D rendering
// backend through a uniform contract: lifecycle operations, configuration
// injection, and event notifications, with correct handling of asynchronous
// startup, idempotent initialization, and teardown under unmount races.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	virtualgallery/      Root package with the Surface drawing abstraction
//	├── viewer/          Viewer orchestrator: owns one engine, gates startup,
//	│                    guarantees disposal on teardown
//	├── engine/          Engine contract, event registry, backend adapters,
//	│                    and the backend factory
//	├── renderer/        The underlying headless scene runtime wrapped by the
//	│                    Babylon adapter
//	├── gallery/         Gallery, painting, and profile data records plus the
//	│                    built-in default gallery
//	└── errors/          Structured error types shared across packages
//
// # Quick Start
//
// Drive a gallery through the orchestrator:
//
//	v := viewer.New(viewer.Options{
//	    Callbacks: viewer.Callbacks{
//	        OnReady: func() { fmt.Println("scene up") },
//	    },
//	})
//	defer v.Close()
//
//	v.SetSurface(virtualgallery.NewCanvas("main", 1280, 720))
//	v.SetGalleryData(cfg) // triggers startup once both are present
//
//	if err := v.TryStart(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Or construct an engine directly via the factory:
//
//	eng, err := engine.CreateEngine(ctx, engine.Options{
//	    Preferred:         engine.BackendBabylon,
//	    FallbackToDefault: true,
//	})
//
// # Ownership Model
//
// An engine instance owns exactly one underlying renderer and at most one
// surface binding at a time. Its lifecycle is owned exclusively by the
// viewer that created it: no shared ownership, no global registry. A new
// mount always starts a fresh engine rather than reusing a previous one,
// which keeps disposal semantics simple (one instance, one owner, one
// disposal).
//
// # Thread Safety
//
// Viewer and the engine adapters are safe for concurrent use; event
// handlers are invoked synchronously with respect to the triggering
// operation and must not block.
package virtualgallery
