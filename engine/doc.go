// Package engine defines the rendering-backend contract and its adapters.
//
// The Engine interface is the capability surface every backend must
// satisfy: lifecycle, configuration injection, navigation, render-loop
// control, capture, and event subscription. Hosting code depends only on
// this contract; which concrete renderer backs it is hidden behind the
// factory.
//
// # Backends
//
// Two backends are cataloged:
//
//	BabylonEngine - the implemented adapter, wrapping the renderer package
//	ThreeEngine   - a stub holding the slot for a planned backend; every
//	                operation fails with not_implemented
//
// Construct engines through CreateEngine rather than the concrete
// constructors so backend selection, default, and fallback policy stay in
// one place:
//
//	eng, err := engine.CreateEngine(ctx, engine.Options{
//	    Preferred:         engine.BackendThree,
//	    FallbackToDefault: true,
//	})
//
// # Lifecycle
//
// Uninitialized → Initializing → Ready → Disposed, with Initializing →
// Failed on construction error. Failed behaves like Uninitialized for
// retry purposes; the only path out of Ready is Disposed. A second
// Initialize while initialized, and operations before Ready, are logged
// no-ops rather than errors: asynchronous gating in the host can
// legitimately produce redundant calls and must not crash it.
//
// # Events
//
// Each event has a single handler slot with last-write-wins replacement.
// This replace-not-append behavior is contractual; call sites rely on it.
// Handlers run synchronously at the triggering step. Initialization
// failures fire EventError AND are returned to the caller; neither channel
// substitutes for the other.
//
// # Logging
//
// The package logs through a zap.Logger configured with SetLogger. The
// default is a no-op logger.
package engine
