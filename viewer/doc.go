// Package viewer implements the orchestrator that owns an engine instance.
//
// A Viewer is the only component allowed to own an engine: it decides when
// startup preconditions hold, constructs the engine through the factory,
// feeds it configuration, registers event handlers, and guarantees
// disposal on teardown, including when teardown lands mid-initialization.
//
// # Startup Gating
//
// TryStart is called on every opportunity to (re)attempt startup: the
// surface becoming available, or configuration changing. An attempt is
// skipped while another is in flight, once the engine is Ready, while the
// surface is missing, and, for online sources, until gallery data has been
// delivered. Skipping is not an error; redundant attempts are expected.
//
// # Teardown Races
//
// Factory construction and engine initialization suspend. After every
// suspension point the attempt re-checks whether Close ran meanwhile; if
// so it abandons the attempt and disposes anything it constructed, so a
// late-arriving initialization never attaches a live renderer to an
// unmounted host. Close is idempotent and safe at any point of the
// attempt.
//
// A Viewer never holds more than one engine and is never reused after
// Close; a new mount creates a fresh Viewer, which keeps disposal
// semantics simple: one instance, one owner, one disposal.
package viewer
