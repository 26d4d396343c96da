// Package gallery defines the data records the viewer core consumes.
//
// The records are plain data handed to the viewer by external
// collaborators; the core performs no network or persistence I/O itself.
// All types carry JSON tags so collaborators can pass records decoded
// straight from their store.
//
// # Level Catalog
//
// Environment levels are drawn from a small closed catalog (1..4). A level
// outside the catalog is not an error: NormalizeLevel maps it to
// DefaultLevel so a stale or hand-edited configuration still renders.
//
// # Default Gallery
//
// Default returns the built-in gallery used in offline exploration mode,
// embedded in the binary. Engines load it themselves when running with
// SourceOffline and ModeExplore.
package gallery
