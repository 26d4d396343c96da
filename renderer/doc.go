// Package renderer implements the underlying scene runtime wrapped by the
// Babylon engine adapter.
//
// The viewer core treats this package as an opaque dependency reachable
// only through the adapter: mesh construction, lighting, and character
// control belong here, not to the contract layer. The runtime is headless;
// it rasterizes the scene into the bound Surface's pixel buffer, which
// keeps the whole stack testable without a GPU.
//
// # Lazy Loading
//
// The runtime is acquired through a Loader resolved once per adapter
// construction, mirroring deferred loading of heavyweight 3D resources.
// Tests substitute a fake Loader to observe or fail the acquisition.
//
// # Navigation Primitive
//
// The runtime's own navigation is offset-only: ShiftLevel and ShiftGallery
// move relative to the current position. Mapping absolute level
// identifiers onto these primitives is the adapter's job.
//
// # Asset Handles
//
// Painting textures are tracked in an AssetTable that maps integer handles
// to texture values with free-list reuse. Dispose closes the table and
// releases every texture.
package renderer
