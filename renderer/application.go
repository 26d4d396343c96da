package renderer

import (
	"context"
	"errors"
	"image"
	"image/color"
	stddraw "image/draw"
	"sync"

	virtualgallery "github.com/bentance/virtualgallery"
	"github.com/bentance/virtualgallery/gallery"
)

var (
	ErrDisposed    = errors.New("application disposed")
	ErrNoSurface   = errors.New("no surface bound")
	ErrNoGalleries = errors.New("no galleries loaded")
)

// levelPalette maps each catalog level to its ambient wall color.
var levelPalette = [gallery.MaxLevel]color.RGBA{
	{R: 236, G: 232, B: 224, A: 255}, // level 1: plaster
	{R: 210, G: 218, B: 226, A: 255}, // level 2: cool gray
	{R: 226, G: 214, B: 196, A: 255}, // level 3: warm sand
	{R: 198, G: 202, B: 212, A: 255}, // level 4: slate
}

// AppOptions configures Application construction.
type AppOptions struct {
	// Progress, if set, receives texture upload progress in percent (0..100)
	// while the application builds its scene.
	Progress func(percent int)
}

// Application is a running scene bound to one surface. It owns the painting
// textures for the active gallery and rasterizes frames into the surface's
// pixel buffer.
//
// An Application is NOT constructed directly; use Runtime.NewApplication so
// state pushed into the runtime beforehand is reflected in the first frame.
type Application struct {
	state      *ModeState
	surface    virtualgallery.Surface
	assets     *AssetTable
	handles    []Handle
	progress   func(int)
	level      int
	galleryIdx int
	frames     uint64
	running    bool
	disposed   bool
	mu         sync.Mutex
}

// NewApplication constructs the heavyweight application object bound to a
// surface. Configuration already pushed into the runtime's state is applied
// before the first frame is drawn.
func (r *Runtime) NewApplication(ctx context.Context, surface virtualgallery.Surface, opts AppOptions) (*Application, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	app := &Application{
		state:    r.state,
		surface:  surface,
		assets:   NewAssetTable(),
		progress: opts.Progress,
		level:    gallery.DefaultLevel,
	}

	if cfg := r.state.Gallery(0); cfg != nil {
		app.level = gallery.NormalizeLevel(cfg.Environment.Level)
	}

	if err := app.uploadTextures(); err != nil {
		app.assets.Close()
		return nil, err
	}

	app.renderLocked()
	return app, nil
}

// uploadTextures builds textures for every paintable entry of the active
// gallery, reporting progress. Called with no frame in flight.
func (a *Application) uploadTextures() error {
	for _, h := range a.handles {
		a.assets.Drop(h)
	}
	a.handles = a.handles[:0]

	cfg := a.state.Gallery(a.galleryIdx)
	if cfg == nil {
		a.report(100)
		return nil
	}

	total := 0
	for _, p := range cfg.Paintings {
		if p.Paintable() {
			total++
		}
	}
	if total == 0 {
		a.report(100)
		return nil
	}

	done := 0
	for _, p := range cfg.Paintings {
		if !p.Paintable() {
			continue
		}
		h, err := a.assets.Create(NewTexture(p))
		if err != nil {
			return err
		}
		a.handles = append(a.handles, h)
		done++
		a.report(done * 100 / total)
	}
	return nil
}

func (a *Application) report(percent int) {
	if a.progress != nil {
		a.progress(percent)
	}
}

// Start begins the render loop.
func (a *Application) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.running = true
	a.renderLocked()
}

// Stop suspends the render loop without releasing resources.
func (a *Application) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
}

// Running reports whether the render loop is active.
func (a *Application) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// FrameCount returns the number of frames rendered so far.
func (a *Application) FrameCount() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

// CurrentLevel returns the active environment level.
func (a *Application) CurrentLevel() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

// GalleryIndex returns the index of the active gallery in the loaded set.
func (a *Application) GalleryIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.galleryIdx
}

// ShiftLevel moves the active level by offset, wrapping within the level
// catalog. Returns the new level. This is the runtime's only level
// navigation primitive; absolute targeting is the caller's translation.
func (a *Application) ShiftLevel(offset int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return 0, ErrDisposed
	}

	span := gallery.MaxLevel - gallery.MinLevel + 1
	idx := (a.level - gallery.MinLevel + offset) % span
	if idx < 0 {
		idx += span
	}
	a.level = gallery.MinLevel + idx
	a.renderLocked()
	return a.level, nil
}

// ShiftGallery moves the active gallery by offset, wrapping within the
// loaded set, and rebuilds the scene's textures.
func (a *Application) ShiftGallery(offset int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return 0, ErrDisposed
	}

	count := a.state.GalleryCount()
	if count == 0 {
		return 0, ErrNoGalleries
	}

	idx := (a.galleryIdx + offset) % count
	if idx < 0 {
		idx += count
	}
	a.galleryIdx = idx

	if cfg := a.state.Gallery(idx); cfg != nil {
		a.level = gallery.NormalizeLevel(cfg.Environment.Level)
	}
	if err := a.uploadTextures(); err != nil {
		return 0, err
	}
	a.renderLocked()
	return a.galleryIdx, nil
}

// RenderFrame rasterizes one frame into the bound surface.
func (a *Application) RenderFrame() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return ErrDisposed
	}
	a.renderLocked()
	return nil
}

// renderLocked draws the scene. Caller holds a.mu or is still constructing.
func (a *Application) renderLocked() {
	if a.surface == nil {
		return
	}
	img := a.surface.Image()
	if img == nil {
		return
	}

	bg := levelPalette[gallery.NormalizeLevel(a.level)-gallery.MinLevel]
	stddraw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, stddraw.Src)

	a.drawPaintings(img)
	a.drawWatermark(img)
	a.frames++
}

// drawPaintings lays the gallery's textures out in a single row across the
// surface, each with a dark frame.
func (a *Application) drawPaintings(img *image.RGBA) {
	if len(a.handles) == 0 {
		return
	}

	bounds := img.Bounds()
	const gap = 12
	step := textureWidth + gap
	x := bounds.Min.X + gap
	y := bounds.Min.Y + (bounds.Dy()-textureHeight)/2
	frame := color.RGBA{R: 40, G: 36, B: 32, A: 255}

	for _, h := range a.handles {
		tex, ok := a.assets.Get(h)
		if !ok {
			continue
		}
		if x+textureWidth > bounds.Max.X {
			break
		}

		r := image.Rect(x-2, y-2, x+textureWidth+2, y+textureHeight+2)
		stddraw.Draw(img, r, &image.Uniform{C: frame}, image.Point{}, stddraw.Src)
		stddraw.Draw(img, image.Rect(x, y, x+textureWidth, y+textureHeight), tex.Img, tex.Img.Bounds().Min, stddraw.Src)
		x += step
	}
}

// drawWatermark marks the frame when the active gallery's branding asks
// for it.
func (a *Application) drawWatermark(img *image.RGBA) {
	cfg := a.state.Gallery(a.galleryIdx)
	if cfg == nil || cfg.Branding == nil || cfg.Branding.ShowWatermark == nil || !*cfg.Branding.ShowWatermark {
		return
	}

	bounds := img.Bounds()
	mark := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	r := image.Rect(bounds.Max.X-20, bounds.Max.Y-8, bounds.Max.X-4, bounds.Max.Y-4)
	stddraw.Draw(img, r, &image.Uniform{C: mark}, image.Point{}, stddraw.Src)
}

// CaptureFrame returns a copy of the current frame.
func (a *Application) CaptureFrame() (*image.RGBA, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed || a.surface == nil {
		return nil, ErrNoSurface
	}

	src := a.surface.Image()
	if src == nil {
		return nil, ErrNoSurface
	}
	dst := image.NewRGBA(src.Bounds())
	stddraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, stddraw.Src)
	return dst, nil
}

// Dispose releases the application's textures and clears the surface
// binding. Idempotent.
func (a *Application) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.disposed = true
	a.running = false
	a.handles = nil
	a.assets.Close()
	a.surface = nil
}
