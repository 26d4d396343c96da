package virtualgallery

import "image"

// Surface is a drawable target a rendering backend binds to. It is the Go
// equivalent of a canvas element: a fixed-size pixel buffer with a stable
// identity for the duration of one mount.
type Surface interface {
	// ID returns a stable identifier for this surface. Two Surface values
	// with the same ID refer to the same drawable target.
	ID() string

	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// Image exposes the surface's pixel buffer. Renderers draw into it;
	// screenshot capture reads from it.
	Image() *image.RGBA
}

// Sizer is optionally implemented by surfaces that can be resized after
// creation.
type Sizer interface {
	Resize(width, height int)
}

// Canvas is an in-memory Surface implementation.
type Canvas struct {
	id  string
	img *image.RGBA
}

// NewCanvas creates a canvas surface with the given identity and dimensions.
func NewCanvas(id string, width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{
		id:  id,
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (c *Canvas) ID() string { return c.id }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Image() *image.RGBA { return c.img }

// Resize replaces the pixel buffer with one of the new dimensions.
// Existing contents are discarded.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Compile-time check that Canvas implements Surface and Sizer
var _ Surface = (*Canvas)(nil)
var _ Sizer = (*Canvas)(nil)
