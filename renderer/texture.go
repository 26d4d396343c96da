package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/bentance/virtualgallery/gallery"
)

// Texture dimensions used for painting thumbnails in the rasterized scene.
const (
	textureWidth  = 96
	textureHeight = 72
)

// Texture is a decoded painting image scaled to the renderer's thumbnail
// size. The core performs no network I/O, so pixel data is synthesized
// deterministically from the painting record; a collaborator that already
// fetched the real image can attach it via SetImage before the texture is
// uploaded.
type Texture struct {
	PaintingID int
	URL        string
	Img        *image.RGBA
}

// NewTexture builds a texture for a painting entry.
func NewTexture(p gallery.Painting) *Texture {
	return &Texture{
		PaintingID: p.ID,
		URL:        p.ImageURL,
		Img:        scaleToTexture(placeholderImage(p)),
	}
}

// SetImage replaces the texture pixels with a caller-supplied image,
// scaled to the thumbnail size.
func (t *Texture) SetImage(src image.Image) {
	t.Img = scaleToTexture(src)
}

// scaleToTexture resamples src to the fixed thumbnail dimensions.
func scaleToTexture(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, textureWidth, textureHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// placeholderImage synthesizes a small flat-shaded stand-in for a painting
// that has not been fetched. The hue is derived from the painting ID so
// adjacent exhibits remain visually distinct.
func placeholderImage(p gallery.Painting) *image.RGBA {
	const w, h = 16, 12
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	c := color.RGBA{
		R: uint8(60 + (p.ID*67)%180),
		G: uint8(60 + (p.ID*131)%180),
		B: uint8(60 + (p.ID*29)%180),
		A: 255,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
