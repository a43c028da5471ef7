package colour

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Raster is a decoded grid of pixels. Any image backend can satisfy it.
type Raster interface {
	Width() int
	Height() int
	// NRGBAAt returns the pixel at (x, y) with straight (non-premultiplied)
	// alpha. Coordinates are zero-based.
	NRGBAAt(x, y int) color.NRGBA
}

// DecodeError reports image data that could not be decoded into a Raster.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s image: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// imageRaster adapts an image.Image to the Raster interface.
type imageRaster struct {
	img    image.Image
	bounds image.Rectangle
}

// FromImage wraps an image.Image as a Raster. A nil image yields an empty
// raster.
func FromImage(img image.Image) Raster {
	if img == nil {
		return imageRaster{}
	}
	return imageRaster{img: img, bounds: img.Bounds()}
}

func (r imageRaster) Width() int  { return r.bounds.Dx() }
func (r imageRaster) Height() int { return r.bounds.Dy() }

func (r imageRaster) NRGBAAt(x, y int) color.NRGBA {
	px, py := r.bounds.Min.X+x, r.bounds.Min.Y+y
	if n, ok := r.img.(*image.NRGBA); ok {
		return n.NRGBAAt(px, py)
	}
	return color.NRGBAModel.Convert(r.img.At(px, py)).(color.NRGBA)
}

// AsImage exposes a Raster as an image.Image, unwrapping rasters created by
// FromImage.
func AsImage(r Raster) image.Image {
	if ir, ok := r.(imageRaster); ok && ir.img != nil {
		return ir.img
	}
	return rasterImage{r}
}

type rasterImage struct {
	r Raster
}

func (ri rasterImage) ColorModel() color.Model { return color.NRGBAModel }

func (ri rasterImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, ri.r.Width(), ri.r.Height())
}

func (ri rasterImage) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(ri.Bounds()) {
		return color.NRGBA{}
	}
	return ri.r.NRGBAAt(x, y)
}

// isEmpty reports whether r has no pixels.
func isEmpty(r Raster) bool {
	return r == nil || r.Width() <= 0 || r.Height() <= 0
}
