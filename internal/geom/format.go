package geom

import (
	"fmt"
	"image"
)

// Format is an image's nominal canvas: its display window and pixel aspect.
type Format struct {
	DisplayWindow image.Rectangle `json:"display_window"`
	PixelAspect   float64         `json:"pixel_aspect"`
}

// NewFormat returns a square-pixel format with the given display window.
func NewFormat(displayWindow image.Rectangle) Format {
	return Format{DisplayWindow: displayWindow, PixelAspect: 1}
}

// Size returns the display window dimensions as a real vector.
func (f Format) Size() Vec {
	return Vec{X: float64(f.DisplayWindow.Dx()), Y: float64(f.DisplayWindow.Dy())}
}

// Width returns the display window width in pixels.
func (f Format) Width() int {
	return f.DisplayWindow.Dx()
}

// Height returns the display window height in pixels.
func (f Format) Height() int {
	return f.DisplayWindow.Dy()
}

// Empty reports whether the display window has no area.
func (f Format) Empty() bool {
	return f.DisplayWindow.Empty()
}

func (f Format) String() string {
	return fmt.Sprintf("%dx%d %v aspect %g", f.Width(), f.Height(), f.DisplayWindow, f.PixelAspect)
}
