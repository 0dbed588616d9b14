// Package geom provides the small set of 2D types shared by the transform
// engine: real-valued vectors, image formats and affine matrices.
//
// Integer boxes and points use the standard library's image.Rectangle and
// image.Point directly. A box's Max is exclusive, so a box with Min == Max
// describes an empty region.
//
// # Coordinate System
//
// Pixel (x, y) covers the real interval [x, x+1) x [y, y+1) and its center is
// at (x+0.5, y+0.5). X increases rightward and Y increases downward, matching
// the image package.
package geom
