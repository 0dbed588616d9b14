// Package transform implements an affine image transform (scale, rotation and
// translation about a pivot) over tiled images.
//
// The work is split in two stages. An integer-resolution reformat first
// resizes the input to the nearest whole-pixel size for the requested scale
// (see RescaleFormat and raster.Reformatter). The Implementation then applies
// what remains: a residual sub-pixel scale, the rotation and the translation,
// by inverse-mapping every output pixel center into the reformatted input and
// filtering there. ImageTransform wires the two stages together.
//
// # Matrix Convention
//
// The adjusted matrix is the composition, in application order, of:
//
//  1. translate by -pivot * trueScale
//  2. scale by scale / trueScale
//  3. rotate by -rotate degrees
//  4. translate by translate
//  5. translate by +pivot
//
// where trueScale is the reformatted size divided by the original size.
//
// # Caching
//
// Every output has a fingerprint built only from parameters and upstream
// fingerprints, never from pixels, so a memoization layer (see package cache)
// can skip recomputation cheaply. Affects describes which outputs a change to
// each input invalidates.
//
// # Edge Policy
//
// Input pixels outside the input's data window read as zero. Output data
// windows are derived from the same matrix and box rules used to pick sample
// regions, so coverage of data window and channel data always agree.
package transform
