// Package sketch extracts geometric descriptors from hand-drawn raster sketches.
//
// A sketch arrives as a Bitmap: a flat, row-major RGBA buffer as produced by an
// HTML canvas. Every pixel is classified as either ink or background, and the
// binary mask, not the raw channel values, drives all of the geometry.
//
// # Ink Classification
//
// A pixel is ink when any of its red, green or blue channels is below
// InkThreshold (250). Alpha is ignored. A white or near-white pixel is
// background.
//
// # Algorithm Overview
//
// Extract makes two passes over the bitmap:
//
//  1. Bounds and centroid: scan every pixel, accumulate coordinate sums,
//     track the running bounding box. A bitmap with no ink stops here and
//     yields an empty Descriptor.
//  2. Perimeter and shape detail: for every ink pixel, inspect its
//     8-neighbourhood. A pixel touching background or the bitmap border is an
//     edge pixel. With ShapeDetail enabled, edge pixels are further split into
//     corners and curve segments, and three lane sweeps count the distinct
//     rows, columns and diagonals that carry ink.
//
// # Degenerate Bounding Boxes
//
// Width and height are extents (max minus min), so a single pixel or a
// perfectly straight one-pixel stroke has a zero-sized box. Extract never
// produces NaN or Inf: a zero-height box with non-zero width reports
// AspectSentinel, a single point reports an aspect ratio of 1, and a zero
// area box reports the ink pixel count as its density.
//
// # Thread Safety
//
// Extract is a pure function of its input. It may be called concurrently on
// independent bitmaps; a Bitmap must not be mutated while it is being read.
package sketch
