// Package imaging bridges image files and the sketch package.
//
// It loads sketches saved by a drawing surface (PNG, JPEG, GIF or WebP),
// converts them into the flat RGBA sketch.Bitmap the feature extractor
// consumes, and renders annotated overlays that show what the extractor saw.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Bitmaps produced by
// ToBitmap always start at the origin, whatever the source image's bounds.
//
// # Transparency
//
// Canvas exports are often transparent where nothing was drawn. ToBitmap
// composites every image onto white before conversion, so untouched
// transparent regions read as background. Raw canvas buffers that bypass
// ToBitmap keep the sketch package's rule: alpha is ignored.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Conversion and overlay
// rendering are stateless and can run concurrently on different inputs.
package imaging
