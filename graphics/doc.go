// Package graphics provides the abstract paint model shared by the renderer
// and the window layer: colors, brushes (solid colors and gradients),
// geometry primitives, affine transforms, and the Pixmap pixel buffer that
// the software painter rasterizes into.
//
// Brushes are descriptions, not native paint objects. BuildPaint turns a
// Brush plus a bounding box into a Paint that can be sampled per pixel;
// gradient stop positions are made strictly unique during that conversion
// (see Paint) so that downstream gradient engines that merge equal-position
// stops still see every stop.
package graphics
