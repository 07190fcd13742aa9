// Package painter defines the painting surface the item renderer draws
// against, and a software implementation of it.
//
// The Painter interface is the complete drawing contract: the renderer in
// package renderer contains no backend-specific calls, so it can be tested
// against the software painter and retargeted by providing another Painter.
// The software painter rasterizes into a graphics.Pixmap, using
// golang.org/x/image/vector for nonzero-winding fills and an in-package
// scanline rasterizer for even-odd fills.
//
// Painter state (transform, clip, opacity) forms a stack: Save pushes,
// Restore pops. Clips combine by intersection only; the clip can never
// grow within a Save/Restore pair.
package painter
