// Package render rasterizes documents to images.
//
// A Renderer walks a document's graphics back to front and paints them
// onto a gg raster context, so the frontmost graphic covers everything
// behind it. Render produces the plain drawing; RenderEditor layers an
// editing surface on top: grid lines behind the graphics and selection
// handles over the graphics whose IDs are selected.
package render
