// Package viz renders particle clouds and vector fields to the
// terminal: a braille-dot canvas for 2D scatter and quiver views,
// asciigraph history plots, and SVG export of a rendered canvas.
package viz
