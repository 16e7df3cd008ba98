// Package formats provides parsers for the asset file formats consumed by the renderer.
package formats
