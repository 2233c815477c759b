// Package render provides display surfaces for the reveal engine.
//
// Each surface keeps its own glyph cache, built by Prepare from the runes
// actually present in the grid:
//
//   - TerminalSurface draws through tcell; the cache maps runes to styles.
//   - ANSISurface writes diffed escape sequences to any io.Writer, such as an
//     SSH channel; the cache maps runes to pre-encoded byte sequences.
//   - RasterSurface paints into an RGBA image with a monospace font; the cache
//     maps runes to pre-rasterized alpha masks.
package render
