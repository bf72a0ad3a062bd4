// Package label implements the label-rendering engine.
//
// # Overview
//
// Given a row of named values and an immutable [Config], the engine lays out
// and rasterizes a fixed-size label image in four independent layers:
//
//   - a text block composed from the configured fields, grouped into lines
//     and fitted to the canvas width with truncation heuristics
//   - an optional Code 128 barcode (with a deterministic visual fallback
//     when no encoder is available)
//   - an optional alpha-composited logo at one of six anchor positions
//   - a border
//
// Rendering happens on a supersampled working canvas which is downsampled
// to the configured output size with Lanczos resampling, so text and bars
// stay crisp at small label sizes.
//
// # Failure containment
//
// A missing or null field is skipped, never an error. Barcode encoding and
// logo processing failures fall back to a placeholder pattern or omit the
// layer. The only fatal input is a canvas size outside the supported
// bounds. Batch rendering skips failed rows and reports their indices; one
// bad row never aborts a batch.
//
// # Basic usage
//
//	r := label.NewRenderer()
//	img, err := r.Render(row, cfg)
//
//	res, err := label.RenderBatch(r, rows, cfg)
//	os.WriteFile("labels.zip", res.Archive, 0o644)
package label
