// Package pipeline orchestrates one render: resolve the input, collect the
// frames, plan the fades and encoder settings, run ffmpeg, and assemble the
// report.
//
// Types:
//   - Logger (the logging surface every stage uses)
//   - RenderStats (frame count, elapsed time, output size)
//
// Functions:
//   - Render(ctx, cfg, log) → *report.Report
//     Single entry point for every format; delegates to Preview when a
//     preview frame was requested.
//   - Preview(ctx, cfg, log) → *report.Report
//     Copies one frame to <output stem>.png.
package pipeline
