// Package probe inspects a rendered file with a single ffprobe JSON call.
// Verbose renders use it to log what was actually written.
//
// Types:
//   - FormatInfo, VideoStream, ProbeResult
//
// Functions:
//   - Probe(ctx, ffprobe, path) → *ProbeResult
//     Runs ffprobe -print_format json -show_format -show_streams.
//   - ParseJSON(data) → *ProbeResult, for tests without a real ffprobe.
package probe
