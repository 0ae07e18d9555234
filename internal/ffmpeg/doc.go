// Package ffmpeg builds and executes the encoder commands for a render.
//
// Types:
//   - Runner: runs ffmpeg, captures stderr, optionally tees it to the terminal.
//   - Scanner: classifies stderr text into human-readable warnings.
//   - Dispatcher: runs the single-pass video pipeline or the two-pass
//     palette pipeline for a planner.Plan and removes the palette artifact.
//
// Functions:
//   - BuildVideoArgs, BuildPaletteArgs, BuildPaletteUseArgs → []string
//     Argument slices without the binary name; the output path is always last.
//   - (*Dispatcher).Dispatch(ctx, *planner.Plan) → (Result, error)
//   - ScanStderr(stderr) → []string using the default diagnostics table.
package ffmpeg
