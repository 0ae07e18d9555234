// Package naming derives output paths from the configured output.
//
// Functions:
//   - PreviewPath(output) → output with its extension replaced by .png
//   - ExtensionMismatch(output, format) → note when the extension disagrees
//     with the render format
package naming
