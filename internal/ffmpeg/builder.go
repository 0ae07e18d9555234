package ffmpeg

import (
	"strconv"

	"github.com/backmassage/aether-renderer/internal/planner"
)

// preamble returns the flags shared by every invocation. Verbose runs log
// at info so the tee shows encoder progress; quiet runs keep only warnings,
// which are still scanned for diagnostics.
func preamble(p *planner.Plan) []string {
	level := "warning"
	if p.VerboseFFmpeg {
		level = "info"
	}
	return []string{"-hide_banner", "-nostdin", "-loglevel", level}
}

// appendInput adds the optional glob flag and the frame input.
func appendInput(args []string, p *planner.Plan) []string {
	if p.Glob {
		args = append(args, "-pattern_type", "glob")
	}
	return append(args, "-i", p.InputPattern)
}

// BuildVideoArgs constructs the single-pass arguments for webm and mp4.
func BuildVideoArgs(p *planner.Plan) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, preamble(p)...)

	// --- Input ---
	args = append(args, "-framerate", strconv.Itoa(p.FPS))
	args = appendInput(args, p)

	// --- Codec ---
	args = append(args, "-c:v", p.Codec, "-pix_fmt", p.PixFmt)
	if p.AltRefOff {
		args = append(args, "-auto-alt-ref", "0")
	}

	// --- Quality ---
	if p.Bitrate != "" {
		args = append(args, "-b:v", p.Bitrate)
	}
	if p.CRF != nil {
		args = append(args, "-crf", strconv.Itoa(*p.CRF))
	}

	// --- Filters ---
	if p.Fade != "" {
		args = append(args, "-vf", p.Fade)
	}

	// --- Output ---
	return append(args, "-y", p.Output)
}

// BuildPaletteArgs constructs the palette generation pass writing palette.
func BuildPaletteArgs(p *planner.Plan, palette string) []string {
	args := make([]string, 0, 16)
	args = append(args, preamble(p)...)
	args = appendInput(args, p)
	args = append(args, "-vf", planner.PaletteFilter+",palettegen")
	return append(args, "-y", palette)
}

// BuildPaletteUseArgs constructs the final GIF pass, reading the frames as
// input 0 and palette as input 1.
func BuildPaletteUseArgs(p *planner.Plan, palette string) []string {
	chain := planner.PaletteFilter
	if p.Fade != "" {
		chain += "," + p.Fade
	}

	args := make([]string, 0, 20)
	args = append(args, preamble(p)...)
	args = append(args, "-framerate", strconv.Itoa(p.FPS))
	args = appendInput(args, p)
	args = append(args, "-i", palette)
	args = append(args, "-lavfi", chain+" [x]; [x][1:v] paletteuse")
	return append(args, "-y", p.Output)
}
