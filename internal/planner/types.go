package planner

import "github.com/backmassage/aether-renderer/internal/config"

// Pipeline is the encoder strategy used for a format.
type Pipeline int

const (
	// PipelineVideo is a single ffmpeg pass straight to a video container.
	PipelineVideo Pipeline = iota
	// PipelinePalette generates a palette, then encodes against it.
	PipelinePalette
)

func (p Pipeline) String() string {
	switch p {
	case PipelineVideo:
		return "video"
	case PipelinePalette:
		return "palette"
	default:
		return "unknown"
	}
}

// PaletteFilter is the scale/fps chain shared by both palette passes.
const PaletteFilter = "fps=30,scale=640:-1:flags=lanczos"

// formatSpec is one row of the per-format encoder table.
type formatSpec struct {
	pipeline  Pipeline
	codec     string
	pixFmt    string
	altRefOff bool // -auto-alt-ref 0, needed for alpha in libvpx
}

// formats is the closed set of render targets.
var formats = map[config.Format]formatSpec{
	config.FormatWebM: {pipeline: PipelineVideo, codec: "libvpx", pixFmt: "yuva420p", altRefOff: true},
	config.FormatMP4:  {pipeline: PipelineVideo, codec: "libx264", pixFmt: "yuv420p"},
	config.FormatGIF:  {pipeline: PipelinePalette},
}

// Plan is everything the ffmpeg package needs for one render.
type Plan struct {
	Format   config.Format
	Pipeline Pipeline

	// Video encoder settings (PipelineVideo only).
	Codec     string
	PixFmt    string
	AltRefOff bool
	Bitrate   string // Empty leaves the encoder default.
	CRF       *int   // Nil leaves the encoder default.

	// Input.
	InputPattern string // Directory joined with the frame pattern.
	Glob         bool   // Pass -pattern_type glob.
	FPS          int

	// Fade is the filter fragment from FadeWindow.Filter (may be empty).
	Fade string

	// Output.
	Output string

	// VerboseFFmpeg raises the encoder log level and tees its stderr.
	VerboseFFmpeg bool
}

// IsPalette reports whether the two-pass palette pipeline is used.
func (p *Plan) IsPalette() bool { return p.Pipeline == PipelinePalette }
