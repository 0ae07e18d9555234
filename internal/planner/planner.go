package planner

import (
	"github.com/backmassage/aether-renderer/internal/config"
	"github.com/backmassage/aether-renderer/internal/errs"
	"github.com/backmassage/aether-renderer/internal/frames"
)

// BuildPlan selects the pipeline and encoder settings for cfg.Format.
// inputPattern is the frame directory joined with cfg.Pattern(). Formats
// outside the closed set fail with UnsupportedFormat.
func BuildPlan(cfg *config.Config, inputPattern string, fade FadeWindow) (*Plan, error) {
	entry, ok := formats[cfg.Format]
	if !ok {
		return nil, errs.Newf(errs.KindUnsupportedFormat, "planner.build",
			"Unsupported format: %s. Use 'webm', 'mp4' or 'gif'.", cfg.Format)
	}

	p := &Plan{
		Format:        cfg.Format,
		Pipeline:      entry.pipeline,
		InputPattern:  inputPattern,
		Glob:          frames.HasWildcard(cfg.Pattern()),
		FPS:           cfg.FPS,
		Fade:          fade.Filter(),
		Output:        cfg.Output,
		VerboseFFmpeg: cfg.VerboseFFmpeg,
	}
	if entry.pipeline == PipelineVideo {
		p.Codec = entry.codec
		p.PixFmt = entry.pixFmt
		p.AltRefOff = entry.altRefOff
		p.Bitrate = cfg.Bitrate
		p.CRF = cfg.CRF
	}
	return p, nil
}
