package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/backmassage/aether-renderer/internal/config"
	"github.com/backmassage/aether-renderer/internal/display"
	"github.com/backmassage/aether-renderer/internal/errs"
	"github.com/backmassage/aether-renderer/internal/ffmpeg"
	"github.com/backmassage/aether-renderer/internal/frames"
	"github.com/backmassage/aether-renderer/internal/naming"
	"github.com/backmassage/aether-renderer/internal/planner"
	"github.com/backmassage/aether-renderer/internal/probe"
	"github.com/backmassage/aether-renderer/internal/report"
	"github.com/backmassage/aether-renderer/internal/source"
	"github.com/backmassage/aether-renderer/internal/term"
)

// Logger is the logging surface used by the render pipeline.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Render(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// gifNote is attached to every palette-pipeline report.
const gifNote = "GIF export via palettegen"

// Render validates cfg and runs the full pipeline. Every check that does not
// need the encoder (output path, format, input, frame set) runs before
// ffmpeg is spawned. An extracted archive is removed before Render returns.
func Render(ctx context.Context, cfg *config.Config, log Logger) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.IsPreview() {
		return Preview(ctx, cfg, log)
	}

	start := time.Now()

	// --- Input ---
	src, err := source.Resolve(cfg.Input, log, cfg.Verbose)
	if err != nil {
		return nil, err
	}
	defer release(src, log)

	pattern := cfg.Pattern()
	files, err := frames.Collect(src.Dir(), pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, noFrames(src, cfg.Input, pattern)
	}

	// --- Plan ---
	fade := planner.NewFadeWindow(len(files), cfg.FPS, cfg.FadeIn, cfg.FadeOut)
	plan, err := planner.BuildPlan(cfg, frames.InputPattern(src.Dir(), pattern), fade)
	if err != nil {
		return nil, err
	}
	log.Debug(cfg.Verbose, "Found %d frame(s), clip duration %s", len(files), display.FormatSeconds(fade.Duration()))
	if plan.Fade != "" {
		log.Debug(cfg.Verbose, "Fade filter: %s", plan.Fade)
	}

	// --- Encoder ---
	runner := ffmpeg.NewRunner(cfg.FFmpegPath)
	if _, err := runner.LookPath(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return nil, errs.Wrapf(err, errs.KindOutputPathInvalid, "pipeline.render",
			"Cannot create output directory for '%s'", cfg.Output)
	}

	log.Render("Rendering %s -> %s at %d FPS (%s)", plan.InputPattern, cfg.Output, cfg.FPS, cfg.Format)
	d := &ffmpeg.Dispatcher{Exec: runner, Scanner: ffmpeg.NewScanner(extraRules(cfg)...)}

	var spin *spinner
	if cfg.Verbose && !cfg.VerboseFFmpeg && term.IsTerminal(os.Stdout) {
		spin = startSpinner(os.Stdout, "Rendering with FFmpeg...")
	}
	res, err := d.Dispatch(ctx, plan)
	if spin != nil {
		spin.Stop()
	}
	if res.CleanupErr != nil {
		log.Warn("%v", res.CleanupErr)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		for _, args := range res.Commands {
			log.Render("%s %s", cfg.FFmpegPath, quoteArgs(args))
		}
	}
	for _, w := range res.Warnings {
		log.Warn("FFmpeg: %s", w)
	}

	// --- Report ---
	var notes []string
	if note, ok := naming.ExtensionMismatch(cfg.Output, cfg.Format); ok {
		log.Warn("%s", note)
		notes = append(notes, note)
	}
	var frameCount *int
	if plan.IsPalette() {
		notes = append(notes, gifNote)
	} else {
		n := len(files)
		frameCount = &n
	}

	stats := RenderStats{Frames: len(files), Elapsed: time.Since(start)}
	if fi, err := os.Stat(cfg.Output); err == nil {
		stats.OutputBytes = fi.Size()
	}
	log.Success("Rendered %s", stats)

	if cfg.Verbose {
		inspect(ctx, cfg, log)
	}
	if cfg.Open {
		if err := openFile(cfg.Output); err != nil {
			log.Warn("Failed to open %s: %v", cfg.Output, err)
		}
	}

	return report.New(cfg.Output, frameCount, res.Warnings, false, report.JoinNotes(notes...)), nil
}

// release closes the input guard, logging a failed cleanup without letting
// it replace the render result.
func release(src *source.Resolved, log Logger) {
	if err := src.Close(); err != nil {
		log.Warn("Failed to remove extracted frames at %s: %v", src.Dir(), err)
	}
}

// noFrames reports an empty frame set against the path the user gave; an
// extraction dir is gone by the time the message is read.
func noFrames(src *source.Resolved, input, pattern string) error {
	where := src.Dir()
	if src.FromArchive() {
		where = input
	}
	return errs.Newf(errs.KindNoFramesMatched, "pipeline.frames",
		"No input files found in '%s' matching pattern '%s'.", where, pattern)
}

// extraRules converts configured diagnostics into scanner rules.
func extraRules(cfg *config.Config) []ffmpeg.Rule {
	return lo.Map(cfg.Diagnostics, func(r config.DiagnosticRule, _ int) ffmpeg.Rule {
		return ffmpeg.Rule{Trigger: r.Trigger, Message: r.Message}
	})
}

// quoteArgs renders args for a copy-pasteable debug line.
func quoteArgs(args []string) string {
	quoted := lo.Map(args, func(a string, _ int) string {
		if a == "" || strings.ContainsAny(a, " \t;[]'\"*?") {
			return strconv.Quote(a)
		}
		return a
	})
	return strings.Join(quoted, " ")
}

// inspect logs what ffprobe sees in the rendered file. Failures are
// informational only.
func inspect(ctx context.Context, cfg *config.Config, log Logger) {
	pr, err := probe.Probe(ctx, cfg.FFprobePath, cfg.Output)
	if err != nil {
		log.Debug(true, "Output inspection skipped: %v", err)
		return
	}
	log.Info("Output: %s %s, %s, %s, %s",
		pr.Codec(), pr.Resolution(),
		display.FormatSeconds(pr.Format.Duration),
		display.FormatBitrateLabel(pr.VideoBitRate()/1000),
		display.FormatBytes(pr.Format.Size))
	if cfg.Format == config.FormatWebM && pr.PrimaryVideo != nil && !pr.PrimaryVideo.HasAlpha {
		log.Warn("Output has no alpha channel")
	}
}
