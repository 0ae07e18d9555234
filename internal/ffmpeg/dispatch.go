package ffmpeg

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/backmassage/aether-renderer/internal/errs"
	"github.com/backmassage/aether-renderer/internal/planner"
)

// Result is the outcome of a successful dispatch.
type Result struct {
	// Warnings are the classified diagnostics of every pass.
	Warnings []string
	// Commands are the argument slices that were run, in order.
	Commands [][]string
	// CleanupErr is set when the palette artifact could not be removed.
	// It never fails the render.
	CleanupErr error
}

// Dispatcher runs the encoder pipeline for a plan.
type Dispatcher struct {
	Exec    Executor
	Scanner *Scanner
	// TempDir holds the palette artifact. Defaults to os.TempDir().
	TempDir string
}

// Dispatch runs the plan's pipeline and scans the encoder output. A nil
// Scanner uses the default diagnostics table.
func (d *Dispatcher) Dispatch(ctx context.Context, plan *planner.Plan) (Result, error) {
	if d.Scanner == nil {
		d.Scanner = NewScanner()
	}
	switch plan.Pipeline {
	case planner.PipelineVideo:
		return d.video(ctx, plan)
	case planner.PipelinePalette:
		return d.palette(ctx, plan)
	default:
		return Result{}, errs.Newf(errs.KindUnsupportedFormat, "ffmpeg.dispatch",
			"Unsupported format: %s. Use 'webm', 'mp4' or 'gif'.", plan.Format)
	}
}

func (d *Dispatcher) video(ctx context.Context, plan *planner.Plan) (Result, error) {
	args := BuildVideoArgs(plan)
	res := d.Exec.Run(ctx, args, plan.VerboseFFmpeg)
	if err := classify(res, "ffmpeg.video", "Failed to render video"); err != nil {
		return Result{}, err
	}
	return Result{
		Warnings: d.Scanner.Scan(res.Stderr),
		Commands: [][]string{args},
	}, nil
}

// palette runs palettegen then paletteuse. The palette file is removed on
// every path once it may have been written.
func (d *Dispatcher) palette(ctx context.Context, plan *planner.Plan) (out Result, err error) {
	dir := d.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	palette := filepath.Join(dir, "aether-palette-"+uuid.NewString()+".png")
	defer func() {
		if rerr := os.Remove(palette); rerr != nil && !os.IsNotExist(rerr) {
			out.CleanupErr = errs.Wrapf(rerr, errs.KindInternal, "ffmpeg.palette",
				"Failed to remove palette file '%s'", palette)
		}
	}()

	genArgs := BuildPaletteArgs(plan, palette)
	gen := d.Exec.Run(ctx, genArgs, plan.VerboseFFmpeg)
	if err = classify(gen, "ffmpeg.palettegen", "Failed to run ffmpeg for palettegen"); err != nil {
		return Result{}, err
	}

	useArgs := BuildPaletteUseArgs(plan, palette)
	use := d.Exec.Run(ctx, useArgs, plan.VerboseFFmpeg)
	if err = classify(use, "ffmpeg.paletteuse", "Failed to render final GIF"); err != nil {
		return Result{}, err
	}

	return Result{
		Warnings: d.Scanner.Scan(gen.Stderr, use.Stderr),
		Commands: [][]string{genArgs, useArgs},
	}, nil
}
