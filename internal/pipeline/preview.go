package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/backmassage/aether-renderer/internal/config"
	"github.com/backmassage/aether-renderer/internal/errs"
	"github.com/backmassage/aether-renderer/internal/frames"
	"github.com/backmassage/aether-renderer/internal/naming"
	"github.com/backmassage/aether-renderer/internal/report"
	"github.com/backmassage/aether-renderer/internal/source"
)

// Preview copies a single frame to the output stem with a .png extension.
// The frame is cfg's explicit preview index, or the middle of the set.
// No encoder is involved.
func Preview(ctx context.Context, cfg *config.Config, log Logger) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Open {
		log.Warn("'--open' is only supported for full render. Ignoring for preview.")
	}

	src, err := source.Resolve(cfg.Input, log, cfg.Verbose)
	if err != nil {
		return nil, err
	}
	defer release(src, log)

	files, err := frames.Collect(src.Dir(), cfg.Pattern())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, noFrames(src, cfg.Input, cfg.Pattern())
	}

	idx, ok := cfg.PreviewIndex()
	if !ok {
		idx = len(files) / 2
	}
	if idx >= len(files) {
		return nil, errs.Newf(errs.KindFrameIndexOutOfRange, "pipeline.preview",
			"Frame index %d out of range (0..%d)", idx, len(files)-1)
	}

	out := naming.PreviewPath(cfg.Output)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, errs.Wrapf(err, errs.KindOutputPathInvalid, "pipeline.preview",
			"Cannot create output directory for '%s'", out)
	}
	if sameFile(files[idx], out) {
		return nil, errs.Newf(errs.KindOutputPathInvalid, "pipeline.preview",
			"Preview output '%s' would overwrite the source frame", out)
	}
	if err := copyFile(files[idx], out); err != nil {
		return nil, errs.Wrapf(err, errs.KindInternal, "pipeline.preview",
			"Failed to write preview frame '%s'", out)
	}
	log.Success("Preview frame %d (%s) saved to %s", idx, filepath.Base(files[idx]), out)

	return report.New(out, nil, nil, true, "Preview complete."), nil
}

// sameFile reports whether dst already exists and is src.
func sameFile(src, dst string) bool {
	a, err := os.Stat(src)
	if err != nil {
		return false
	}
	b, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
