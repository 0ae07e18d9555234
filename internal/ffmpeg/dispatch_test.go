package ffmpeg

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/backmassage/aether-renderer/internal/errs"
	"github.com/backmassage/aether-renderer/internal/planner"
)

// fakeExec records invocations and returns canned results in order.
type fakeExec struct {
	calls   [][]string
	results []ExecResult
}

func (f *fakeExec) Run(_ context.Context, args []string, _ bool) ExecResult {
	f.calls = append(f.calls, args)
	i := len(f.calls) - 1
	if i < len(f.results) {
		return f.results[i]
	}
	return ExecResult{}
}

// exitError produces a real *exec.ExitError with the given code.
func exitError(t *testing.T, code int) error {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	err := exec.Command("sh", "-c", "exit "+strconv.Itoa(code)).Run()
	if err == nil {
		t.Fatal("expected exit error")
	}
	return err
}

func TestDispatch_Video(t *testing.T) {
	fx := &fakeExec{results: []ExecResult{{Stderr: "drop=2"}}}
	res, err := (&Dispatcher{Exec: fx}).Dispatch(context.Background(), webmPlan())
	if err != nil {
		t.Fatal(err)
	}
	if len(fx.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(fx.calls))
	}
	if diff := cmp.Diff([]string{"Frame drop detected"}, res.Warnings); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fx.calls, res.Commands); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
}

func TestDispatch_VideoNonZeroExit(t *testing.T) {
	fx := &fakeExec{results: []ExecResult{{Stderr: "frames/*.png: Invalid data\n", Err: exitError(t, 1)}}}
	_, err := (&Dispatcher{Exec: fx}).Dispatch(context.Background(), webmPlan())
	if !errs.IsKind(err, errs.KindEncoderNonZeroExit) {
		t.Fatalf("err = %v, want EncoderNonZeroExit", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg exited with code 1") || !strings.Contains(err.Error(), "Invalid data") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDispatch_EncoderNotFound(t *testing.T) {
	fx := &fakeExec{results: []ExecResult{{Err: &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}}}}
	_, err := (&Dispatcher{Exec: fx}).Dispatch(context.Background(), webmPlan())
	if !errs.IsKind(err, errs.KindEncoderNotFound) {
		t.Fatalf("err = %v, want EncoderNotFound", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg not found") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDispatch_ExecutionFailure(t *testing.T) {
	fx := &fakeExec{results: []ExecResult{{Err: errors.New("fork failed")}}}
	_, err := (&Dispatcher{Exec: fx}).Dispatch(context.Background(), webmPlan())
	if !errs.IsKind(err, errs.KindEncoderExecution) {
		t.Fatalf("err = %v, want EncoderExecution", err)
	}
}

func TestDispatch_UnknownPipeline(t *testing.T) {
	p := webmPlan()
	p.Pipeline = planner.Pipeline(42)
	_, err := (&Dispatcher{Exec: &fakeExec{}}).Dispatch(context.Background(), p)
	if !errs.IsKind(err, errs.KindUnsupportedFormat) {
		t.Fatalf("err = %v, want UnsupportedFormat", err)
	}
}

func TestDispatch_PaletteTwoPass(t *testing.T) {
	dir := t.TempDir()
	fx := &fakeExec{results: []ExecResult{{Stderr: "deprecated"}, {Stderr: "drop"}}}
	d := &Dispatcher{Exec: fx, TempDir: dir}

	res, err := d.Dispatch(context.Background(), gifPlan())
	if err != nil {
		t.Fatal(err)
	}
	if len(fx.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(fx.calls))
	}
	palette := fx.calls[0][len(fx.calls[0])-1]
	if filepath.Dir(palette) != dir || !strings.HasPrefix(filepath.Base(palette), "aether-palette-") {
		t.Errorf("palette path = %q", palette)
	}
	if fx.calls[1][len(fx.calls[1])-1] != "out.gif" {
		t.Errorf("final pass output = %q", fx.calls[1][len(fx.calls[1])-1])
	}
	found := false
	for i, a := range fx.calls[1] {
		if a == "-i" && i+1 < len(fx.calls[1]) && fx.calls[1][i+1] == palette {
			found = true
		}
	}
	if !found {
		t.Error("final pass does not read the palette")
	}
	want := []string{"Frame drop detected", "Deprecated option used"}
	if diff := cmp.Diff(want, res.Warnings); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
	if res.CleanupErr != nil {
		t.Errorf("CleanupErr = %v", res.CleanupErr)
	}
}

// paletteWriter creates the palette file on the first call, like ffmpeg.
type paletteWriter struct {
	fakeExec
	t *testing.T
}

func (p *paletteWriter) Run(ctx context.Context, args []string, tee bool) ExecResult {
	if len(p.calls) == 0 {
		if err := os.WriteFile(args[len(args)-1], []byte("pal"), 0o644); err != nil {
			p.t.Fatal(err)
		}
	}
	return p.fakeExec.Run(ctx, args, tee)
}

func TestDispatch_PaletteRemovedOnFailure(t *testing.T) {
	dir := t.TempDir()
	pw := &paletteWriter{t: t}
	pw.results = []ExecResult{{}, {Err: exitError(t, 2)}}
	d := &Dispatcher{Exec: pw, TempDir: dir}

	_, err := d.Dispatch(context.Background(), gifPlan())
	if !errs.IsKind(err, errs.KindEncoderNonZeroExit) {
		t.Fatalf("err = %v, want EncoderNonZeroExit", err)
	}
	if !strings.Contains(err.Error(), "Failed to render final GIF") {
		t.Errorf("message = %q", err.Error())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("palette not removed: %v", entries)
	}
}

func TestDispatch_PaletteGenFailureSkipsFinalPass(t *testing.T) {
	fx := &fakeExec{results: []ExecResult{{Err: exitError(t, 1)}}}
	d := &Dispatcher{Exec: fx, TempDir: t.TempDir()}
	_, err := d.Dispatch(context.Background(), gifPlan())
	if err == nil || !strings.Contains(err.Error(), "palettegen") {
		t.Fatalf("err = %v, want palettegen failure", err)
	}
	if len(fx.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(fx.calls))
	}
}

// --- Runner against a stand-in binary ---

func writeFakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg is a POSIX shell script")
	}
	p := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(p, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunner_CapturesStderr(t *testing.T) {
	bin := writeFakeFFmpeg(t, `echo "deprecated option" >&2
for last; do :; done
printf data > "$last"`)
	out := filepath.Join(t.TempDir(), "out.webm")

	var tee strings.Builder
	r := NewRunner(bin)
	r.Tee = &tee
	res := r.Run(context.Background(), []string{"-y", out}, true)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if !strings.Contains(res.Stderr, "deprecated option") {
		t.Errorf("Stderr = %q", res.Stderr)
	}
	if tee.String() != res.Stderr {
		t.Errorf("tee = %q, want %q", tee.String(), res.Stderr)
	}
	if b, err := os.ReadFile(out); err != nil || string(b) != "data" {
		t.Errorf("output not written: %v %q", err, b)
	}
}

func TestRunner_NoTee(t *testing.T) {
	bin := writeFakeFFmpeg(t, `echo noisy >&2`)
	var tee strings.Builder
	r := NewRunner(bin)
	r.Tee = &tee
	if res := r.Run(context.Background(), nil, false); res.Err != nil {
		t.Fatal(res.Err)
	}
	if tee.Len() != 0 {
		t.Errorf("tee received %q without tee set", tee.String())
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "no-ffmpeg"))
	res := r.Run(context.Background(), []string{"-version"}, false)
	err := classify(res, "ffmpeg.video", "Failed to render video")
	if !errs.IsKind(err, errs.KindEncoderNotFound) {
		t.Fatalf("err = %v, want EncoderNotFound", err)
	}
	if _, err := r.LookPath(); !errs.IsKind(err, errs.KindEncoderNotFound) {
		t.Errorf("LookPath err = %v", err)
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"one", "one"},
		{"a\nb\n\n", "b"},
	}
	for _, tt := range tests {
		if got := lastLine(tt.in); got != tt.want {
			t.Errorf("lastLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
