package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no cause", New(KindInputNotFound, "source.resolve", "Input path 'x' does not exist."), "Input path 'x' does not exist."},
		{"with cause", Wrap(fs.ErrPermission, KindInternal, "source.extract", "cannot create temp dir"), "cannot create temp dir: permission denied"},
		{"formatted", Newf(KindFrameIndexOutOfRange, "pipeline.preview", "Frame index %d out of range (0..%d)", 5, 1), "Frame index 5 out of range (0..1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsKind_ThroughWrapping(t *testing.T) {
	base := New(KindEncoderNonZeroExit, "ffmpeg.run", "ffmpeg exited with code 1")
	wrapped := fmt.Errorf("render: %w", base)

	if !IsKind(wrapped, KindEncoderNonZeroExit) {
		t.Error("IsKind should find the kind through fmt.Errorf wrapping")
	}
	if IsKind(wrapped, KindEncoderNotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if !errors.Is(wrapped, Sentinel(KindEncoderNonZeroExit)) {
		t.Error("errors.Is should match a sentinel of the same kind")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(New(KindUnsupportedFormat, "", "x")); got != KindUnsupportedFormat {
		t.Errorf("KindOf = %q, want %q", got, KindUnsupportedFormat)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
}

func TestWrap_Nil(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"Wrap", Wrap(nil, KindInternal, "op", "msg")},
		{"Wrapf", Wrapf(nil, KindInternal, "op", "msg %d", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err != nil {
				t.Errorf("%s(nil) = %#v, want a nil error", tt.name, tt.err)
			}
		})
	}
}

// passThrough returns Wrap's result through a plain error return, the way
// callers forward an optional cause.
func passThrough(cause error) error {
	return Wrap(cause, KindInternal, "op", "msg")
}

func TestWrap_NilThroughErrorReturn(t *testing.T) {
	if err := passThrough(nil); err != nil {
		t.Errorf("passThrough(nil) = %#v, want nil", err)
	}
	if err := passThrough(fs.ErrNotExist); !IsKind(err, KindInternal) {
		t.Errorf("passThrough(ErrNotExist) kind = %s", KindOf(err))
	}
}

func TestOpOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(KindArchiveUnreadable, "source.open", "bad zip"))
	if got := OpOf(err); got != "source.open" {
		t.Errorf("OpOf = %q, want %q", got, "source.open")
	}
}
