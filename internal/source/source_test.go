package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"

	"github.com/backmassage/aether-renderer/internal/errs"
)

type nopLogger struct {
	debug []string
	warns []string
}

func (l *nopLogger) Debug(verbose bool, format string, args ...interface{}) {
	if verbose {
		l.debug = append(l.debug, format)
	}
}
func (l *nopLogger) Warn(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func writeZip(t *testing.T, members map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "frames.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"frame_001.png", true},
		{"FRAME.PNG", true},
		{"shot.jpeg", true},
		{"nested/dir/a.webp", true},
		{"._frame.png", false},
		{"__MACOSX/._a.png", false},
		{"readme.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.name); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	res, err := Resolve(dir, &nopLogger{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Dir() != dir || res.FromArchive() {
		t.Errorf("got dir %q archive %v", res.Dir(), res.FromArchive())
	}
	if err := res.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Error("Close removed a user directory")
	}
}

func TestResolve_Missing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope")
	_, err := Resolve(p, &nopLogger{}, false)
	if !errs.IsKind(err, errs.KindInputNotFound) {
		t.Fatalf("err = %v, want InputNotFound", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("message %q should mention does not exist", err.Error())
	}
}

func TestResolve_Archive(t *testing.T) {
	p := writeZip(t, map[string]string{
		"frames/a.png":      "a",
		"frames/b.PNG":      "b",
		"__MACOSX/._a.png":  "sidecar",
		"frames/notes.txt":  "x",
		"deep/nested/c.jpg": "c",
	})
	log := &nopLogger{}
	res, err := Resolve(p, log, true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.FromArchive() {
		t.Error("FromArchive() = false")
	}
	want := []string{"a.png", "b.PNG", "c.jpg"}
	if diff := cmp.Diff(want, listDir(t, res.Dir())); diff != "" {
		t.Errorf("extracted files (-want +got):\n%s", diff)
	}
	if len(log.debug) == 0 {
		t.Error("verbose extraction should trace")
	}

	dir := res.Dir()
	if err := res.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("extraction dir still exists after Close: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestResolve_ArchiveWithoutFrames(t *testing.T) {
	p := writeZip(t, map[string]string{"readme.txt": "x", "._a.png": "y"})
	_, err := Resolve(p, &nopLogger{}, false)
	if !errs.IsKind(err, errs.KindNoFramesInArchive) {
		t.Fatalf("err = %v, want NoFramesInArchive", err)
	}
	if !strings.Contains(err.Error(), "No image frames found") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestResolve_CorruptArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.ZIP")
	if err := os.WriteFile(p, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Resolve(p, &nopLogger{}, false)
	if !errs.IsKind(err, errs.KindArchiveUnreadable) {
		t.Fatalf("err = %v, want ArchiveUnreadable", err)
	}
}

func TestResolve_ZipDuplicateBaseNames(t *testing.T) {
	zp := writeZip(t, map[string]string{
		"a/frame.png": "from-a",
		"b/frame.png": "from-b",
		"c/other.png": "other",
	})
	log := &nopLogger{}
	res, err := Resolve(zp, log, true)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if diff := cmp.Diff([]string{"frame.png", "other.png"}, listDir(t, res.Dir())); diff != "" {
		t.Errorf("extracted files (-want +got):\n%s", diff)
	}
	b, err := os.ReadFile(filepath.Join(res.Dir(), "frame.png"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != "from-a" && got != "from-b" {
		t.Errorf("frame.png = %q, want one member's content intact", got)
	}
	if len(log.warns) != 1 || !strings.Contains(log.warns[0], "already extracted") {
		t.Errorf("warnings = %v, want one duplicate warning", log.warns)
	}
}
