// Package source resolves a render input path to a directory of frames.
//
// A directory is used as-is. A .zip archive is opened and its image members
// are extracted into a fresh temporary directory owned by the returned
// [Resolved]; Close removes it. Callers defer Close immediately after a
// successful Resolve so the directory is released on every exit path.
package source

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zip"

	"github.com/backmassage/aether-renderer/internal/errs"
)

// Logger is the logging surface used during extraction.
type Logger interface {
	Debug(bool, string, ...interface{})
	Warn(string, ...interface{})
}

// imageExts are the frame extensions accepted from archives (lowercase).
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Resolved is a directory of frames plus the cleanup guard for it.
type Resolved struct {
	dir     string
	archive bool
	once    sync.Once
	err     error
}

// Dir returns the directory holding the frames.
func (r *Resolved) Dir() string { return r.dir }

// FromArchive reports whether Dir is a temporary extraction directory.
func (r *Resolved) FromArchive() bool { return r.archive }

// Close removes the extraction directory for archive inputs. It is a no-op
// for directory inputs and safe to call more than once.
func (r *Resolved) Close() error {
	r.once.Do(func() {
		if r.archive {
			r.err = os.RemoveAll(r.dir)
		}
	})
	return r.err
}

// IsArchive reports whether p names a zip archive (case-insensitive).
func IsArchive(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".zip")
}

// IsImage reports whether the base name of p is an accepted frame file.
// Platform sidecar files starting with "._" are rejected.
func IsImage(p string) bool {
	base := path.Base(filepath.ToSlash(p))
	if strings.HasPrefix(base, "._") {
		return false
	}
	return imageExts[strings.ToLower(path.Ext(base))]
}

// Resolve checks that inputPath exists and returns the frame directory for
// it, extracting archives first. When verbose, each extracted member is
// traced through log.
func Resolve(inputPath string, log Logger, verbose bool) (*Resolved, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, errs.Wrapf(err, errs.KindInputNotFound, "source.resolve",
			"Input path '%s' does not exist.", inputPath)
	}
	if !IsArchive(inputPath) {
		return &Resolved{dir: inputPath}, nil
	}
	return extract(inputPath, log, verbose)
}

// extract unpacks the image members of the archive at p into a new temp dir.
// Members are flattened to their base names, so nothing can be written
// outside the directory. A later member whose base name was already
// extracted is skipped with a warning.
func extract(p string, log Logger, verbose bool) (*Resolved, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, errs.Wrapf(err, errs.KindArchiveUnreadable, "source.extract",
			"Failed to read zip archive '%s'", p)
	}
	defer zr.Close()

	dir, err := os.MkdirTemp("", "aether-frames-")
	if err != nil {
		return nil, errs.Wrap(err, errs.KindInternal, "source.extract", "cannot create extraction directory")
	}
	res := &Resolved{dir: dir, archive: true}

	n := 0
	written := make(map[string]string)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsImage(f.Name) {
			continue
		}
		base := path.Base(filepath.ToSlash(f.Name))
		if first, dup := written[base]; dup {
			log.Warn("Skipping '%s': frame name '%s' already extracted from '%s'", f.Name, base, first)
			continue
		}
		dst := filepath.Join(dir, base)
		if err := extractFile(f, dst); err != nil {
			if cerr := res.Close(); cerr != nil {
				log.Warn("Failed to remove extraction directory %s: %v", dir, cerr)
			}
			return nil, errs.Wrapf(err, errs.KindArchiveUnreadable, "source.extract",
				"Failed to extract '%s' from zip archive", f.Name)
		}
		log.Debug(verbose, "Extracted %s", f.Name)
		written[base] = f.Name
		n++
	}

	if n == 0 {
		if cerr := res.Close(); cerr != nil {
			log.Warn("Failed to remove extraction directory %s: %v", dir, cerr)
		}
		return nil, errs.New(errs.KindNoFramesInArchive, "source.extract", "No image frames found in zip archive")
	}
	log.Debug(verbose, "Extracted %d frame(s) to %s", n, dir)
	return res, nil
}

func extractFile(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
