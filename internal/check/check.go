// Package check provides system diagnostics (--check mode) for ffmpeg, its
// libvpx and libx264 encoders, the palette filters, and ffprobe.
package check

import (
	"os/exec"
	"strings"

	"github.com/backmassage/aether-renderer/internal/config"
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// requiredEncoders are the video encoders each format needs.
var requiredEncoders = []struct {
	name   string
	format config.Format
}{
	{"libvpx", config.FormatWebM},
	{"libx264", config.FormatMP4},
}

// requiredFilters are the filters the GIF palette pipeline needs.
var requiredFilters = []string{"palettegen", "paletteuse"}

// RunCheck prints ffmpeg's version, the availability of every encoder and
// filter a format needs, and whether ffprobe is present. It returns true
// when ffmpeg itself was found. Individual missing pieces are reported but
// do not stop the check.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	if !checkFfmpeg(cfg.FFmpegPath, log) {
		return false
	}
	checkEncoders(cfg.FFmpegPath, log)
	checkFilters(cfg.FFmpegPath, log)
	checkFfprobe(cfg.FFprobePath, log)
	return true
}

// checkFfmpeg verifies ffmpeg resolves and logs its version string.
func checkFfmpeg(bin string, log Logger) bool {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("ffmpeg not found (%s)", bin)
		return false
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return true
	}
	log.Success("ffmpeg: %s", firstLine(string(out)))
	return true
}

// checkEncoders reports each required encoder from ffmpeg -encoders.
func checkEncoders(bin string, log Logger) {
	out, err := exec.Command(bin, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	names := listedNames(string(out))
	for _, enc := range requiredEncoders {
		if names[enc.name] {
			log.Success("Encoder %s available (%s)", enc.name, enc.format)
		} else {
			log.Error("Encoder %s missing: %s output will fail", enc.name, enc.format)
		}
	}
}

// checkFilters reports the palette filters from ffmpeg -filters.
func checkFilters(bin string, log Logger) {
	out, err := exec.Command(bin, "-hide_banner", "-filters").Output()
	if err != nil {
		log.Warn("Could not list filters: %v", err)
		return
	}
	names := listedNames(string(out))
	for _, f := range requiredFilters {
		if names[f] {
			log.Success("Filter %s available (gif)", f)
		} else {
			log.Error("Filter %s missing: gif output will fail", f)
		}
	}
}

// checkFfprobe reports whether output inspection is possible.
func checkFfprobe(bin string, log Logger) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Warn("ffprobe not found: verbose output inspection disabled")
		return
	}
	log.Success("ffprobe available")
}

// --- internal helpers ---

// listedNames returns the second column of ffmpeg's -encoders / -filters
// tables, e.g. " V....D libvpx  libvpx VP8" yields "libvpx".
func listedNames(out string) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			names[fields[1]] = true
		}
	}
	return names
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}
