package config

// This file binds the inline CLI flags. Values are captured into a Flags
// struct and copied onto a Config only when the user actually set them, so
// defaults (or a loaded config file) hold unless overridden.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds raw flag values captured during parsing.
type Flags struct {
	ConfigPath string

	input         string
	output        string
	filePattern   string
	fps           int
	format        string
	fadeIn        float64
	fadeOut       float64
	bitrate       string
	crf           int
	open          bool
	preview       int
	verbose       bool
	verboseFFmpeg bool
	ffmpegPath    string
	logFile       string
	forceColor    bool
	noColor       bool
	check         bool
}

// BindFlags registers every render flag on fs and returns the value holder
// to pass to [Flags.Apply] after parsing.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	def := DefaultConfig()

	fs.StringVar(&f.ConfigPath, "config", "", "Load render settings from a JSON file")

	// Render inputs.
	fs.StringVarP(&f.input, "input", "i", "", "Folder or .zip archive containing frames")
	fs.StringVarP(&f.output, "output", "o", "", "Output file path")
	fs.StringVar(&f.filePattern, "file-pattern", "", "Glob selecting frame files (default \"*.png\")")

	// Timing and format.
	fs.IntVarP(&f.fps, "fps", "f", def.FPS, "Frames per second")
	fs.StringVarP(&f.format, "format", "t", string(def.Format), "Output format: webm | mp4 | gif")
	fs.Float64Var(&f.fadeIn, "fade-in", 0, "Fade-in duration in seconds")
	fs.Float64Var(&f.fadeOut, "fade-out", 0, "Fade-out duration in seconds")
	fs.StringVar(&f.bitrate, "bitrate", "", "Target video bitrate (e.g. 2M)")
	fs.IntVar(&f.crf, "crf", 0, "Constant rate factor (quality)")

	// Behavior.
	fs.BoolVar(&f.open, "open", false, "Open the rendered file in the default viewer")
	fs.IntVar(&f.preview, "preview", PreviewMiddle, "Extract a single frame as .png instead of rendering (optional index, default middle)")
	fs.Lookup("preview").NoOptDefVal = strconv.Itoa(PreviewMiddle)
	fs.StringVar(&f.ffmpegPath, "ffmpeg", def.FFmpegPath, "ffmpeg binary to invoke")

	// Display and utility.
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.verboseFFmpeg, "verbose-ffmpeg", false, "Show ffmpeg's own output")
	fs.BoolVar(&f.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&f.logFile, "log", "l", "", "Append logs to file")
	fs.BoolVarP(&f.check, "check", "c", false, "Check ffmpeg availability and exit")

	return f
}

// Apply copies every flag the user set onto cfg. args are the positional
// arguments left after parsing; the only one accepted is a bare preview
// index directly following --preview (e.g. "--preview 3").
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config, args []string) error {
	set := fs.Changed

	if set("input") {
		cfg.Input = f.input
	}
	if set("output") {
		cfg.Output = f.output
	}
	if set("file-pattern") {
		cfg.FilePattern = f.filePattern
	}
	if set("fps") {
		cfg.FPS = f.fps
	}
	if set("format") {
		cfg.Format = Format(strings.ToLower(f.format))
	}
	if set("fade-in") {
		cfg.FadeIn = f.fadeIn
	}
	if set("fade-out") {
		cfg.FadeOut = f.fadeOut
	}
	if set("bitrate") {
		cfg.Bitrate = f.bitrate
	}
	if set("crf") {
		crf := f.crf
		cfg.CRF = &crf
	}
	if set("open") {
		cfg.Open = f.open
	}
	if set("ffmpeg") {
		cfg.FFmpegPath = f.ffmpegPath
	}
	if set("verbose") {
		cfg.Verbose = f.verbose
	}
	if set("verbose-ffmpeg") {
		cfg.VerboseFFmpeg = f.verboseFFmpeg
	}
	if set("log") {
		cfg.LogFile = f.logFile
	}
	if set("check") {
		cfg.CheckOnly = f.check
	}
	if f.noColor {
		cfg.ColorMode = ColorNever
	} else if f.forceColor {
		cfg.ColorMode = ColorAlways
	}

	if set("preview") {
		idx := f.preview
		if idx == PreviewMiddle && len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("preview index must be a non-negative whole number (got %q)", args[0])
			}
			idx = n
			args = nil
		}
		cfg.Preview = &idx
	}
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	return nil
}

// HasInline reports whether both --input and --output were given, which is
// what inline mode requires when --config is absent.
func (f *Flags) HasInline(fs *pflag.FlagSet) bool {
	return fs.Changed("input") && fs.Changed("output")
}
