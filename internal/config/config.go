// Package config holds the render configuration: defaults, JSON loading,
// CLI flag binding, and validation. Defaults match the documented contract
// (fps 30, format webm, no fades, pattern *.png).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/backmassage/aether-renderer/internal/errs"
)

// --- Enum types for validated string fields ---

// Format is the output format tag.
type Format string

const (
	FormatWebM Format = "webm" // VP8 with alpha (default).
	FormatMP4  Format = "mp4"  // H.264, no alpha.
	FormatGIF  Format = "gif"  // Animated image via the two-pass palette pipeline.
)

// Extension returns the canonical file extension (with dot) for f.
func (f Format) Extension() string {
	return "." + string(f)
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

const (
	// DefaultPattern selects frames when no file_pattern is given.
	DefaultPattern = "*.png"
	// PreviewMiddle requests the middle frame of the set.
	PreviewMiddle = -1
)

// DiagnosticRule adds a trigger phrase to the encoder diagnostics table.
type DiagnosticRule struct {
	Trigger string `json:"trigger"`
	Message string `json:"message"`
}

// Config is one render request. JSON field names follow the config file
// contract; fields tagged "-" are CLI-only.
type Config struct {
	// Paths.
	Input  string `json:"input"`
	Output string `json:"output"`

	// Timing and format.
	FPS     int     `json:"fps"`      // Default: 30.
	Format  Format  `json:"format"`   // Default: "webm".
	FadeIn  float64 `json:"fade_in"`  // Seconds, default 0.
	FadeOut float64 `json:"fade_out"` // Seconds, default 0.

	// Encoder quality. Empty Bitrate and nil CRF leave the encoder defaults.
	Bitrate string `json:"bitrate,omitempty"`
	CRF     *int   `json:"crf,omitempty"`

	// Frame selection. Empty means DefaultPattern.
	FilePattern string `json:"file_pattern,omitempty"`

	// Preview selects single-frame mode when non-nil. A negative index
	// selects the middle frame.
	Preview *int `json:"preview,omitempty"`

	// Behavior flags.
	Open          bool `json:"open"`
	Verbose       bool `json:"verbose"`
	VerboseFFmpeg bool `json:"verbose_ffmpeg"`

	// Extra diagnostics appended to the default table.
	Diagnostics []DiagnosticRule `json:"diagnostics,omitempty"`

	// External tools.
	FFmpegPath  string `json:"ffmpeg_path,omitempty"`  // Default: "ffmpeg".
	FFprobePath string `json:"ffprobe_path,omitempty"` // Default: "ffprobe".

	// Display and logging.
	LogFile   string    `json:"log_file,omitempty"`
	ColorMode ColorMode `json:"-"`
	CheckOnly bool      `json:"-"`
}

// DefaultConfig returns a Config with every optional field at its default.
func DefaultConfig() Config {
	return Config{
		FPS:         30,
		Format:      FormatWebM,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		ColorMode:   ColorAuto,
	}
}

// LoadFile reads a JSON config from path on top of [DefaultConfig], so
// omitted optional fields keep their defaults. Both input and output are
// required.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.Wrapf(err, errs.KindConfigParse, "config.load", "Config file '%s' not found.", path)
	}
	return Parse(data)
}

// Parse decodes JSON config data on top of [DefaultConfig].
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errs.Wrap(err, errs.KindConfigParse, "config.parse", "failed to parse config")
	}
	if strings.TrimSpace(cfg.Input) == "" {
		return Config{}, errs.New(errs.KindConfigParse, "config.parse", `config is missing required field "input"`)
	}
	if !hasField(data, "output") {
		return Config{}, errs.New(errs.KindConfigParse, "config.parse", `config is missing required field "output"`)
	}
	cfg.Format = Format(strings.ToLower(string(cfg.Format)))
	return cfg, nil
}

// hasField reports whether the top-level JSON object has key. An empty
// output string is a validation failure, not a parse failure, so presence is
// checked separately from the decoded value.
func hasField(data []byte, key string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}

// ParseFormat returns the Format for s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatWebM, FormatMP4, FormatGIF:
		return f, nil
	default:
		return "", errs.Newf(errs.KindUnsupportedFormat, "config.format",
			"Unsupported format: %s. Use 'webm', 'mp4' or 'gif'.", s)
	}
}

// Validate checks the output path, format and numeric ranges, in that
// order. Input existence is left to the resolver. In CheckOnly mode only
// the tool paths are required.
func (c *Config) Validate() error {
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
	if c.CheckOnly {
		return nil
	}

	if strings.TrimSpace(c.Output) == "" {
		return errs.New(errs.KindOutputPathInvalid, "config.validate", "Output path cannot be empty.")
	}

	f, err := ParseFormat(string(c.Format))
	if err != nil {
		return err
	}
	c.Format = f

	if c.FPS <= 0 {
		return errs.Newf(errs.KindConfigParse, "config.validate", "fps must be a positive integer (got %d)", c.FPS)
	}
	if c.FadeIn < 0 || c.FadeOut < 0 {
		return errs.Newf(errs.KindConfigParse, "config.validate",
			"fade durations must not be negative (fade_in=%g, fade_out=%g)", c.FadeIn, c.FadeOut)
	}
	if c.CRF != nil && *c.CRF < 0 {
		return errs.Newf(errs.KindConfigParse, "config.validate", "crf must not be negative (got %d)", *c.CRF)
	}
	for i, r := range c.Diagnostics {
		if strings.TrimSpace(r.Trigger) == "" || strings.TrimSpace(r.Message) == "" {
			return errs.Newf(errs.KindConfigParse, "config.validate",
				"diagnostics[%d] needs both trigger and message", i)
		}
	}
	if strings.TrimSpace(c.Input) == "" {
		return errs.New(errs.KindConfigParse, "config.validate", "input path is required")
	}
	return nil
}

// Pattern returns the frame glob, falling back to [DefaultPattern].
func (c *Config) Pattern() string {
	if c.FilePattern == "" {
		return DefaultPattern
	}
	return c.FilePattern
}

// IsPreview reports whether single-frame preview mode is requested.
func (c *Config) IsPreview() bool {
	return c.Preview != nil
}

// PreviewIndex returns the requested preview frame index and whether one
// was given explicitly. ok is false for the middle-frame default.
func (c *Config) PreviewIndex() (idx int, ok bool) {
	if c.Preview == nil || *c.Preview < 0 {
		return 0, false
	}
	return *c.Preview, true
}

// String renders a short description used in verbose logs.
func (c *Config) String() string {
	return fmt.Sprintf("%s -> %s (%s, %d fps, pattern %s)", c.Input, c.Output, c.Format, c.FPS, c.Pattern())
}
