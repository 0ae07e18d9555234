// Package report holds the result of one render call.
package report

import (
	"strconv"
	"strings"
)

// Report describes a finished render. It is immutable after New.
type Report struct {
	output   string
	frames   *int
	warnings []string
	preview  bool
	notes    string
}

// New builds a report. frames is nil when the count is unknown; notes may
// be empty.
func New(output string, frames *int, warnings []string, preview bool, notes string) *Report {
	r := &Report{output: output, preview: preview, notes: notes}
	if frames != nil {
		n := *frames
		r.frames = &n
	}
	r.warnings = append([]string(nil), warnings...)
	return r
}

// Output is the path of the rendered file.
func (r *Report) Output() string { return r.output }

// Frames returns the rendered frame count and whether it is known.
func (r *Report) Frames() (int, bool) {
	if r.frames == nil {
		return 0, false
	}
	return *r.frames, true
}

// Warnings returns a copy of the classified encoder warnings.
func (r *Report) Warnings() []string { return append([]string(nil), r.warnings...) }

// Preview reports whether this was a single-frame preview.
func (r *Report) Preview() bool { return r.preview }

// Notes returns the free-form note, or "".
func (r *Report) Notes() string { return r.notes }

// Summary formats the report for the terminal, one fact per line.
func (r *Report) Summary() string {
	var b strings.Builder
	b.WriteString("Rendered to: " + r.output + "\n")

	if n, ok := r.Frames(); ok {
		b.WriteString("Frames rendered: " + strconv.Itoa(n) + "\n")
	} else {
		b.WriteString("Frames rendered: Unknown\n")
	}

	if len(r.warnings) > 0 {
		b.WriteString("FFmpeg Warnings:\n")
		for _, w := range r.warnings {
			b.WriteString("- " + w + "\n")
		}
	}

	if r.preview {
		b.WriteString("Preview mode enabled.\n")
	}

	if r.notes != "" {
		b.WriteString("Notes: " + r.notes + "\n")
	}
	return b.String()
}

// JoinNotes joins non-empty notes with "; ".
func JoinNotes(notes ...string) string {
	var kept []string
	for _, n := range notes {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, "; ")
}
