package planner

import (
	"strconv"
	"strings"
)

// FadeWindow holds the timing inputs of the fade filters.
type FadeWindow struct {
	Frames  int
	FPS     int
	FadeIn  float64
	FadeOut float64
}

// NewFadeWindow returns the fade window for a clip of frames images at fps.
func NewFadeWindow(frames, fps int, fadeIn, fadeOut float64) FadeWindow {
	return FadeWindow{Frames: frames, FPS: fps, FadeIn: fadeIn, FadeOut: fadeOut}
}

// Duration is the clip length in seconds.
func (w FadeWindow) Duration() float64 {
	if w.FPS <= 0 {
		return 0
	}
	return float64(w.Frames) / float64(w.FPS)
}

// OutStart is when the fade-out begins, clamped so it never precedes 0.
func (w FadeWindow) OutStart() float64 {
	return max(0, w.Duration()-w.FadeOut)
}

// Filter returns the comma-joined fade clauses, or "" when both fades are
// zero. Fades longer than the clip are not rejected.
func (w FadeWindow) Filter() string {
	var filters []string
	if w.FadeIn > 0 {
		filters = append(filters, "fade=t=in:st=0:d="+formatSeconds(w.FadeIn))
	}
	if w.FadeOut > 0 {
		filters = append(filters, "fade=t=out:st="+formatSeconds(w.OutStart())+":d="+formatSeconds(w.FadeOut))
	}
	return strings.Join(filters, ",")
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
