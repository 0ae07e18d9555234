package pipeline

import (
	"fmt"
	"time"

	"github.com/backmassage/aether-renderer/internal/display"
)

// RenderStats summarizes a finished render for the completion log line.
type RenderStats struct {
	Frames      int
	Elapsed     time.Duration
	OutputBytes int64
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d frame(s) in %s (%s)",
		s.Frames, display.FormatDuration(s.Elapsed), display.FormatBytes(s.OutputBytes))
}
