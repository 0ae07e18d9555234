package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// spinnerTick is the spinner redraw interval.
const spinnerTick = 120 * time.Millisecond

// spinner is an indeterminate progress indicator shown while ffmpeg runs.
// It holds no render state.
type spinner struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

func startSpinner(w io.Writer, desc string) *spinner {
	s := &spinner{
		w: w,
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(desc),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionSetRenderBlankState(true),
		),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = s.bar.Add(1)
		case <-s.stop:
			return
		}
	}
}

// Stop halts the ticker goroutine and finishes the bar. It returns only
// after the goroutine has exited.
func (s *spinner) Stop() {
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	fmt.Fprintln(s.w)
}
