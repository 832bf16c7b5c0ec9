package capture

import "time"

// DefaultFrameRate is the poll rate used when no display refresh rate is configured.
const DefaultFrameRate = 60.0

// TickerFrames schedules frame callbacks at a fixed refresh interval.
type TickerFrames struct {
	Interval time.Duration
}

// NewTickerFrames returns a scheduler firing rate times per second.
// A non-positive rate falls back to DefaultFrameRate.
func NewTickerFrames(rate float64) *TickerFrames {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &TickerFrames{Interval: time.Duration(float64(time.Second) / rate)}
}

// RequestFrame runs fn once after one frame interval.
func (f *TickerFrames) RequestFrame(fn func()) FrameHandle {
	return timerHandle{time.AfterFunc(f.Interval, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() {
	h.t.Stop()
}
