// Package selection holds the clip range chosen over a loaded source.
package selection

// Step is the granularity of the range handles in seconds. A handle pushed
// onto or past the opposite one is clamped to stay one Step away from it.
const Step = 0.01

// Range is a [Start, End) window over a source of the given Duration.
// The setters keep 0 <= Start < End <= Duration whenever Duration > 0.
type Range struct {
	Start    float64
	End      float64
	Duration float64
}

// New returns the default range covering the whole source.
func New(duration float64) Range {
	if duration < 0 {
		duration = 0
	}
	return Range{Start: 0, End: duration, Duration: duration}
}

// SetStart moves the start handle. Values at or past End are clamped to End-Step.
func (r *Range) SetStart(v float64) {
	v = r.clamp(v)
	if v < r.End {
		r.Start = v
		return
	}
	r.Start = r.End - Step
	if r.Start < 0 {
		r.Start = 0
	}
}

// SetEnd moves the end handle. Values at or before Start are clamped to Start+Step.
func (r *Range) SetEnd(v float64) {
	v = r.clamp(v)
	if v > r.Start {
		r.End = v
		return
	}
	r.End = r.Start + Step
	if r.End > r.Duration {
		r.End = r.Duration
	}
}

// NudgeStart moves the start handle by delta seconds.
func (r *Range) NudgeStart(delta float64) {
	r.SetStart(r.Start + delta)
}

// NudgeEnd moves the end handle by delta seconds.
func (r *Range) NudgeEnd(delta float64) {
	r.SetEnd(r.End + delta)
}

// Length returns the selected duration in seconds.
func (r Range) Length() float64 {
	return r.End - r.Start
}

// Valid reports whether the range selects a non-empty window.
func (r Range) Valid() bool {
	return r.Start >= 0 && r.Start < r.End && (r.Duration == 0 || r.End <= r.Duration)
}

// WidthPercent is the selected region's share of the whole source.
func (r Range) WidthPercent() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return 100 * (r.End - r.Start) / r.Duration
}

// OffsetPercent is where the selected region begins, as a share of the source.
func (r Range) OffsetPercent() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return 100 * r.Start / r.Duration
}

func (r Range) clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > r.Duration {
		return r.Duration
	}
	return v
}
