package cliputil

// CalculateClipBounds returns the start and end times for a clip requested on
// the command line. A zero or negative end means "to the end of the video".
// Both values are clamped to [0, videoDuration].
func CalculateClipBounds(clipStart, clipEnd, videoDuration float64) (start, end float64) {
	start = clipStart
	end = clipEnd
	if end <= 0 {
		end = videoDuration
	}

	// Clamp to valid range
	if start < 0 {
		start = 0
	}
	if start > videoDuration {
		start = videoDuration
	}
	if end > videoDuration {
		end = videoDuration
	}

	return start, end
}
