package capture

import "strings"

// Format is a recording container with optional explicit codecs.
type Format struct {
	Container string
	Video     string
	Audio     string
	Extension string
}

// DefaultFormats is the negotiation order, most preferred first. The last
// entry names only the container and leaves codec choice to the encoder.
var DefaultFormats = []Format{
	{Container: "webm", Video: "vp9", Audio: "opus", Extension: "webm"},
	{Container: "webm", Video: "vp8", Audio: "opus", Extension: "webm"},
	{Container: "webm", Extension: "webm"},
}

// MIME returns the format as a media type, e.g. "video/webm; codecs=vp9,opus".
func (f Format) MIME() string {
	base := "video/" + f.Container
	var codecs []string
	if f.Video != "" {
		codecs = append(codecs, f.Video)
	}
	if f.Audio != "" {
		codecs = append(codecs, f.Audio)
	}
	if len(codecs) == 0 {
		return base
	}
	return base + "; codecs=" + strings.Join(codecs, ",")
}

// ContainerOnly reports whether the format leaves codecs to the encoder.
func (f Format) ContainerOnly() bool {
	return f.Video == "" && f.Audio == ""
}

func (f Format) String() string {
	return f.MIME()
}

// Negotiate returns the first candidate the supported func accepts, in order.
func Negotiate(candidates []Format, supported func(Format) bool) (Format, bool) {
	for _, f := range candidates {
		if supported(f) {
			return f, true
		}
	}
	return Format{}, false
}
