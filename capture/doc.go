// Package capture records a clip by replaying a loaded source over a chosen
// range and recording the player's live output.
//
// The engine drives a Player to the range start, captures the stream it is
// playing, records that stream through an Encoder-supplied Recorder, and stops
// recording once a per-frame poll sees the playhead reach the range end. The
// host bindings (mpv, ffmpeg, timers) sit behind the interfaces in this package
// so the state machine can be exercised with fakes.
package capture
