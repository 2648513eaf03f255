// Package sample holds the immutable, shared stereo sample buffer that
// backs playback, Retrigger, and TranceGate.
package sample

import "fmt"

// Store is an immutable, interleaved stereo f32 buffer decoded once from
// a track file. It is safe to share across goroutines because nothing
// ever mutates it after construction.
type Store struct {
	samples    []float32
	channels   int
	sampleRate int
}

// New validates and wraps a decoded interleaved sample buffer. samples
// must have an even length (full L,R frames); channels is expected to
// be 2 and sampleRate 44100 for this player, but only evenness of
// samples is enforced here — the decoder collaborator rejects anything
// else before it reaches Store.
func New(samples []float32, channels, sampleRate int) (*Store, error) {
	if len(samples)%2 != 0 {
		return nil, fmt.Errorf("sample: buffer length %d is not an even number of frames", len(samples))
	}
	return &Store{
		samples:    samples,
		channels:   channels,
		sampleRate: sampleRate,
	}, nil
}

// FrameCount returns the number of stereo frames in the store.
func (s *Store) FrameCount() int {
	return len(s.samples) / 2
}

// Channels reports the channel count (always 2 in this player).
func (s *Store) Channels() int {
	return s.channels
}

// SampleRate reports the track's sample rate in Hz.
func (s *Store) SampleRate() int {
	return s.sampleRate
}

// Frame returns the left/right samples at frame index i. ok is false
// when i is out of range, in which case l and r are both zero; callers
// (the DSP units) substitute silence rather than treating this as an
// error.
func (s *Store) Frame(i int) (l, r float32, ok bool) {
	if i < 0 || i >= s.FrameCount() {
		return 0, 0, false
	}
	return s.samples[2*i], s.samples[2*i+1], true
}
