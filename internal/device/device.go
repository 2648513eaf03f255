// Package device adapts an engine.Engine to a real audio output device
// via PortAudio, the "audio device collaborator" of spec.md Section 6.
// It is grounded on the corpus's own use of gordonklaus/portaudio as a
// callback-driven host (other_examples' rayboyd-audio-engine) and
// mirrors the original source's cpal stream-closure shape
// (core/playback.rs): open a stream, hand it a callback, Start/Stop it
// from outside, tear it down on exit.
package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/schollz/photon/internal/engine"
	"github.com/schollz/photon/internal/photonerr"
)

// Device owns a PortAudio output stream driven by an engine.Engine's
// Process callback.
type Device struct {
	stream *portaudio.Stream
}

// Open initializes PortAudio and opens a default stereo output stream
// at sampleRate, wiring e.Process as the stream callback. The stream is
// opened but not started; call Start to begin audio output.
func Open(e *engine.Engine, sampleRate int) (*Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, photonerr.NewSetupError(fmt.Sprintf("portaudio init: %v", err))
	}

	stream, err := portaudio.OpenDefaultStream(0, engine.OutputChannels, float64(sampleRate), 0, func(out []float32) {
		e.Process(out)
	})
	if err != nil {
		_ = portaudio.Terminate()
		return nil, photonerr.NewSetupError(fmt.Sprintf("no default output device: %v", err))
	}

	return &Device{stream: stream}, nil
}

// Start begins invoking the engine's Process callback at the device's
// chosen interval.
func (d *Device) Start() error {
	return d.stream.Start()
}

// Stop halts the callback without releasing the stream.
func (d *Device) Stop() error {
	return d.stream.Stop()
}

// Close releases the stream and terminates PortAudio. Call once, on
// application exit.
func (d *Device) Close() error {
	err := d.stream.Close()
	if termErr := portaudio.Terminate(); err == nil {
		err = termErr
	}
	return err
}
