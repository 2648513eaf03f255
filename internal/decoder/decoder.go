// Package decoder turns a WAV file on disk into an in-memory interleaved
// f32 stereo buffer, the external "decoder collaborator" of spec.md
// Section 6. It is grounded on the teacher's own WAV-reading code
// (internal/getbpm/getbpm.go's Length, which walks the same
// go-audio/wav Decoder fields), extended here to actually pull the PCM
// samples rather than just measure duration.
package decoder

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/schollz/photon/internal/photonerr"
	"github.com/schollz/photon/internal/sample"
)

const (
	// RequiredChannels is the only channel count this player accepts,
	// per spec.md Section 6 ("The core rejects any other (channels,
	// sample_rate)").
	RequiredChannels = 2
	// RequiredSampleRate is the only sample rate this player accepts.
	RequiredSampleRate = 44100
)

// DecodeFile decodes a 16/24/32-bit PCM stereo 44.1kHz WAV file into a
// sample.Store. Any other channel count or sample rate is rejected with
// a *photonerr.SetupError, matching spec.md Section 6's decoder
// contract.
func DecodeFile(path string) (*sample.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, photonerr.NewSetupError(fmt.Sprintf("open %s: %v", path, err))
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, photonerr.NewSetupError(fmt.Sprintf("%s is not a valid WAV file", path))
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, &photonerr.DecodeProgressError{FramesDecoded: 0, Cause: err}
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	if channels != RequiredChannels || sampleRate != RequiredSampleRate {
		return nil, photonerr.NewSetupError(fmt.Sprintf(
			"%s is %d channel(s) at %d Hz; photon requires %d channel(s) at %d Hz",
			path, channels, sampleRate, RequiredChannels, RequiredSampleRate))
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	maxAmplitude := float32(int64(1) << uint(bitDepth-1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / maxAmplitude
	}

	store, err := sample.New(samples, channels, sampleRate)
	if err != nil {
		return nil, photonerr.NewSetupError(err.Error())
	}
	return store, nil
}
