package decoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, channels, sampleRate, bitDepth int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestDecodeFileAcceptsStereo441(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.wav")
	writeWAV(t, path, 2, 44100, 16, []int{1000, -1000, 2000, -2000})

	store, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Channels())
	assert.Equal(t, 44100, store.SampleRate())
	assert.Equal(t, 2, store.FrameCount())

	l, r, ok := store.Frame(0)
	assert.True(t, ok)
	assert.InDelta(t, 1000.0/32768.0, l, 1e-4)
	assert.InDelta(t, -1000.0/32768.0, r, 1e-4)
}

func TestDecodeFileRejectsMono(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mono.wav")
	writeWAV(t, path, 1, 44100, 16, []int{1000, 2000})

	_, err := DecodeFile(path)
	assert.Error(t, err)
}

func TestDecodeFileRejectsWrongSampleRate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slow.wav")
	writeWAV(t, path, 2, 22050, 16, []int{1000, -1000})

	_, err := DecodeFile(path)
	assert.Error(t, err)
}

func TestDecodeFileRejectsMissingFile(t *testing.T) {
	_, err := DecodeFile("/nonexistent/path/track.wav")
	assert.Error(t, err)
}
