package retrigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/photon/internal/sample"
)

func TestNewParameters(t *testing.T) {
	t.Run("derives repeat window", func(t *testing.T) {
		// 60 BPM whole-note-over-8 at 8 Hz: 60/60*4/8 = 0.5s -> 4 frames at 8Hz.
		p := NewParameters(2, 0.5, 8, 1.0)
		assert.Equal(t, 2, p.RepeatStart)
		assert.Equal(t, 4, p.RepeatSamples)
		assert.Equal(t, 6, p.RepeatEnd)
		assert.Equal(t, 1, p.FadeThreshold)
		assert.Equal(t, float32(1.0), p.MixFactor)
	})

	t.Run("degenerate duration clamps to 1 frame", func(t *testing.T) {
		p := NewParameters(0, 0, 44100, 0.5)
		assert.Equal(t, 1, p.RepeatSamples)
		assert.Equal(t, 1, p.FadeThreshold)
	})

	t.Run("mix factor clamped to [0,1]", func(t *testing.T) {
		p := NewParameters(0, 1, 44100, 2.0)
		assert.Equal(t, float32(1.0), p.MixFactor)
		p = NewParameters(0, 1, 44100, -1.0)
		assert.Equal(t, float32(0.0), p.MixFactor)
	})
}

func newTestStore(t *testing.T) *sample.Store {
	t.Helper()
	// 8 frames: (0,0) (1,1) (2,2) (3,3) (4,4) (5,5) (6,6) (7,7)
	samples := make([]float32, 16)
	for i := 0; i < 8; i++ {
		samples[2*i] = float32(i)
		samples[2*i+1] = float32(i)
	}
	store, err := sample.New(samples, 2, 8)
	require.NoError(t, err)
	return store
}

// TestAnchorsAtPlayhead is scenario S3 from spec.md.
func TestAnchorsAtPlayhead(t *testing.T) {
	store := newTestStore(t)
	r := New(store)

	params := NewParameters(2, 0.5, 8, 1.0)
	r.Activate(params)

	buffer := make([]float32, 8) // 4 frames
	r.Process(2, buffer)

	// mix_factor = 1.0 so dry contribution is zero; wet comes from
	// frames 2,3,4,5 of the store, each scaled by the fade ramp.
	for i := 0; i < 4; i++ {
		frame := 2 + i
		fade := params.fadeFactor(frame)
		expected := fade * float32(frame)
		assert.InDelta(t, expected, buffer[2*i], 1e-5)
		assert.InDelta(t, expected, buffer[2*i+1], 1e-5)
	}
}

// TestWraps is scenario S4 from spec.md: continuing S3, render 8 more
// frames; the cursor must wrap within [repeat_start, repeat_end).
func TestWraps(t *testing.T) {
	store := newTestStore(t)
	r := New(store)

	params := NewParameters(2, 0.5, 8, 1.0)
	r.Activate(params)

	first := make([]float32, 8)
	r.Process(2, first)

	second := make([]float32, 16) // 8 frames
	r.Process(6, second)

	for i := 0; i < 8; i++ {
		wrapped := 2 + (i % 4)
		fade := params.fadeFactor(wrapped)
		expected := fade * float32(wrapped)
		assert.InDelta(t, expected, second[2*i], 1e-5)
		if fade == 1.0 {
			assert.InDelta(t, float32(wrapped), second[2*i], 1e-6)
		}
	}
}

// TestCommandReplaceReAnchorsCursor is scenario S6 from spec.md.
func TestCommandReplaceReAnchorsCursor(t *testing.T) {
	store := newTestStore(t)
	r := New(store)

	r.Activate(NewParameters(0, 0.5, 8, 1.0))
	buffer := make([]float32, 8)
	r.Process(0, buffer)
	assert.NotEqual(t, 0, r.Cursor())

	// Replace parameters, re-anchoring at a new playhead.
	r.Activate(NewParameters(3, 0.25, 8, 1.0))
	assert.Equal(t, 3, r.Cursor())

	buffer2 := make([]float32, 8)
	r.Process(3, buffer2)
	assert.NotEqual(t, 3, r.Cursor()) // cursor advanced from the new anchor
}

func TestFadeFactorMonotonic(t *testing.T) {
	p := NewParameters(0, 100.0/8.0, 8, 1.0) // repeat_samples=100, fade_threshold=25
	require.Equal(t, 25, p.FadeThreshold)

	var prev float32 = -1
	for i := 0; i < p.FadeThreshold; i++ {
		f := p.fadeFactor(i)
		assert.GreaterOrEqual(t, f, prev)
		prev = f
	}
	for i := p.FadeThreshold; i <= p.RepeatEnd-p.FadeThreshold; i++ {
		assert.Equal(t, float32(1.0), p.fadeFactor(i))
	}
	prev = 2
	for i := p.RepeatEnd - p.FadeThreshold + 1; i < p.RepeatEnd; i++ {
		f := p.fadeFactor(i)
		assert.LessOrEqual(t, f, prev)
		prev = f
	}
}

func TestProcessInactiveIsNoOp(t *testing.T) {
	store := newTestStore(t)
	r := New(store)
	buffer := []float32{9, 9, 9, 9}
	r.Process(0, buffer)
	assert.Equal(t, []float32{9, 9, 9, 9}, buffer)
}

func TestSamplesPastEndAreSilent(t *testing.T) {
	samples := make([]float32, 4) // 2 frames only
	for i := range samples {
		samples[i] = 1.0
	}
	store, err := sample.New(samples, 2, 8)
	require.NoError(t, err)
	r := New(store)
	r.Activate(NewParameters(0, 1, 8, 0.0)) // mix=0 -> pure dry
	buffer := make([]float32, 8)            // 4 frames, track index runs past end
	r.Process(0, buffer)
	assert.Equal(t, float32(1.0), buffer[0])
	assert.Equal(t, float32(1.0), buffer[2])
	assert.Equal(t, float32(0.0), buffer[4])
	assert.Equal(t, float32(0.0), buffer[6])
}
