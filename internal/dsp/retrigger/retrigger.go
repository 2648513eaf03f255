// Package retrigger implements the beat-synchronous sample-repetition
// ("stutter") DSP unit.
package retrigger

import (
	"math"

	"github.com/schollz/photon/internal/sample"
)

// Parameters are the immutable, precomputed values that drive one
// activation of Retrigger. They are derived once, at the instant the
// effect is turned on, and never recomputed for the lifetime of that
// activation.
type Parameters struct {
	// RepeatStart is the frame index the repetition loop begins at;
	// it is the Engine's playhead at the instant the effect activated.
	RepeatStart int
	// RepeatEnd is the frame index the repetition loop resets to
	// RepeatStart at. RepeatEnd = RepeatStart + RepeatSamples.
	RepeatEnd int
	// RepeatSamples is the length, in frames, of one repetition.
	RepeatSamples int
	// FadeThreshold is the width, in frames, of the linear ramp at
	// both ends of one repetition.
	FadeThreshold int
	// MixFactor is the wet/dry weight in [0,1]; the dry track is
	// weighted 1-MixFactor.
	MixFactor float32
}

// NewParameters derives RetriggerParameters from a repeat duration in
// seconds, as requested by a RetriggerOn command. repeatStart is the
// Engine's playhead at activation time.
//
// repeatSamples is clamped to at least 1 frame (spec's
// ParameterDegenerate handling: a duration that rounds to less than
// one frame never produces a zero-length or negative loop).
func NewParameters(repeatStart int, repeatDurationSeconds float64, sampleRate int, mixFactor float32) Parameters {
	repeatSamples := int(math.Round(repeatDurationSeconds * float64(sampleRate)))
	if repeatSamples < 1 {
		repeatSamples = 1
	}

	fadeThreshold := repeatSamples / 4
	if fadeThreshold > 441 {
		fadeThreshold = 441
	}
	if fadeThreshold < 1 {
		fadeThreshold = 1
	}

	if mixFactor < 0 {
		mixFactor = 0
	}
	if mixFactor > 1 {
		mixFactor = 1
	}

	return Parameters{
		RepeatStart:   repeatStart,
		RepeatEnd:     repeatStart + repeatSamples,
		RepeatSamples: repeatSamples,
		FadeThreshold: fadeThreshold,
		MixFactor:     mixFactor,
	}
}

// fadeFactor computes the linear attack/release ramp for a cursor
// position within [RepeatStart, RepeatEnd).
func (p Parameters) fadeFactor(cursor int) float32 {
	fade := p.FadeThreshold
	until := p.RepeatStart + fade
	after := p.RepeatEnd - fade
	switch {
	case cursor < until:
		return float32(fade-(until-cursor)+1) / float32(fade)
	case cursor > after:
		return float32(fade-(cursor-after)+1) / float32(fade)
	default:
		return 1.0
	}
}

// Retrigger repeats a short captured window of a sample.Store while
// active, fading the repetition seam and mixing against the dry track.
type Retrigger struct {
	samples *sample.Store

	active bool
	params Parameters
	cursor int
}

// New creates a Retrigger bound to a shared, read-only sample.Store.
// It starts inactive.
func New(samples *sample.Store) *Retrigger {
	return &Retrigger{samples: samples}
}

// Activate turns the effect on (or re-anchors it if already on),
// capturing params.RepeatStart as the new cursor. Called only from the
// audio thread.
func (r *Retrigger) Activate(params Parameters) {
	r.params = params
	r.cursor = params.RepeatStart
	r.active = true
}

// Deactivate turns the effect off.
func (r *Retrigger) Deactivate() {
	r.active = false
	r.cursor = 0
	r.params = Parameters{}
}

// Active reports whether the effect is currently on.
func (r *Retrigger) Active() bool {
	return r.active
}

// Cursor returns the current repetition cursor; only meaningful while
// Active.
func (r *Retrigger) Cursor() int {
	return r.cursor
}

// Params returns the parameters of the current activation; only
// meaningful while Active.
func (r *Retrigger) Params() Parameters {
	return r.params
}

// Process overwrites buffer, frame by frame, with wet+dry when active.
// It is a no-op when inactive. trackIndex is the canonical playhead
// position the current callback tick started from.
func (r *Retrigger) Process(trackIndex int, buffer []float32) {
	if !r.active {
		return
	}

	frames := len(buffer) / 2
	cursor := r.cursor
	for i := 0; i < frames; i++ {
		if cursor >= r.params.RepeatEnd {
			cursor = r.params.RepeatStart
		}

		fade := r.params.fadeFactor(cursor)

		var wetL, wetR float32
		if l, rr, ok := r.samples.Frame(cursor); ok {
			wetL = fade * r.params.MixFactor * l
			wetR = fade * r.params.MixFactor * rr
		}

		var dryL, dryR float32
		if l, rr, ok := r.samples.Frame(trackIndex + i); ok {
			dryL = (1 - r.params.MixFactor) * l
			dryR = (1 - r.params.MixFactor) * rr
		}

		buffer[2*i] = wetL + dryL
		buffer[2*i+1] = wetR + dryR

		cursor++
	}
	r.cursor = cursor
}
