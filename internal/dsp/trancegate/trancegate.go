// Package trancegate implements the rhythmic amplitude-gating
// ("trance gate") DSP unit. It modulates whatever has already been
// written into the callback buffer — including Retrigger's output, when
// both effects are active — rather than re-reading the sample store.
package trancegate

import "math"

const noiseFloor = 0.1

// Parameters are the immutable, precomputed values that drive one
// activation of TranceGate.
type Parameters struct {
	// GateLength is the period of one full envelope cycle, in frames.
	GateLength int
	// GateMidpoint is the frame within the cycle where the envelope
	// reaches its floor (gate_length / 2); the envelope peaks at frame 0.
	GateMidpoint int
	// MixFactor is the gated/dry weight in [0,1].
	MixFactor float32
}

// NewParameters derives TranceGateParameters from a gate duration in
// seconds, as requested by a TranceGateOn command.
//
// GateLength is clamped to at least 2 frames so GateMidpoint is always
// at least 1 (spec's ParameterDegenerate handling).
func NewParameters(gateDurationSeconds float64, sampleRate int, mixFactor float32) Parameters {
	gateLength := int(math.Round(gateDurationSeconds * float64(sampleRate)))
	if gateLength < 2 {
		gateLength = 2
	}

	if mixFactor < 0 {
		mixFactor = 0
	}
	if mixFactor > 1 {
		mixFactor = 1
	}

	return Parameters{
		GateLength:   gateLength,
		GateMidpoint: gateLength / 2,
		MixFactor:    mixFactor,
	}
}

// TranceGate multiplies the buffer already written by the callback
// with a triangular amplitude envelope while active.
type TranceGate struct {
	active  bool
	params  Parameters
	counter int
}

// New creates an inactive TranceGate.
func New() *TranceGate {
	return &TranceGate{}
}

// Activate turns the effect on (or re-anchors it if already on),
// resetting the counter to 0. Called only from the audio thread.
func (g *TranceGate) Activate(params Parameters) {
	g.params = params
	g.counter = 0
	g.active = true
}

// Deactivate turns the effect off.
func (g *TranceGate) Deactivate() {
	g.active = false
	g.counter = 0
	g.params = Parameters{}
}

// Active reports whether the effect is currently on.
func (g *TranceGate) Active() bool {
	return g.active
}

// Counter returns the number of frames rendered in the current cycle.
// It equals GateLength right after a cycle's last frame and wraps to 0
// on the next frame rendered. Only meaningful while Active.
func (g *TranceGate) Counter() int {
	return g.counter
}

// Process multiplies buffer in place by the gate envelope when active;
// it is a no-op when inactive.
func (g *TranceGate) Process(_ int, buffer []float32) {
	if !g.active {
		return
	}

	frames := len(buffer) / 2
	counter := g.counter
	for i := 0; i < frames; i++ {
		if counter >= g.params.GateLength {
			counter = 0
		}

		var t float32
		if counter < g.params.GateMidpoint {
			t = float32(g.params.GateMidpoint-counter) / float32(g.params.GateMidpoint)
		} else {
			t = float32(counter-g.params.GateMidpoint) / float32(g.params.GateMidpoint)
		}

		t = t*(1-noiseFloor) + noiseFloor
		gateFactor := t*g.params.MixFactor + (1 - g.params.MixFactor)

		buffer[2*i] *= gateFactor
		buffer[2*i+1] *= gateFactor

		counter++
	}
	g.counter = counter
}
