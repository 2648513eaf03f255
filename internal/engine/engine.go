// Package engine is photon's real-time audio engine: the central state
// machine holding the playhead, play/pause state, and the Retrigger and
// TranceGate DSP units, exposing a single Process entry point meant to
// be called from an audio device's output callback.
package engine

import (
	"github.com/schollz/photon/internal/dsp/retrigger"
	"github.com/schollz/photon/internal/dsp/trancegate"
	"github.com/schollz/photon/internal/engine/cmdqueue"
	"github.com/schollz/photon/internal/sample"
)

// DefaultQueueCapacity is the default size of the command queue between
// the UI thread and the audio thread. Kept small and fixed per spec.md
// Section 5 ("bounded... e.g., 8").
const DefaultQueueCapacity = 8

// OutputChannels is the number of interleaved channels Process expects
// in its buffer argument. photon is stereo-only end to end.
const OutputChannels = 2

// Engine is the audio callback's single real-time entry point. Only the
// audio thread may call Process; only the UI thread may push onto
// commandsIn.
type Engine struct {
	samples *sample.Store

	playhead int
	playing  bool

	retrigger  *retrigger.Retrigger
	tranceGate *trancegate.TranceGate

	commandsIn *cmdqueue.Queue[Command]
	eventsOut  *cmdqueue.Queue[Event]
}

// New builds an Engine over a shared, read-only sample.Store. commandsIn
// is the consumer endpoint the Engine drains each Process call;
// eventsOut is the (currently unused) reserved producer endpoint for
// engine-to-UI messages. Both queues are expected to be pre-allocated
// by the caller — the Engine itself never allocates after construction.
func New(samples *sample.Store, commandsIn *cmdqueue.Queue[Command], eventsOut *cmdqueue.Queue[Event]) *Engine {
	return &Engine{
		samples:    samples,
		retrigger:  retrigger.New(samples),
		tranceGate: trancegate.New(),
		commandsIn: commandsIn,
		eventsOut:  eventsOut,
	}
}

// Playhead returns the current canonical playback position, in frames.
func (e *Engine) Playhead() int {
	return e.playhead
}

// Playing reports whether the engine is currently advancing the
// playhead and writing track samples.
func (e *Engine) Playing() bool {
	return e.playing
}

// Retrigger exposes the owned Retrigger unit for inspection (e.g. by
// the UI, to show current effect state). The UI must not mutate it
// directly; all state changes go through commandsIn.
func (e *Engine) Retrigger() *retrigger.Retrigger {
	return e.retrigger
}

// TranceGate exposes the owned TranceGate unit for inspection.
func (e *Engine) TranceGate() *trancegate.TranceGate {
	return e.tranceGate
}

// Process is the callback consumed by the audio host. It must not
// block, allocate, lock, or perform I/O — buffer is assumed to already
// be sized to a whole number of stereo frames (len(buffer)%2 == 0).
func (e *Engine) Process(buffer []float32) {
	e.drainCommands()

	if !e.playing {
		quiet(buffer)
		return
	}

	trackIndex := e.playhead
	frames := len(buffer) / 2
	for i := 0; i < frames; i++ {
		idx := trackIndex + i
		if l, r, ok := e.samples.Frame(idx); ok {
			buffer[2*i] = l
			buffer[2*i+1] = r
		} else {
			buffer[2*i] = 0
			buffer[2*i+1] = 0
		}
	}
	e.playhead += frames

	e.retrigger.Process(trackIndex, buffer)
	e.tranceGate.Process(trackIndex, buffer)
}

func (e *Engine) drainCommands() {
	for {
		cmd, ok := e.commandsIn.Pop()
		if !ok {
			return
		}
		switch cmd.Kind {
		case CommandPlay:
			e.playing = true
		case CommandPause:
			e.playing = false
		case CommandRetriggerOn:
			params := retrigger.NewParameters(e.playhead, cmd.RepeatDuration, e.samples.SampleRate(), cmd.MixFactor)
			e.retrigger.Activate(params)
		case CommandRetriggerOff:
			e.retrigger.Deactivate()
		case CommandTranceGateOn:
			params := trancegate.NewParameters(cmd.GateDuration, e.samples.SampleRate(), cmd.MixFactor)
			e.tranceGate.Activate(params)
		case CommandTranceGateOff:
			e.tranceGate.Deactivate()
		}
	}
}

// quiet fills buffer with silence.
func quiet(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}
