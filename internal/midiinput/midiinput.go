// Package midiinput maps an external MIDI controller's pads to engine
// commands. It is adapted from the teacher's
// internal/midiconnector/midiconnector_other.go, which opens MIDI ports
// by fuzzy name match via gitlab.com/gomidi/midi/v2 and its rtmididrv
// backend; that package only ever sent notes out. photon instead needs
// notes in, so this package listens on an input port and turns note-on
// / note-off pairs into the same Command values the keyboard and OSC
// surfaces produce.
package midiinput

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/schollz/photon/internal/engine"
	"github.com/schollz/photon/internal/photonerr"
)

// Pad describes one controller pad's mapping: a MIDI note number and
// the effect parameters it requests while held.
type Pad struct {
	Note           uint8
	Effect         Effect
	RepeatDuration float64 // seconds; Retrigger pads only
	GateDuration   float64 // seconds; TranceGate pads only
	MixFactor      float32
}

// Effect distinguishes which engine effect a Pad controls.
type Effect int

const (
	EffectRetrigger Effect = iota
	EffectTranceGate
)

// DefaultPads lays out 8 pads starting at MIDI note 36 (a common
// drum-pad base note): four Retrigger divisions followed by four
// TranceGate divisions, each halving the previous pad's duration —
// the same 4/8/16/32 ladder spec.md's UI table uses for the computer
// keyboard.
func DefaultPads(bpm float64) []Pad {
	beat := 60.0 / bpm
	durations := []float64{beat, beat / 2, beat / 4, beat / 8}
	pads := make([]Pad, 0, 8)
	for i, d := range durations {
		pads = append(pads, Pad{Note: uint8(36 + i), Effect: EffectRetrigger, RepeatDuration: d, MixFactor: 0.9})
	}
	for i, d := range durations {
		pads = append(pads, Pad{Note: uint8(40 + i), Effect: EffectTranceGate, GateDuration: d, MixFactor: 0.9})
	}
	return pads
}

// Listener owns an open MIDI input port and the StopFunc that tears
// its listener goroutine down.
type Listener struct {
	in   drivers.In
	stop func()
}

// Listen opens the named input port (matched the same fuzzy way
// midiconnector.New matches output ports: exact, then prefix, then
// substring, case-insensitive) and starts dispatching note-on/note-off
// messages against pads into commandsOut. A note-off emits its effect's
// Off only when that note's note-on is the latest one sent for the
// effect. Close stops dispatch and releases the port.
func Listen(name string, pads []Pad, commandsOut func(engine.Command) bool) (*Listener, error) {
	portName, err := findInPort(name)
	if err != nil {
		return nil, photonerr.NewSetupError(err.Error())
	}

	in, err := midi.FindInPort(portName)
	if err != nil {
		return nil, photonerr.NewSetupError(fmt.Sprintf("opening MIDI input %q: %v", portName, err))
	}

	byNote := make(map[uint8]Pad, len(pads))
	for _, p := range pads {
		byNote[p.Note] = p
	}

	// asserted holds, per effect, the note whose note-on was sent last.
	asserted := make(map[Effect]uint8, 2)
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteOn(&channel, &key, &velocity):
			if pad, ok := byNote[key]; ok {
				asserted[pad.Effect] = key
				commandsOut(padOnCommand(pad))
			}
		case msg.GetNoteOff(&channel, &key, &velocity):
			if pad, ok := byNote[key]; ok {
				if held, ok := asserted[pad.Effect]; ok && held == key {
					delete(asserted, pad.Effect)
					commandsOut(padOffCommand(pad))
				}
			}
		}
	})
	if err != nil {
		return nil, photonerr.NewSetupError(fmt.Sprintf("listening on MIDI input %q: %v", portName, err))
	}

	return &Listener{in: in, stop: stop}, nil
}

// Close stops dispatching MIDI messages and releases the input port.
func (l *Listener) Close() {
	if l.stop != nil {
		l.stop()
	}
	_ = l.in.Close()
}

func padOnCommand(p Pad) engine.Command {
	if p.Effect == EffectRetrigger {
		return engine.RetriggerOn(p.RepeatDuration, p.MixFactor)
	}
	return engine.TranceGateOn(p.GateDuration, p.MixFactor)
}

func padOffCommand(p Pad) engine.Command {
	if p.Effect == EffectRetrigger {
		return engine.RetriggerOff()
	}
	return engine.TranceGateOff()
}

// findInPort fuzzy-matches name against the system's available MIDI
// input ports: exact match first, then prefix, then substring, all
// case-insensitive.
func findInPort(name string) (string, error) {
	names := InputDevices()

	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	for _, n := range names {
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(name)) {
			return n, nil
		}
	}
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(name)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("could not find MIDI input device with name %q", name)
}

// InputDevices lists the system's available MIDI input port names.
func InputDevices() (devices []string) {
	ins := midi.GetInPorts()
	for _, in := range ins {
		devices = append(devices, in.String())
	}
	return
}
