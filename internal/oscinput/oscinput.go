// Package oscinput lets an OSC control surface (TouchOSC, Lemur, or any
// other /address + float sender) drive the engine's effects, the way a
// physical pad or MIDI note does. The teacher's own OSC usage
// (internal/model/model.go) is client-only — it dials out to a
// SuperCollider synth with osc.NewClient and osc.NewMessage. photon has
// no SuperCollider process to talk to, so this package repurposes the
// same github.com/hypebeast/go-osc library the other direction: as a
// server receiving control messages from an external surface.
package oscinput

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/hypebeast/go-osc/osc"

	"github.com/schollz/photon/internal/engine"
)

// PadRoute binds one OSC address to an effect activation/deactivation
// pair, mirroring midiinput.Pad's role for the MIDI surface.
type PadRoute struct {
	Address        string
	Effect         Effect
	RepeatDuration float64
	GateDuration   float64
	MixFactor      float32
}

// Effect distinguishes which engine effect a PadRoute controls.
type Effect int

const (
	EffectRetrigger Effect = iota
	EffectTranceGate
)

// DefaultRoutes lays out the same 4/8/16/32 duration ladder as
// midiinput.DefaultPads, addressed as /retrigger/0../3 and
// /trancegate/0../3. A nonzero first float argument activates and zero
// deactivates — matching how TouchOSC/Lemur send a button's down/up
// state as 1.0/0.0 on the same address. A message with no argument
// activates.
func DefaultRoutes(bpm float64) []PadRoute {
	beat := 60.0 / bpm
	durations := []float64{beat, beat / 2, beat / 4, beat / 8}
	routes := make([]PadRoute, 0, 8)
	for i, d := range durations {
		routes = append(routes, PadRoute{
			Address: fmt.Sprintf("/retrigger/%d", i), Effect: EffectRetrigger,
			RepeatDuration: d, MixFactor: 0.9,
		})
	}
	for i, d := range durations {
		routes = append(routes, PadRoute{
			Address: fmt.Sprintf("/trancegate/%d", i), Effect: EffectTranceGate,
			GateDuration: d, MixFactor: 0.9,
		})
	}
	return routes
}

// Server owns a UDP OSC listener dispatching PadRoutes into engine
// commands. It has no Close method; the listener runs until the
// process exits.
type Server struct {
	inner *osc.Server
}

// Listen starts a UDP OSC server on port, dispatching each route in
// routes to commandsOut. It does not block; the underlying
// osc.Server.ListenAndServe runs on its own goroutine. A release emits
// its effect's Off only when that route's On is the latest one sent
// for the effect.
func Listen(port int, routes []PadRoute, commandsOut func(engine.Command) bool) *Server {
	// asserted holds, per effect, the address whose On was sent last.
	var mu sync.Mutex
	asserted := make(map[Effect]string, 2)
	d := osc.NewStandardDispatcher()
	for _, route := range routes {
		route := route
		d.AddMsgHandler(route.Address, func(msg *osc.Message) {
			on := messageIsOn(msg)
			mu.Lock()
			defer mu.Unlock()
			if on {
				asserted[route.Effect] = route.Address
			} else if asserted[route.Effect] != route.Address {
				return
			} else {
				delete(asserted, route.Effect)
			}
			commandsOut(routeCommand(route, on))
		})
	}

	s := &osc.Server{Addr: fmt.Sprintf(":%d", port), Dispatcher: d}
	go func() {
		log.Printf("starting OSC input server on port %d", port)
		if err := s.ListenAndServe(); err != nil {
			log.Printf("OSC input server stopped: %v", err)
		}
	}()
	return &Server{inner: s}
}

func routeCommand(r PadRoute, on bool) engine.Command {
	switch {
	case r.Effect == EffectRetrigger && on:
		return engine.RetriggerOn(r.RepeatDuration, r.MixFactor)
	case r.Effect == EffectRetrigger:
		return engine.RetriggerOff()
	case on:
		return engine.TranceGateOn(r.GateDuration, r.MixFactor)
	default:
		return engine.TranceGateOff()
	}
}

// messageIsOn reports whether msg counts as a press: a first argument
// that is a nonzero number (or a string parsing to one), the convention
// TouchOSC/Lemur use for a pressed button. A message with no argument,
// or whose first argument is of another type, also counts as a press.
func messageIsOn(msg *osc.Message) bool {
	if len(msg.Arguments) == 0 {
		return true
	}
	switch v := msg.Arguments[0].(type) {
	case float32:
		return v != 0
	case float64:
		return v != 0
	case int32:
		return v != 0
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return err == nil && f != 0
	default:
		return true
	}
}
