// Command photon is the interactive music player's entry point: it
// decodes a WAV asset, opens a real-time output device, starts the
// optional MIDI and OSC input surfaces, and runs the terminal pad UI.
//
// Flag parsing follows the teacher's own main.go in spirit (debug log
// file via tea.LogToFile, everything else a command-line flag) but
// uses spf13/cobra for the command itself, since this is the one place
// in the whole corpus that dependency was declared but never wired.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/schollz/photon/internal/config"
	"github.com/schollz/photon/internal/decoder"
	"github.com/schollz/photon/internal/device"
	"github.com/schollz/photon/internal/engine"
	"github.com/schollz/photon/internal/engine/cmdqueue"
	"github.com/schollz/photon/internal/midiinput"
	"github.com/schollz/photon/internal/oscinput"
	"github.com/schollz/photon/internal/ui"
)

func main() {
	var (
		configPath string
		assetPath  string
		bpm        float64
		debugLog   string
		midiDevice string
		oscPort    int
	)

	root := &cobra.Command{
		Use:   "photon",
		Short: "An interactive music player with beat-synchronous stutter and gating effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, assetPath, bpm, debugLog, midiDevice, oscPort)
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a JSON config file (optional)")
	root.Flags().StringVar(&assetPath, "asset", "", "path to the WAV file to play (overrides config)")
	root.Flags().Float64Var(&bpm, "bpm", 0, "tempo in beats per minute, used to derive pad durations (overrides config; 0 uses config/default)")
	root.Flags().StringVar(&debugLog, "debug", "", "if set, write debug logs to this file")
	root.Flags().StringVar(&midiDevice, "midi-device", "", "MIDI input device name to listen on (optional)")
	root.Flags().IntVar(&oscPort, "osc-port", 0, "UDP port for OSC control surface input (overrides config; 0 uses config/default)")

	if err := root.Execute(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run(configPath, assetFlag string, bpmFlag float64, debugLog, midiDevice string, oscPortFlag int) error {
	if debugLog != "" {
		f, err := tea.LogToFile(debugLog, "debug")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if assetFlag != "" {
		cfg.AssetPath = assetFlag
	}
	if bpmFlag > 0 {
		cfg.BPM = bpmFlag
	}
	if oscPortFlag > 0 {
		cfg.OSCPort = oscPortFlag
	}
	if midiDevice != "" {
		cfg.MIDIDevice = midiDevice
	}
	if cfg.AssetPath == "" {
		return fmt.Errorf("no asset WAV path given; pass --asset or set asset_path in --config")
	}

	store, err := decoder.DecodeFile(cfg.AssetPath)
	if err != nil {
		return err
	}
	log.Printf("decoded %s: %d frames at %d Hz", cfg.AssetPath, store.FrameCount(), store.SampleRate())

	commandsIn := cmdqueue.New[engine.Command](cfg.QueueCapacity)
	eventsOut := cmdqueue.New[engine.Event](cfg.QueueCapacity)
	eng := engine.New(store, commandsIn, eventsOut)

	dev, err := device.Open(eng, store.SampleRate())
	if err != nil {
		return err
	}
	defer dev.Close()
	if err := dev.Start(); err != nil {
		return fmt.Errorf("starting audio device: %w", err)
	}
	defer dev.Stop()

	// The UI, MIDI and OSC surfaces push from their own goroutines;
	// pushMu keeps the SPSC queue to one producer at a time.
	var pushMu sync.Mutex
	push := func(c engine.Command) bool {
		pushMu.Lock()
		defer pushMu.Unlock()
		if !commandsIn.Push(c) {
			log.Printf("command queue full, dropped command kind %d", c.Kind)
			return false
		}
		return true
	}

	if cfg.MIDIDevice != "" {
		listener, err := midiinput.Listen(cfg.MIDIDevice, midiinput.DefaultPads(cfg.BPM), push)
		if err != nil {
			log.Printf("MIDI input unavailable: %v", err)
		} else {
			defer listener.Close()
		}
	}

	oscinput.Listen(cfg.OSCPort, oscinput.DefaultRoutes(cfg.BPM), push)

	model := ui.New(eng, push, cfg.BPM, store.FrameCount(), store.SampleRate())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
