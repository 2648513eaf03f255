// Package config loads photon's startup configuration: the asset WAV
// path, default BPM, command queue size, and the optional MIDI/OSC
// input surface names. It follows the teacher's own json-iterator
// convention (internal/storage/storage.go's
// "var json = jsoniter.ConfigCompatibleWithStandardLibrary") rather
// than reaching for the standard library's encoding/json.
package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/photon/internal/photonerr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBPM matches the original implementation's default tempo.
const DefaultBPM = 196.0

// DefaultMixFactor matches the original implementation's default wet
// mix for both effects when a surface doesn't specify one.
const DefaultMixFactor = 0.9

// DefaultQueueCapacity mirrors engine.DefaultQueueCapacity; duplicated
// here (rather than imported) so config has no dependency on engine.
const DefaultQueueCapacity = 8

// DefaultOSCPort is the UDP port photon listens on for OSC control
// surfaces (e.g. TouchOSC, Lemur) when none is configured.
const DefaultOSCPort = 9000

// Config holds photon's startup settings. All fields have usable
// defaults; a config file on disk only needs to override what differs.
type Config struct {
	AssetPath     string  `json:"asset_path"`
	BPM           float64 `json:"bpm"`
	QueueCapacity int     `json:"queue_capacity"`
	MIDIDevice    string  `json:"midi_device"`
	OSCPort       int     `json:"osc_port"`
}

// Default returns a Config with no asset path set and every other
// field at its documented default.
func Default() *Config {
	return &Config{
		BPM:           DefaultBPM,
		QueueCapacity: DefaultQueueCapacity,
		OSCPort:       DefaultOSCPort,
	}
}

// Load reads a JSON config file at path, overlaying it onto Default().
// A missing file is not an error — it returns the defaults unchanged,
// since an asset path may instead be supplied on the command line.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, photonerr.NewSetupError(fmt.Sprintf("reading config %s: %v", path, err))
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, photonerr.NewSetupError(fmt.Sprintf("parsing config %s: %v", path, err))
	}
	return cfg, nil
}
