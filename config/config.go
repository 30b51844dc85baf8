package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Engine carries the tunable constants of the playback engine. The
// scratch damping factor and platter revolution period are tuned
// heuristics: correctness only needs the tracking to converge without
// artifacts, so they are configuration rather than hard constants.
type Engine struct {
	// SampleRate all decks render at; loaded tracks are resampled to it.
	SampleRate int `yaml:"sample_rate"`

	// BlockFrames is the render block granularity in frames.
	BlockFrames int `yaml:"block_frames"`

	// ScratchDamping is the per-frame tracking factor in (0,1]. Smaller
	// feels rubber-banded; 1.0 is a hard, audible cut.
	ScratchDamping float64 `yaml:"scratch_damping"`

	// RevolutionSeconds is the platter period: seconds of audio per full
	// rotation of the scratch surface.
	RevolutionSeconds float64 `yaml:"revolution_seconds"`
}

// Default returns the engine defaults: 44.1kHz, 1024-frame blocks,
// damping 0.5, 1.8s per revolution (a 33 1/3 RPM platter).
func Default() Engine {
	return Engine{
		SampleRate:        44100,
		BlockFrames:       1024,
		ScratchDamping:    0.5,
		RevolutionSeconds: 1.8,
	}
}

// Load reads an Engine from a YAML file. Omitted fields take defaults.
func Load(path string) (Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Engine{}, err
	}

	var cfg Engine
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Engine{}, err
	}

	return cfg.withDefaults(), nil
}

func (e Engine) withDefaults() Engine {
	def := Default()

	if e.SampleRate <= 0 {
		e.SampleRate = def.SampleRate
	}
	if e.BlockFrames <= 0 {
		e.BlockFrames = def.BlockFrames
	}
	if e.ScratchDamping <= 0 || e.ScratchDamping > 1 {
		e.ScratchDamping = def.ScratchDamping
	}
	if e.RevolutionSeconds <= 0 {
		e.RevolutionSeconds = def.RevolutionSeconds
	}

	return e
}
