package config

import (
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds player and import settings. Values come from an optional
// TOML file first, then command-line flags.
type Config struct {
	DeckPath            string  `toml:"deck"`
	DeckDir             string  `toml:"deck_dir"`
	Language            string  `toml:"language"`
	LogLevel            string  `toml:"log_level"`
	LogPath             string  `toml:"log_path"`
	AutoPlay            bool    `toml:"autoplay"`
	DefaultStepDuration int     `toml:"default_step_duration_ms"`
	RetreatToLastStep   bool    `toml:"retreat_to_last_step"`
	AltScreen           bool    `toml:"alt_screen"`
	Workers             int     `toml:"workers"`
	SlideDuration       float64 `toml:"slide_duration"` // seconds per imported slide
	BuildVersion        string  `toml:"-"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		DeckDir:             "decks",
		Language:            "en",
		LogLevel:            "info",
		LogPath:             "logs/scenedeck.log",
		DefaultStepDuration: 1500,
		AltScreen:           true,
		Workers:             runtime.NumCPU(),
		SlideDuration:       8.0,
	}
}

// LoadFile overlays the TOML file at path onto cfg. Keys missing from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}
