package deck

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrNoSlides is returned when a deck file contains no slides
var ErrNoSlides = errors.New("deck has no slides")

// Write writes a deck to a YAML file
func Write(d *Deck, path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads and normalizes a deck from a YAML file
func Read(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a deck from YAML bytes and normalizes it
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if len(d.Slides) == 0 {
		return nil, ErrNoSlides
	}

	Normalize(&d)
	return &d, nil
}

// Normalize fills defaults and orders scenes by their order field.
// Scenes with equal order keep their file order.
func Normalize(d *Deck) {
	if d.Version == "" {
		d.Version = "1.0"
	}

	for i := range d.Slides {
		slide := &d.Slides[i]
		if slide.ID == "" {
			slide.ID = fmt.Sprintf("slide_%d", i+1)
		}

		sort.SliceStable(slide.Scenes, func(a, b int) bool {
			return slide.Scenes[a].Order < slide.Scenes[b].Order
		})

		for j := range slide.Scenes {
			scene := &slide.Scenes[j]
			if scene.ID == "" {
				scene.ID = fmt.Sprintf("%s_scene_%d", slide.ID, j+1)
			}
			if scene.TriggerMode == "" {
				scene.TriggerMode = TriggerAuto
			}
			if scene.Layer.EnterBehavior.RevealMode == "" {
				scene.Layer.EnterBehavior.RevealMode = RevealSequential
			}
		}
	}
}
