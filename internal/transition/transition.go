// Package transition eases widgets in and out when their visibility flips.
// The player decides what is visible; this package only smooths the change
// for a renderer that calls Update once per frame.
package transition

import (
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"linear":            ease.Linear,
	"ease":              ease.InOutQuad,
	"ease-in":           ease.InQuad,
	"ease-out":          ease.OutQuad,
	"ease-in-out":       ease.InOutQuad,
	"ease-in-cubic":     ease.InCubic,
	"ease-out-cubic":    ease.OutCubic,
	"ease-in-out-cubic": ease.InOutCubic,
	"ease-out-back":     ease.OutBack,
	"ease-out-bounce":   ease.OutBounce,
	"ease-out-elastic":  ease.OutElastic,
}

// Easing maps a CSS-like easing name to a tween function.
// Unknown or empty names fall back to ease-in-out.
func Easing(name string) ease.TweenFunc {
	if fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]; ok {
		return fn
	}
	return ease.InOutQuad
}

type fade struct {
	tween   *gween.Tween
	visible bool
}

// Tracker holds per-widget opacity between 0 and 1
type Tracker struct {
	fades   map[string]*fade
	opacity map[string]float32
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		fades:   make(map[string]*fade),
		opacity: make(map[string]float32),
	}
}

// Observe reports the widget's current visibility. The first observation
// snaps to the final opacity; later flips start a tween of durationMs.
func (t *Tracker) Observe(id string, visible bool, durationMs int, easing string) {
	target := float32(0)
	if visible {
		target = 1
	}

	current, seen := t.opacity[id]
	if !seen || durationMs <= 0 {
		t.opacity[id] = target
		delete(t.fades, id)
		return
	}

	if f, ok := t.fades[id]; ok && f.visible == visible {
		return
	}
	if current == target {
		delete(t.fades, id)
		return
	}

	t.fades[id] = &fade{
		tween:   gween.New(current, target, float32(durationMs)/1000, Easing(easing)),
		visible: visible,
	}
}

// Update advances every running tween by dt seconds and reports whether
// any is still running.
func (t *Tracker) Update(dt float32) bool {
	for id, f := range t.fades {
		value, finished := f.tween.Update(dt)
		t.opacity[id] = clamp01(value)
		if finished {
			delete(t.fades, id)
		}
	}
	return len(t.fades) > 0
}

// Active reports whether any tween is running
func (t *Tracker) Active() bool {
	return len(t.fades) > 0
}

// Opacity returns the widget's current opacity. Unobserved widgets are opaque.
func (t *Tracker) Opacity(id string) float32 {
	if v, ok := t.opacity[id]; ok {
		return v
	}
	return 1
}

// Reset forgets every widget, e.g. when the slide changes
func (t *Tracker) Reset() {
	t.fades = make(map[string]*fade)
	t.opacity = make(map[string]float32)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
