// Package engine holds the pure scene animation rules: how many steps a
// scene has, what every widget looks like at a step, and what a click does.
// Nothing here keeps state; callers pass the full step context every time.
package engine

import "github.com/ivlev/scenedeck/internal/deck"

// SceneSteps returns the number of steps in a scene.
// Ordering within the scene is [overview?] [widget_0 .. widget_N-1] [exit?].
// A nil scene has a single step.
func SceneSteps(scene *deck.Scene) int {
	if scene == nil {
		return 1
	}

	layer := &scene.Layer
	total := len(layer.AnimatedWidgetIDs)
	if total < 1 {
		total = 1
	}
	if HasOverview(layer) {
		total++
	}
	if layer.ExitBehavior != nil {
		total++
	}
	return total
}

// HasOverview reports whether the scene opens with an overview step.
// Only sequential reveals get one.
func HasOverview(layer *deck.WidgetStateLayer) bool {
	return layer.EnterBehavior.IncludeOverviewStep &&
		layer.EnterBehavior.RevealMode == deck.RevealSequential
}

// IsExitStep reports whether stepIndex is the scene's trailing exit step
func IsExitStep(layer *deck.WidgetStateLayer, stepIndex, totalSteps int) bool {
	return layer.ExitBehavior != nil && stepIndex == totalSteps-1
}

// EffectiveStep maps a step index onto an index into AnimatedWidgetIDs by
// skipping the overview step. The result is -1 on the overview step.
func EffectiveStep(layer *deck.WidgetStateLayer, stepIndex int) int {
	if HasOverview(layer) {
		return stepIndex - 1
	}
	return stepIndex
}
