package engine

import "github.com/ivlev/scenedeck/internal/deck"

// Visibility is the resolved presentation state of one widget at one step
type Visibility struct {
	Visible   bool
	IsFocused bool
	Hidden    bool // removed from layout, not just transparent
}

// DefaultVisibility is used for anything the scene does not describe
var DefaultVisibility = Visibility{Visible: true}

var showAll = Visibility{Visible: true}

// ItemVisibility resolves a widget's state for the given step context.
// Unknown widgets and nil scenes resolve to DefaultVisibility.
func ItemVisibility(itemID string, scene *deck.Scene, stepIndex, totalSteps int) Visibility {
	if scene == nil {
		return DefaultVisibility
	}
	layer := &scene.Layer

	if IsExitStep(layer, stepIndex, totalSteps) {
		return showAll
	}

	if widgetIndex := indexOf(layer.AnimatedWidgetIDs, itemID); widgetIndex >= 0 {
		return animatedVisibility(layer, widgetIndex, stepIndex, totalSteps)
	}

	for _, st := range layer.InitialStates {
		if st.WidgetID == itemID {
			return Visibility{
				Visible:   st.Visible,
				IsFocused: st.IsFocused,
				Hidden:    !st.Visible && st.DisplayMode == deck.DisplayHidden,
			}
		}
	}

	return DefaultVisibility
}

func animatedVisibility(layer *deck.WidgetStateLayer, widgetIndex, stepIndex, totalSteps int) Visibility {
	if HasOverview(layer) && stepIndex == 0 {
		return showAll
	}

	if layer.EnterBehavior.RevealMode == deck.RevealSequential {
		effective := EffectiveStep(layer, stepIndex)
		return Visibility{
			Visible:   widgetIndex <= effective,
			IsFocused: widgetIndex == effective,
		}
	}

	// all-at-once: step 0 shows nothing yet
	allRevealed := stepIndex > 0 || totalSteps <= 1
	return Visibility{Visible: allRevealed}
}

// FocusedWidget returns the single focused animated widget at the step,
// or "" when none is focused.
func FocusedWidget(scene *deck.Scene, stepIndex, totalSteps int) string {
	if scene == nil {
		return ""
	}
	for _, id := range scene.Layer.AnimatedWidgetIDs {
		if ItemVisibility(id, scene, stepIndex, totalSteps).IsFocused {
			return id
		}
	}
	return ""
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
