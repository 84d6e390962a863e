package engine

import "github.com/ivlev/scenedeck/internal/deck"

// ActionKind tags the decision produced by ResolveClick
type ActionKind int

const (
	ActionNoOp ActionKind = iota
	ActionJumpScene
	ActionToggleExpand
)

func (k ActionKind) String() string {
	switch k {
	case ActionJumpScene:
		return "jump-scene"
	case ActionToggleExpand:
		return "toggle-expand"
	default:
		return "no-op"
	}
}

// Action is the single decision for a click.
// SceneIndex is set for ActionJumpScene; ExpandedCardID is the new expanded
// card for ActionToggleExpand ("" collapses).
type Action struct {
	Kind           ActionKind
	SceneIndex     int
	ExpandedCardID string
}

// NoOp is the zero Action
var NoOp = Action{Kind: ActionNoOp}

type clickContext struct {
	widgetID     string
	scenes       []deck.Scene
	currentScene int
	enter        deck.EnterBehavior
	interactions []deck.InteractionBehavior
	expanded     string
}

type clickRule func(c *clickContext) (Action, bool)

// clickRules are tried in order; the first match wins
var clickRules = []clickRule{
	menuJumpRule,
	popupToggleRule,
}

// ResolveClick decides what a click on widgetID does in the current scene.
// Menu/tab navigation is checked before click-only popup toggling; anything
// else is a no-op because step-driven expansion follows the step, not the click.
func ResolveClick(
	widgetID string,
	scenes []deck.Scene,
	currentSceneIndex int,
	enter deck.EnterBehavior,
	interactions []deck.InteractionBehavior,
	expandedCardID string,
) Action {
	c := &clickContext{
		widgetID:     widgetID,
		scenes:       scenes,
		currentScene: currentSceneIndex,
		enter:        enter,
		interactions: interactions,
		expanded:     expandedCardID,
	}
	for _, rule := range clickRules {
		if action, ok := rule(c); ok {
			return action
		}
	}
	return NoOp
}

func menuJumpRule(c *clickContext) (Action, bool) {
	i := OtherSceneActivatedBy(c.scenes, c.currentScene, c.widgetID)
	if i < 0 {
		return Action{}, false
	}
	return Action{Kind: ActionJumpScene, SceneIndex: i}, true
}

func popupToggleRule(c *clickContext) (Action, bool) {
	if !IsClickOnlyPopup(c.enter, c.interactions) {
		return Action{}, false
	}
	if c.expanded == c.widgetID {
		return Action{Kind: ActionToggleExpand}, true
	}
	return Action{Kind: ActionToggleExpand, ExpandedCardID: c.widgetID}, true
}

// OtherSceneActivatedBy returns the index of the first scene other than
// current whose activatedByWidgetIds contains widgetID, or -1. A tab listed
// by both the current and a later scene still navigates.
func OtherSceneActivatedBy(scenes []deck.Scene, current int, widgetID string) int {
	for i := range scenes {
		if i != current && scenes[i].ActivatedBy(widgetID) {
			return i
		}
	}
	return -1
}

// IsClickOnlyPopup reports whether expansion in this scene is driven by
// clicks rather than by the current step.
func IsClickOnlyPopup(enter deck.EnterBehavior, interactions []deck.InteractionBehavior) bool {
	if enter.RevealMode != deck.RevealAllAtOnce {
		return false
	}
	for _, b := range interactions {
		if b.Action == deck.ActionToggleExpand && !b.AvailableInAutoMode {
			return true
		}
	}
	return false
}

// StepExpandedCard is the card implied by the step in a sequential scene:
// the widget at the effective step, except on overview and exit steps.
func StepExpandedCard(scene *deck.Scene, stepIndex, totalSteps int) string {
	if scene == nil {
		return ""
	}
	layer := &scene.Layer
	if layer.EnterBehavior.RevealMode != deck.RevealSequential {
		return ""
	}
	if IsExitStep(layer, stepIndex, totalSteps) {
		return ""
	}
	effective := EffectiveStep(layer, stepIndex)
	if effective < 0 || effective >= len(layer.AnimatedWidgetIDs) {
		return ""
	}
	return layer.AnimatedWidgetIDs[effective]
}

// EffectiveExpandedCard is the card the renderer should show expanded:
// the clicked card in click-only popup scenes, the step-derived one otherwise.
func EffectiveExpandedCard(scene *deck.Scene, stepIndex, totalSteps int, expandedCardID string) string {
	if scene != nil && IsClickOnlyPopup(scene.Layer.EnterBehavior, scene.Layer.InteractionBehaviors) {
		return expandedCardID
	}
	return StepExpandedCard(scene, stepIndex, totalSteps)
}
