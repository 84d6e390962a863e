package deck

import "fmt"

// IssueKind classifies a validation finding
type IssueKind string

const (
	IssueUnresolvedWidget  IssueKind = "unresolved-widget"
	IssueDuplicateItem     IssueKind = "duplicate-item"
	IssueDuplicateAnimated IssueKind = "duplicate-animated"
	IssueAmbiguousMenu     IssueKind = "ambiguous-menu"
	IssueUnknownRevealMode IssueKind = "unknown-reveal-mode"
)

// Issue is a non-fatal authoring problem. Playback still runs; the
// affected widget just falls back to its default state.
type Issue struct {
	Kind     IssueKind
	SlideID  string
	SceneID  string
	WidgetID string
	Detail   string
}

func (i Issue) String() string {
	loc := i.SlideID
	if i.SceneID != "" {
		loc += "/" + i.SceneID
	}
	if i.WidgetID != "" {
		return fmt.Sprintf("%s: %s %q: %s", loc, i.Kind, i.WidgetID, i.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", loc, i.Kind, i.Detail)
}

// Validate reports authoring problems in the deck
func Validate(d *Deck) []Issue {
	var issues []Issue
	for i := range d.Slides {
		issues = append(issues, validateSlide(&d.Slides[i])...)
	}
	return issues
}

func validateSlide(slide *Slide) []Issue {
	var issues []Issue

	known := map[string]bool{}
	slide.WalkItems(func(item *Item, _ int) bool {
		if known[item.ID] {
			issues = append(issues, Issue{
				Kind:     IssueDuplicateItem,
				SlideID:  slide.ID,
				WidgetID: item.ID,
				Detail:   "item id used more than once",
			})
		}
		known[item.ID] = true
		return true
	})

	activators := map[string]string{}
	for j := range slide.Scenes {
		scene := &slide.Scenes[j]
		unresolved := func(id, field string) {
			if !known[id] {
				issues = append(issues, Issue{
					Kind:     IssueUnresolvedWidget,
					SlideID:  slide.ID,
					SceneID:  scene.ID,
					WidgetID: id,
					Detail:   "referenced in " + field + " but not in the content tree",
				})
			}
		}

		switch scene.Layer.EnterBehavior.RevealMode {
		case RevealSequential, RevealAllAtOnce:
		default:
			issues = append(issues, Issue{
				Kind:    IssueUnknownRevealMode,
				SlideID: slide.ID,
				SceneID: scene.ID,
				Detail:  fmt.Sprintf("reveal mode %q is treated as all-at-once", scene.Layer.EnterBehavior.RevealMode),
			})
		}

		seen := map[string]bool{}
		for _, id := range scene.Layer.AnimatedWidgetIDs {
			unresolved(id, "animatedWidgetIds")
			if seen[id] {
				issues = append(issues, Issue{
					Kind:     IssueDuplicateAnimated,
					SlideID:  slide.ID,
					SceneID:  scene.ID,
					WidgetID: id,
					Detail:   "only the first position is ever focused",
				})
			}
			seen[id] = true
		}
		for _, st := range scene.Layer.InitialStates {
			unresolved(st.WidgetID, "initialStates")
		}
		for _, id := range scene.ActivatedByWidgetIDs {
			unresolved(id, "activatedByWidgetIds")
			if prev, ok := activators[id]; ok && prev != scene.ID {
				issues = append(issues, Issue{
					Kind:     IssueAmbiguousMenu,
					SlideID:  slide.ID,
					SceneID:  scene.ID,
					WidgetID: id,
					Detail:   "also activates scene " + prev + "; a click jumps to the first of them that is not the current scene",
				})
				continue
			}
			activators[id] = scene.ID
		}
	}

	return issues
}
