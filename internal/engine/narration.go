package engine

import "github.com/ivlev/scenedeck/internal/deck"

// Narration selects the script text to display for a step. The focused
// widget's script wins, then the step-expanded card's, then the slide-level
// script. Returns "" when nothing matches.
func Narration(scripts []deck.Script, slideID string, scene *deck.Scene, stepIndex, totalSteps int) string {
	candidates := []string{
		FocusedWidget(scene, stepIndex, totalSteps),
		StepExpandedCard(scene, stepIndex, totalSteps),
	}

	for _, element := range candidates {
		if element == "" {
			continue
		}
		if text, ok := lookupScript(scripts, slideID, element); ok {
			return text
		}
	}

	text, _ := lookupScript(scripts, slideID, "")
	return text
}

func lookupScript(scripts []deck.Script, slideID, elementID string) (string, bool) {
	for _, s := range scripts {
		if s.SlideID == slideID && s.ElementID == elementID {
			return s.Text, true
		}
	}
	return "", false
}
