package director

import (
	"fmt"
	"strings"

	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/source"
)

// Director turns imported pages into a starter deck: one slide per page,
// a heading plus body items, and one sequential scene revealing the body
type Director struct {
	MinDwell          float64 // Minimum time per item (seconds)
	MaxDwell          float64 // Maximum time per item (seconds)
	MaxItems          int     // Body items per slide; the rest is merged into the last one
	OverviewThreshold int     // Add an overview step above this many body items
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		MinDwell:          1.0,
		MaxDwell:          3.0,
		MaxItems:          8,
		OverviewThreshold: 2,
	}
}

// GenerateDeck builds a deck from pages. slideDuration is the target time
// per slide in seconds and is spread across the slide's body items.
func (d *Director) GenerateDeck(title string, pages []source.Page, slideDuration float64) *deck.Deck {
	out := &deck.Deck{
		Version: "1.0",
		Title:   title,
	}

	for i, page := range pages {
		slide := d.generateSlide(i+1, page, slideDuration)
		out.Slides = append(out.Slides, slide)
	}

	deck.Normalize(out)
	return out
}

func (d *Director) generateSlide(number int, page source.Page, slideDuration float64) deck.Slide {
	slideID := fmt.Sprintf("slide_%d", number)
	slide := deck.Slide{ID: slideID}

	paragraphs := splitParagraphs(page.Text)

	if page.ImagePath != "" {
		caption := ""
		if len(paragraphs) > 0 {
			caption = paragraphs[0]
		}
		slide.Title = caption
		slide.Items = []deck.Item{
			{ID: slideID + "_image", Kind: deck.KindImage, Text: page.ImagePath, Detail: caption},
		}
		return slide
	}

	if len(paragraphs) == 0 {
		return slide
	}

	slide.Title = paragraphs[0]
	slide.Items = append(slide.Items, deck.Item{
		ID:   slideID + "_title",
		Kind: deck.KindHeading,
		Text: paragraphs[0],
	})

	body := paragraphs[1:]
	if d.MaxItems > 0 && len(body) > d.MaxItems {
		merged := strings.Join(body[d.MaxItems-1:], " ")
		body = append(body[:d.MaxItems-1:d.MaxItems-1], merged)
	}
	if len(body) == 0 {
		return slide
	}

	animated := make([]string, 0, len(body))
	for j, text := range body {
		id := fmt.Sprintf("%s_item_%d", slideID, j+1)
		slide.Items = append(slide.Items, deck.Item{ID: id, Kind: deck.KindText, Text: text})
		animated = append(animated, id)
	}

	dwell := d.calculateDwellTime(slideDuration, len(body))
	slide.Scenes = []deck.Scene{{
		ID:          slideID + "_reveal",
		Order:       1,
		TriggerMode: deck.TriggerAuto,
		Layer: deck.WidgetStateLayer{
			InitialStates: []deck.InitialState{
				{WidgetID: slideID + "_title", Visible: true, DisplayMode: deck.DisplayNormal},
			},
			EnterBehavior: deck.EnterBehavior{
				RevealMode:          deck.RevealSequential,
				AnimationType:       "fade",
				Duration:            300,
				Easing:              "ease-out",
				StepDuration:        int(dwell * 1000),
				IncludeOverviewStep: len(body) > d.OverviewThreshold,
			},
			AnimatedWidgetIDs: animated,
		},
	}}

	return slide
}

// calculateDwellTime determines how long to show each item
func (d *Director) calculateDwellTime(totalDuration float64, itemCount int) float64 {
	if itemCount <= 0 {
		return d.MaxDwell
	}

	// Reserve time for the title before the first reveal
	introDuration := 1.0
	availableDuration := totalDuration - introDuration

	if availableDuration <= 0 {
		availableDuration = totalDuration
	}

	dwellTime := availableDuration / float64(itemCount)

	// Clamp to min/max
	if dwellTime < d.MinDwell {
		dwellTime = d.MinDwell
	}
	if dwellTime > d.MaxDwell {
		dwellTime = d.MaxDwell
	}

	return dwellTime
}

// splitParagraphs splits text on blank lines and collapses whitespace
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			flush()
			continue
		}
		current = append(current, strings.Join(fields, " "))
	}
	flush()

	return paragraphs
}
