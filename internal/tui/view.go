package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/skip2/go-qrcode"

	"github.com/ivlev/scenedeck/internal/deck"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F25D94"))
	fadingStyle  = lipgloss.NewStyle().Faint(true)
	menuStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000"))
	narrateStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	expandedStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#F25D94")).
			Padding(0, 1)
)

func (m *model) View() string {
	var b strings.Builder

	snap := m.snap
	slide := snap.Slide
	if slide == nil {
		b.WriteString(m.loc.T("NoSlides", nil))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	header := slide.Title
	if m.deck.Title != "" {
		header = m.deck.Title + " · " + header
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	expanded := snap.ExpandedCard()
	selected := m.selectedItem()

	// children of a hidden item are hidden with it
	hiddenDepth := -1
	slide.WalkItems(func(item *deck.Item, depth int) bool {
		if hiddenDepth >= 0 && depth > hiddenDepth {
			return true
		}
		hiddenDepth = -1

		vis := snap.ItemVisibility(item.ID)
		if vis.Hidden {
			hiddenDepth = depth
			return true
		}

		indent := strings.Repeat("  ", depth)
		opacity := m.tracker.Opacity(item.ID)
		if !vis.Visible && opacity == 0 {
			b.WriteString("\n")
			return true
		}

		cursor := "  "
		if item.ID == selected {
			cursor = cursorStyle.Render("› ")
		}

		body := m.renderItem(item, vis.IsFocused, item.ID == expanded)
		if opacity < 0.5 {
			body = fadingStyle.Render(body)
		}

		for i, line := range strings.Split(body, "\n") {
			if i == 0 {
				b.WriteString(indent + cursor + line + "\n")
			} else {
				b.WriteString(indent + "  " + line + "\n")
			}
		}
		return true
	})

	if narration := snap.Narration(m.deck.Scripts); narration != "" {
		b.WriteString("\n")
		b.WriteString(narrateStyle.Render(wordwrap.String(narration, m.contentWidth())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine(selected)))
	b.WriteString("\n")

	if m.showStats {
		st := m.ctrl.Stats()
		b.WriteString(statusStyle.Render(m.loc.T("Stats", map[string]any{
			"Advances":   st.Advances,
			"Retreats":   st.Retreats,
			"TimerFires": st.TimerFires,
			"Clicks":     st.Clicks,
		})))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) renderItem(item *deck.Item, focused, expanded bool) string {
	width := m.contentWidth()
	text := wordwrap.String(item.Text, width)

	var out string
	switch item.Kind {
	case deck.KindHeading:
		out = headingStyle.Render(text)
	case deck.KindCard:
		if expanded {
			content := text
			if item.Detail != "" {
				content += "\n\n" + wordwrap.String(item.Detail, width-4)
			}
			return expandedStyle.Render(content)
		}
		out = cardStyle.Render(text)
	case deck.KindMenu:
		out = menuStyle.Render("[" + item.Text + "]")
	case deck.KindImage:
		out = "[image] " + item.Text
		if item.Detail != "" {
			out += " " + item.Detail
		}
	case deck.KindQR:
		out = renderQR(item.Text)
	default:
		out = text
	}

	if focused {
		out = focusStyle.Render(out)
	}
	return out
}

func (m *model) statusLine(selected string) string {
	s := m.snap

	scenes, sceneID := 0, ""
	if s.Slide != nil {
		scenes = len(s.Slide.Scenes)
	}
	if s.Scene != nil {
		sceneID = s.Scene.ID
	}

	parts := []string{
		m.loc.T("SlidePosition", map[string]any{"Slide": s.SlideIndex + 1, "Slides": s.SlideCount}),
	}
	if scenes > 0 {
		parts = append(parts, m.loc.T("ScenePosition", map[string]any{
			"Scene": s.SceneIndex + 1, "Scenes": scenes, "SceneID": sceneID,
		}))
	}
	parts = append(parts, m.loc.T("StepPosition", map[string]any{"Step": s.StepIndex + 1, "Steps": s.TotalSteps}))

	if s.IsPlaying {
		parts = append(parts, m.loc.T("Playing", nil))
	} else {
		parts = append(parts, m.loc.T("Paused", nil))
	}
	if s.ExpandedCardID != "" {
		parts = append(parts, m.loc.T("Expanded", map[string]any{"Card": s.ExpandedCardID}))
	}
	if selected != "" {
		parts = append(parts, m.loc.T("Selected", map[string]any{"Widget": selected}))
	}
	return strings.Join(parts, " | ")
}

func (m *model) contentWidth() int {
	if m.width < 24 {
		return 20
	}
	return m.width - 4
}

// renderQR draws the code with half blocks, two modules per character row
func renderQR(content string) string {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return fmt.Sprintf("[qr: %v]", err)
	}
	code.DisableBorder = true

	bitmap := code.Bitmap()
	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteString(" ")
			}
		}
		if y+2 < len(bitmap) {
			b.WriteString("\n")
		}
	}
	return b.String()
}
