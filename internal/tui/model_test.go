package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/locale"
	"github.com/ivlev/scenedeck/internal/player"
)

const testDeck = `
title: Demo
slides:
  - id: intro
    title: Intro
    items:
      - {id: title, kind: heading, text: Welcome}
      - {id: menu_cards, kind: menu, text: Cards}
      - id: secret
        kind: text
        text: Secret parent
        children:
          - {id: secret_child, kind: text, text: Hidden child}
      - {id: card_a, kind: card, text: Card A, detail: More about A}
      - {id: card_b, kind: card, text: Card B, detail: More about B}
    scenes:
      - id: overview
        order: 1
        widgetStateLayer:
          initialStates:
            - {widgetId: title, visible: true}
            - {widgetId: menu_cards, visible: true}
            - {widgetId: secret, visible: false, displayMode: hidden}
          enterBehavior: {revealMode: sequential, stepDuration: 1000}
          animatedWidgetIds: [card_a, card_b]
      - id: cards
        order: 2
        activatedByWidgetIds: [menu_cards]
        widgetStateLayer:
          enterBehavior: {revealMode: all-at-once, duration: 300, easing: ease-out}
          interactionBehaviors:
            - {trigger: click, action: toggle-expand, exclusive: true}
          animatedWidgetIds: [card_a, card_b]
  - id: end
    title: The End
    items:
      - {id: bye, kind: text, text: Bye}
scripts:
  - {slideId: intro, text: Welcome everyone}
`

func newTestModel(t *testing.T) (*model, *player.Controller) {
	t.Helper()
	d, err := deck.Parse([]byte(testDeck))
	if err != nil {
		t.Fatalf("parse deck: %v", err)
	}
	ctrl := player.New(d.Slides, player.Options{})
	t.Cleanup(ctrl.Close)

	m := newModel(Config{Deck: d, Controller: ctrl, Localizer: locale.New("en")})
	return m, ctrl
}

func press(m *model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewRendersCurrentSlide(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()

	for _, want := range []string{"Welcome", "Card A", "Slide 1/2", "Step 1/2", "Welcome everyone"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	for _, hidden := range []string{"Secret parent", "Hidden child", "Card B"} {
		if strings.Contains(view, hidden) {
			t.Errorf("view should not contain %q", hidden)
		}
	}
}

func TestViewRendersOneSnapshot(t *testing.T) {
	m, ctrl := newTestModel(t)

	ctrl.JumpToSlide(1) // not yet delivered to the model
	view := m.View()
	if !strings.Contains(view, "Slide 1/2") || !strings.Contains(view, "Welcome") || strings.Contains(view, "Bye") {
		t.Errorf("view should stay on the synced frame:\n%s", view)
	}

	m.Update(stateChangedMsg{})
	view = m.View()
	if !strings.Contains(view, "Slide 2/2") || !strings.Contains(view, "Bye") || strings.Contains(view, "Welcome") {
		t.Errorf("view should show the new frame after the change arrives:\n%s", view)
	}
}

func TestArrowKeysNavigate(t *testing.T) {
	m, ctrl := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if s := ctrl.State(); s.StepIndex != 1 {
		t.Fatalf("right should advance, got %+v", s)
	}
	if m.snap.StepIndex != 1 {
		t.Fatalf("model state not synced, got %+v", m.snap.State)
	}

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if s := ctrl.State(); s.StepIndex != 0 {
		t.Fatalf("left should retreat, got %+v", s)
	}

	press(m, runes("p"))
	if !ctrl.State().IsPlaying {
		t.Fatal("p should start playback")
	}
	if !strings.Contains(m.View(), "Playing") {
		t.Error("status should show playing")
	}
	press(m, runes("p"))
	if ctrl.State().IsPlaying {
		t.Fatal("p should pause playback")
	}
}

func TestMenuClickAndPopupExpansion(t *testing.T) {
	m, ctrl := newTestModel(t)

	if got := m.selectedItem(); got != "menu_cards" {
		t.Fatalf("expected menu selected first, got %q", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if s := ctrl.State(); s.SceneIndex != 1 || s.StepIndex != 0 {
		t.Fatalf("menu click should jump to the cards scene, got %+v", s)
	}

	// all-at-once scenes reveal on the second step
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if ids := m.clickable(); len(ids) != 3 {
		t.Fatalf("expected menu and both cards clickable, got %v", ids)
	}

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.selectedItem(); got != "card_a" {
		t.Fatalf("tab should select card_a, got %q", got)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := ctrl.State().ExpandedCardID; got != "card_a" {
		t.Fatalf("expected card_a expanded, got %q", got)
	}
	if !strings.Contains(m.View(), "More about A") {
		t.Error("expanded card should show its detail")
	}

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.selectedItem(); got != "card_b" {
		t.Fatalf("shift+tab should wrap to card_b, got %q", got)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := ctrl.State().ExpandedCardID; got != "card_b" {
		t.Fatalf("expected card_b to replace card_a, got %q", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := ctrl.State().ExpandedCardID; got != "" {
		t.Fatalf("esc should collapse, got %q", got)
	}
}

func TestNumberKeysJumpToSlide(t *testing.T) {
	m, ctrl := newTestModel(t)

	press(m, runes("2"))
	if s := ctrl.State(); s.SlideIndex != 1 {
		t.Fatalf("2 should jump to the second slide, got %+v", s)
	}
	if !strings.Contains(m.View(), "The End") {
		t.Error("view should show the second slide")
	}

	press(m, runes("9"))
	if s := ctrl.State(); s.SlideIndex != 1 {
		t.Fatalf("out of range jump should be ignored, got %+v", s)
	}
}

func TestTransitionFramesRunUntilSettled(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.animating || !m.tracker.Active() {
		t.Fatal("revealing cards should start frame ticks")
	}
	if op := m.tracker.Opacity("card_b"); op >= 1 {
		t.Fatalf("card_b should start fading in, got %v", op)
	}

	_, cmd := m.Update(frameMsg(m.lastFrame.Add(time.Second)))
	if cmd != nil || m.animating {
		t.Fatal("frames should stop once every tween finished")
	}
	if op := m.tracker.Opacity("card_b"); op != 1 {
		t.Errorf("card_b should be opaque, got %v", op)
	}
}

func TestStatsHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, runes("d"))
	if !strings.Contains(m.View(), "advances 1") {
		t.Errorf("stats line missing:\n%s", m.View())
	}

	press(m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}

	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestReloadKey(t *testing.T) {
	m, ctrl := newTestModel(t)
	press(m, runes("2"))

	m.config.Load = func() (*deck.Deck, error) {
		return &deck.Deck{Slides: []deck.Slide{{ID: "only", Title: "Only"}}}, nil
	}
	press(m, runes("r"))
	if n := len(ctrl.Slides()); n != 1 {
		t.Fatalf("expected reloaded deck with 1 slide, got %d", n)
	}
	if s := ctrl.State(); s.SlideIndex != 0 {
		t.Fatalf("slide index should be clamped, got %+v", s)
	}
	if !strings.Contains(m.View(), "Deck reloaded") {
		t.Error("reload notice missing")
	}

	m.config.Load = func() (*deck.Deck, error) {
		return nil, errors.New("boom")
	}
	press(m, runes("r"))
	if !strings.Contains(m.View(), "Reload failed: boom") {
		t.Error("reload failure notice missing")
	}
}

func TestEmptyDeckView(t *testing.T) {
	ctrl := player.New(nil, player.Options{})
	defer ctrl.Close()

	m := newModel(Config{Controller: ctrl})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "no slides") {
		t.Errorf("expected empty deck message, got:\n%s", m.View())
	}
}

func TestRenderQR(t *testing.T) {
	out := renderQR("https://example.com")
	if out == "" || !strings.ContainsAny(out, "█▀▄") {
		t.Errorf("expected block characters, got %q", out)
	}
}
