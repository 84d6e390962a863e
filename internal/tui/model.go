// Package tui plays a deck in the terminal on top of player.Controller.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/locale"
	"github.com/ivlev/scenedeck/internal/logging"
	"github.com/ivlev/scenedeck/internal/player"
	"github.com/ivlev/scenedeck/internal/transition"
)

const frameInterval = time.Second / 30

// Config wires runtime options into the TUI program.
type Config struct {
	Deck       *deck.Deck
	Controller *player.Controller
	Localizer  *locale.Localizer
	Logger     *slog.Logger

	// Load re-reads the deck for the reload key. Nil disables reloading.
	Load func() (*deck.Deck, error)

	AltScreen bool
}

type stateChangedMsg struct{}

type frameMsg time.Time

type model struct {
	config  Config
	ctrl    *player.Controller
	deck    *deck.Deck
	loc     *locale.Localizer
	log     *slog.Logger
	keys    keyMap
	help    help.Model
	tracker *transition.Tracker

	// snap is the frame being shown. Rendering reads only this, so one
	// frame never mixes two controller positions.
	snap      player.Snapshot
	selected  int
	showStats bool
	notice    string

	width     int
	animating bool
	lastFrame time.Time
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

func newModel(config Config) *model {
	if config.Localizer == nil {
		config.Localizer = locale.New("en")
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}
	if config.Deck == nil {
		config.Deck = &deck.Deck{}
	}

	m := &model{
		config:  config,
		ctrl:    config.Controller,
		deck:    config.Deck,
		loc:     config.Localizer,
		log:     config.Logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		tracker: transition.NewTracker(),
		width:   80,
	}
	m.sync()
	return m
}

// Run mounts the model and blocks until the user quits. State changes that
// do not come from a key press, like auto-play advances, reach the model
// through the controller's subscription.
func Run(config Config) error {
	var opts []tea.ProgramOption
	if config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	program := tea.NewProgram(New(config), opts...)

	// Subscribers also run inside Update, where a blocking Send would deadlock.
	unsubscribe := config.Controller.Subscribe(func(player.State) {
		go program.Send(stateChangedMsg{})
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return m.animate()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case stateChangedMsg:
		return m, m.sync()

	case frameMsg:
		return m, m.frame(time.Time(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.ctrl.HandleKey(player.KeyArrowRight)
	case key.Matches(msg, m.keys.Prev):
		m.ctrl.HandleKey(player.KeyArrowLeft)
	case key.Matches(msg, m.keys.Play):
		m.ctrl.HandleKey("p")
	case key.Matches(msg, m.keys.Collapse):
		m.ctrl.HandleKey(player.KeyEscape)

	case key.Matches(msg, m.keys.Select):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.SelectUp):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Click):
		if id := m.selectedItem(); id != "" {
			action := m.ctrl.HandleItemClick(id)
			m.log.Debug("item clicked", "widget", id, "action", action.Kind.String())
		}

	case key.Matches(msg, m.keys.Jump):
		m.ctrl.JumpToSlide(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		return m, nil
	}

	return m, m.sync()
}

func (m *model) reload() {
	if m.config.Load == nil {
		return
	}

	d, err := m.config.Load()
	if err != nil {
		m.log.Warn("reload failed", "error", err)
		m.notice = m.loc.T("ReloadFailed", map[string]any{"Error": err.Error()})
		return
	}

	m.deck = d
	m.tracker.Reset()
	m.ctrl.Reload(d.Slides)
	m.notice = m.loc.T("Reloaded", nil)
	m.log.Info("deck reloaded", "slides", len(d.Slides))
}

// sync takes a fresh controller snapshot and feeds every item's visibility
// to the transition tracker.
func (m *model) sync() tea.Cmd {
	prev := m.snap
	m.snap = m.ctrl.Snapshot()

	if prev.SlideIndex != m.snap.SlideIndex || prev.Slide != m.snap.Slide {
		m.tracker.Reset()
		m.selected = 0
	}

	slide := m.snap.Slide
	if slide == nil {
		return nil
	}

	duration, easing := 0, ""
	if scene := m.snap.Scene; scene != nil {
		duration = scene.Layer.EnterBehavior.Duration
		easing = scene.Layer.EnterBehavior.Easing
	}

	slide.WalkItems(func(item *deck.Item, _ int) bool {
		vis := m.snap.ItemVisibility(item.ID)
		m.tracker.Observe(item.ID, vis.Visible && !vis.Hidden, duration, easing)
		return true
	})

	if n := len(m.clickable()); n > 0 && m.selected >= n {
		m.selected = n - 1
	}
	return m.animate()
}

func (m *model) animate() tea.Cmd {
	if m.animating || !m.tracker.Active() {
		return nil
	}
	m.animating = true
	m.lastFrame = time.Now()
	return frameTick()
}

func (m *model) frame(now time.Time) tea.Cmd {
	dt := now.Sub(m.lastFrame).Seconds()
	m.lastFrame = now
	if m.tracker.Update(float32(dt)) {
		return frameTick()
	}
	m.animating = false
	return nil
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// clickable lists the visible items on the current slide that react to a
// click: cards, menus and scene activators.
func (m *model) clickable() []string {
	slide := m.snap.Slide
	if slide == nil {
		return nil
	}

	activators := map[string]bool{}
	for _, scene := range slide.Scenes {
		for _, id := range scene.ActivatedByWidgetIDs {
			activators[id] = true
		}
	}

	var ids []string
	slide.WalkItems(func(item *deck.Item, _ int) bool {
		if item.Kind != deck.KindCard && item.Kind != deck.KindMenu && !activators[item.ID] {
			return true
		}
		vis := m.snap.ItemVisibility(item.ID)
		if vis.Visible && !vis.Hidden {
			ids = append(ids, item.ID)
		}
		return true
	})
	return ids
}

func (m *model) moveSelection(delta int) {
	n := len(m.clickable())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

func (m *model) selectedItem() string {
	ids := m.clickable()
	if len(ids) == 0 {
		return ""
	}
	if m.selected >= len(ids) {
		m.selected = len(ids) - 1
	}
	return ids[m.selected]
}
