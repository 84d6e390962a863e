// Package player owns playback state for a deck: which slide, scene and
// step is showing, whether auto-play runs, and which card is expanded.
package player

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/engine"
	"github.com/ivlev/scenedeck/internal/logging"
)

// State is a snapshot of the navigation state.
// ExpandedCardID is "" when no card is expanded.
type State struct {
	SlideIndex     int
	SceneIndex     int
	StepIndex      int
	TotalSteps     int
	IsPlaying      bool
	ExpandedCardID string
}

// Options configures a Controller
type Options struct {
	Clock  Clock
	Logger *slog.Logger

	// DefaultStepDuration applies to scenes without a stepDuration
	DefaultStepDuration time.Duration

	// RetreatToLastStep makes Retreat land on the last step of the
	// previous scene or slide instead of step 0.
	RetreatToLastStep bool

	AutoPlay bool
}

// Controller is the single owner of navigation state. Every input (key,
// click, timer fire) runs to completion under one lock, and every change to
// slide, scene, step, step count or play state cancels the pending
// auto-advance timer before arming a new one.
type Controller struct {
	mu     sync.Mutex
	slides []deck.Slide
	state  State
	opts   Options
	clock  Clock
	log    *slog.Logger

	timer  *timerHandle
	closed bool

	subs    map[int]*subscription
	nextSub int
	seq     uint64 // bumped on every notified commit

	stats counters
}

// New creates a controller positioned at the first step of the first slide
func New(slides []deck.Slide, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.DefaultStepDuration <= 0 {
		opts.DefaultStepDuration = deck.DefaultStepDuration * time.Millisecond
	}

	c := &Controller{
		slides: slides,
		opts:   opts,
		clock:  opts.Clock,
		log:    opts.Logger,
		subs:   make(map[int]*subscription),
	}
	c.state.TotalSteps = engine.SceneSteps(c.sceneAt(0, 0))

	if opts.AutoPlay {
		c.SetPlaying(true)
	}
	return c
}

// State returns the current navigation state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Slides returns the slides being played
func (c *Controller) Slides() []deck.Slide {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slides
}

// Snapshot is the navigation state together with the slide and scene it
// points at, taken under one lock.
type Snapshot struct {
	State
	SlideCount int
	Slide      *deck.Slide // nil for an empty deck
	Scene      *deck.Scene // nil when the slide has no scenes
}

// Snapshot returns the current state with its slide and scene. Renderers
// should resolve a whole frame against one snapshot.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:      c.state,
		SlideCount: len(c.slides),
		Slide:      c.slideAt(c.state.SlideIndex),
		Scene:      c.sceneAt(c.state.SlideIndex, c.state.SceneIndex),
	}
}

// ItemVisibility resolves a widget against the snapshot's step
func (s Snapshot) ItemVisibility(itemID string) engine.Visibility {
	return engine.ItemVisibility(itemID, s.Scene, s.StepIndex, s.TotalSteps)
}

// ExpandedCard is the card the renderer should show expanded
func (s Snapshot) ExpandedCard() string {
	return engine.EffectiveExpandedCard(s.Scene, s.StepIndex, s.TotalSteps, s.ExpandedCardID)
}

// Narration returns the script text for the snapshot's step
func (s Snapshot) Narration(scripts []deck.Script) string {
	if s.Slide == nil {
		return ""
	}
	return engine.Narration(scripts, s.Slide.ID, s.Scene, s.StepIndex, s.TotalSteps)
}

// CurrentSlide returns the slide being shown, or nil for an empty deck
func (c *Controller) CurrentSlide() *deck.Slide {
	return c.Snapshot().Slide
}

// CurrentScene returns the scene being shown, or nil when the slide has none
func (c *Controller) CurrentScene() *deck.Scene {
	return c.Snapshot().Scene
}

// Stats returns navigation counters
func (c *Controller) Stats() Stats {
	return c.stats.snapshot()
}

// ItemVisibility resolves a widget against the current step
func (c *Controller) ItemVisibility(itemID string) engine.Visibility {
	return c.Snapshot().ItemVisibility(itemID)
}

// EffectiveExpandedCard is the card the renderer should show expanded
func (c *Controller) EffectiveExpandedCard() string {
	return c.Snapshot().ExpandedCard()
}

// Narration returns the script text for the current step
func (c *Controller) Narration(scripts []deck.Script) string {
	return c.Snapshot().Narration(scripts)
}

// Advance moves one step forward, crossing into the next scene or slide at
// boundaries. It is a no-op on the last step of the last slide.
func (c *Controller) Advance() {
	if c.mutate(c.advance) {
		c.stats.advances.Inc()
	}
}

// Retreat moves one step back. Crossing a boundary lands on step 0 of the
// previous scene, or scene 0 of the previous slide, unless
// RetreatToLastStep is set.
func (c *Controller) Retreat() {
	if c.mutate(c.retreat) {
		c.stats.retreats.Inc()
	}
}

// JumpToSlide shows slide i from its first scene. Out of range is a no-op.
func (c *Controller) JumpToSlide(i int) {
	c.mutate(func(s *State) {
		if i < 0 || i >= len(c.slides) {
			return
		}
		s.SlideIndex = i
		s.SceneIndex = 0
		s.StepIndex = 0
		s.ExpandedCardID = ""
	})
}

// JumpToScene switches to the first scene other than the current one that
// widgetID activates. Unknown widgets are no-ops.
func (c *Controller) JumpToScene(widgetID string) {
	c.mutate(func(s *State) {
		slide := c.slideAt(s.SlideIndex)
		if slide == nil {
			return
		}
		i := engine.OtherSceneActivatedBy(slide.Scenes, s.SceneIndex, widgetID)
		if i < 0 {
			return
		}
		s.SceneIndex = i
		s.StepIndex = 0
	})
}

// TogglePlay starts or stops auto-play
func (c *Controller) TogglePlay() {
	c.mutate(func(s *State) {
		s.IsPlaying = !s.IsPlaying
	})
}

// SetPlaying starts or stops auto-play
func (c *Controller) SetPlaying(playing bool) {
	c.mutate(func(s *State) {
		s.IsPlaying = playing
	})
}

// CollapseCard clears the expanded card
func (c *Controller) CollapseCard() {
	c.mutate(func(s *State) {
		s.ExpandedCardID = ""
	})
}

// HandleItemClick resolves a click on widgetID and applies the decision
func (c *Controller) HandleItemClick(widgetID string) engine.Action {
	c.stats.clicks.Inc()

	var action engine.Action
	c.mutate(func(s *State) {
		slide := c.slideAt(s.SlideIndex)
		scene := c.sceneAt(s.SlideIndex, s.SceneIndex)
		if slide == nil || scene == nil {
			action = engine.NoOp
			return
		}

		action = engine.ResolveClick(
			widgetID,
			slide.Scenes,
			s.SceneIndex,
			scene.Layer.EnterBehavior,
			scene.Layer.InteractionBehaviors,
			s.ExpandedCardID,
		)

		switch action.Kind {
		case engine.ActionJumpScene:
			s.SceneIndex = action.SceneIndex
			s.StepIndex = 0
		case engine.ActionToggleExpand:
			s.ExpandedCardID = action.ExpandedCardID
		}
	})

	c.log.Debug("click", "widget", widgetID, "action", action.Kind.String())
	return action
}

// Reload replaces the slides, e.g. after the deck file was edited.
// Indices are clamped into the new content. The expanded card is dropped
// when a different scene now sits at the current position, and the timer
// is always rearmed since the step duration may have changed.
func (c *Controller) Reload(slides []deck.Slide) {
	c.mu.Lock()
	prevSceneID := sceneID(c.sceneAt(c.state.SlideIndex, c.state.SceneIndex))

	prev := c.state
	next := prev
	c.slides = slides
	next.SlideIndex = clamp(next.SlideIndex, 0, len(slides)-1)
	if slide := c.slideAt(next.SlideIndex); slide != nil {
		next.SceneIndex = clamp(next.SceneIndex, 0, len(slide.Scenes)-1)
	} else {
		next.SceneIndex = 0
	}
	scene := c.sceneAt(next.SlideIndex, next.SceneIndex)
	next.StepIndex = clamp(next.StepIndex, 0, engine.SceneSteps(scene)-1)
	if sceneID(scene) != prevSceneID {
		next.ExpandedCardID = ""
	}

	c.commit(prev, next)
	c.rearm()
	c.log.Info("slides reloaded", "slides", len(slides))

	// content changed even when the indices did not
	c.unlockAndNotify(true)
}

// Subscribe registers fn to be called after every state change. Calls
// happen outside the controller lock, so fn may call back into the
// controller. fn never runs concurrently with itself and never sees an
// older state after a newer one; a state committed while fn is busy is
// delivered once it returns, possibly from the committing goroutine of an
// earlier change. The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	sub := &subscription{fn: fn}

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = sub
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		sub.remove()
	}
}

// Close stops auto-play and cancels the pending timer. The controller
// still answers queries afterwards but never arms another timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.disarm()
}

// mutate runs fn on a copy of the state and commits the result.
// It reports whether the state changed.
func (c *Controller) mutate(fn func(s *State)) bool {
	c.mu.Lock()
	prev := c.state
	next := prev
	fn(&next)
	changed := c.commit(prev, next)
	c.unlockAndNotify(changed)
	return changed
}

// unlockAndNotify releases mu and, when changed, hands the committed state
// to every subscriber. Snapshots carry a sequence number taken under mu so
// racing inputs reach each subscriber in commit order. Caller holds mu.
func (c *Controller) unlockAndNotify(changed bool) {
	if !changed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq, snapshot := c.seq, c.state
	subs := c.subscribers()
	c.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(seq, snapshot)
	}
}

// commit installs next and keeps the timer in step with it. Caller holds mu.
func (c *Controller) commit(prev, next State) bool {
	if next.SlideIndex != prev.SlideIndex || next.SceneIndex != prev.SceneIndex {
		next.ExpandedCardID = ""
	}
	next.TotalSteps = engine.SceneSteps(c.sceneAt(next.SlideIndex, next.SceneIndex))
	c.state = next

	if next == prev {
		return false
	}

	if next.SlideIndex != prev.SlideIndex ||
		next.SceneIndex != prev.SceneIndex ||
		next.StepIndex != prev.StepIndex ||
		next.TotalSteps != prev.TotalSteps ||
		next.IsPlaying != prev.IsPlaying {
		c.rearm()
	}

	c.log.Debug("navigation",
		"slide", next.SlideIndex,
		"scene", next.SceneIndex,
		"step", next.StepIndex,
		"total_steps", next.TotalSteps,
		"playing", next.IsPlaying,
		"expanded", next.ExpandedCardID,
	)
	return true
}

// rearm cancels the outstanding timer and, while playing, arms a fresh one.
// Caller holds mu.
func (c *Controller) rearm() {
	c.disarm()
	if !c.state.IsPlaying || c.closed {
		return
	}

	h := &timerHandle{}
	c.timer = h
	h.t = c.clock.AfterFunc(c.stepDuration(), func() { c.onTimer(h) })
}

func (c *Controller) disarm() {
	if c.timer != nil {
		c.timer.stop()
		c.timer = nil
	}
}

func (c *Controller) onTimer(h *timerHandle) {
	c.mu.Lock()
	if c.timer != h || c.closed {
		// cancelled after it had already fired
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.stats.timerFires.Inc()

	prev := c.state
	next := prev
	c.advance(&next)
	if next == prev {
		next.IsPlaying = false
		c.log.Info("playback reached the end of the deck")
	} else {
		c.stats.advances.Inc()
	}
	changed := c.commit(prev, next)
	c.unlockAndNotify(changed)
}

func (c *Controller) advance(s *State) {
	if len(c.slides) == 0 {
		return
	}
	switch {
	case s.StepIndex < s.TotalSteps-1:
		s.StepIndex++
	case s.SceneIndex < len(c.slides[s.SlideIndex].Scenes)-1:
		s.SceneIndex++
		s.StepIndex = 0
	case s.SlideIndex < len(c.slides)-1:
		s.SlideIndex++
		s.SceneIndex = 0
		s.StepIndex = 0
	}
}

func (c *Controller) retreat(s *State) {
	if len(c.slides) == 0 {
		return
	}
	switch {
	case s.StepIndex > 0:
		s.StepIndex--
	case s.SceneIndex > 0:
		s.SceneIndex--
		s.StepIndex = 0
		if c.opts.RetreatToLastStep {
			s.StepIndex = engine.SceneSteps(c.sceneAt(s.SlideIndex, s.SceneIndex)) - 1
		}
	case s.SlideIndex > 0:
		s.SlideIndex--
		s.SceneIndex = 0
		s.StepIndex = 0
		if c.opts.RetreatToLastStep {
			if n := len(c.slides[s.SlideIndex].Scenes); n > 0 {
				s.SceneIndex = n - 1
			}
			s.StepIndex = engine.SceneSteps(c.sceneAt(s.SlideIndex, s.SceneIndex)) - 1
		}
	}
}

func (c *Controller) stepDuration() time.Duration {
	scene := c.sceneAt(c.state.SlideIndex, c.state.SceneIndex)
	if scene == nil || scene.Layer.EnterBehavior.StepDuration <= 0 {
		return c.opts.DefaultStepDuration
	}
	return time.Duration(scene.Layer.EnterBehavior.StepDuration) * time.Millisecond
}

func (c *Controller) slideAt(i int) *deck.Slide {
	if i < 0 || i >= len(c.slides) {
		return nil
	}
	return &c.slides[i]
}

func (c *Controller) sceneAt(slide, scene int) *deck.Scene {
	return c.slideAt(slide).Scene(scene)
}

func (c *Controller) subscribers() []*subscription {
	subs := make([]*subscription, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	return subs
}

func sceneID(scene *deck.Scene) string {
	if scene == nil {
		return ""
	}
	return scene.ID
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
