package deck

// Deck is a complete presentation: ordered slides plus narration scripts
type Deck struct {
	Version string   `yaml:"version"`
	Title   string   `yaml:"title,omitempty"`
	Slides  []Slide  `yaml:"slides"`
	Scripts []Script `yaml:"scripts,omitempty"`
}

// Slide is an ordered container of content items and the scenes that animate them
type Slide struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title,omitempty"`
	Items  []Item  `yaml:"items,omitempty"`
	Scenes []Scene `yaml:"scenes,omitempty"`
}

// Item is a node of the slide content tree. Its ID is the widget id.
type Item struct {
	ID       string `yaml:"id"`
	Kind     string `yaml:"kind,omitempty"` // "heading", "text", "card", "menu", "image", "qr"
	Text     string `yaml:"text,omitempty"`
	Detail   string `yaml:"detail,omitempty"` // shown while the item is the expanded card
	Children []Item `yaml:"children,omitempty"`
}

// Item kinds understood by the bundled renderer
const (
	KindHeading = "heading"
	KindText    = "text"
	KindCard    = "card"
	KindMenu    = "menu"
	KindImage   = "image"
	KindQR      = "qr"
)

// TriggerMode says whether a scene advances on its own or waits for a click
type TriggerMode string

const (
	TriggerAuto  TriggerMode = "auto"
	TriggerClick TriggerMode = "click"
)

// RevealMode selects how animated widgets appear within a scene
type RevealMode string

const (
	RevealSequential RevealMode = "sequential"
	RevealAllAtOnce  RevealMode = "all-at-once"
)

// DisplayMode is the resting presentation of a widget
type DisplayMode string

const (
	DisplayNormal   DisplayMode = "normal"
	DisplayHidden   DisplayMode = "hidden"
	DisplayExpanded DisplayMode = "expanded"
	DisplayDetail   DisplayMode = "detail"
)

// InteractionAction is what a click on a widget does
type InteractionAction string

const (
	ActionToggleExpand InteractionAction = "toggle-expand"
	ActionShowDetail   InteractionAction = "show-detail"
)

// DefaultStepDuration is used when a scene does not set stepDuration (ms)
const DefaultStepDuration = 1500

// Scene is one animation phase of a slide
type Scene struct {
	ID                   string           `yaml:"id"`
	Order                int              `yaml:"order"`
	ActivatedByWidgetIDs []string         `yaml:"activatedByWidgetIds,omitempty"`
	TriggerMode          TriggerMode      `yaml:"triggerMode,omitempty"`
	Layer                WidgetStateLayer `yaml:"widgetStateLayer"`
}

// WidgetStateLayer is the animation contract for a scene
type WidgetStateLayer struct {
	InitialStates        []InitialState        `yaml:"initialStates,omitempty"`
	EnterBehavior        EnterBehavior         `yaml:"enterBehavior"`
	ExitBehavior         *ExitBehavior         `yaml:"exitBehavior,omitempty"`
	InteractionBehaviors []InteractionBehavior `yaml:"interactionBehaviors,omitempty"`
	AnimatedWidgetIDs    []string              `yaml:"animatedWidgetIds,omitempty"` // reveal order
}

// InitialState is the resting state of a widget that is not animating
type InitialState struct {
	WidgetID    string      `yaml:"widgetId"`
	Visible     bool        `yaml:"visible"`
	IsFocused   bool        `yaml:"isFocused"`
	DisplayMode DisplayMode `yaml:"displayMode,omitempty"`
}

// EnterBehavior describes how the scene's widgets are revealed
type EnterBehavior struct {
	RevealMode          RevealMode  `yaml:"revealMode"`
	AnimationType       string      `yaml:"animationType,omitempty"`
	Duration            int         `yaml:"duration,omitempty"` // ms
	Easing              string      `yaml:"easing,omitempty"`
	TriggerMode         TriggerMode `yaml:"triggerMode,omitempty"`
	StepDuration        int         `yaml:"stepDuration,omitempty"` // ms, 0 means DefaultStepDuration
	IncludeOverviewStep bool        `yaml:"includeOverviewStep,omitempty"`
}

// ExitBehavior adds one trailing exit step when present
type ExitBehavior struct {
	RevealMode    RevealMode `yaml:"revealMode"`
	AnimationType string     `yaml:"animationType,omitempty"`
	Duration      int        `yaml:"duration,omitempty"`
	Easing        string     `yaml:"easing,omitempty"`
}

// InteractionBehavior maps a click on an animated widget to an action
type InteractionBehavior struct {
	Trigger             string            `yaml:"trigger"` // only "click"
	Action              InteractionAction `yaml:"action"`
	TargetDisplayMode   DisplayMode       `yaml:"targetDisplayMode,omitempty"`
	Exclusive           bool              `yaml:"exclusive"`
	AvailableInAutoMode bool              `yaml:"availableInAutoMode"`
}

// Script is narration text for a slide element. An empty ElementID
// applies to the slide as a whole.
type Script struct {
	SlideID   string `yaml:"slideId"`
	ElementID string `yaml:"elementId,omitempty"`
	Text      string `yaml:"text"`
}

// StepDurationMs returns the auto-advance delay for the scene
func (s *Scene) StepDurationMs() int {
	if s == nil || s.Layer.EnterBehavior.StepDuration <= 0 {
		return DefaultStepDuration
	}
	return s.Layer.EnterBehavior.StepDuration
}

// ActivatedBy reports whether widgetID jumps directly to this scene
func (s *Scene) ActivatedBy(widgetID string) bool {
	for _, id := range s.ActivatedByWidgetIDs {
		if id == widgetID {
			return true
		}
	}
	return false
}

// Scene returns the scene at index i, or nil when out of range
func (sl *Slide) Scene(i int) *Scene {
	if sl == nil || i < 0 || i >= len(sl.Scenes) {
		return nil
	}
	return &sl.Scenes[i]
}
