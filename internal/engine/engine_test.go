package engine

import (
	"testing"

	"github.com/ivlev/scenedeck/internal/deck"
)

func sequentialScene(ids ...string) *deck.Scene {
	return &deck.Scene{
		ID: "seq",
		Layer: deck.WidgetStateLayer{
			EnterBehavior:     deck.EnterBehavior{RevealMode: deck.RevealSequential},
			AnimatedWidgetIDs: ids,
		},
	}
}

func allAtOnceScene(ids ...string) *deck.Scene {
	scene := sequentialScene(ids...)
	scene.Layer.EnterBehavior.RevealMode = deck.RevealAllAtOnce
	return scene
}

func TestSceneSteps(t *testing.T) {
	withOverview := sequentialScene("a", "b", "c")
	withOverview.Layer.EnterBehavior.IncludeOverviewStep = true

	overviewIgnored := allAtOnceScene("a", "b")
	overviewIgnored.Layer.EnterBehavior.IncludeOverviewStep = true

	withExit := sequentialScene("a", "b")
	withExit.Layer.ExitBehavior = &deck.ExitBehavior{RevealMode: deck.RevealAllAtOnce}

	both := sequentialScene("a", "b")
	both.Layer.EnterBehavior.IncludeOverviewStep = true
	both.Layer.ExitBehavior = &deck.ExitBehavior{}

	tests := []struct {
		name  string
		scene *deck.Scene
		want  int
	}{
		{"nil scene", nil, 1},
		{"no animated widgets", sequentialScene(), 1},
		{"plain sequential", sequentialScene("a", "b", "c"), 3},
		{"overview", withOverview, 4},
		{"overview only for sequential", overviewIgnored, 2},
		{"exit", withExit, 3},
		{"overview and exit", both, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SceneSteps(tt.scene); got != tt.want {
				t.Errorf("SceneSteps = %d, want %d", got, tt.want)
			}
		})
	}
}

type vis = Visibility

func expectVisibility(t *testing.T, scene *deck.Scene, step int, want map[string]vis) {
	t.Helper()
	total := SceneSteps(scene)
	for id, w := range want {
		if got := ItemVisibility(id, scene, step, total); got != w {
			t.Errorf("step %d widget %s: got %+v, want %+v", step, id, got, w)
		}
	}
}

func TestSequentialReveal(t *testing.T) {
	scene := sequentialScene("a", "b", "c")

	expectVisibility(t, scene, 0, map[string]vis{
		"a": {Visible: true, IsFocused: true},
		"b": {},
		"c": {},
	})
	expectVisibility(t, scene, 1, map[string]vis{
		"a": {Visible: true},
		"b": {Visible: true, IsFocused: true},
		"c": {},
	})
	expectVisibility(t, scene, 2, map[string]vis{
		"a": {Visible: true},
		"b": {Visible: true},
		"c": {Visible: true, IsFocused: true},
	})
}

func TestSequentialRevealWithOverview(t *testing.T) {
	scene := sequentialScene("a", "b", "c")
	scene.Layer.EnterBehavior.IncludeOverviewStep = true
	if total := SceneSteps(scene); total != 4 {
		t.Fatalf("Expected 4 steps, got %d", total)
	}

	expectVisibility(t, scene, 0, map[string]vis{
		"a": {Visible: true},
		"b": {Visible: true},
		"c": {Visible: true},
	})
	expectVisibility(t, scene, 1, map[string]vis{
		"a": {Visible: true, IsFocused: true},
		"b": {},
		"c": {},
	})
	expectVisibility(t, scene, 3, map[string]vis{
		"a": {Visible: true},
		"b": {Visible: true},
		"c": {Visible: true, IsFocused: true},
	})
}

func TestAllAtOnceReveal(t *testing.T) {
	scene := allAtOnceScene("a", "b")

	expectVisibility(t, scene, 0, map[string]vis{"a": {}, "b": {}})
	expectVisibility(t, scene, 1, map[string]vis{
		"a": {Visible: true},
		"b": {Visible: true},
	})

	single := allAtOnceScene("only")
	expectVisibility(t, single, 0, map[string]vis{"only": {Visible: true}})
}

func TestExitStepShowsEverything(t *testing.T) {
	for _, scene := range []*deck.Scene{sequentialScene("a", "b", "c"), allAtOnceScene("a", "b", "c")} {
		scene.Layer.ExitBehavior = &deck.ExitBehavior{RevealMode: deck.RevealAllAtOnce}
		scene.Layer.InitialStates = []deck.InitialState{{WidgetID: "x", Visible: false, DisplayMode: deck.DisplayHidden}}

		total := SceneSteps(scene)
		if total != 4 {
			t.Fatalf("Expected 4 steps, got %d", total)
		}
		for _, id := range []string{"a", "b", "c", "x", "unknown"} {
			if got := ItemVisibility(id, scene, total-1, total); got != (vis{Visible: true}) {
				t.Errorf("%s exit step %s: got %+v", scene.Layer.EnterBehavior.RevealMode, id, got)
			}
		}
	}
}

func TestInitialStatesAndUnknownWidgets(t *testing.T) {
	scene := sequentialScene("a")
	scene.Layer.InitialStates = []deck.InitialState{
		{WidgetID: "logo", Visible: true, IsFocused: true},
		{WidgetID: "gone", Visible: false, DisplayMode: deck.DisplayHidden},
		{WidgetID: "ghost", Visible: false, DisplayMode: deck.DisplayNormal},
		{WidgetID: "a", Visible: false, DisplayMode: deck.DisplayHidden},
	}

	expectVisibility(t, scene, 0, map[string]vis{
		"logo":    {Visible: true, IsFocused: true},
		"gone":    {Hidden: true},
		"ghost":   {},
		"a":       {Visible: true, IsFocused: true}, // animation wins over initial state
		"missing": DefaultVisibility,
	})

	if got := ItemVisibility("anything", nil, 3, 1); got != DefaultVisibility {
		t.Errorf("nil scene: got %+v", got)
	}
}

func TestVisibilityIsPureAndMonotonic(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	scene := sequentialScene(ids...)
	total := SceneSteps(scene)

	prevVisible := 0
	for step := 0; step < total; step++ {
		visible, focused := 0, 0
		for _, id := range ids {
			first := ItemVisibility(id, scene, step, total)
			second := ItemVisibility(id, scene, step, total)
			if first != second {
				t.Fatalf("Non-deterministic result for %s at step %d", id, step)
			}
			if first.Visible {
				visible++
			}
			if first.IsFocused {
				focused++
			}
		}
		if visible < prevVisible {
			t.Errorf("Visible set shrank at step %d: %d < %d", step, visible, prevVisible)
		}
		if focused != 1 {
			t.Errorf("Expected exactly one focused widget at step %d, got %d", step, focused)
		}
		prevVisible = visible
	}
}

func TestFocusedWidget(t *testing.T) {
	scene := sequentialScene("a", "b")
	scene.Layer.EnterBehavior.IncludeOverviewStep = true
	total := SceneSteps(scene)

	if got := FocusedWidget(scene, 0, total); got != "" {
		t.Errorf("Overview step should focus nothing, got %q", got)
	}
	if got := FocusedWidget(scene, 2, total); got != "b" {
		t.Errorf("Expected b focused, got %q", got)
	}
}
