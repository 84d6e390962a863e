package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestEnglish(t *testing.T) {
	l := New("en-US")
	if l.Language() != language.English {
		t.Errorf("Expected English, got %v", l.Language())
	}
	got := l.T("SlidePosition", map[string]any{"Slide": 2, "Slides": 5})
	if got != "Slide 2/5" {
		t.Errorf("Unexpected translation: %q", got)
	}
}

func TestRussian(t *testing.T) {
	l := New("ru")
	if got := l.T("Paused", nil); got != "Пауза" {
		t.Errorf("Unexpected translation: %q", got)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	l := New("xx")
	if got := l.T("Playing", nil); got != "Playing" {
		t.Errorf("Unexpected translation: %q", got)
	}
	if got := l.T("NoSuchMessage", nil); got != "NoSuchMessage" {
		t.Errorf("Unknown id should be returned as-is, got %q", got)
	}
}
