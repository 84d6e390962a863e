// Package locale provides the player's translated status strings
package locale

import (
	"embed"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var files embed.FS

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

// Localizer translates message ids for one language
type Localizer struct {
	loc *i18n.Localizer
	tag language.Tag
}

// New returns a localizer for the closest supported language.
// Unknown languages get English.
func New(lang string) *Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, _ := files.ReadDir("locales")
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := files.ReadFile(name)
		if err != nil {
			continue
		}
		_, _ = bundle.ParseMessageFileBytes(data, name)
	}

	tag, _, _ := matcher.Match(language.Make(lang))
	base, _ := tag.Base()

	return &Localizer{
		loc: i18n.NewLocalizer(bundle, base.String()),
		tag: language.Make(base.String()),
	}
}

// Language returns the language actually in use
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T translates id with optional template data. Unknown ids come back as-is.
func (l *Localizer) T(id string, data map[string]any) string {
	text, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return text
}
