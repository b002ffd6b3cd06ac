// Package i18n localizes user-facing error messages. Spanish is the default;
// English is served when the Accept-Language header prefers it.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported languages, default first.
var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

// Localizer renders messages in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for tag, falling back to the closest supported language.
func New(tag language.Tag) *Localizer {
	_, idx, _ := matcher.Match(tag)
	return newLocalizer(supported[idx])
}

// Default returns the Spanish localizer.
func Default() *Localizer {
	return newLocalizer(language.Spanish)
}

// FromAcceptLanguage picks the best supported language for an
// Accept-Language header value. Empty or malformed headers yield Spanish.
func FromAcceptLanguage(header string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, _ := matcher.Match(tags...)
	return newLocalizer(supported[idx])
}

func newLocalizer(tag language.Tag) *Localizer {
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag is the language messages are rendered in.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T renders key with args.
func (l *Localizer) T(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}
