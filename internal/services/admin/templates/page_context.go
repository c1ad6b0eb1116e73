package templates

import (
	"net/url"
	"strings"

	admini18n "github.com/louisbranch/athletics.space/internal/services/admin/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or the key if no localizer is available.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if keyString, ok := key.(string); ok {
			return keyString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}

// PageContext provides shared layout context for admin pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions returns the supported languages with the active one marked.
func LanguageOptions(page PageContext) []LanguageOption {
	tags := admini18n.Supported()
	out := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		out = append(out, LanguageOption{
			Tag:    tag.String(),
			Label:  T(page.Loc, "core.language."+base.String()),
			URL:    LanguageURL(page, tag),
			Active: tag.String() == page.Lang,
		})
	}
	return out
}

// LanguageURL returns the current URL with the lang parameter replaced.
func LanguageURL(page PageContext, tag language.Tag) string {
	query, err := url.ParseQuery(page.CurrentQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(admini18n.LangParam, tag.String())
	path := strings.TrimSpace(page.CurrentPath)
	if path == "" {
		path = "/"
	}
	return path + "?" + query.Encode()
}

// SelectOption is one <option> of a select control.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}
