package templates

import (
	"github.com/a-h/templ"
	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

type navLink struct {
	path string
	key  string
}

var navLinks = []navLink{
	{path: routepath.Root, key: "core.nav.home"},
	{path: routepath.Arenas, key: "core.nav.arenas"},
	{path: routepath.Events, key: "core.nav.events"},
}

// Layout wraps content in the admin page shell. Content lands in
// <main id="main">, the swap target of HTMX navigation.
func Layout(page PageContext, title string, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		h.raw("<!DOCTYPE html>")
		h.open("html", a("lang", lang))
		h.open("head")
		h.open("meta", a("charset", "utf-8"))
		h.open("meta", a("name", "viewport"), a("content", "width=device-width, initial-scale=1"))
		h.elem("title", title+" · "+T(page.Loc, "core.app_name"))
		h.open("link", a("rel", "stylesheet"), a("href", routepath.StaticPrefix+"admin.css"))
		h.open("script", a("src", htmxScriptURL), flag("defer", true))
		h.close("script")
		h.close("head")

		h.open("body")
		h.open("header", a("class", "topbar"))
		h.open("nav", a("aria-label", T(page.Loc, "core.app_name")))
		for _, link := range navLinks {
			h.elem("a", T(page.Loc, link.key),
				a("href", link.path),
				when(page.CurrentPath == link.path, a("aria-current", "page")),
			)
		}
		h.close("nav")
		h.open("ul", a("class", "languages"), a("aria-label", T(page.Loc, "core.language.label")))
		for _, opt := range LanguageOptions(page) {
			h.open("li")
			h.elem("a", opt.Label, a("href", opt.URL), a("hreflang", opt.Tag), when(opt.Active, a("aria-current", "true")))
			h.close("li")
		}
		h.close("ul")
		h.close("header")

		h.open("main", a("id", "main"))
		h.render(content)
		h.close("main")
		h.close("body")
		h.close("html")
	})
}

// HomeContent is the placeholder landing content.
func HomeContent(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		h.elem("h1", T(page.Loc, "home.heading"))
	})
}

// HomePage renders the full landing page.
func HomePage(page PageContext) templ.Component {
	return Layout(page, T(page.Loc, "home.heading"), HomeContent(page))
}
