package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

// ArenaCard is one arena prepared for display.
type ArenaCard struct {
	ID          int64
	Name        string
	Type        string
	Shape       string
	Surface     string
	Length      string
	Lanes       int
	Disciplines []string
}

// ArenasView holds data for the arenas page.
type ArenasView struct {
	Arenas []ArenaCard
}

// ArenasContent renders the arena cards.
func ArenasContent(page PageContext, view ArenasView) templ.Component {
	return component(func(h *htmlWriter) {
		h.elem("h1", T(page.Loc, "arenas.heading"))
		h.open("div", a("class", "arena-grid"))
		for _, arena := range view.Arenas {
			h.open("article", a("class", "arena-card"), a("data-arena-id", strconv.FormatInt(arena.ID, 10)))
			h.elem("h2", arena.Name)
			h.open("table")
			h.open("tbody")
			arenaRow(h, T(page.Loc, "arenas.field.type"), arena.Type)
			arenaRow(h, T(page.Loc, "arenas.field.shape"), arena.Shape)
			arenaRow(h, T(page.Loc, "arenas.field.surface"), arena.Surface)
			arenaRow(h, T(page.Loc, "arenas.field.length"), T(page.Loc, "arenas.length_value", arena.Length))
			arenaRow(h, T(page.Loc, "arenas.field.lanes"), strconv.Itoa(arena.Lanes))
			h.close("tbody")
			h.close("table")
			h.elem("h3", T(page.Loc, "arenas.field.disciplines")+":")
			h.open("ul")
			for _, name := range arena.Disciplines {
				h.elem("li", name)
			}
			h.close("ul")
			h.close("article")
		}
		h.close("div")
	})
}

// ArenasPage renders the full arenas page.
func ArenasPage(page PageContext, view ArenasView) templ.Component {
	return Layout(page, T(page.Loc, "arenas.heading"), ArenasContent(page, view))
}

func arenaRow(h *htmlWriter, label, value string) {
	h.open("tr")
	h.elem("th", label+":", a("scope", "row"))
	h.elem("td", value)
	h.close("tr")
}
