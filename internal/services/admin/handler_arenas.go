package admin

import (
	"net/http"
	"strconv"

	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
	"github.com/louisbranch/athletics.space/internal/services/admin/templates"
)

// HandleArenasPage renders one card per arena. A failed read leaves the grid
// empty.
func (h *Handler) HandleArenasPage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	list, err := h.backend.ListArenas(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("list arenas")
		list = nil
	}

	page := h.pageContext(w, r)
	view := templates.ArenasView{Arenas: buildArenaCards(list)}
	h.render(w, r, templates.ArenasContent(page, view), templates.ArenasPage(page, view))
}

func buildArenaCards(list []backend.Arena) []templates.ArenaCard {
	cards := make([]templates.ArenaCard, 0, len(list))
	for _, arena := range list {
		names := make([]string, 0, len(arena.Disciplines))
		for _, d := range arena.Disciplines {
			names = append(names, d.Name)
		}
		cards = append(cards, templates.ArenaCard{
			ID:          arena.ID,
			Name:        arena.Name,
			Type:        arena.Type,
			Shape:       arena.Shape,
			Surface:     arena.Surface,
			Length:      strconv.FormatFloat(arena.Length, 'f', -1, 64),
			Lanes:       arena.Lanes,
			Disciplines: names,
		})
	}
	return cards
}
