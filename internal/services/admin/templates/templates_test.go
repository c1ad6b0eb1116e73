package templates

import (
	"strings"
	"testing"

	admini18n "github.com/louisbranch/athletics.space/internal/services/admin/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

func englishPage(path string) PageContext {
	return PageContext{
		Lang:        "en-US",
		Loc:         admini18n.Printer(admini18n.Default()),
		CurrentPath: path,
	}
}

func sampleRows() []EventRow {
	return []EventRow{
		{ID: 1, Date: "2024-05-01", StartTime: "10:00", DurationMinutes: 30, Arena: "Main Stadium", Discipline: "100m Run", Gender: "Male", AgeGroup: "Adult", MaxParticipants: 20},
		{ID: 2, Date: "2024-05-02", StartTime: "11:00", DurationMinutes: 45, Arena: "Aquatics Centre", Discipline: "50m Butterfly", Gender: "Female", AgeGroup: "Junior", MaxParticipants: 8},
		{ID: 3, Date: "2024-05-03", StartTime: "12:00", DurationMinutes: 60, Arena: "Main Stadium", Discipline: "Long Jump", Gender: "Female", AgeGroup: "Senior", MaxParticipants: 12},
	}
}

func TestLayoutWrapsContentInMain(t *testing.T) {
	page := englishPage("/arenas")
	out := renderString(t, Layout(page, "Arenas", HomeContent(page)))
	doc := parseHTML(t, out)

	mains := findAll(doc, tagIs("main"))
	require.Len(t, mains, 1)
	id, _ := attrValue(mains[0], "id")
	assert.Equal(t, "main", id)
	assert.Equal(t, "Home", textOf(mains[0]))

	current := findAll(doc, func(n *html.Node) bool {
		v, ok := attrValue(n, "aria-current")
		return n.Data == "a" && ok && v == "page"
	})
	require.Len(t, current, 1)
	href, _ := attrValue(current[0], "href")
	assert.Equal(t, "/arenas", href)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestLanguageOptions(t *testing.T) {
	page := englishPage("/events")
	page.CurrentQuery = "discipline=Long+Jump&lang=en-US"

	opts := LanguageOptions(page)
	require.Len(t, opts, 2)
	assert.True(t, opts[0].Active)
	assert.Equal(t, "English", opts[0].Label)
	assert.Equal(t, "Dansk", opts[1].Label)
	assert.Equal(t, "/events?discipline=Long+Jump&lang=da-DK", opts[1].URL)
	assert.Equal(t, "/?lang=da-DK", LanguageURL(PageContext{}, language.MustParse("da-DK")))
}

func TestArenasContentRendersOneCardPerArena(t *testing.T) {
	view := ArenasView{Arenas: []ArenaCard{
		{ID: 1, Name: "Main Stadium", Type: "Outdoor", Shape: "Oval", Surface: "Tartan", Length: "400", Lanes: 8, Disciplines: []string{"100m Run", "Long Jump"}},
		{ID: 2, Name: "Pool <A>", Type: "Indoor", Shape: "Rectangular", Surface: "Water", Length: "50.5", Lanes: 10, Disciplines: []string{"50m Butterfly"}},
	}}
	out := renderString(t, ArenasContent(englishPage("/arenas"), view))
	doc := parseHTML(t, out)

	cards := findAll(doc, func(n *html.Node) bool { return hasClass(n, "arena-card") })
	require.Len(t, cards, 2)
	assert.Contains(t, textOf(cards[0]), "400 meters")
	assert.Contains(t, textOf(cards[1]), "50.5 meters")
	assert.Len(t, findAll(cards[0], tagIs("li")), 2)
	assert.Contains(t, out, "Pool &lt;A&gt;")
}

func TestArenasContentEmpty(t *testing.T) {
	doc := parseHTML(t, renderString(t, ArenasContent(englishPage("/arenas"), ArenasView{})))
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return hasClass(n, "arena-card") }))
}

func TestEventsTableRowsAndColumns(t *testing.T) {
	view := EventsView{Discipline: "100m Run", Rows: sampleRows()}
	doc := parseHTML(t, renderString(t, EventsTable(englishPage("/events"), view)))

	headers := findAll(doc, tagIs("th"))
	var labels []string
	for _, th := range headers {
		labels = append(labels, textOf(th))
	}
	assert.Equal(t, []string{"Date", "Start Time", "Duration", "Arena", "Discipline", "Gender", "Age Group", "Max Participants", "Actions"}, labels)

	rows := findAll(doc, func(n *html.Node) bool {
		_, ok := attrValue(n, "data-event-id")
		return n.Data == "tr" && ok
	})
	require.Len(t, rows, 3)

	forms := findAll(rows[1], tagIs("form"))
	require.Len(t, forms, 1)
	action, _ := attrValue(forms[0], "action")
	assert.Equal(t, "/events/2/delete", action)

	links := findAll(rows[1], tagIs("a"))
	require.Len(t, links, 1)
	href, _ := attrValue(links[0], "href")
	assert.Equal(t, "/events?discipline=100m+Run&edit=2", href)
}

func TestEventsContentFilterAndToolbar(t *testing.T) {
	view := EventsView{
		Discipline: "all",
		Filters: []SelectOption{
			{Value: "all", Label: "All", Selected: true},
			{Value: "100m Run", Label: "100m Run"},
		},
		Rows: sampleRows(),
	}
	doc := parseHTML(t, renderString(t, EventsContent(englishPage("/events"), view)))

	selects := findAll(doc, func(n *html.Node) bool {
		id, _ := attrValue(n, "id")
		return n.Data == "select" && id == "disciplineFilter"
	})
	require.Len(t, selects, 1)
	hxGet, _ := attrValue(selects[0], "hx-get")
	assert.Equal(t, "/events/table", hxGet)
	assert.Len(t, findAll(selects[0], tagIs("option")), 2)

	toolbar := findAll(doc, func(n *html.Node) bool {
		id, _ := attrValue(n, "id")
		return id == EventsToolbarID
	})
	require.Len(t, toolbar, 1)
	assert.Equal(t, "Create event", textOf(toolbar[0]))
	assert.Empty(t, findAll(doc, tagIs("dialog")))
}

func TestEventsContentCreateOpenShowsCancelAndForm(t *testing.T) {
	view := EventsView{
		Discipline: "all",
		CreateOpen: true,
		Form: &EventFormView{
			Mode:      FormModeCreate,
			Prompts:   true,
			Arenas:    []SelectOption{{Value: "1", Label: "Main Stadium"}},
			Genders:   []SelectOption{{Value: "Male", Label: "Male"}, {Value: "Female", Label: "Female"}},
			AgeGroups: []SelectOption{{Value: "Junior", Label: "Junior"}},
		},
		Alert: "Please fill out all fields.",
	}
	doc := parseHTML(t, renderString(t, EventsContent(englishPage("/events"), view)))

	toolbar := findAll(doc, func(n *html.Node) bool {
		id, _ := attrValue(n, "id")
		return id == EventsToolbarID
	})
	require.Len(t, toolbar, 1)
	assert.Equal(t, "Cancel", textOf(toolbar[0]))

	forms := findAll(doc, func(n *html.Node) bool {
		id, _ := attrValue(n, "id")
		return n.Data == "form" && id == EventFormID
	})
	require.Len(t, forms, 1)
	action, _ := attrValue(forms[0], "action")
	assert.Equal(t, "/events", action)

	dialogs := findAll(doc, tagIs("dialog"))
	require.Len(t, dialogs, 1)
	role, _ := attrValue(dialogs[0], "role")
	assert.Equal(t, "alertdialog", role)
	_, open := attrValue(dialogs[0], "open")
	assert.True(t, open)
	assert.Contains(t, textOf(dialogs[0]), "Please fill out all fields.")

	script := dialogs[0].NextSibling
	require.NotNil(t, script)
	require.Equal(t, "script", script.Data)
	assert.Contains(t, textOf(script), `getElementById("`+AlertDialogID+`")`)
	assert.Contains(t, textOf(script), "showModal()")
}

func TestEventFormPrompts(t *testing.T) {
	base := EventFormView{
		Genders:   []SelectOption{{Value: "Male", Label: "Male", Selected: true}, {Value: "Female", Label: "Female"}},
		AgeGroups: []SelectOption{{Value: "Junior", Label: "Junior"}, {Value: "Adult", Label: "Adult", Selected: true}, {Value: "Senior", Label: "Senior"}},
	}

	create := base
	create.Mode, create.Prompts = FormModeCreate, true
	edit := base
	edit.Mode, edit.EventID = FormModeEdit, 9

	genderOptions := func(form EventFormView) []*html.Node {
		doc := parseHTML(t, renderString(t, EventForm(englishPage("/events"), form)))
		selects := findAll(doc, func(n *html.Node) bool {
			name, _ := attrValue(n, "name")
			return n.Data == "select" && name == "participantGender"
		})
		require.Len(t, selects, 1)
		return findAll(selects[0], tagIs("option"))
	}

	assert.Len(t, genderOptions(create), 3)
	editOpts := genderOptions(edit)
	require.Len(t, editOpts, 2)
	_, selected := attrValue(editOpts[0], "selected")
	assert.True(t, selected)

	doc := parseHTML(t, renderString(t, EventForm(englishPage("/events"), edit)))
	forms := findAll(doc, tagIs("form"))
	require.Len(t, forms, 1)
	action, _ := attrValue(forms[0], "action")
	assert.Equal(t, "/events/9", action)
}

func TestEventFormArenaSelectRefreshesForm(t *testing.T) {
	form := EventFormView{Mode: FormModeCreate, Prompts: true, Arenas: []SelectOption{{Value: "1", Label: "Main Stadium"}}}
	doc := parseHTML(t, renderString(t, EventForm(englishPage("/events"), form)))

	arena := findAll(doc, func(n *html.Node) bool {
		name, _ := attrValue(n, "name")
		return n.Data == "select" && name == "arenaId"
	})
	require.Len(t, arena, 1)
	hxGet, _ := attrValue(arena[0], "hx-get")
	assert.Equal(t, "/events/form", hxGet)
	swap, _ := attrValue(arena[0], "hx-swap")
	assert.Equal(t, "outerHTML", swap)
}

func TestEventsTableFragmentCarriesOutOfBandSwaps(t *testing.T) {
	view := EventsView{Discipline: "Long Jump", Rows: sampleRows()[:1], Form: &EventFormView{Mode: FormModeCreate}, CreateOpen: true}
	out := renderString(t, EventsTableFragment(englishPage("/events"), view))
	doc := parseHTML(t, out)

	oob := findAll(doc, func(n *html.Node) bool {
		_, ok := attrValue(n, "hx-swap-oob")
		return ok
	})
	require.Len(t, oob, 2)
	value, _ := attrValue(oob[1], "value")
	assert.Equal(t, "Long Jump", value)
	assert.Len(t, findAll(doc, func(n *html.Node) bool {
		_, ok := attrValue(n, "data-event-id")
		return ok
	}), 1)
}
