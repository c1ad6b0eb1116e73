// Package eventform holds the string-valued event form draft, its presence
// validation and its conversion into a backend payload.
package eventform

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/athletics.space/internal/platform/errors"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
)

// Form field names, shared by the templates and the handlers.
const (
	FieldArenaID             = "arenaId"
	FieldDisciplineID        = "disciplineId"
	FieldParticipantGender   = "participantGender"
	FieldParticipantAgeGroup = "participantAgeGroup"
	FieldMaxParticipants     = "maxParticipants"
	FieldDate                = "date"
	FieldStartTime           = "startTime"
	FieldDurationMinutes     = "durationMinutes"
)

// Fields lists every required field in form order.
var Fields = []string{
	FieldArenaID,
	FieldDisciplineID,
	FieldParticipantGender,
	FieldParticipantAgeGroup,
	FieldMaxParticipants,
	FieldDate,
	FieldStartTime,
	FieldDurationMinutes,
}

// AlertKey is the localization key of the missing-fields alert.
const AlertKey = "events.alert.missing_fields"

// ErrMissingFields reports a draft with at least one empty field.
var ErrMissingFields = apperrors.EK(apperrors.KindInvalidInput, AlertKey, "missing required event fields")

// Draft is the editable form state before it is parsed into a payload.
type Draft struct {
	ArenaID             string
	DisciplineID        string
	ParticipantGender   string
	ParticipantAgeGroup string
	MaxParticipants     string
	Date                string
	StartTime           string
	DurationMinutes     string
}

// FromValues reads a draft from submitted form or query values.
func FromValues(values url.Values) Draft {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return Draft{
		ArenaID:             get(FieldArenaID),
		DisciplineID:        get(FieldDisciplineID),
		ParticipantGender:   get(FieldParticipantGender),
		ParticipantAgeGroup: get(FieldParticipantAgeGroup),
		MaxParticipants:     get(FieldMaxParticipants),
		Date:                get(FieldDate),
		StartTime:           get(FieldStartTime),
		DurationMinutes:     get(FieldDurationMinutes),
	}
}

// FromEvent seeds a draft from an existing event, resolving the nested
// arena and discipline to their ids.
func FromEvent(ev backend.Event) Draft {
	return Draft{
		ArenaID:             strconv.FormatInt(ev.Arena.ID, 10),
		DisciplineID:        strconv.FormatInt(ev.Discipline.ID, 10),
		ParticipantGender:   string(ev.ParticipantGender),
		ParticipantAgeGroup: string(ev.ParticipantAgeGroup),
		MaxParticipants:     strconv.Itoa(ev.MaximumParticipants),
		Date:                ev.Date,
		StartTime:           ev.StartTime,
		DurationMinutes:     strconv.Itoa(ev.DurationMinutes),
	}
}

// Get returns one field by form name.
func (d Draft) Get(field string) string {
	switch field {
	case FieldArenaID:
		return d.ArenaID
	case FieldDisciplineID:
		return d.DisciplineID
	case FieldParticipantGender:
		return d.ParticipantGender
	case FieldParticipantAgeGroup:
		return d.ParticipantAgeGroup
	case FieldMaxParticipants:
		return d.MaxParticipants
	case FieldDate:
		return d.Date
	case FieldStartTime:
		return d.StartTime
	case FieldDurationMinutes:
		return d.DurationMinutes
	default:
		return ""
	}
}

// Missing returns the names of empty fields in form order.
func (d Draft) Missing() []string {
	var missing []string
	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate checks presence only. Relations such as whether the discipline
// belongs to the arena are left to the backend.
func (d Draft) Validate() error {
	if missing := d.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// Payload parses the numeric fields and builds the write payload. It does
// not check presence; call Validate first.
func (d Draft) Payload() (backend.EventPayload, error) {
	var errs []error
	parseInt := func(field, raw string) int {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return n
	}
	parseID := func(field, raw string) int64 {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return n
	}

	payload := backend.EventPayload{
		ParticipantGender:   backend.Gender(d.ParticipantGender),
		ParticipantAgeGroup: backend.AgeGroup(d.ParticipantAgeGroup),
		MaxParticipants:     parseInt(FieldMaxParticipants, d.MaxParticipants),
		Date:                d.Date,
		StartTime:           d.StartTime,
		DurationMinutes:     parseInt(FieldDurationMinutes, d.DurationMinutes),
		ArenaID:             parseID(FieldArenaID, d.ArenaID),
		DisciplineID:        parseID(FieldDisciplineID, d.DisciplineID),
	}
	if len(errs) > 0 {
		return backend.EventPayload{}, apperrors.Wrap(apperrors.KindInvalidInput, stderrors.Join(errs...), "parse event draft")
	}
	return payload, nil
}

// FindArena returns the arena whose id matches the draft's arena field.
func FindArena(arenas []backend.Arena, arenaID string) (backend.Arena, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arenaID), 10, 64)
	if err != nil {
		return backend.Arena{}, false
	}
	for _, a := range arenas {
		if a.ID == id {
			return a, true
		}
	}
	return backend.Arena{}, false
}

// DisciplineOptions returns the disciplines offered for the selected arena.
// No arena, or an unknown one, offers nothing.
func DisciplineOptions(arenas []backend.Arena, arenaID string) []backend.Discipline {
	arena, ok := FindArena(arenas, arenaID)
	if !ok {
		return nil
	}
	return arena.Disciplines
}

// Normalize clears a discipline the selected arena does not offer. It is
// applied when the arena selection changes; arenas is the fetched list.
func (d Draft) Normalize(arenas []backend.Arena) Draft {
	if d.DisciplineID == "" {
		return d
	}
	for _, disc := range DisciplineOptions(arenas, d.ArenaID) {
		if strconv.FormatInt(disc.ID, 10) == d.DisciplineID {
			return d
		}
	}
	d.DisciplineID = ""
	return d
}
