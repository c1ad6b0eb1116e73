package backend

// AllDisciplines is the discipline filter value meaning "no filter".
const AllDisciplines = "all"

// Gender is the participant gender an event is open to.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the accepted genders in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// AgeGroup is the participant age group an event is open to.
type AgeGroup string

const (
	AgeGroupJunior AgeGroup = "Junior"
	AgeGroupAdult  AgeGroup = "Adult"
	AgeGroupSenior AgeGroup = "Senior"
)

// AgeGroups lists the accepted age groups in display order.
var AgeGroups = []AgeGroup{AgeGroupJunior, AgeGroupAdult, AgeGroupSenior}

// Discipline is a named competitive event type such as "100m Run".
type Discipline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Arena is a venue and the disciplines it can host.
type Arena struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Shape       string       `json:"shape"`
	Surface     string       `json:"surface"`
	Length      float64      `json:"length"`
	Lanes       int          `json:"lanes"`
	Disciplines []Discipline `json:"disciplines"`
}

// Event is one scheduled discipline at one arena.
type Event struct {
	ID                  int64      `json:"id"`
	ParticipantGender   Gender     `json:"participantGender"`
	ParticipantAgeGroup AgeGroup   `json:"participantAgeGroup"`
	MaximumParticipants int        `json:"maximumParticipants"`
	Date                string     `json:"date"`
	StartTime           string     `json:"startTime"`
	DurationMinutes     int        `json:"durationMinutes"`
	Arena               Arena      `json:"arena"`
	Discipline          Discipline `json:"discipline"`
}

// EventPayload is the body of create and update requests.
type EventPayload struct {
	ParticipantGender   Gender   `json:"participantGender"`
	ParticipantAgeGroup AgeGroup `json:"participantAgeGroup"`
	MaxParticipants     int      `json:"maxParticipants"`
	Date                string   `json:"date"`
	StartTime           string   `json:"startTime"`
	DurationMinutes     int      `json:"durationMinutes"`
	ArenaID             int64    `json:"arenaId"`
	DisciplineID        int64    `json:"disciplineId"`
}
