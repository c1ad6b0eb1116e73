// Package backendfake provides an in-memory events backend served over
// httptest for handler and client tests.
package backendfake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/louisbranch/athletics.space/internal/platform/requestctx"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
)

// Request is one request received by the fake.
type Request struct {
	Method    string
	Path      string
	RawQuery  string
	Body      []byte
	RequestID string
}

// Server is a recording fake of the events backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	arenas   []backend.Arena
	events   []backend.Event
	failures map[string]int
	requests []Request
	nextID   int64
}

// New starts a fake backend that closes when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{failures: map[string]int{}, nextID: 1000}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /arenas", s.listArenas)
	mux.HandleFunc("GET /events/by-discipline", s.listEvents)
	mux.HandleFunc("POST /events", s.createEvent)
	mux.HandleFunc("PUT /events/{id}", s.updateEvent)
	mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// Client returns a backend client pointed at the fake.
func (s *Server) Client(t testing.TB, opts ...backend.Option) *backend.Client {
	t.Helper()
	opts = append([]backend.Option{backend.WithHTTPClient(s.Server.Client())}, opts...)
	c, err := backend.NewClient(s.URL, opts...)
	if err != nil {
		t.Fatalf("new backend client: %v", err)
	}
	return c
}

// SetArenas replaces the arena collection.
func (s *Server) SetArenas(arenas ...backend.Arena) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arenas = append([]backend.Arena(nil), arenas...)
}

// SetEvents replaces the event collection.
func (s *Server) SetEvents(events ...backend.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]backend.Event(nil), events...)
}

// Events returns a copy of the stored events.
func (s *Server) Events() []backend.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]backend.Event(nil), s.events...)
}

// Fail makes requests matching "METHOD /path" answer with status.
// Paths are matched exactly, without the query string.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the received requests matching method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery:  r.URL.RawQuery,
			Body:      body,
			RequestID: r.Header.Get(requestctx.RequestIDHeader),
		})
		status, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if failing {
			http.Error(w, "injected failure", status)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listArenas(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	arenas := append([]backend.Arena{}, s.arenas...)
	s.mu.Unlock()
	writeJSON(w, arenas)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	discipline := r.URL.Query().Get("discipline")
	s.mu.Lock()
	out := []backend.Event{}
	for _, ev := range s.events {
		if discipline == "" || discipline == backend.AllDisciplines || ev.Discipline.Name == discipline {
			out = append(out, ev)
		}
	}
	s.mu.Unlock()
	writeJSON(w, out)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var payload backend.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.nextID++
	ev := s.eventFromPayload(s.nextID, payload)
	s.events = append(s.events, ev)
	s.mu.Unlock()
	writeJSONStatus(w, http.StatusCreated, ev)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	var payload backend.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = s.eventFromPayload(id, payload)
			writeJSON(w, s.events[i])
			return
		}
	}
	http.Error(w, "event not found", http.StatusNotFound)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "event not found", http.StatusNotFound)
}

// eventFromPayload must be called with s.mu held.
func (s *Server) eventFromPayload(id int64, p backend.EventPayload) backend.Event {
	ev := backend.Event{
		ID:                  id,
		ParticipantGender:   p.ParticipantGender,
		ParticipantAgeGroup: p.ParticipantAgeGroup,
		MaximumParticipants: p.MaxParticipants,
		Date:                p.Date,
		StartTime:           p.StartTime,
		DurationMinutes:     p.DurationMinutes,
		Arena:               backend.Arena{ID: p.ArenaID},
		Discipline:          backend.Discipline{ID: p.DisciplineID},
	}
	for _, a := range s.arenas {
		if a.ID != p.ArenaID {
			continue
		}
		ev.Arena = a
		for _, d := range a.Disciplines {
			if d.ID == p.DisciplineID {
				ev.Discipline = d
			}
		}
	}
	return ev
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StandardArenas returns two arenas with disjoint discipline sets.
func StandardArenas() []backend.Arena {
	return []backend.Arena{
		{
			ID: 1, Name: "Main Stadium", Type: "Outdoor", Shape: "Oval", Surface: "Tartan",
			Length: 400, Lanes: 8,
			Disciplines: []backend.Discipline{
				{ID: 1, Name: "100m Run"},
				{ID: 2, Name: "1500m Run"},
				{ID: 3, Name: "Long Jump"},
			},
		},
		{
			ID: 2, Name: "Aquatics Centre", Type: "Indoor", Shape: "Rectangular", Surface: "Water",
			Length: 50, Lanes: 10,
			Disciplines: []backend.Discipline{
				{ID: 7, Name: "50m Butterfly"},
				{ID: 8, Name: "100m Breaststroke"},
			},
		},
	}
}

// RandomEvents builds n events placed at the given arenas, seeded so the
// same seed yields the same events.
func RandomEvents(seed uint64, n int, arenas []backend.Arena) []backend.Event {
	faker := gofakeit.New(seed)
	out := make([]backend.Event, 0, n)
	for i := 0; i < n; i++ {
		arena := arenas[faker.IntRange(0, len(arenas)-1)]
		discipline := arena.Disciplines[faker.IntRange(0, len(arena.Disciplines)-1)]
		date := faker.DateRange(mustDate("2024-01-01"), mustDate("2025-12-31"))
		out = append(out, backend.Event{
			ID:                  int64(i + 1),
			ParticipantGender:   backend.Genders[faker.IntRange(0, len(backend.Genders)-1)],
			ParticipantAgeGroup: backend.AgeGroups[faker.IntRange(0, len(backend.AgeGroups)-1)],
			MaximumParticipants: faker.IntRange(4, 64),
			Date:                date.Format("2006-01-02"),
			StartTime:           fmt.Sprintf("%02d:%02d", faker.IntRange(8, 20), faker.RandomInt([]int{0, 15, 30, 45})),
			DurationMinutes:     faker.IntRange(10, 180),
			Arena:               arena,
			Discipline:          discipline,
		})
	}
	return out
}

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
