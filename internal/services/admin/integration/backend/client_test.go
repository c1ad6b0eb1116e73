package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/athletics.space/internal/platform/errors"
	"github.com/louisbranch/athletics.space/internal/platform/requestctx"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend/backendfake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	errs  []error
}

func (o *recordingObserver) ObserveBackendCall(op string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op)
	o.errs = append(o.errs, err)
}

func TestNewClientNormalizesBaseURL(t *testing.T) {
	_, err := backend.NewClient("")
	require.NoError(t, err)

	fake := backendfake.New(t)
	c, err := backend.NewClient(" " + fake.URL + "/ ")
	require.NoError(t, err)
	_, err = c.ListArenas(context.Background())
	require.NoError(t, err)
	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/arenas", reqs[0].Path)

	_, err = backend.NewClient("backend:8080/api")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestListArenas(t *testing.T) {
	fake := backendfake.New(t)
	fake.SetArenas(backendfake.StandardArenas()...)

	arenas, err := fake.Client(t).ListArenas(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(backendfake.StandardArenas(), arenas); diff != "" {
		t.Fatalf("arenas mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, fake.RequestsTo(http.MethodGet, "/arenas"), 1)
}

func TestListEventsByDisciplineEncodesQuery(t *testing.T) {
	fake := backendfake.New(t)
	arenas := backendfake.StandardArenas()
	fake.SetArenas(arenas...)
	fake.SetEvents(backendfake.RandomEvents(7, 12, arenas)...)
	client := fake.Client(t)

	events, err := client.ListEventsByDiscipline(context.Background(), "100m Run")
	require.NoError(t, err)
	for _, ev := range events {
		assert.Equal(t, "100m Run", ev.Discipline.Name)
	}

	reqs := fake.RequestsTo(http.MethodGet, "/events/by-discipline")
	require.Len(t, reqs, 1)
	assert.Equal(t, "discipline=100m%20Run", reqs[0].RawQuery)
}

func TestListEventsByDisciplineDefaultsToAll(t *testing.T) {
	fake := backendfake.New(t)
	arenas := backendfake.StandardArenas()
	fake.SetEvents(backendfake.RandomEvents(3, 5, arenas)...)

	events, err := fake.Client(t).ListEventsByDiscipline(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, events, 5)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "discipline=all", reqs[0].RawQuery)
}

func TestCreateEventSendsIntegers(t *testing.T) {
	fake := backendfake.New(t)
	fake.SetArenas(backendfake.StandardArenas()...)

	err := fake.Client(t).CreateEvent(context.Background(), backend.EventPayload{
		ParticipantGender:   backend.GenderMale,
		ParticipantAgeGroup: backend.AgeGroupAdult,
		MaxParticipants:     20,
		Date:                "2024-05-01",
		StartTime:           "10:00",
		DurationMinutes:     30,
		ArenaID:             1,
		DisciplineID:        2,
	})
	require.NoError(t, err)

	reqs := fake.RequestsTo(http.MethodPost, "/events")
	require.Len(t, reqs, 1)

	var got map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].Body, &got))
	want := map[string]any{
		"participantGender":   "Male",
		"participantAgeGroup": "Adult",
		"maxParticipants":     float64(20),
		"date":                "2024-05-01",
		"startTime":           "10:00",
		"durationMinutes":     float64(30),
		"arenaId":             float64(1),
		"disciplineId":        float64(2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, fake.Events(), 1)
}

func TestUpdateAndDeleteAddressEventByID(t *testing.T) {
	fake := backendfake.New(t)
	arenas := backendfake.StandardArenas()
	fake.SetArenas(arenas...)
	fake.SetEvents(backendfake.RandomEvents(11, 3, arenas)...)
	client := fake.Client(t)

	payload := backend.EventPayload{
		ParticipantGender: backend.GenderFemale, ParticipantAgeGroup: backend.AgeGroupSenior,
		MaxParticipants: 8, Date: "2025-06-01", StartTime: "09:30", DurationMinutes: 45,
		ArenaID: 2, DisciplineID: 7,
	}
	require.NoError(t, client.UpdateEvent(context.Background(), 2, payload))
	require.Len(t, fake.RequestsTo(http.MethodPut, "/events/2"), 1)

	require.NoError(t, client.DeleteEvent(context.Background(), 3))
	require.Len(t, fake.RequestsTo(http.MethodDelete, "/events/3"), 1)

	remaining := fake.Events()
	require.Len(t, remaining, 2)
	assert.Equal(t, "50m Butterfly", remaining[1].Discipline.Name)
}

func TestNonSuccessStatusIsTyped(t *testing.T) {
	fake := backendfake.New(t)
	fake.Fail(http.MethodDelete, "/events/9", http.StatusInternalServerError)

	err := fake.Client(t).DeleteEvent(context.Background(), 9)
	require.Error(t, err)

	var statusErr *backend.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "injected failure", statusErr.Body)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))

	err = fake.Client(t).DeleteEvent(context.Background(), 404)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := backend.NewClient(url, backend.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = client.ListArenas(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(srv.URL, backend.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = client.ListArenas(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDecode, apperrors.KindOf(err))
}

func TestObserverSeesEveryCall(t *testing.T) {
	fake := backendfake.New(t)
	fake.Fail(http.MethodGet, "/arenas", http.StatusBadGateway)
	obs := &recordingObserver{}
	client := fake.Client(t, backend.WithObserver(obs))

	_, _ = client.ListArenas(context.Background())
	_, _ = client.ListEventsByDiscipline(context.Background(), backend.AllDisciplines)

	assert.Equal(t, []string{backend.OpListArenas, backend.OpListEventsByDiscipline}, obs.calls)
	assert.Error(t, obs.errs[0])
	assert.NoError(t, obs.errs[1])
}

func TestEscapeQueryComponent(t *testing.T) {
	tests := map[string]string{
		"all":               "all",
		"100m Run":          "100m%20Run",
		"100m Breaststroke": "100m%20Breaststroke",
		"a&b=c":             "a%26b%3Dc",
		"50+":               "50%2B",
	}
	for in, want := range tests {
		assert.Equal(t, want, backend.EscapeQueryComponent(in), in)
	}
}

func TestRequestIDIsForwarded(t *testing.T) {
	fake := backendfake.New(t)
	client := fake.Client(t)

	ctx := requestctx.WithRequestID(context.Background(), "req-7")
	_, err := client.ListArenas(ctx)
	require.NoError(t, err)
	_, err = client.ListArenas(context.Background())
	require.NoError(t, err)

	reqs := fake.RequestsTo(http.MethodGet, "/arenas")
	require.Len(t, reqs, 2)
	assert.Equal(t, "req-7", reqs[0].RequestID)
	assert.Empty(t, reqs[1].RequestID)
}
