package events

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
	lastID   int64
}

func (f *fakeService) HandleEventsPage(http.ResponseWriter, *http.Request) {
	f.lastCall = "events_page"
}

func (f *fakeService) HandleEventsTable(http.ResponseWriter, *http.Request) {
	f.lastCall = "events_table"
}

func (f *fakeService) HandleEventForm(http.ResponseWriter, *http.Request) {
	f.lastCall = "events_form"
}

func (f *fakeService) HandleEventUpdate(_ http.ResponseWriter, _ *http.Request, eventID int64) {
	f.lastCall = "event_update"
	f.lastID = eventID
}

func (f *fakeService) HandleEventDelete(_ http.ResponseWriter, _ *http.Request, eventID int64) {
	f.lastCall = "event_delete"
	f.lastID = eventID
}

func TestRegisterRoutes(t *testing.T) {
	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	tests := []struct {
		path     string
		method   string
		wantCode int
		wantCall string
		wantID   int64
	}{
		{path: "/events", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "events_page"},
		{path: "/events", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "events_page"},
		{path: "/events/table", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "events_table"},
		{path: "/events/form", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "events_form"},
		{path: "/events/12", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "event_update", wantID: 12},
		{path: "/events/12", method: http.MethodPut, wantCode: http.StatusOK, wantCall: "event_update", wantID: 12},
		{path: "/events/12", method: http.MethodDelete, wantCode: http.StatusOK, wantCall: "event_delete", wantID: 12},
		{path: "/events/12/delete", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "event_delete", wantID: 12},
		{path: "/events/12", method: http.MethodGet, wantCode: http.StatusMethodNotAllowed},
		{path: "/events/12/delete", method: http.MethodGet, wantCode: http.StatusMethodNotAllowed},
		{path: "/events/abc", method: http.MethodPost, wantCode: http.StatusNotFound},
		{path: "/events/0", method: http.MethodPost, wantCode: http.StatusNotFound},
		{path: "/events/12/archive", method: http.MethodPost, wantCode: http.StatusNotFound},
		{path: "/events/12/delete/extra", method: http.MethodPost, wantCode: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			svc.lastCall = ""
			svc.lastID = 0

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall {
				t.Fatalf("lastCall = %q, want %q", svc.lastCall, tc.wantCall)
			}
			if svc.lastID != tc.wantID {
				t.Fatalf("lastID = %d, want %d", svc.lastID, tc.wantID)
			}
		})
	}
}

func TestHandleEventPathRedirectsTrailingSlash(t *testing.T) {
	svc := &fakeService{}
	req := httptest.NewRequest(http.MethodPost, "/events/12/", nil)
	rec := httptest.NewRecorder()

	HandleEventPath(rec, req, svc)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
	if location := rec.Header().Get("Location"); location != "/events/12" {
		t.Fatalf("location = %q, want %q", location, "/events/12")
	}
	if svc.lastCall != "" {
		t.Fatalf("lastCall = %q, want none", svc.lastCall)
	}
}

func TestMethodNotAllowedSetsAllow(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	HandleEventPath(rec, httptest.NewRequest(http.MethodPatch, "/events/3", nil), svc)

	if got := rec.Header().Get("Allow"); got != "POST, PUT, DELETE" {
		t.Fatalf("Allow = %q", got)
	}
}
