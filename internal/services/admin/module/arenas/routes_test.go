package arenas

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	called bool
}

func (f *fakeService) HandleArenasPage(http.ResponseWriter, *http.Request) {
	f.called = true
}

func TestRegisterRoutes(t *testing.T) {
	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/arenas", nil))

	if !svc.called {
		t.Fatal("expected arenas page handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
