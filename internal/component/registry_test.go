package component

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/contactform/internal/logger"
)

type stub struct {
	name    string
	initErr error
	inited  bool
}

func (s *stub) Name() string { return s.name }

func (s *stub) Init(Env) error {
	s.inited = true
	return s.initErr
}

func (s *stub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("pong")) })
	return r
}

func reset(t *testing.T) {
	t.Helper()
	mu.Lock()
	saved := registry
	registry = map[string]Component{}
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func TestMountInitsAndRoutes(t *testing.T) {
	reset(t)
	s := &stub{name: "stub"}
	Register(s)

	r := chi.NewRouter()
	if err := Mount(r, Env{Log: logger.Nop()}); err != nil {
		t.Fatal(err)
	}
	if !s.inited {
		t.Fatal("Init not called")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Body.String() != "pong" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestMountStopsOnInitError(t *testing.T) {
	reset(t)
	boom := errors.New("boom")
	Register(&stub{name: "broken", initErr: boom})

	if err := Mount(chi.NewRouter(), Env{Log: logger.Nop()}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestAllSorted(t *testing.T) {
	reset(t)
	Register(&stub{name: "b"})
	Register(&stub{name: "a"})
	all := All()
	if len(all) != 2 || all[0].Name() != "a" {
		t.Fatalf("All = %v", all)
	}
}
