// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/contactform blank-imports
// the components it ships, then Mount runs every Init and mounts every
// component's Routes() at "/".

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/config"
)

// Env exposes process-wide resources to components during Init.
type Env struct {
	Config *config.Config
	Log    *zap.SugaredLogger
}

// Initializer is optional.  If a Component implements it, Mount calls
// Init(env) once before asking for its routes.
type Initializer interface {
	Init(Env) error
}

// Component contract.
//
// Routes() should mount BOTH page and API endpoints, e.g:
//
//	r := chi.NewRouter()
//	r.Get("/", getPage)
//	r.Post("/api/contact", postAPI)
//	return r
//
// Two components cannot both own the same path.
type Component interface {
	Name() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises every registered component and attaches its routes to
// r.  The first Init error aborts.
func Mount(r chi.Router, env Env) error {
	for _, c := range All() {
		if in, ok := c.(Initializer); ok {
			if err := in.Init(env); err != nil {
				return fmt.Errorf("component %s: init: %w", c.Name(), err)
			}
		}
		r.Mount("/", c.Routes())
		env.Log.Infow("component mounted", "component", c.Name())
	}
	return nil
}
