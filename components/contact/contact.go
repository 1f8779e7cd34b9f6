// components/contact/contact.go
//
// Contact form component: HTML and JSON front-ends over internal/form.
//
// Context
//   The form state lives in the page, never on the server.  Every POST
//   carries the field values plus the touched set; the handler replays
//   them through form.Schema.Restore, applies one event (change, blur,
//   submit, or reset), and re-renders.  The small script in
//   static/contact.js drives the same events through /api/contact on each
//   keystroke and focus change, so errors appear while typing.  Without
//   JavaScript the form still validates on submit.
//
// Routes
//   GET  /              fresh form
//   POST /              submit
//   POST /change        Change(field) with the posted value
//   POST /blur          Blur(field)
//   POST /reset         fresh form
//   POST /api/contact   JSON event endpoint
//   GET  /static/*      embedded css and js
//
//------------------------------------------------------------------------------

package contact

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/component"
	"github.com/yanizio/contactform/internal/form"
)

// Compile-time assertions.
var (
	_ component.Component   = (*Component)(nil)
	_ component.Initializer = (*Component)(nil)
)

//go:embed static
var staticFS embed.FS

// Component serves the contact form.
type Component struct {
	schema *form.Schema
	csrf   *form.CSRF
	log    *zap.SugaredLogger
}

// New builds a ready component.  main uses the registry path instead; tests
// and embedders call New directly.
func New(sc *form.Schema, csrf *form.CSRF, log *zap.SugaredLogger) *Component {
	return &Component{schema: sc, csrf: csrf, log: log}
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "contact" }

// Init loads the form definition and CSRF key from config.
func (c *Component) Init(env component.Env) error {
	c.log = env.Log

	sc, err := form.LoadSchema(env.Config.Form.Definition)
	if err != nil {
		return err
	}
	c.schema = sc

	csrf, ephemeral, err := form.NewCSRF(env.Config.Form.CSRFKey)
	if err != nil {
		return err
	}
	if ephemeral {
		c.log.Warnw("form.csrf_key not set; using a per-process key, open forms break on restart")
	}
	c.csrf = csrf

	c.log.Infow("contact form ready",
		"form", sc.Def().ID,
		"fields", len(sc.Def().Fields),
		"definition", env.Config.Form.Definition,
	)
	return nil
}

// Routes builds and returns the router mounted at "/".
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.handlePage)
	r.Post("/", c.handleSubmit)
	r.Post("/change", c.handleEvent(eventChange))
	r.Post("/blur", c.handleEvent(eventBlur))
	r.Post("/reset", c.handleReset)
	r.Post("/api/contact", c.handleAPI)

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("contact: static fs: %v", err)) // embedded, cannot fail
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
	return r
}
