// Package views renders Warbler's HTML pages and serves its static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/session"
	"github.com/labstack/echo/v4"
)

//go:embed templates static
var files embed.FS

var pages = []string{
	"home",
	"home-anon",
	"404",
	"users/signup",
	"users/login",
	"users/index",
	"users/show",
	"users/following",
	"users/followers",
	"users/likes",
	"users/edit",
	"messages/show",
}

// Page is the data every template receives. Handlers fill only what their page shows.
type Page struct {
	CurrentUser *models.User
	Flashes     []session.Flash
	Errors      map[string]string
	Form        interface{}
	CSRFToken   string

	User      *models.User
	Users     []models.User
	Messages  []models.Message
	Message   *models.Message
	Stats     services.ProfileStats
	Following bool
	Liked     map[uint]bool
	Query     string
}

// Renderer implements echo.Renderer. Each page is parsed with the shared layout and
// partials so page blocks cannot clash.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"timestamp": func(t time.Time) string { return t.Format("02 January 2006") },
	"liked": func(liked map[uint]bool, id uint) bool { return liked[id] },
	"owns": func(user *models.User, msg models.Message) bool {
		return user != nil && user.ID == msg.UserID
	},
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/base.html",
			"templates/partials/*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// Static returns the embedded assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
