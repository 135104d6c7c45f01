// Package route is the table of screens reachable by path.
package route

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

const (
	Editor      = "editor"
	List        = "list"
	Login       = "login"
	Wizard      = "wizard"
	WizardHours = "wizard.hours"
)

const (
	PathEditor      = "/"
	PathList        = "/list"
	PathLogin       = "/login"
	PathWizard      = "/wizard"
	PathWizardHours = "/wizard/hours"
)

var ErrNotFound = errors.New("route not found")

// Table resolves paths to route names. Nested routes report their parent so
// a parent screen can render its child step.
type Table struct {
	r      *mux.Router
	parent map[string]string
}

func New() *Table {
	r := mux.NewRouter().StrictSlash(true)
	r.Path(PathEditor).Name(Editor)
	r.Path(PathList).Name(List)
	r.Path(PathLogin).Name(Login)
	r.Path(PathWizard).Name(Wizard)

	wizard := r.PathPrefix(PathWizard).Subrouter()
	wizard.Path("/hours").Name(WizardHours)

	return &Table{
		r:      r,
		parent: map[string]string{WizardHours: Wizard},
	}
}

// Resolve returns the route name for path.
func (t *Table) Resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = PathEditor
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	req := &http.Request{Method: http.MethodGet, URL: u, Host: "localhost"}
	var m mux.RouteMatch
	if !t.r.Match(req, &m) || m.Route == nil {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return m.Route.GetName(), nil
}

// Path builds the path for a route name.
func (t *Table) Path(name string) (string, error) {
	rt := t.r.Get(name)
	if rt == nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	u, err := rt.URLPath()
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// Parent returns the enclosing route of a nested route.
func (t *Table) Parent(name string) (string, bool) {
	p, ok := t.parent[name]
	return p, ok
}

// Entry is one row of the route listing.
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Entries lists the routes in registration order.
func (t *Table) Entries() []Entry {
	var out []Entry
	_ = t.r.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		name := rt.GetName()
		if name == "" {
			return nil
		}
		tpl, err := rt.GetPathTemplate()
		if err != nil {
			return nil
		}
		out = append(out, Entry{Name: name, Path: tpl, Parent: t.parent[name]})
		return nil
	})
	return out
}
