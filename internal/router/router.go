// Package router gates console navigation on credential presence.
//
// A Route is a named screen of the console (a CLI command group). Every
// navigation passes through Guard.Evaluate before the target handler runs, so
// an unauthenticated operator never reaches protected output.
package router

import (
	"context"
	"fmt"
	"sync"

	"github.com/target/mmk-rag-console/internal/ports"
)

// Canonical route names.
const (
	RouteLogin = "login"
	RouteHome  = "home"
)

// Route describes one navigable screen.
type Route struct {
	Name         string
	Path         string
	Component    string
	RequiresAuth bool
}

// IsZero reports whether r is the empty route (used for "no current route").
func (r Route) IsZero() bool { return r.Name == "" }

// DefaultRoutes returns the console's canonical route table entries.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteLogin, Path: "/login", Component: "LoginView"},
		{Name: RouteHome, Path: "/", Component: "RagConsoleView", RequiresAuth: true},
	}
}

// Table is an immutable set of routes with exactly one public route, "login".
type Table struct {
	byName map[string]Route
	byPath map[string]Route
	order  []string
}

// NewTable validates and indexes routes.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		byName: make(map[string]Route, len(routes)),
		byPath: make(map[string]Route, len(routes)),
	}
	public := 0
	for _, r := range routes {
		if r.Name == "" || r.Path == "" {
			return nil, fmt.Errorf("route %+v: name and path are required", r)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", r.Name)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("duplicate route path %q", r.Path)
		}
		if !r.RequiresAuth {
			public++
			if r.Name != RouteLogin {
				return nil, fmt.Errorf("route %q must require auth: only %q is public", r.Name, RouteLogin)
			}
		}
		t.byName[r.Name] = r
		t.byPath[r.Path] = r
		t.order = append(t.order, r.Name)
	}
	if public != 1 {
		return nil, fmt.Errorf("exactly one public route (%q) is required, found %d", RouteLogin, public)
	}
	if _, ok := t.byName[RouteHome]; !ok {
		return nil, fmt.Errorf("route %q is required", RouteHome)
	}
	return t, nil
}

// MustTable is NewTable for static route sets known to be valid.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup finds a route by name.
func (t *Table) Lookup(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Resolve finds a route by path.
func (t *Table) Resolve(path string) (Route, bool) {
	r, ok := t.byPath[path]
	return r, ok
}

// Routes returns all routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Action is the guard's verdict.
type Action int

const (
	// Allow lets the navigation proceed to the requested route.
	Allow Action = iota
	// Redirect cancels the navigation and sends the operator to Decision.Target.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Action Action
	// Target is where the operator ends up: the requested route on Allow,
	// the redirect destination otherwise.
	Target Route
}

// Guard evaluates navigations against the credential store.
type Guard struct {
	routes *Table
	creds  ports.CredentialReader
}

// NewGuard creates a Guard. Presence is read from creds on every evaluation.
func NewGuard(routes *Table, creds ports.CredentialReader) *Guard {
	return &Guard{routes: routes, creds: creds}
}

// Evaluate applies the transition rules for a navigation from -> to.
// It never fails: a missing credential is a normal state.
func (g *Guard) Evaluate(ctx context.Context, _ Route, to Route) Decision {
	_, authenticated := g.creds.Get(ctx)

	if to.RequiresAuth && !authenticated {
		login, _ := g.routes.Lookup(RouteLogin)
		return Decision{Action: Redirect, Target: login}
	}
	if to.Name == RouteLogin && authenticated {
		home, _ := g.routes.Lookup(RouteHome)
		return Decision{Action: Redirect, Target: home}
	}
	return Decision{Action: Allow, Target: to}
}

// Navigator tracks the current route and routes every transition through the Guard.
type Navigator struct {
	guard  *Guard
	routes *Table

	mu      sync.Mutex
	current Route
}

// NewNavigator creates a Navigator with no current route.
func NewNavigator(routes *Table, guard *Guard) *Navigator {
	return &Navigator{guard: guard, routes: routes}
}

// Navigate attempts to move to the named route. The returned decision says
// where the operator actually landed. Only unknown route names are errors.
func (n *Navigator) Navigate(ctx context.Context, name string) (Decision, error) {
	to, ok := n.routes.Lookup(name)
	if !ok {
		return Decision{}, fmt.Errorf("unknown route %q", name)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	d := n.guard.Evaluate(ctx, n.current, to)
	n.current = d.Target
	return d, nil
}

// NavigatePath is Navigate addressed by path.
func (n *Navigator) NavigatePath(ctx context.Context, path string) (Decision, error) {
	to, ok := n.routes.Resolve(path)
	if !ok {
		return Decision{}, fmt.Errorf("no route for path %q", path)
	}
	return n.Navigate(ctx, to.Name)
}

// Current returns the route the operator is on.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
