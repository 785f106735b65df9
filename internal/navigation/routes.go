package navigation

import "strings"

// Route describes a registered screen. Path may contain :param
// segments; a trailing :param captures the rest of the concrete path,
// so item paths with slashes match a single template. The Has* flags
// describe which chrome the screen wants around it.
type Route struct {
	Path          string
	Exact         bool
	Name          string
	Authn         bool
	HasHeader     bool
	HasSidebar    bool
	HasBreadcrumb bool
	HasFooter     bool
}

// Table is the route table populated by feature modules at startup.
type Table struct {
	routes []Route
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{}
}

// AddRoute registers a route descriptor. Registration order is the
// breadcrumb order and is expected to run root to leaf.
func (t *Table) AddRoute(route Route) {
	t.routes = append(t.routes, route)
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Match resolves a concrete path against the table, returning the most
// specific matching route and its extracted params.
func (t *Table) Match(currentPath string) (Route, map[string]string, bool) {
	var best Route
	var bestParams map[string]string
	bestLen := -1
	for _, route := range t.routes {
		params, ok := matchTemplate(route, currentPath)
		if !ok {
			continue
		}
		if len(route.Path) > bestLen {
			best = route
			bestParams = params
			bestLen = len(route.Path)
		}
	}
	return best, bestParams, bestLen >= 0
}

func matchTemplate(route Route, currentPath string) (map[string]string, bool) {
	pattern := splitRoute(route.Path)
	concrete := splitRoute(currentPath)
	params := map[string]string{}
	for i, segment := range pattern {
		rest := i == len(pattern)-1 && strings.HasPrefix(segment, ":")
		if i >= len(concrete) {
			return nil, false
		}
		if strings.HasPrefix(segment, ":") {
			name := segment[1:]
			if rest {
				params[name] = strings.Join(concrete[i:], "/")
				return params, true
			}
			params[name] = concrete[i]
			continue
		}
		if segment != concrete[i] {
			return nil, false
		}
	}
	if route.Exact && len(concrete) != len(pattern) {
		return nil, false
	}
	return params, true
}

func splitRoute(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
