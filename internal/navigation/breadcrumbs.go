package navigation

import "strings"

// Crumb is one entry of the resolved breadcrumb chain. The final crumb
// is rendered as plain text; all others link to their resolved path.
type Crumb struct {
	Name   string
	Path   string
	Active bool
}

// ResolveCrumbs derives the breadcrumb chain for the current path.
// Every template whose param-substituted path is contained in the
// concrete current path survives (a coarse containment test, not a
// route-tree walk), entries with empty names are dropped, and template
// order is preserved, assumed root to leaf.
func ResolveCrumbs(routes []Route, currentPath string, params map[string]string) []Crumb {
	crumbs := make([]Crumb, 0, len(routes))
	for _, route := range routes {
		resolved := substituteParams(route.Path, params)
		if !strings.Contains(currentPath, resolved) {
			continue
		}
		if route.Name == "" {
			continue
		}
		crumbs = append(crumbs, Crumb{Name: route.Name, Path: resolved})
	}
	if len(crumbs) > 0 {
		crumbs[len(crumbs)-1].Active = true
	}
	return crumbs
}

func substituteParams(template string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(template, ":") {
		return template
	}
	resolved := template
	for name, value := range params {
		resolved = strings.ReplaceAll(resolved, ":"+name, value)
	}
	return resolved
}
