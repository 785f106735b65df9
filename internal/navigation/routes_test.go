package navigation

import "testing"

func consoleTable() *Table {
	t := NewTable()
	t.AddRoute(Route{Path: "/", Exact: true, Name: "Home", HasHeader: true, HasSidebar: true, HasFooter: true})
	t.AddRoute(Route{Path: "/library", Exact: true, Name: "Library", HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	t.AddRoute(Route{Path: "/library/:path", Name: "Item", HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	t.AddRoute(Route{Path: "/about", Exact: true, Name: "About", HasHeader: true})
	return t
}

func TestMatchExactRoute(t *testing.T) {
	table := consoleTable()
	route, params, ok := table.Match("/library")
	if !ok {
		t.Fatalf("expected match for /library")
	}
	if route.Name != "Library" {
		t.Fatalf("expected Library, got %q", route.Name)
	}
	if len(params) != 0 {
		t.Fatalf("expected no params, got %v", params)
	}
}

func TestMatchCapturesParam(t *testing.T) {
	table := consoleTable()
	route, params, ok := table.Match("/library/readme.md")
	if !ok {
		t.Fatalf("expected match")
	}
	if route.Name != "Item" {
		t.Fatalf("expected Item, got %q", route.Name)
	}
	if params["path"] != "readme.md" {
		t.Fatalf("expected path param, got %v", params)
	}
}

func TestMatchTrailingParamCapturesRest(t *testing.T) {
	table := consoleTable()
	route, params, ok := table.Match("/library/Templates/Email/welcome.html")
	if !ok {
		t.Fatalf("expected match")
	}
	if route.Name != "Item" {
		t.Fatalf("expected Item, got %q", route.Name)
	}
	if params["path"] != "Templates/Email/welcome.html" {
		t.Fatalf("expected rest capture, got %q", params["path"])
	}
}

func TestMatchPicksMostSpecificRoute(t *testing.T) {
	table := NewTable()
	table.AddRoute(Route{Path: "/config/:path", Name: "ConfigItem"})
	table.AddRoute(Route{Path: "/config/new", Exact: true, Name: "ConfigNew"})
	route, _, ok := table.Match("/config/new")
	if !ok || route.Name != "ConfigNew" {
		t.Fatalf("expected literal route to win, got %q ok=%v", route.Name, ok)
	}
}

func TestMatchExactRejectsLongerPath(t *testing.T) {
	table := NewTable()
	table.AddRoute(Route{Path: "/about", Exact: true, Name: "About"})
	if _, _, ok := table.Match("/about/team"); ok {
		t.Fatalf("exact route must not match a longer path")
	}
}

func TestMatchRootPath(t *testing.T) {
	table := consoleTable()
	route, _, ok := table.Match("/")
	if !ok || route.Name != "Home" {
		t.Fatalf("expected Home for /, got %q ok=%v", route.Name, ok)
	}
}

func TestMatchNoRoute(t *testing.T) {
	table := consoleTable()
	if _, _, ok := table.Match("/nowhere"); ok {
		t.Fatalf("expected no match for unregistered path")
	}
}
