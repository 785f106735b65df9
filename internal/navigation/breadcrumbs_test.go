package navigation

import "testing"

func TestResolveCrumbsChain(t *testing.T) {
	routes := []Route{
		{Path: "/lib", Name: "Library"},
		{Path: "/lib/:id", Name: "Item"},
	}
	crumbs := ResolveCrumbs(routes, "/lib/42", map[string]string{"id": "42"})
	if len(crumbs) != 2 {
		t.Fatalf("expected 2 crumbs, got %#v", crumbs)
	}
	if crumbs[0].Name != "Library" || crumbs[0].Path != "/lib" || crumbs[0].Active {
		t.Fatalf("expected Library link crumb, got %#v", crumbs[0])
	}
	if crumbs[1].Name != "Item" || crumbs[1].Path != "/lib/42" || !crumbs[1].Active {
		t.Fatalf("expected active Item crumb, got %#v", crumbs[1])
	}
}

func TestResolveCrumbsSkipsUnrelatedRoutes(t *testing.T) {
	routes := []Route{
		{Path: "/lib", Name: "Library"},
		{Path: "/config", Name: "Config"},
		{Path: "/lib/:id", Name: "Item"},
	}
	crumbs := ResolveCrumbs(routes, "/lib/42", map[string]string{"id": "42"})
	for _, crumb := range crumbs {
		if crumb.Name == "Config" {
			t.Fatalf("unrelated route leaked into crumbs: %#v", crumbs)
		}
	}
}

func TestResolveCrumbsDropsUnnamedRoutes(t *testing.T) {
	routes := []Route{
		{Path: "/lib"},
		{Path: "/lib/:id", Name: "Item"},
	}
	crumbs := ResolveCrumbs(routes, "/lib/42", map[string]string{"id": "42"})
	if len(crumbs) != 1 || crumbs[0].Name != "Item" || !crumbs[0].Active {
		t.Fatalf("expected single active Item crumb, got %#v", crumbs)
	}
}

func TestResolveCrumbsNestedItemPath(t *testing.T) {
	routes := []Route{
		{Path: "/library", Name: "Library"},
		{Path: "/library/:path", Name: "Item"},
	}
	params := map[string]string{"path": "Templates/Email/welcome.html"}
	crumbs := ResolveCrumbs(routes, "/library/Templates/Email/welcome.html", params)
	if len(crumbs) != 2 {
		t.Fatalf("expected 2 crumbs, got %#v", crumbs)
	}
	if crumbs[1].Path != "/library/Templates/Email/welcome.html" {
		t.Fatalf("expected fully substituted leaf path, got %q", crumbs[1].Path)
	}
}

func TestResolveCrumbsNoMatch(t *testing.T) {
	routes := []Route{{Path: "/lib", Name: "Library"}}
	if crumbs := ResolveCrumbs(routes, "/about", nil); len(crumbs) != 0 {
		t.Fatalf("expected no crumbs, got %#v", crumbs)
	}
}
