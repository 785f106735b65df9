package app

import (
	"errors"
	"time"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/backend"
	"github.com/teskalabs/asab-console/internal/navigation"
	"github.com/teskalabs/asab-console/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	ServerURL       string
	Tenant          string
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	RefreshInterval time.Duration
	StartPath       string
	SidebarHidden   []string
	SidebarOrder    []string
}

// registerScreens populates the navigation registry and route table.
// Registration order matters twice: the registry order is the default
// home menu order, and the route order is the breadcrumb order.
func registerScreens(registry *navigation.Registry, routes *navigation.Table) error {
	routes.AddRoute(navigation.Route{Path: "/", Exact: true, Name: "Home", HasHeader: true, HasFooter: true})
	routes.AddRoute(navigation.Route{Path: "/library", Exact: true, Name: "Library", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	routes.AddRoute(navigation.Route{Path: "/library/:path", Name: "Item", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	routes.AddRoute(navigation.Route{Path: "/config", Exact: true, Name: "Config", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	routes.AddRoute(navigation.Route{Path: "/config/:path", Name: "Item", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	routes.AddRoute(navigation.Route{Path: "/about", Exact: true, Name: "About", HasHeader: true})

	for _, item := range []navigation.Item{
		{Name: "Library", URL: "/library", Icon: "📚"},
		{Name: "Config", URL: "/config", Icon: "⚙"},
		{Name: "About", URL: "/about", Icon: "ℹ"},
	} {
		if err := registry.AddItem(item); err != nil {
			return err
		}
	}
	return nil
}

func policyFromConfig(cfg Config) navigation.Policy {
	policy := navigation.Policy{Order: cfg.SidebarOrder}
	if len(cfg.SidebarHidden) > 0 {
		policy.Hidden = make(map[string]bool, len(cfg.SidebarHidden))
		for _, name := range cfg.SidebarHidden {
			policy.Hidden[name] = true
		}
	}
	return policy
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	client := api.NewClient(cfg.ServerURL, cfg.Tenant)
	watcher := backend.NewWatcher(client, cfg.RefreshInterval)
	defer watcher.Stop()

	registry := navigation.NewRegistry()
	routes := navigation.NewTable()
	if err := registerScreens(registry, routes); err != nil {
		return err
	}

	model := ui.NewModel(client, watcher, registry, routes, policyFromConfig(cfg), cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose)
	if cfg.StartPath != "" {
		model.SetStartPath(cfg.StartPath)
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
