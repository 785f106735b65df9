package navigation

import (
	"fmt"
	"sort"
)

// Item is a navigable entry registered by a feature module. Items with
// children act as pure group headers and need no URL; leaf items must
// carry one.
type Item struct {
	Name     string
	URL      string
	Icon     string
	Order    int
	Children []Item
}

// Policy is the visibility input applied when deriving the displayed
// menu: administratively hidden names, names the current identity is
// not authorized to see, and an optional explicit ordering read as a
// priority-from-the-back list (names later in the list sort earlier).
type Policy struct {
	Hidden       map[string]bool
	Unauthorized []string
	Order        []string
}

// Registry collects navigation items registered at application start.
// It is an explicit object handed to its consumers, constructed once
// during boot; query operations never mutate it.
type Registry struct {
	items []Item
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddItem appends an item to the registry. Registering a name that
// already exists replaces the earlier item in place, keeping its
// position. Items must have a URL or a non-empty child list with
// unique child names.
func (r *Registry) AddItem(item Item) error {
	if item.Name == "" {
		return fmt.Errorf("navigation item without a name")
	}
	if item.URL == "" && len(item.Children) == 0 {
		return fmt.Errorf("navigation item %q needs a url or children", item.Name)
	}
	seen := make(map[string]struct{}, len(item.Children))
	for _, child := range item.Children {
		if _, ok := seen[child.Name]; ok {
			return fmt.Errorf("navigation item %q has duplicate child %q", item.Name, child.Name)
		}
		seen[child.Name] = struct{}{}
	}
	for i, existing := range r.items {
		if existing.Name == item.Name {
			r.items[i] = item
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

// Items returns the registry in registration order, independent of any
// display-time reordering.
func (r *Registry) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// VisibleItems derives the displayed menu: hidden and unauthorized
// items are dropped, then the explicit order is applied as a stable
// sort keyed by reverse position in the order list. Items absent from
// the list sort after listed ones and keep registration order among
// themselves.
func (r *Registry) VisibleItems(policy Policy) []Item {
	visible := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		if policy.Hidden[item.Name] {
			continue
		}
		if containsName(policy.Unauthorized, item.Name) {
			continue
		}
		item.Children = visibleChildren(item.Children, policy.Unauthorized)
		visible = append(visible, item)
	}
	if len(policy.Order) > 0 {
		priority := func(name string) int {
			for i, candidate := range policy.Order {
				if candidate == name {
					return i
				}
			}
			return -1
		}
		sort.SliceStable(visible, func(i, j int) bool {
			return priority(visible[i].Name) > priority(visible[j].Name)
		})
	}
	return visible
}

func visibleChildren(children []Item, unauthorized []string) []Item {
	if len(children) == 0 {
		return nil
	}
	out := make([]Item, 0, len(children))
	for _, child := range children {
		if containsName(unauthorized, child.Name) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
