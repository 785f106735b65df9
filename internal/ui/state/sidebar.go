// Package state holds the sidebar tree state: which folders are open,
// where the cursor and viewport sit, and the active filter. It is pure
// bookkeeping with no Bubble Tea dependency, which keeps it directly
// testable.
package state

import (
	"strings"

	"github.com/teskalabs/asab-console/internal/library"
)

// Row is one visible line of the sidebar: a tree node flattened
// according to the current open set.
type Row struct {
	Key         string
	Name        string
	Type        library.NodeType
	Depth       int
	HasChildren bool
	Open        bool
}

// Outcome reports what a selection did. Folder selections only flip
// the open set; file selections request navigation.
type Outcome struct {
	Navigate bool
	URL      string
}

// Sidebar drives the tree menu. Rows are derived from the library tree
// and the open set; the filter narrows them further.
type Sidebar struct {
	root      *library.Node
	urlPrefix string
	open      map[string]bool
	activeKey string
	autoRan   bool

	Full           []Row
	Items          []Row
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewSidebar constructs an empty sidebar whose file selections
// navigate under the given URL prefix (e.g. "/library").
func NewSidebar(urlPrefix string) *Sidebar {
	return &Sidebar{
		urlPrefix:  strings.TrimSuffix(urlPrefix, "/"),
		open:       make(map[string]bool),
		Cursor:     -1,
		LastCursor: -1,
	}
}

// URLPrefix returns the navigation prefix for file selections.
func (s *Sidebar) URLPrefix() string {
	return s.urlPrefix
}

// ActiveKey returns the key of the item the console currently shows.
// Folder toggles never move it; only navigation does.
func (s *Sidebar) ActiveKey() string {
	return s.activeKey
}

// SetRoot installs a fresh tree, keeping the open set, filter, and,
// when possible, the cursor position by key.
func (s *Sidebar) SetRoot(root *library.Node) {
	var currentKey string
	if row, ok := s.Current(); ok {
		currentKey = row.Key
	}
	s.root = root
	s.rebuild()
	if currentKey != "" {
		if idx := s.IndexOf(currentKey); idx >= 0 {
			s.Cursor = idx
		}
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
}

// Root returns the installed tree, nil before the first listing.
func (s *Sidebar) Root() *library.Node {
	return s.root
}

// Current returns the row under the cursor.
func (s *Sidebar) Current() (Row, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return Row{}, false
	}
	return s.Items[s.Cursor], true
}

// IndexOf returns the visible index of the given key, -1 when the key
// is filtered out or collapsed away.
func (s *Sidebar) IndexOf(key string) int {
	if key == "" {
		return -1
	}
	for i, row := range s.Items {
		if row.Key == key {
			return i
		}
	}
	return -1
}

// IsOpen reports whether the folder with the given key is expanded.
func (s *Sidebar) IsOpen(key string) bool {
	return s.open[key]
}

// Toggle flips the open state of a folder and reflattens. Non-folder
// keys are ignored.
func (s *Sidebar) Toggle(key string) bool {
	if s.root == nil {
		return false
	}
	node := s.root.Lookup(key)
	if node == nil || !node.IsFolder() {
		return false
	}
	if s.open[key] {
		delete(s.open, key)
	} else {
		s.open[key] = true
	}
	s.rebuild()
	if idx := s.IndexOf(key); idx >= 0 {
		s.Cursor = idx
	}
	return true
}

// Select acts on the row with the given key. Folders expand or
// collapse in place; files produce a navigation outcome. The active
// key is left alone either way, it follows navigation, not toggling.
func (s *Sidebar) Select(key string) Outcome {
	if s.root == nil {
		return Outcome{}
	}
	node := s.root.Lookup(key)
	if node == nil {
		return Outcome{}
	}
	if node.IsFolder() {
		s.Toggle(key)
		return Outcome{}
	}
	if key == s.activeKey {
		return Outcome{}
	}
	return Outcome{Navigate: true, URL: s.urlPrefix + "/" + key}
}

// SelectCurrent applies Select to the row under the cursor.
func (s *Sidebar) SelectCurrent() Outcome {
	row, ok := s.Current()
	if !ok {
		return Outcome{}
	}
	return s.Select(row.Key)
}

// SyncFromRoute aligns the sidebar with the current location: the item
// named by the path becomes active and its ancestor folders open. The
// first sync also auto-expands the top level when the tree is small
// enough that expanding it does not flood the viewport.
func (s *Sidebar) SyncFromRoute(currentPath string, openAllThreshold int) {
	if s.root == nil {
		return
	}
	changed := false
	if !s.autoRan {
		s.autoRan = true
		if countNodes(s.root) <= openAllThreshold {
			for _, child := range s.root.Children {
				if child.IsFolder() && !s.open[child.Key] {
					s.open[child.Key] = true
					changed = true
				}
			}
		}
	}
	if itemPath, ok := strings.CutPrefix(currentPath, s.urlPrefix+"/"); ok && itemPath != "" {
		s.activeKey = itemPath
		for _, ancestor := range library.AncestorKeys(itemPath) {
			if !s.open[ancestor] {
				s.open[ancestor] = true
				changed = true
			}
		}
	}
	if changed {
		s.rebuild()
	}
	if s.activeKey != "" {
		if idx := s.IndexOf(s.activeKey); idx >= 0 {
			s.Cursor = idx
		}
	}
}

func (s *Sidebar) rebuild() {
	s.Full = s.Full[:0]
	if s.root != nil {
		s.flatten(s.root, 0)
	}
	s.applyFilter()
}

func (s *Sidebar) flatten(node *library.Node, depth int) {
	for _, child := range node.Children {
		open := s.open[child.Key]
		s.Full = append(s.Full, Row{
			Key:         child.Key,
			Name:        child.Name,
			Type:        child.Type,
			Depth:       depth,
			HasChildren: len(child.Children) > 0,
			Open:        open,
		})
		if child.IsFolder() && open {
			s.flatten(child, depth+1)
		}
	}
}

func countNodes(root *library.Node) int {
	total := 0
	for _, child := range root.Children {
		total += 1 + countNodes(child)
	}
	return total
}
