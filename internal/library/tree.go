package library

import (
	"fmt"
	"sort"
	"strings"
)

// Separator joins tree node keys; a node's key is its full path from the
// virtual root, so ancestry can be recovered by splitting the key.
const Separator = "/"

// NodeType distinguishes folders from files in a library listing.
type NodeType int

const (
	File NodeType = iota
	Folder
)

func (t NodeType) String() string {
	if t == Folder {
		return "folder"
	}
	return "file"
}

// Record is a single entry of the recursive listing response.
type Record struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Node is a tree node built from listing records. The root node has an
// empty key and name and always has Folder type.
type Node struct {
	Key      string
	Name     string
	Type     NodeType
	Children []*Node
}

// IsFolder reports whether the node can hold children.
func (n *Node) IsFolder() bool {
	return n.Type == Folder
}

// MalformedRecordError signals a listing entry that cannot be placed in
// the tree: an empty path, or a path that redeclares an existing node
// with a conflicting type.
type MalformedRecordError struct {
	Path   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed listing record %q: %s", e.Path, e.Reason)
}

// Build converts a flat listing into a nested tree rooted at a virtual
// folder. Intermediate folders are created on demand and unified by key,
// so a folder implied by one record's ancestry and declared explicitly
// by another ends up as a single node. Each call allocates a fresh tree;
// listings replace the previous tree wholesale rather than patching it.
func Build(records []Record) (*Node, error) {
	root := &Node{Type: Folder}
	nodes := map[string]*Node{"": root}

	ensureFolder := func(key, name string, parent *Node) (*Node, error) {
		if existing, ok := nodes[key]; ok {
			if !existing.IsFolder() {
				return nil, &MalformedRecordError{Path: key, Reason: "declared as both file and folder"}
			}
			return existing, nil
		}
		node := &Node{Key: key, Name: name, Type: Folder}
		parent.Children = append(parent.Children, node)
		nodes[key] = node
		return node, nil
	}

	for _, rec := range records {
		segments := splitPath(rec.Path)
		if len(segments) == 0 {
			return nil, &MalformedRecordError{Path: rec.Path, Reason: "empty path"}
		}
		parent := root
		key := ""
		for _, segment := range segments[:len(segments)-1] {
			key = childKey(key, segment)
			folder, err := ensureFolder(key, segment, parent)
			if err != nil {
				return nil, err
			}
			parent = folder
		}
		leaf := segments[len(segments)-1]
		key = childKey(key, leaf)
		if rec.Type == "folder" {
			if _, err := ensureFolder(key, leaf, parent); err != nil {
				return nil, err
			}
			continue
		}
		if existing, ok := nodes[key]; ok {
			if existing.IsFolder() {
				return nil, &MalformedRecordError{Path: rec.Path, Reason: "declared as both file and folder"}
			}
			continue
		}
		node := &Node{Key: key, Name: leaf, Type: File}
		parent.Children = append(parent.Children, node)
		nodes[key] = node
	}

	sortChildren(root)
	return root, nil
}

// sortChildren orders every folder's children with folders before files,
// keeping the listing's insertion order within each group.
func sortChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].IsFolder() && !n.Children[j].IsFolder()
	})
	for _, child := range n.Children {
		if child.IsFolder() {
			sortChildren(child)
		}
	}
}

// Lookup finds the node for the given key, walking from the root. A
// missing or empty key returns the node itself respectively nil, so
// stale keys after a tree rebuild degrade to no-ops for callers.
func (n *Node) Lookup(key string) *Node {
	if key == "" {
		return n
	}
	current := n
	for _, segment := range strings.Split(key, Separator) {
		var next *Node
		for _, child := range current.Children {
			if child.Name == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// Subtree returns the folder at prefix re-rooted as a standalone tree.
// Keys of the returned nodes keep their full original ancestry. A
// missing or non-folder prefix yields an empty root.
func (n *Node) Subtree(prefix string) *Node {
	node := n.Lookup(prefix)
	if node == nil || !node.IsFolder() {
		return &Node{Type: Folder}
	}
	return &Node{Key: node.Key, Name: node.Name, Type: Folder, Children: node.Children}
}

// AncestorKeys decomposes a key into the keys of its proper ancestors,
// outermost first. No tree access is needed: keys encode full ancestry.
func AncestorKeys(key string) []string {
	segments := splitPath(key)
	if len(segments) < 2 {
		return nil
	}
	keys := make([]string, 0, len(segments)-1)
	prefix := ""
	for _, segment := range segments[:len(segments)-1] {
		prefix = childKey(prefix, segment)
		keys = append(keys, prefix)
	}
	return keys
}

func childKey(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + Separator + name
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, Separator)
	if trimmed == "" {
		return nil
	}
	segments := strings.Split(trimmed, Separator)
	out := segments[:0]
	for _, segment := range segments {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}
