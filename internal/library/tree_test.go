package library

import (
	"errors"
	"testing"
)

func TestBuildNestsRecordsByPath(t *testing.T) {
	tree, err := Build([]Record{
		{Path: "Templates/Email/alert.md", Type: "file"},
		{Path: "Templates/Email", Type: "folder"},
		{Path: "dashboard.json", Type: "file"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	node := tree.Lookup("Templates/Email/alert.md")
	if node == nil {
		t.Fatalf("expected leaf node for alert.md")
	}
	if node.IsFolder() {
		t.Fatalf("expected alert.md to be a file")
	}
	folder := tree.Lookup("Templates/Email")
	if folder == nil || !folder.IsFolder() {
		t.Fatalf("expected Templates/Email folder, got %#v", folder)
	}
	if len(folder.Children) != 1 || folder.Children[0] != node {
		t.Fatalf("expected folder to own the leaf, got %#v", folder.Children)
	}
}

func TestBuildUnifiesImpliedAndExplicitFolders(t *testing.T) {
	tree, err := Build([]Record{
		{Path: "Config/zookeeper/node.yaml", Type: "file"},
		{Path: "Config/zookeeper", Type: "folder"},
		{Path: "Config/zookeeper/other.yaml", Type: "file"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	config := tree.Lookup("Config")
	if config == nil || len(config.Children) != 1 {
		t.Fatalf("expected a single zookeeper folder, got %#v", config)
	}
	if got := len(config.Children[0].Children); got != 2 {
		t.Fatalf("expected 2 files under zookeeper, got %d", got)
	}
}

func TestBuildSortsFoldersBeforeFilesStable(t *testing.T) {
	tree, err := Build([]Record{
		{Path: "b.txt", Type: "file"},
		{Path: "a.txt", Type: "file"},
		{Path: "Zeta/x", Type: "file"},
		{Path: "Alpha/y", Type: "file"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]string, 0, len(tree.Children))
	for _, child := range tree.Children {
		got = append(got, child.Name)
	}
	want := []string{"Zeta", "Alpha", "b.txt", "a.txt"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestBuildRejectsEmptyPath(t *testing.T) {
	_, err := Build([]Record{{Path: "//", Type: "file"}})
	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
}

func TestBuildRejectsTypeConflicts(t *testing.T) {
	_, err := Build([]Record{
		{Path: "item", Type: "file"},
		{Path: "item/child", Type: "file"},
	})
	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	_, err = Build([]Record{
		{Path: "dir/child", Type: "file"},
		{Path: "dir", Type: "file"},
	})
	if !errors.As(err, &malformed) {
		t.Fatalf("expected conflict error for folder redeclared as file, got %v", err)
	}
}

func TestBuildToleratesDuplicateFileRecords(t *testing.T) {
	tree, err := Build([]Record{
		{Path: "a.txt", Type: "file"},
		{Path: "a.txt", Type: "file"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected duplicate records to unify, got %d children", len(tree.Children))
	}
}

func TestLookupMissingKeyReturnsNil(t *testing.T) {
	tree, err := Build([]Record{{Path: "a/b", Type: "file"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Lookup("a/missing") != nil {
		t.Fatalf("expected nil for missing key")
	}
	if tree.Lookup("") != tree {
		t.Fatalf("expected empty key to return the root")
	}
}

func TestSubtreeReRootsWithOriginalKeys(t *testing.T) {
	tree, err := Build([]Record{
		{Path: "Config/app/settings.yaml", Type: "file"},
		{Path: "other.txt", Type: "file"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub := tree.Subtree("Config")
	if len(sub.Children) != 1 || sub.Children[0].Key != "Config/app" {
		t.Fatalf("expected re-rooted Config subtree, got %#v", sub.Children)
	}
	empty := tree.Subtree("does-not-exist")
	if len(empty.Children) != 0 {
		t.Fatalf("expected empty subtree for missing prefix")
	}
}

func TestAncestorKeys(t *testing.T) {
	got := AncestorKeys("a/b/c.txt")
	want := []string{"a", "a/b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if AncestorKeys("top") != nil {
		t.Fatalf("expected no ancestors for top-level key")
	}
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]string{
		"Templates/alert.YAML": "yaml",
		"schema.json":          "json",
		"script.py":            "python",
		"notes.txt":            "",
		"noextension":          "",
	}
	for path, want := range cases {
		if got := LanguageForPath(path); got != want {
			t.Fatalf("LanguageForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
