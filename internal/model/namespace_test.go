package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// shape flattens a tree into "path: defs" lines for comparison.
func shape(n *Namespace) []string {
	var out []string
	var walk func(*Namespace)
	walk = func(n *Namespace) {
		line := n.Path + ":"
		for _, d := range n.SortedDefs() {
			line += " " + d.Name
		}
		out = append(out, line)
		for _, c := range n.SortedChildren() {
			walk(c)
		}
	}
	walk(n)
	return out
}

func TestInsertOrderIndependent(t *testing.T) {
	paths := []string{"a.b.C", "a.d.E", "a.b.F"}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	want := []string{":", "a:", "a.b: C F", "a.d: E"}

	for _, perm := range perms {
		root := NewNamespace("", "")
		for _, i := range perm {
			p := paths[i]
			root.Insert(&ClassDef{Path: p, Name: ShortName(p)})
		}
		if diff := cmp.Diff(want, shape(root)); diff != "" {
			t.Fatalf("order %v: tree mismatch (-want +got):\n%s", perm, diff)
		}
		a := root.Lookup("a")
		require.NotNil(t, a)
		require.Len(t, a.Children, 2)
	}
}

func TestBuildTree(t *testing.T) {
	defs := map[string]*ClassDef{
		"pkg.Foo":       {Path: "pkg.Foo", Name: "Foo"},
		"pkg.sub.Bar":   {Path: "pkg.sub.Bar", Name: "Bar"},
		"other.Baz":     {Path: "other.Baz", Name: "Baz"},
		"TopLevelClass": {Path: "TopLevelClass", Name: "TopLevelClass"},
	}
	root := BuildTree(defs)

	require.True(t, root.IsRoot())
	require.Equal(t, 0, root.Depth())
	require.Contains(t, root.Defs, "TopLevelClass")

	sub := root.Lookup("pkg.sub")
	require.NotNil(t, sub)
	require.Equal(t, "sub", sub.Name)
	require.Equal(t, 2, sub.Depth())
	require.Equal(t, "pkg", sub.ParentPath())
	require.Same(t, root.Lookup(sub.ParentPath()), root.Children["pkg"])
	require.Equal(t, "", root.Children["pkg"].ParentPath())
	require.Nil(t, root.Lookup("pkg.missing"))

	namespaces, count := root.Count()
	require.Equal(t, 3, namespaces)
	require.Equal(t, 4, count)
}

func TestInsertSamePathReplaces(t *testing.T) {
	root := NewNamespace("", "")
	first := &ClassDef{Path: "a.X", Name: "X"}
	second := &ClassDef{Path: "a.X", Name: "X", ParentPath: "a.Y"}
	root.Insert(first)
	root.Insert(second)
	require.Len(t, root.Children["a"].Defs, 1)
	require.Same(t, second, root.Children["a"].Defs["X"])
}

func TestShortNameSplitPath(t *testing.T) {
	require.Equal(t, "C", ShortName("a.b.C"))
	require.Equal(t, "C", ShortName("C"))
	require.Equal(t, "", ShortName(""))

	ns, leaf := SplitPath("a.b.C")
	require.Equal(t, []string{"a", "b"}, ns)
	require.Equal(t, "C", leaf)

	ns, leaf = SplitPath("C")
	require.Empty(t, ns)
	require.Equal(t, "C", leaf)

	def := &ClassDef{ParentPath: "nape.phys.Body"}
	require.Equal(t, "Body", def.ParentName())
}
