package model

import (
	"sort"
	"strings"
)

// Namespace is one node of the namespace tree. A node owns its child
// namespaces and definitions; the parent is referenced by key only (see
// ParentPath), never by pointer.
type Namespace struct {
	Name     string // "" for the root
	Path     string // dotted path from the root, "" for the root
	Children map[string]*Namespace
	Defs     map[string]*ClassDef
}

func NewNamespace(name, path string) *Namespace {
	return &Namespace{
		Name:     name,
		Path:     path,
		Children: make(map[string]*Namespace),
		Defs:     make(map[string]*ClassDef),
	}
}

func (n *Namespace) IsRoot() bool {
	return n.Path == ""
}

// Depth is 0 for the root, 1 for top-level namespaces and so on.
func (n *Namespace) Depth() int {
	if n.IsRoot() {
		return 0
	}
	return strings.Count(n.Path, ".") + 1
}

// ParentPath is the lookup key of the enclosing namespace ("" for the root
// and for top-level namespaces).
func (n *Namespace) ParentPath() string {
	if i := strings.LastIndexByte(n.Path, '.'); i >= 0 {
		return n.Path[:i]
	}
	return ""
}

// Child returns the child namespace called name, creating it when create is
// set. It returns nil when the child is missing and create is false.
func (n *Namespace) Child(name string, create bool) *Namespace {
	child, ok := n.Children[name]
	if !ok && create {
		path := name
		if !n.IsRoot() {
			path = n.Path + "." + name
		}
		child = NewNamespace(name, path)
		n.Children[name] = child
	}
	return child
}

// SortedChildren returns child namespaces in lexical name order.
func (n *Namespace) SortedChildren() []*Namespace {
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Namespace, len(keys))
	for i, k := range keys {
		out[i] = n.Children[k]
	}
	return out
}

// SortedDefs returns definitions in lexical short-name order.
func (n *Namespace) SortedDefs() []*ClassDef {
	keys := make([]string, 0, len(n.Defs))
	for k := range n.Defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*ClassDef, len(keys))
	for i, k := range keys {
		out[i] = n.Defs[k]
	}
	return out
}

// Lookup walks from n along a dotted path and returns the namespace found
// there, or nil.
func (n *Namespace) Lookup(path string) *Namespace {
	if path == "" {
		return n
	}
	cur := n
	for _, seg := range strings.Split(path, ".") {
		if cur = cur.Child(seg, false); cur == nil {
			return nil
		}
	}
	return cur
}

// Insert places def under the namespace named by its path, creating
// intermediate namespaces as needed. Inserting the same path twice replaces
// the earlier definition.
func (n *Namespace) Insert(def *ClassDef) {
	namespaces, leaf := SplitPath(def.Path)
	owner := n
	for _, seg := range namespaces {
		owner = owner.Child(seg, true)
	}
	owner.Defs[leaf] = def
}

// BuildTree folds a registry of flat paths into a namespace tree and returns
// its root. The shape does not depend on registry iteration order.
func BuildTree(defs map[string]*ClassDef) *Namespace {
	root := NewNamespace("", "")
	for _, def := range defs {
		root.Insert(def)
	}
	return root
}

// Count returns the number of namespaces below n and the number of
// definitions held by n and its descendants.
func (n *Namespace) Count() (namespaces, defs int) {
	defs = len(n.Defs)
	for _, c := range n.Children {
		cn, cd := c.Count()
		namespaces += cn + 1
		defs += cd
	}
	return namespaces, defs
}
