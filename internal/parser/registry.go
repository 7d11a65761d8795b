package parser

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/model"
)

// Registry maps fully-qualified paths to class definitions. It is filled once
// by Parser.Parse and only read afterwards.
type Registry struct {
	defs map[string]*model.ClassDef
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*model.ClassDef)}
}

// add registers def, applying the duplicate policy. It reports whether an
// earlier definition was replaced.
func (reg *Registry) add(def *model.ClassDef, policy string) (bool, error) {
	_, exists := reg.defs[def.Path]
	if exists && policy == DuplicateReject {
		return false, errors.Wrapf(model.ErrDuplicatePath, "%s", def.Path)
	}
	reg.defs[def.Path] = def
	return exists, nil
}

func (reg *Registry) Get(path string) (*model.ClassDef, bool) {
	def, ok := reg.defs[path]
	return def, ok
}

func (reg *Registry) Len() int {
	return len(reg.defs)
}

// Paths returns all registered paths in lexical order.
func (reg *Registry) Paths() []string {
	out := make([]string, 0, len(reg.defs))
	for p := range reg.defs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Tree folds the registry into a namespace tree.
func (reg *Registry) Tree() *model.Namespace {
	return model.BuildTree(reg.defs)
}
