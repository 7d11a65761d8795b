package parser

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/model"
	"github.com/cmmoran/haxedts/internal/xmltree"
)

// Tags and attribute values of the type dump.
const (
	tagTypedef    = "t"
	tagFunction   = "f"
	tagDynamic    = "d"
	tagAnonymous  = "a"
	tagClass      = "class"
	tagExtends    = "extends"
	tagImplements = "implements"
	tagDoc        = "haxe_doc"
	tagMeta       = "meta"

	attrPath     = "path"
	attrArgNames = "a"
	attrStatic   = "static"
	attrPublic   = "public"
	attrSet      = "set"

	nullablePath = "Null"
	setMethod    = "method"
	optionalMark = "?"
	argSep       = ":"
)

// Resolver turns type-expression nodes into model.TypeValue.
type Resolver struct {
	opts *Options
}

func NewResolver(opts *Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve resolves a single type-expression node:
//  1. Null<T> wrappers are discarded; every declared type is nullable.
//  2. One level of array wrapper becomes IsArray on the element type.
//  3. f nodes become functions (an array of functions is malformed); trailing optional arguments are kept, any
//     optional argument before the last required one is made required.
//  4. a nodes are anonymous structures.
//  5. Everything else is a Normal (or Dynamic, or inline Class) reference.
func (r *Resolver) Resolve(el *xmltree.Element) (model.TypeValue, error) {
	if el == nil {
		return model.TypeValue{}, errors.Wrap(model.ErrMalformedTypeNode, "missing type node")
	}

	isArray := false
	for {
		if el.Tag == tagTypedef && el.Path() == nullablePath {
			inner, err := singleChild(el)
			if err != nil {
				return model.TypeValue{}, err
			}
			el = inner
			continue
		}
		if !isArray && el.Tag != tagFunction && r.opts.IsArrayPath(el.Path()) {
			inner, err := singleChild(el)
			if err != nil {
				return model.TypeValue{}, err
			}
			isArray = true
			el = inner
			continue
		}
		break
	}

	switch el.Tag {
	case tagFunction:
		if isArray {
			return model.TypeValue{}, errors.Wrap(model.ErrMalformedTypeNode, "array of function types")
		}
		return r.resolveFunction(el)
	case tagAnonymous:
		return model.Anonymous(), nil
	case tagDynamic:
		return model.Dynamic(isArray), nil
	}

	path, ok := el.Get(attrPath)
	if !ok || path == "" {
		return model.TypeValue{}, errors.Wrapf(model.ErrMalformedTypeNode, "<%s> has no path attribute", el.Tag)
	}
	if el.Tag == tagClass {
		return model.Class(path, isArray), nil
	}
	return model.Normal(path, isArray), nil
}

func (r *Resolver) resolveFunction(el *xmltree.Element) (model.TypeValue, error) {
	raw, ok := el.Get(attrArgNames)
	if !ok {
		return model.TypeValue{}, errors.Wrap(model.ErrMalformedTypeNode, "<f> has no argument names")
	}
	if len(el.Children) == 0 {
		return model.TypeValue{}, errors.Wrap(model.ErrMalformedTypeNode, "<f> has no return type")
	}

	argNodes := el.Children[:len(el.Children)-1]
	names := []string{}
	if raw != "" || len(argNodes) > 0 {
		names = strings.Split(raw, argSep)
	}
	if len(names) < len(argNodes) {
		return model.TypeValue{}, errors.Wrapf(model.ErrMalformedTypeNode,
			"<f> names %d arguments but has %d argument types", len(names), len(argNodes))
	}

	args := make([]model.Argument, len(argNodes))
	lastRequired := -1
	for i, node := range argNodes {
		t, err := r.Resolve(node)
		if err != nil {
			return model.TypeValue{}, errors.Wrapf(err, "argument %d", i)
		}
		optional := strings.HasPrefix(names[i], optionalMark)
		if !optional {
			lastRequired = i
		}
		args[i] = model.Argument{
			Name:     strings.TrimPrefix(names[i], optionalMark),
			Type:     t,
			Optional: optional,
		}
	}
	// optional parameters cannot precede required ones
	for i := 0; i <= lastRequired; i++ {
		args[i].Optional = false
	}

	ret, err := r.Resolve(el.Children[len(el.Children)-1])
	if err != nil {
		return model.TypeValue{}, errors.Wrap(err, "return type")
	}
	return model.Function(args, ret), nil
}

func singleChild(el *xmltree.Element) (*xmltree.Element, error) {
	if len(el.Children) == 0 {
		return nil, errors.Wrapf(model.ErrMalformedTypeNode, "wrapper %q has no inner type", el.Path())
	}
	return el.Children[0], nil
}
