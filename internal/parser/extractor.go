package parser

import (
	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/model"
	"github.com/cmmoran/haxedts/internal/xmltree"
)

// memberKind is decided once per member from the "set" attribute.
type memberKind int

const (
	memberField memberKind = iota
	memberMethod
)

func kindOf(el *xmltree.Element) memberKind {
	if v, _ := el.Get(attrSet); v == setMethod {
		return memberMethod
	}
	return memberField
}

func isDocOrMeta(el *xmltree.Element) bool {
	return el.Tag == tagDoc || el.Tag == tagMeta
}

func flag(el *xmltree.Element, name string) bool {
	v, _ := el.Get(name)
	return v == "1"
}

// ExtractClass builds a ClassDef from one class-definition node. Member order
// within each list follows document order.
func (r *Resolver) ExtractClass(el *xmltree.Element) (*model.ClassDef, error) {
	path, ok := el.Get(attrPath)
	if !ok || path == "" {
		return nil, errors.Wrap(model.ErrMalformedTypeNode, "class has no path attribute")
	}

	def := &model.ClassDef{
		Path: path,
		Name: model.ShortName(path),
	}

	for _, child := range el.Children {
		switch {
		case child.Tag == tagExtends:
			def.ParentPath = child.Path()
			continue
		case child.Tag == tagImplements, isDocOrMeta(child):
			continue
		}

		isStatic := flag(child, attrStatic)
		isPublic := flag(child, attrPublic)

		switch kindOf(child) {
		case memberMethod:
			fn := child.ChildNamed(tagFunction)
			if fn == nil {
				return nil, errors.Wrapf(model.ErrMalformedTypeNode, "%s.%s: method has no <f> signature", path, child.Tag)
			}
			sig, err := r.Resolve(fn)
			if err != nil {
				return nil, errors.Wrapf(err, "%s.%s", path, child.Tag)
			}
			m := model.Method{Name: child.Tag, IsPublic: isPublic, Signature: sig}
			if isStatic {
				def.StaticMethods = append(def.StaticMethods, m)
			} else {
				def.Methods = append(def.Methods, m)
			}

		case memberField:
			t, err := r.Resolve(fieldTypeNode(child))
			if err != nil {
				return nil, errors.Wrapf(err, "%s.%s", path, child.Tag)
			}
			f := model.Field{Name: child.Tag, IsPublic: isPublic, Type: t}
			if isStatic {
				def.StaticFields = append(def.StaticFields, f)
			} else {
				def.Fields = append(def.Fields, f)
			}
		}
	}

	return def, nil
}

// fieldTypeNode is the first child of a field that is not documentation.
func fieldTypeNode(el *xmltree.Element) *xmltree.Element {
	for _, c := range el.Children {
		if !isDocOrMeta(c) {
			return c
		}
	}
	return nil
}
