package emitter

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/model"
)

const dynamicToken = "any"

// TypeRef prints a type reference as it appears after a colon. Anonymous
// structures and inline class references have no printable shape and fail
// with model.ErrUnsupportedTypeKind.
func (e *Emitter) TypeRef(t model.TypeValue) (string, error) {
	switch t.Kind {
	case model.KindFunction:
		params := make([]string, len(t.Args))
		for i, arg := range t.Args {
			ref, err := e.TypeRef(arg.Type)
			if err != nil {
				return "", err
			}
			params[i] = argName(arg, i) + ": " + ref
		}
		if t.Return == nil {
			return "", errors.Wrap(model.ErrUnsupportedTypeKind, "function without return type")
		}
		ret, err := e.TypeRef(*t.Return)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(params, ", ") + ") => " + ret, nil

	case model.KindDynamic:
		return arraySuffix(dynamicToken, t.IsArray), nil

	case model.KindNormal:
		name := t.Path
		if alias, ok := e.opts.TypeAliases[t.Path]; ok {
			name = alias
		}
		return arraySuffix(name, t.IsArray), nil

	case model.KindClass:
		return "", errors.Wrapf(model.ErrUnsupportedTypeKind, "inline class reference %s", t.Path)

	case model.KindAnonymous:
		return "", errors.Wrap(model.ErrUnsupportedTypeKind, "anonymous structure")

	default:
		return "", errors.Wrapf(model.ErrUnsupportedTypeKind, "%s", t.Kind)
	}
}

func arraySuffix(s string, isArray bool) string {
	if isArray {
		return s + "[]"
	}
	return s
}
