// Package emitter prints a namespace tree as declaration source.
package emitter

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/model"
	"github.com/cmmoran/haxedts/internal/parser"
)

const (
	indentUnit    = "    "
	ctorName      = "new"
	unnamedPrefix = "__"
)

// Emitter renders declaration blocks into an in-memory buffer. Nothing is
// returned when any type fails to print.
type Emitter struct {
	opts  *parser.Options
	buf   strings.Builder
	depth int
}

func New(opts *parser.Options) *Emitter {
	return &Emitter{opts: opts}
}

// Emit renders every allow-listed top-level namespace under root.
func Emit(root *model.Namespace, opts *parser.Options) (string, error) {
	return New(opts).Emit(root)
}

func (e *Emitter) Emit(root *model.Namespace) (string, error) {
	e.buf.Reset()
	e.depth = 0

	for _, ns := range root.SortedChildren() {
		if !e.opts.Included(ns.Name) {
			continue
		}
		if err := e.printNamespace(ns); err != nil {
			e.buf.Reset()
			return "", err
		}
	}
	return e.buf.String(), nil
}

func (e *Emitter) indent()  { e.depth++ }
func (e *Emitter) outdent() { e.depth-- }

// line writes one indented, newline-terminated line built from parts.
func (e *Emitter) line(parts ...string) {
	for i := 0; i < e.depth; i++ {
		e.buf.WriteString(indentUnit)
	}
	for _, p := range parts {
		e.buf.WriteString(p)
	}
	e.buf.WriteByte('\n')
}

func (e *Emitter) printNamespace(ns *model.Namespace) error {
	if ns.Depth() == 1 {
		e.line(`declare module "`, ns.Name, `" {`)
	} else {
		e.line("export namespace ", ns.Name, " {")
	}
	e.indent()

	for _, mod := range e.opts.Imports[ns.Name] {
		e.line("import ", mod, ` = require("`, mod, `");`)
	}
	for _, child := range ns.SortedChildren() {
		if err := e.printNamespace(child); err != nil {
			return err
		}
	}
	for _, def := range ns.SortedDefs() {
		if err := e.printClass(def); err != nil {
			return errors.Wrapf(err, "%s", def.Path)
		}
	}

	e.outdent()
	e.line("}")
	return nil
}

func (e *Emitter) printClass(def *model.ClassDef) error {
	head := "export class " + def.Name
	if def.ParentPath != "" {
		head += " extends " + def.ParentName()
	}
	e.line(head, " {")
	e.indent()

	for _, f := range def.Fields {
		if !f.IsPublic {
			continue
		}
		ref, err := e.TypeRef(f.Type)
		if err != nil {
			return errors.Wrapf(err, "field %s", f.Name)
		}
		e.line("public ", f.Name, ": ", ref, ";")
	}
	for _, f := range def.StaticFields {
		if !f.IsPublic {
			continue
		}
		ref, err := e.TypeRef(f.Type)
		if err != nil {
			return errors.Wrapf(err, "static field %s", f.Name)
		}
		e.line("public static ", f.Name, ": ", ref, ";")
	}
	for _, m := range def.Methods {
		if !m.IsPublic {
			continue
		}
		if err := e.printMethod(m, false); err != nil {
			return err
		}
	}
	if e.opts.EmitStaticMethods {
		for _, m := range def.StaticMethods {
			if !m.IsPublic {
				continue
			}
			if err := e.printMethod(m, true); err != nil {
				return err
			}
		}
	}

	e.outdent()
	e.line("}")
	return nil
}

func (e *Emitter) printMethod(m model.Method, static bool) error {
	if m.Signature.Kind != model.KindFunction {
		return errors.Wrapf(model.ErrUnsupportedTypeKind, "method %s has %s signature", m.Name, m.Signature.Kind)
	}

	params := make([]string, len(m.Signature.Args))
	for i, arg := range m.Signature.Args {
		ref, err := e.TypeRef(arg.Type)
		if err != nil {
			return errors.Wrapf(err, "method %s argument %d", m.Name, i)
		}
		opt := ""
		if arg.Optional {
			opt = "?"
		}
		params[i] = argName(arg, i) + opt + ": " + ref
	}
	list := "(" + strings.Join(params, ", ") + ")"

	if m.Name == ctorName && !static {
		e.line("constructor", list, ";")
		return nil
	}

	ret, err := e.TypeRef(*m.Signature.Return)
	if err != nil {
		return errors.Wrapf(err, "method %s return", m.Name)
	}
	prefix := "public "
	if static {
		prefix = "public static "
	}
	e.line(prefix, m.Name, list, ": ", ret, ";")
	return nil
}

func argName(arg model.Argument, i int) string {
	if arg.Name == "" {
		return unnamedPrefix + strconv.Itoa(i)
	}
	return arg.Name
}
