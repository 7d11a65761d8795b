package model

import "strings"

type Kind int

const (
	KindInvalid   Kind = iota
	KindDynamic        // untyped, printed as any
	KindFunction       // (a: A) => R
	KindAnonymous      // structural type, no printable shape
	KindClass          // inline reference to a class definition
	KindNormal         // primitive or alias, looked up in the alias table
)

func (k Kind) String() string {
	switch k {
	case KindDynamic:
		return "dynamic"
	case KindFunction:
		return "function"
	case KindAnonymous:
		return "anonymous"
	case KindClass:
		return "class"
	case KindNormal:
		return "normal"
	default:
		return "invalid"
	}
}

// TypeValue is one resolved type expression. Which fields are meaningful
// depends on Kind:
//
//	KindDynamic   – IsArray
//	KindFunction  – Args, Return
//	KindAnonymous – nothing
//	KindClass     – Path, Name, IsArray
//	KindNormal    – Path, Name, IsArray
type TypeValue struct {
	Kind    Kind
	Path    string // fully-qualified, dot separated
	Name    string // last segment of Path
	IsArray bool

	Args   []Argument
	Return *TypeValue
}

type Argument struct {
	Name     string // "" when the dump does not name the argument
	Type     TypeValue
	Optional bool
}

func Dynamic(isArray bool) TypeValue {
	return TypeValue{Kind: KindDynamic, IsArray: isArray}
}

func Normal(path string, isArray bool) TypeValue {
	return TypeValue{Kind: KindNormal, Path: path, Name: ShortName(path), IsArray: isArray}
}

func Class(path string, isArray bool) TypeValue {
	return TypeValue{Kind: KindClass, Path: path, Name: ShortName(path), IsArray: isArray}
}

func Anonymous() TypeValue {
	return TypeValue{Kind: KindAnonymous}
}

func Function(args []Argument, ret TypeValue) TypeValue {
	return TypeValue{Kind: KindFunction, Args: args, Return: &ret}
}

// Method is a member whose declared kind is "method". Signature is always a
// KindFunction value.
type Method struct {
	Name      string
	IsPublic  bool
	Signature TypeValue
}

type Field struct {
	Name     string
	IsPublic bool
	Type     TypeValue
}

// ClassDef is one top-level class definition from the dump.
type ClassDef struct {
	Path          string
	Name          string
	ParentPath    string // "" when the class extends nothing
	Methods       []Method
	StaticMethods []Method
	Fields        []Field
	StaticFields  []Field
}

// ParentName is the short name of the parent class. Parents are referenced by
// name only and never resolved across namespaces.
func (c *ClassDef) ParentName() string {
	return ShortName(c.ParentPath)
}

// Diagnostic is a non-fatal finding recorded while reading the dump.
type Diagnostic struct {
	Path string
	Tag  string
	Err  error
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Tag + ": " + d.Err.Error()
	}
	return d.Path + " (" + d.Tag + "): " + d.Err.Error()
}

// ShortName returns the last dot-separated segment of path.
func ShortName(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SplitPath splits a fully-qualified path into its namespace segments and the
// leaf name.
func SplitPath(path string) (namespaces []string, leaf string) {
	parts := strings.Split(path, ".")
	return parts[:len(parts)-1], parts[len(parts)-1]
}
