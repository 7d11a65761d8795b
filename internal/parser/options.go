package parser

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

// Duplicate policies for two definitions sharing one fully-qualified path.
const (
	DuplicateOverwrite = "overwrite"
	DuplicateReject    = "reject"
)

// DefaultTypeAliases maps dump primitive paths to declaration scalar names.
// Paths absent from the table print unchanged.
func DefaultTypeAliases() map[string]string {
	return map[string]string{
		"Float":  "number",
		"Int":    "number",
		"UInt":   "number",
		"Bool":   "boolean",
		"Void":   "void",
		"String": "string",
	}
}

// Options control parsing and emission.
//
// Input             – type dump to read
// Output            – declaration file to write
// Include           – allow-list of top-level namespaces that are emitted
// TypeAliases       – primitive path → declaration name, merged over DefaultTypeAliases
// ArrayPaths        – paths whose single child is the element type of an array
// Imports           – namespace name → modules imported at the top of its block
// OnDuplicate       – "overwrite" (last definition wins) or "reject"
// EmitStaticMethods – also print public static methods
type Options struct {
	Input             string              `json:"input,omitempty" yaml:"input,omitempty" toml:"input,omitempty" mapstructure:"input,omitempty"`
	Output            string              `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty" mapstructure:"output,omitempty"`
	Include           []string            `json:"include,omitempty" yaml:"include,omitempty" toml:"include,omitempty" mapstructure:"include,omitempty"`
	TypeAliases       map[string]string   `json:"type_aliases,omitempty" yaml:"type_aliases,omitempty" toml:"type_aliases,omitempty" mapstructure:"type_aliases,omitempty"`
	ArrayPaths        []string            `json:"array_paths,omitempty" yaml:"array_paths,omitempty" toml:"array_paths,omitempty" mapstructure:"array_paths,omitempty"`
	Imports           map[string][]string `json:"imports,omitempty" yaml:"imports,omitempty" toml:"imports,omitempty" mapstructure:"imports,omitempty"`
	OnDuplicate       string              `json:"on_duplicate,omitempty" yaml:"on_duplicate,omitempty" toml:"on_duplicate,omitempty" mapstructure:"on_duplicate,omitempty"`
	EmitStaticMethods bool                `json:"emit_static_methods,omitempty" yaml:"emit_static_methods,omitempty" toml:"emit_static_methods,omitempty" mapstructure:"emit_static_methods,omitempty"`

	Logger *slog.Logger `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
}

func NewOptions() *Options {
	return &Options{
		Include:     []string{"nape", "zpp_nape"},
		TypeAliases: DefaultTypeAliases(),
		ArrayPaths:  []string{"nape.TArray", "Array"},
		Imports:     map[string][]string{},
		OnDuplicate: DuplicateOverwrite,
	}
}

// Normalize fills defaults, trims and de-duplicates list values, and merges
// TypeAliases over the built-in table.
func (o *Options) Normalize() error {
	o.Include = cleanList(o.Include)
	o.ArrayPaths = cleanList(o.ArrayPaths)
	if len(o.ArrayPaths) == 0 {
		o.ArrayPaths = []string{"nape.TArray", "Array"}
	}

	aliases := DefaultTypeAliases()
	for k, v := range o.TypeAliases {
		aliases[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	o.TypeAliases = aliases

	if o.Imports == nil {
		o.Imports = map[string][]string{}
	}
	for ns, mods := range o.Imports {
		o.Imports[ns] = cleanList(mods)
	}

	switch strings.ToLower(strings.TrimSpace(o.OnDuplicate)) {
	case "", DuplicateOverwrite:
		o.OnDuplicate = DuplicateOverwrite
	case DuplicateReject:
		o.OnDuplicate = DuplicateReject
	default:
		return errors.WithHintf(
			errors.Newf("unknown duplicate policy %q", o.OnDuplicate),
			"use %q or %q", DuplicateOverwrite, DuplicateReject,
		)
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return nil
}

// Included reports whether a top-level namespace is on the allow-list.
func (o *Options) Included(name string) bool {
	for _, n := range o.Include {
		if n == name {
			return true
		}
	}
	return false
}

// IsArrayPath reports whether path marks an array wrapper.
func (o *Options) IsArrayPath(path string) bool {
	for _, p := range o.ArrayPaths {
		if p == path {
			return true
		}
	}
	return false
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInput(f string) Option  { return func(o *Options) { o.Input = f } }
func WithOutput(f string) Option { return func(o *Options) { o.Output = f } }
func WithInclude(names ...string) Option {
	return func(o *Options) { o.Include = append(o.Include, names...) }
}
func WithOnlyInclude(names ...string) Option {
	return func(o *Options) { o.Include = append([]string(nil), names...) }
}
func WithTypeAlias(path, name string) Option {
	return func(o *Options) {
		if o.TypeAliases == nil {
			o.TypeAliases = map[string]string{}
		}
		o.TypeAliases[path] = name
	}
}
func WithArrayPaths(paths ...string) Option {
	return func(o *Options) { o.ArrayPaths = append([]string(nil), paths...) }
}
func WithImports(namespace string, modules ...string) Option {
	return func(o *Options) {
		if o.Imports == nil {
			o.Imports = map[string][]string{}
		}
		o.Imports[namespace] = append(o.Imports[namespace], modules...)
	}
}
func WithRejectDuplicates() Option { return func(o *Options) { o.OnDuplicate = DuplicateReject } }
func WithStaticMethods() Option    { return func(o *Options) { o.EmitStaticMethods = true } }
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
