package parser

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/model"
	"github.com/cmmoran/haxedts/internal/xmltree"
)

// Parser holds state/results of a parse run.
type Parser struct {
	Opts Options

	Registry    *Registry
	Diagnostics []model.Diagnostic

	resolver *Resolver
}

// New builds a parser from functional options applied over NewOptions.
func New(opts ...Option) (*Parser, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Parser, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	p := &Parser{
		Opts:        *opts,
		Registry:    NewRegistry(),
		Diagnostics: make([]model.Diagnostic, 0),
	}
	p.resolver = NewResolver(&p.Opts)

	return p, nil
}

// ParseReader decodes a type dump from r and parses it.
func (p *Parser) ParseReader(r io.Reader) error {
	root, err := xmltree.Parse(r)
	if err != nil {
		return errors.Wrap(err, "read type dump")
	}
	return p.Parse(root)
}

// Parse extracts every class definition under root into the registry. Root
// children that are not class definitions are recorded as diagnostics and
// skipped; malformed type nodes abort the run.
func (p *Parser) Parse(root *xmltree.Element) error {
	log := p.Opts.Logger
	for _, el := range root.Children {
		if el.Tag != tagClass {
			d := model.Diagnostic{
				Path: el.Path(),
				Tag:  el.Tag,
				Err:  model.ErrUnrecognizedTopLevelNode,
			}
			p.Diagnostics = append(p.Diagnostics, d)
			log.With("tag", el.Tag, "path", el.Path()).Warn("skipping top-level node")
			continue
		}

		def, err := p.resolver.ExtractClass(el)
		if err != nil {
			return err
		}

		replaced, err := p.Registry.add(def, p.Opts.OnDuplicate)
		if err != nil {
			return err
		}
		if replaced {
			log.With("path", def.Path).Warn("duplicate definition replaced earlier one")
		}
		log.With("path", def.Path,
			"fields", len(def.Fields)+len(def.StaticFields),
			"methods", len(def.Methods)+len(def.StaticMethods),
		).Debug("registered class")
	}
	return nil
}
