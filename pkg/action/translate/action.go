package translate

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/haxedts/internal/emitter"
	"github.com/cmmoran/haxedts/internal/model"
	"github.com/cmmoran/haxedts/internal/parser"
)

// Result summarizes one translation run. Counts cover emitted namespaces only.
type Result struct {
	Output      string
	Text        string
	Classes     int
	Namespaces  int
	Diagnostics []model.Diagnostic
}

// Translate reads a type dump from r and returns the declaration text. It is
// the whole pipeline without any file access.
func Translate(r io.Reader, opts *parser.Options) (*Result, error) {
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	if err = par.ParseReader(r); err != nil {
		return nil, err
	}

	root := par.Registry.Tree()
	text, err := emitter.Emit(root, &par.Opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Output:      par.Opts.Output,
		Text:        text,
		Diagnostics: par.Diagnostics,
	}
	for _, ns := range root.SortedChildren() {
		if !par.Opts.Included(ns.Name) {
			continue
		}
		namespaces, classes := ns.Count()
		res.Namespaces += namespaces + 1
		res.Classes += classes
	}
	return res, nil
}

// Generate translates opts.Input into opts.Output. The output file is only
// replaced once the whole text has been produced.
func Generate(opts *parser.Options) (*Result, error) {
	if opts.Input == "" || opts.Output == "" {
		return nil, errors.WithHint(errors.New("input and output are required"), "pass --input and --output")
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer in.Close()

	res, err := Translate(in, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "translate %s", opts.Input)
	}

	if err = writeAtomic(opts.Output, []byte(res.Text)); err != nil {
		return nil, err
	}
	return res, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp output")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write output")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "chmod output")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "replace output")
	}
	return nil
}
