// Package xmltree reads an XML document into a plain attributed tree. Only
// elements and their attributes survive; character data, comments and
// processing instructions are dropped.
package xmltree

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
)

// Element is one node of the tree.
type Element struct {
	Tag      string
	Attr     map[string]string
	Children []*Element
}

// Get returns the attribute called name.
func (e *Element) Get(name string) (string, bool) {
	v, ok := e.Attr[name]
	return v, ok
}

// Path is shorthand for the "path" attribute.
func (e *Element) Path() string {
	return e.Attr["path"]
}

// ChildNamed returns the first child tagged tag, or nil.
func (e *Element) ChildNamed(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// New builds an element; attrs are name/value pairs.
func New(tag string, attrs ...string) *Element {
	el := &Element{Tag: tag, Attr: make(map[string]string, len(attrs)/2)}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr[attrs[i]] = attrs[i+1]
	}
	return el
}

// Add appends children and returns e, for building trees in code.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Parse reads a whole document from r and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decode xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local, Attr: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attr[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.Newf("multiple root elements: %q after %q", el.Tag, root.Tag)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}
