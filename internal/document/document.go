// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document parses an XML export into a navigable element tree.
// Only elements, attributes and character data are kept; comments,
// processing instructions and namespaces are dropped. Elements are matched
// by local name.
package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ErrMissingIdentifier is returned by consumers when a node lacks an id
// the extracted data depends on.
var ErrMissingIdentifier = errors.New("missing identifier")

// Node is one XML element.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
	// Text is the concatenated character data directly inside the element,
	// CDATA included.
	Text   string
	parent *Node
}

// Document is a parsed export.
type Document struct {
	Root *Node
}

// Load opens and parses the XML file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a Document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	var stack []*Node
	var root *Node
	rootClosed := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			n := &Node{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
				n.parent = parent
			} else {
				root = n
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isSpace(string(t)) {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].Text += string(t)
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return &Document{Root: root}, nil
}

func isSpace(s string) bool {
	for _, r := range s {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ElementsByName returns every element named name, root included, in
// document order.
func (d *Document) ElementsByName(name string) []*Node {
	if d == nil || d.Root == nil {
		return nil
	}
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Name == name {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(d.Root)
	return out
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// ID returns the trimmed "id" attribute, or an error wrapping
// ErrMissingIdentifier when it is absent or blank.
func (n *Node) ID() (string, error) {
	v, _ := n.Attr("id")
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s element without id attribute: %w", n.Name, ErrMissingIdentifier)
	}
	return v, nil
}

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child named name in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first direct child named name and
// whether such a child exists.
func (n *Node) ChildText(name string) (string, bool) {
	c := n.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// FirstElement returns the first element child, or nil.
func (n *Node) FirstElement() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Parent returns the enclosing element, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}
